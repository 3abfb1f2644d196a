package ingester

import (
	"slices"

	"github.com/puzpuzpuz/xsync/v4"
)

// retryQueue is a set of heights whose ledger data was unavailable during live ingestion.
// The value counts how many times a height was queued.
type retryQueue struct {
	heights *xsync.Map[uint64, int]
}

func newRetryQueue() *retryQueue {
	return &retryQueue{heights: xsync.NewMap[uint64, int]()}
}

func (q *retryQueue) Add(height uint64) {
	q.heights.Compute(height, func(old int, _ bool) (int, xsync.ComputeOp) {
		return old + 1, xsync.UpdateOp
	})
}

// Drain removes and returns every queued height in ascending order.
func (q *retryQueue) Drain() []uint64 {
	var out []uint64
	q.heights.Range(func(height uint64, _ int) bool {
		if _, ok := q.heights.LoadAndDelete(height); ok {
			out = append(out, height)
		}
		return true
	})
	slices.Sort(out)
	return out
}

func (q *retryQueue) Len() int {
	return q.heights.Size()
}
