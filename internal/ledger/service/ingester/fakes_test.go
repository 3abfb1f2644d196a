package ingester

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/chain"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/classifier"
	"github.com/goodnatureofminers/midnight-indexer/internal/ledger/model"
)

func hashAt(height uint64) string {
	return fmt.Sprintf("%064x", height)
}

// memRepository keeps committed bundles in memory with the same checkpoint and gap semantics
// as the relational store.
type memRepository struct {
	mu         sync.Mutex
	blocks     map[uint64]model.BlockBundle
	checkpoint *uint64
	writes     []uint64
	failWrite  map[uint64]error
}

func newMemRepository(heights ...uint64) *memRepository {
	r := &memRepository{blocks: make(map[uint64]model.BlockBundle), failWrite: make(map[uint64]error)}
	for _, h := range heights {
		r.blocks[h] = model.BlockBundle{Block: model.Block{Height: h, Hash: hashAt(h)}}
	}
	return r
}

func (r *memRepository) WriteBlock(_ context.Context, bundle model.BlockBundle, opts model.WriteOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := bundle.Block.Height
	if err := r.failWrite[h]; err != nil {
		return err
	}
	if prev, ok := r.blocks[h]; ok && prev.Block.Finalized {
		bundle.Block.Finalized = true
	}
	r.blocks[h] = bundle
	r.writes = append(r.writes, h)
	if opts.AdvanceCheckpoint && (r.checkpoint == nil || h > *r.checkpoint) {
		r.checkpoint = &h
	}
	return nil
}

func (r *memRepository) Checkpoint(context.Context) (uint64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.checkpoint == nil {
		return 0, false, nil
	}
	return *r.checkpoint, true, nil
}

func (r *memRepository) MissingBlockHeights(_ context.Context, limit uint64) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.blocks) == 0 {
		return nil, nil
	}
	lo, hi := ^uint64(0), uint64(0)
	for h := range r.blocks {
		lo, hi = min(lo, h), max(hi, h)
	}
	var out []uint64
	for h := lo; h <= hi && (limit == 0 || uint64(len(out)) < limit); h++ {
		if _, ok := r.blocks[h]; !ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *memRepository) LedgerPendingHeights(_ context.Context, limit uint64) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uint64
	for h, b := range r.blocks {
		if b.LedgerPending {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if limit > 0 && uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepository) committed() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.writes...)
}

type fakeDecoder struct {
	mu   sync.Mutex
	fail map[uint64]error
}

func (d *fakeDecoder) Decode(_ context.Context, height uint64) (*chain.DecodedBlock, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail[height]; err != nil {
		return nil, err
	}
	return &chain.DecodedBlock{Block: model.Block{Height: height, Hash: hashAt(height)}}, nil
}

// fakeLedger has data for every height except those in lagging.
type fakeLedger struct {
	mu      sync.Mutex
	lagging map[uint64]bool
}

func (l *fakeLedger) BlockByHeight(_ context.Context, height uint64) (*chain.LedgerBlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lagging[height] {
		return nil, nil
	}
	return &chain.LedgerBlock{Height: height, Hash: hashAt(height)}, nil
}

func (l *fakeLedger) catchUp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lagging = nil
}

type passClassifier struct{}

func (passClassifier) Classify(*chain.DecodedBlock) []classifier.Classified { return nil }

type passReconciler struct{}

func (passReconciler) Reconcile(block *chain.DecodedBlock, _ []classifier.Classified, ledger *chain.LedgerBlock) (model.BlockBundle, error) {
	return model.BlockBundle{Block: block.Block, LedgerPending: ledger == nil}, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveFetchMissing(error, time.Time) {}
func (nopMetrics) ObserveProcessBatch(error, int, time.Time) {}
func (nopMetrics) ObserveProcessHeight(error, uint64, time.Time) {}
func (nopMetrics) SetCheckpoint(uint64) {}
func (nopMetrics) SetHead(string, uint64) {}
func (nopMetrics) SetRetryQueue(int) {}
func (nopMetrics) SetState(string) {}

type fakeHeads struct {
	finalized uint64
}

func (h *fakeHeads) LatestHeader(context.Context) (*chain.Header, error) {
	return &chain.Header{Number: h.finalized}, nil
}

func (h *fakeHeads) FinalizedHeader(context.Context) (*chain.Header, error) {
	return &chain.Header{Number: h.finalized, Hash: hashAt(h.finalized)}, nil
}

func (h *fakeHeads) SubscribeNewHeads(context.Context) (chain.HeadSubscription, error) {
	return nil, fmt.Errorf("not supported")
}

func (h *fakeHeads) SubscribeFinalizedHeads(context.Context) (chain.HeadSubscription, error) {
	return nil, fmt.Errorf("not supported")
}

// fakeSubscription is fed by the test through its channels.
type fakeSubscription struct {
	headers      chan chain.Header
	errs         chan error
	unsubscribed chan struct{}
	once         sync.Once
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{
		headers:      make(chan chain.Header),
		errs:         make(chan error, 1),
		unsubscribed: make(chan struct{}),
	}
}

func (s *fakeSubscription) Headers() <-chan chain.Header { return s.headers }
func (s *fakeSubscription) Err() <-chan error { return s.errs }
func (s *fakeSubscription) Unsubscribe() { s.once.Do(func() { close(s.unsubscribed) }) }

// liveHeads serves subscriptions that stay open without delivering headers.
type liveHeads struct {
	fakeHeads
}

func (h *liveHeads) SubscribeNewHeads(context.Context) (chain.HeadSubscription, error) {
	return newFakeSubscription(), nil
}

func (h *liveHeads) SubscribeFinalizedHeads(context.Context) (chain.HeadSubscription, error) {
	return newFakeSubscription(), nil
}

type callRetrier struct{}

func (callRetrier) Do(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}
