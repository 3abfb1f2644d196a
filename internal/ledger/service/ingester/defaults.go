package ingester

import "time"

const (
	defaultBatchSize   = 50
	defaultWorkerCount = 8

	defaultGapLimit    = 5000
	defaultGapSchedule = "@every 5m"

	idleSleepDuration = 6 * time.Second

	mirrorBatchSize     = 500
	mirrorFlushInterval = 10 * time.Second
	mirrorFlushRPS      = 5

	headKindBest      = "best"
	headKindFinalized = "finalized"
)
