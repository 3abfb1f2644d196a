package ingester

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/midnight-indexer/internal/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Config struct {
	BatchSize   int
	WorkerCount int
	// StartHeight is the first height imported when no checkpoint is stored.
	StartHeight uint64
	GapSchedule string
	GapLimit    uint64
}

// Status is a point-in-time view of the continuous ingester.
type Status struct {
	State         string  `json:"state"`
	Checkpoint    *uint64 `json:"checkpoint,omitempty"`
	LastFinalized uint64  `json:"last_finalized"`
	RetryQueue    int     `json:"retry_queue"`
}

// Service catches up from the checkpoint, then follows new and finalized heads while a
// scheduled gap detector repairs skipped heights.
type Service struct {
	cfg      Config
	state    stateMachine
	repo     Repository
	catchUp  *catchUp
	live     *live
	backfill *Backfiller
	mirror   BlockMirror
	queue    *retryQueue
	metrics  Metrics
	sleep    clock.SleepFunc
	logger   *zap.Logger
}

func NewService(
	cfg Config,
	importer *Importer,
	heads HeadSource,
	repo Repository,
	retrier Retrier,
	metrics Metrics,
	logger *zap.Logger,
) (*Service, error) {
	if importer == nil || heads == nil || repo == nil || retrier == nil {
		return nil, errors.New("importer, head source, repository and retrier are required")
	}
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.GapSchedule == "" {
		cfg.GapSchedule = defaultGapSchedule
	}
	if cfg.GapLimit == 0 {
		cfg.GapLimit = defaultGapLimit
	}
	if _, err := cron.ParseStandard(cfg.GapSchedule); err != nil {
		return nil, fmt.Errorf("gap schedule %q: %w", cfg.GapSchedule, err)
	}

	logger = logger.Named("ingester")
	queue := newRetryQueue()
	s := &Service{
		cfg:     cfg,
		repo:    repo,
		mirror:  importer.mirror,
		queue:   queue,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
		logger:  logger,
		catchUp: &catchUp{
			importer:    importer,
			heads:       heads,
			repo:        repo,
			queue:       queue,
			metrics:     metrics,
			batchSize:   cfg.BatchSize,
			workerCount: cfg.WorkerCount,
			startHeight: cfg.StartHeight,
			logger:      logger.Named("catchUp"),
		},
		live: &live{
			importer: importer,
			heads:    heads,
			retrier:  retrier,
			queue:    queue,
			metrics:  metrics,
			logger:   logger.Named("live"),
		},
		backfill: NewBackfiller(importer, repo, metrics, cfg.WorkerCount, logger),
	}
	metrics.SetState(StateIdle.String())
	return s, nil
}

// Run blocks until ctx is done or a head subscription cannot be re-established.
func (s *Service) Run(ctx context.Context) error {
	if err := s.transition(StateCatchingUp); err != nil {
		return err
	}
	defer s.shutdown()

	if s.mirror != nil {
		s.mirror.Start(ctx)
		defer s.mirror.Stop()
	}

	committed, err := s.runCatchUp(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if err := s.transition(StateLive); err != nil {
		return err
	}
	stopGaps, err := s.startGapDetector(ctx)
	if err != nil {
		return err
	}
	defer stopGaps()

	if err := s.live.Run(ctx, committed); err != nil {
		return fmt.Errorf("live ingestion: %w", err)
	}
	return nil
}

// runCatchUp retries catch-up until it reaches the finalized head. Recovery is redoing the
// failed batch, which idempotent writes make safe.
func (s *Service) runCatchUp(ctx context.Context) (uint64, error) {
	for {
		committed, err := s.catchUp.Run(ctx)
		if err == nil {
			return committed, nil
		}
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		s.logger.Warn("catch-up failed, backing off", zap.Error(err), zap.Duration("sleep", idleSleepDuration))
		if sleepErr := s.sleep(ctx, idleSleepDuration); sleepErr != nil {
			return 0, sleepErr
		}
	}
}

func (s *Service) startGapDetector(ctx context.Context) (func(), error) {
	logger := cronLogger{s.logger.Named("gaps").Sugar()}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	_, err := c.AddFunc(s.cfg.GapSchedule, func() {
		report, err := s.backfill.Run(ctx, s.cfg.GapLimit)
		if err != nil {
			s.logger.Warn("gap detection failed", zap.Error(err))
			return
		}
		if len(report.Results) > 0 {
			s.logger.Info("gap backfill finished",
				zap.Int("heights", len(report.Results)),
				zap.Int("failed", len(report.Failed())),
			)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule gap detector: %w", err)
	}
	c.Start()
	s.logger.Info("gap detector scheduled", zap.String("schedule", s.cfg.GapSchedule))
	return func() { <-c.Stop().Done() }, nil
}

func (s *Service) transition(next State) error {
	if err := s.state.Transition(next); err != nil {
		return err
	}
	s.metrics.SetState(next.String())
	s.logger.Info("ingestion state changed", zap.Stringer("state", next))
	return nil
}

func (s *Service) shutdown() {
	if err := s.transition(StateStopping); err != nil {
		s.logger.Warn("stop ingester", zap.Error(err))
	}
	if err := s.transition(StateIdle); err != nil {
		s.logger.Warn("stop ingester", zap.Error(err))
	}
}

// Status reports the current state, the stored checkpoint and the retry queue length.
func (s *Service) Status(ctx context.Context) (Status, error) {
	st := Status{
		State:         s.state.Current().String(),
		LastFinalized: s.live.lastFinalized.Load(),
		RetryQueue:    s.queue.Len(),
	}
	checkpoint, ok, err := s.repo.Checkpoint(ctx)
	if err != nil {
		return st, fmt.Errorf("read checkpoint: %w", err)
	}
	if ok {
		st.Checkpoint = &checkpoint
	}
	return st, nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
