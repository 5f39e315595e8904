package warmup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule re-warms every 15 minutes (seconds field included).
const DefaultSchedule = "0 */15 * * * *"

// Warmer fills the filter cache. Implemented by service.CatalogService.
type Warmer interface {
	Warm(ctx context.Context) (int, error)
}

// Scheduler keeps the filter cache populated across TTL expiry.
type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	log     *zap.Logger
	timeout time.Duration
}

func NewScheduler(warmer Warmer, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		warmer:  warmer,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// Start runs one warm pass immediately and then follows schedule.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return fmt.Errorf("schedule cache warmup %q: %w", schedule, err)
	}

	s.RunOnce()
	s.cron.Start()
	s.log.Info("cache warmup scheduled", zap.String("schedule", schedule))
	return nil
}

// RunOnce performs a single warm pass.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.warmer.Warm(ctx)
	if err != nil {
		s.log.Warn("cache warmup failed", zap.Int("warmed", n), zap.Error(err))
		return
	}
	s.log.Debug("cache warmed", zap.Int("entries", n), zap.Duration("took", time.Since(start)))
}

// Stop halts the schedule and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
