package jobs

import (
	"context"
	"time"

	"github.com/diwise/api-measurements/internal/pkg/infrastructure/cache"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Warmer is anything that can preload the caches it depends on.
type Warmer interface {
	Warm(ctx context.Context) error
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	warmers   []Warmer
	cache     *cache.Cache

	warmEvery  time.Duration
	purgeEvery time.Duration
	timeout    time.Duration

	log zerolog.Logger
}

func New(logger zerolog.Logger, c *cache.Cache, warmEvery, purgeEvery time.Duration, warmers ...Warmer) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		warmers:    warmers,
		cache:      c,
		warmEvery:  warmEvery,
		purgeEvery: purgeEvery,
		timeout:    2 * time.Minute,
		log:        logger,
	}
}

// Start schedules the warm up and purge jobs. A zero interval disables the job.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.warmEvery > 0 && len(s.warmers) > 0 {
		_, err := s.scheduler.Every(s.warmEvery).SingletonMode().Do(s.warm, ctx)
		if err != nil {
			return err
		}
	}

	if s.purgeEvery > 0 && s.cache != nil {
		_, err := s.scheduler.Every(s.purgeEvery).SingletonMode().WaitForSchedule().Do(s.purge, ctx)
		if err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) warm(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for _, w := range s.warmers {
		if err := w.Warm(ctx); err != nil {
			s.log.Error().Err(err).Msg("cache warm up failed")
		}
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.cache.Purge(ctx); err != nil {
		s.log.Error().Err(err).Msg("cache purge failed")
		return
	}

	s.log.Debug().Msg("purged expired cache entries")
}
