// Package jobs runs the periodic housekeeping of the storefront
package jobs

import (
	"context"
	"time"

	"go-storefront/metrics"
	"go-storefront/middleware"
	"go-storefront/repository"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	cleanupTimeout = time.Minute
	limiterIdle    = 10 * time.Minute
)

// Cleaner removes expired sessions and tokens and forgets idle clients
// of the rate limiter.
type Cleaner struct {
	Store   *repository.Store
	Limiter *middleware.RateLimiter
	now     func() time.Time
}

func NewCleaner(store *repository.Store, limiter *middleware.RateLimiter) *Cleaner {
	return &Cleaner{Store: store, Limiter: limiter, now: time.Now}
}

// Run performs one cleanup pass. A failing step is logged and does not
// stop the others.
func (c *Cleaner) Run(ctx context.Context) {
	now := c.now()
	logger := log.With().Str("component", "cleanup").Logger()

	steps := []struct {
		kind string
		fn   func(context.Context, time.Time) (int64, error)
	}{
		{"sessions", c.Store.Sessions.DeleteExpired},
		{"verify_tokens", c.Store.VerifyTokens.DeleteExpired},
		{"reset_tokens", c.Store.ResetTokens.DeleteExpired},
	}
	for _, step := range steps {
		removed, err := step.fn(ctx, now)
		metrics.RecordCleanup(step.kind, removed, err)
		if err != nil {
			logger.Error().Err(err).Str("kind", step.kind).Msg("cleanup failed")
			continue
		}
		if removed > 0 {
			logger.Info().Str("kind", step.kind).Int64("removed", removed).Msg("expired documents removed")
		}
	}

	if c.Limiter != nil {
		if n := c.Limiter.Cleanup(limiterIdle); n > 0 {
			logger.Debug().Int("removed", n).Msg("idle rate limit entries removed")
		}
	}
}

// Schedule starts a scheduler running the cleaner every interval. The
// caller shuts it down.
func Schedule(c *Cleaner, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
			defer cancel()
			c.Run(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("cleanup"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}
