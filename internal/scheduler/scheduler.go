package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/sbasnet/pscprep/config"
	"github.com/sbasnet/pscprep/internal/service"
)

// Scheduler drives the periodic batch work: full leaderboard recalculation
// for every active branch, followed by the platform-stats refresh. Branch
// failures are isolated inside RecalculateAll; a stats failure only logs.
type Scheduler struct {
	leaderboardSvc service.LeaderboardService
	statsSvc       service.StatsService
	interval       time.Duration
	stop           chan struct{}
	done           chan struct{}
}

func New(cfg *config.Config, leaderboardSvc service.LeaderboardService, statsSvc service.StatsService) *Scheduler {
	return &Scheduler{
		leaderboardSvc: leaderboardSvc,
		statsSvc:       statsSvc,
		interval:       time.Duration(cfg.Leaderboard.RecalcIntervalMinutes) * time.Minute,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-s.stop:
			return
		}
	}
}

// Tick runs one full batch pass. Exposed so a manual trigger and the ticker
// share one code path.
func (s *Scheduler) Tick() {
	started := time.Now()
	if err := s.leaderboardSvc.RecalculateAll(); err != nil {
		log.Error().Err(err).Msg("Scheduled leaderboard recalculation failed")
	}
	if err := s.statsSvc.Refresh(); err != nil {
		log.Error().Err(err).Msg("Scheduled stats refresh failed")
	}
	log.Info().Dur("elapsed", time.Since(started)).Msg("Scheduled batch pass finished")
}

// Register hooks the scheduler into the fx lifecycle. A zero interval
// disables the loop entirely.
func Register(lc fx.Lifecycle, s *Scheduler) {
	if s.interval <= 0 {
		log.Info().Msg("Leaderboard scheduler disabled by config")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Dur("interval", s.interval).Msg("Leaderboard scheduler starting")
			go s.run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.stop)
			select {
			case <-s.done:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		},
	})
}
