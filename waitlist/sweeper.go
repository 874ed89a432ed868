package waitlist

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// sweepTarget is what the sweeper periodically invokes
type sweepTarget interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Sweeper periodically removes expired pending entries,
// it runs alongside the http server in the serve process
type Sweeper struct {
	log      *zap.Logger
	target   sweepTarget
	interval time.Duration
}

func NewSweeper(log *zap.Logger, target sweepTarget, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		log:      log,
		target:   target,
		interval: interval,
	}
}

// Start launches the sweep loop, it runs until the context is cancelled
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Info("expiry sweep scheduled", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("expiry sweep stopped")
			return
		case <-ticker.C:
			removed, err := s.target.CleanupExpired(ctx)
			if err != nil {
				s.log.Error("scheduled sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.log.Info("scheduled sweep removed expired entries", zap.Int64("removed", removed))
			}
		}
	}
}
