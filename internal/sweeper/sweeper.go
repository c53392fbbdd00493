// Package sweeper releases expired rentals back to the catalog on a fixed
// interval. It is the only path by which a busy number returns to free
// without an explicit release.
package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Ledger interface {
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

type Service struct {
	ledger   Ledger
	interval time.Duration
}

func New(ledger Ledger, interval time.Duration) *Service {
	return &Service{
		ledger:   ledger,
		interval: interval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Expiry sweeper started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep never lets an error escape: a failed tick is retried naturally by
// the next one.
func (s *Service) sweep(ctx context.Context) {
	released, err := s.ledger.ReleaseExpired(ctx, time.Now().UTC())
	if err != nil {
		zap.L().Error("Failed to release expired rentals", zap.Error(err))
		return
	}
	if released > 0 {
		zap.L().Info("Released expired rentals", zap.Int("count", released))
	}
}
