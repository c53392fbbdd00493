// Package poller settles pending payments in the background: the user does
// not have to press "I paid" for a settled invoice to take effect.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shadownumbers/numrent/internal/config"
	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/service/paymentservice"
)

var inFlight sync.Map

type Payments interface {
	ListPending(ctx context.Context) (map[string]domain.Payment, error)
	Settle(ctx context.Context, paymentID string) (*domain.Rental, error)
}

type Service struct {
	payments     Payments
	workerPool   WorkerPoolI
	pollInterval time.Duration
}

func New(cfg *config.Config, payments Payments) *Service {
	return &Service{
		payments:     payments,
		workerPool:   NewWorkerPool(10),
		pollInterval: cfg.PollInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settlement poller started", zap.Duration("interval", s.pollInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping poller")
			return
		case <-ticker.C:
			s.processPayments(ctx)
		}
	}
}

func (s *Service) processPayments(ctx context.Context) {
	pending, err := s.payments.ListPending(ctx)
	if err != nil {
		zap.L().Error("Failed to fetch pending payments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for paymentID, payment := range pending {
		if payment.InvoiceID == 0 {
			continue
		}
		paymentID := paymentID

		if _, loaded := inFlight.LoadOrStore(paymentID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inFlight.Delete(paymentID)
				return s.handlePayment(ctx, paymentID)
			})
			if err != nil {
				inFlight.Delete(paymentID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing pending payments", zap.Error(err))
	}
}

// handlePayment settles one payment. An unpaid invoice is the normal case
// and not an error; a busy number is logged and left for the manual flow to
// surface to the user.
func (s *Service) handlePayment(ctx context.Context, paymentID string) error {
	_, err := s.payments.Settle(ctx, paymentID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, paymentservice.ErrInvoiceUnpaid):
		return nil
	case errors.Is(err, paymentservice.ErrAlreadyPaid):
		return nil
	case errors.Is(err, domain.ErrNumberBusy):
		zap.L().Warn("Settled invoice lost the number", zap.String("paymentID", paymentID))
		return nil
	default:
		return err
	}
}
