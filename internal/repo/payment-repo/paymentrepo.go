package paymentrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/storage"
)

type Repository struct {
	store *storage.Store
}

func New(store *storage.Store) *Repository {
	return &Repository{store: store}
}

// CreatePending stores a payment record under the given id. An existing
// record with the same id is overwritten; callers generate unique ids.
func (r *Repository) CreatePending(ctx context.Context, paymentID string, payment domain.Payment) error {
	err := r.store.Update(ctx, func(state *domain.State) error {
		state.Payments[paymentID] = payment
		return nil
	})
	if err != nil {
		zap.L().Error("can't create pending payment", zap.Error(err))
	}
	return err
}

// Get returns nil without error when the id is unknown.
func (r *Repository) Get(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var found *domain.Payment
	err := r.store.View(ctx, func(state *domain.State) error {
		if payment, ok := state.Payments[paymentID]; ok {
			found = &payment
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't get payment", zap.Error(err))
		return nil, err
	}
	return found, nil
}

// SetStatus updates the payment status and, when invoiceID is non-zero, the
// external invoice reference. Unknown ids are silently ignored.
func (r *Repository) SetStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, invoiceID int64) error {
	err := r.store.Update(ctx, func(state *domain.State) error {
		payment, ok := state.Payments[paymentID]
		if !ok {
			return nil
		}
		payment.Status = status
		if invoiceID != 0 {
			payment.InvoiceID = invoiceID
		}
		state.Payments[paymentID] = payment
		return nil
	})
	if err != nil {
		zap.L().Error("can't set payment status", zap.Error(err))
	}
	return err
}

// ListPending returns all payments still awaiting settlement, keyed by
// payment id.
func (r *Repository) ListPending(ctx context.Context) (map[string]domain.Payment, error) {
	pending := make(map[string]domain.Payment)
	err := r.store.View(ctx, func(state *domain.State) error {
		for id, payment := range state.Payments {
			if payment.Status == domain.PaymentPending {
				pending[id] = payment
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't list pending payments", zap.Error(err))
		return nil, err
	}
	return pending, nil
}
