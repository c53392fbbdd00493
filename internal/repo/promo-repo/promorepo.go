package promorepo

import (
	"context"
	"strings"
	"time"

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

// Add stores a new code normalized to uppercase. Collisions are checked
// against every existing entry, active or not.
func (r *Repository) Add(ctx context.Context, code string, percent int, createdBy int) (*domain.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var promo *domain.PromoCode
	err := r.store.Update(ctx, func(state *domain.State) error {
		for _, p := range state.Promocodes {
			if p.Code == normalized {
				return domain.ErrPromoExists
			}
		}
		created := domain.PromoCode{
			Code:      normalized,
			Percent:   percent,
			Active:    true,
			CreatedAt: domain.NewTime(time.Now().UTC()),
			CreatedBy: createdBy,
		}
		state.Promocodes = append(state.Promocodes, created)
		promo = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return promo, nil
}

// Get matches case-insensitively and returns nil for inactive entries: a
// deactivated code looks exactly like a nonexistent one to callers.
func (r *Repository) Get(ctx context.Context, code string) (*domain.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var found *domain.PromoCode
	err := r.store.View(ctx, func(state *domain.State) error {
		for i := range state.Promocodes {
			if state.Promocodes[i].Code == normalized && state.Promocodes[i].Active {
				promo := state.Promocodes[i]
				found = &promo
				return nil
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't get promo code", zap.Error(err))
		return nil, err
	}
	return found, nil
}

// Deactivate soft-deletes the code. Reports whether a match was found.
func (r *Repository) Deactivate(ctx context.Context, code string) (bool, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	found := false
	err := r.store.Update(ctx, func(state *domain.State) error {
		for i := range state.Promocodes {
			if state.Promocodes[i].Code == normalized {
				state.Promocodes[i].Active = false
				found = true
				break
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't deactivate promo code", zap.Error(err))
		return false, err
	}
	return found, nil
}

// List returns every code including deactivated ones.
func (r *Repository) List(ctx context.Context) ([]domain.PromoCode, error) {
	var promos []domain.PromoCode
	err := r.store.View(ctx, func(state *domain.State) error {
		promos = append(promos, state.Promocodes...)
		return nil
	})
	if err != nil {
		zap.L().Error("can't list promo codes", zap.Error(err))
		return nil, err
	}
	return promos, nil
}
