package numberrepo

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

// List returns catalog records in insertion order, optionally filtered by
// category. An empty category returns everything.
func (r *Repository) List(ctx context.Context, category domain.Category) ([]domain.NumberRecord, error) {
	var numbers []domain.NumberRecord
	err := r.store.View(ctx, func(state *domain.State) error {
		for _, n := range state.Numbers {
			if category != "" && n.Category != category {
				continue
			}
			numbers = append(numbers, n)
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't list numbers", zap.Error(err))
		return nil, err
	}
	return numbers, nil
}

// Get finds a record by exact number match. Returns nil without error when
// the number is not in the catalog.
func (r *Repository) Get(ctx context.Context, number string) (*domain.NumberRecord, error) {
	var found *domain.NumberRecord
	err := r.store.View(ctx, func(state *domain.State) error {
		for i := range state.Numbers {
			if state.Numbers[i].Number == number {
				record := state.Numbers[i]
				found = &record
				return nil
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't get number", zap.Error(err))
		return nil, err
	}
	return found, nil
}

func (r *Repository) SetStatus(ctx context.Context, number string, status domain.NumberStatus) error {
	err := r.store.Update(ctx, func(state *domain.State) error {
		for i := range state.Numbers {
			if state.Numbers[i].Number == number {
				state.Numbers[i].Status = status
				break
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't set number status", zap.Error(err))
	}
	return err
}
