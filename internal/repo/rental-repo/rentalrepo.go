package rentalrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/storage"
)

// A rental month is a fixed 30 days, not calendar-accurate.
const rentalMonth = 30 * 24 * time.Hour

type Repository struct {
	store *storage.Store
}

func New(store *storage.Store) *Repository {
	return &Repository{store: store}
}

// Grant reserves a free number for the user. The busy check and the status
// flip happen inside one store transaction, so two racing grants for the
// same number cannot both succeed.
func (r *Repository) Grant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	var rental *domain.Rental
	err := r.store.Update(ctx, func(state *domain.State) error {
		record := findNumber(state, number)
		if record == nil {
			return domain.ErrNumberNotFound
		}
		if record.Status == domain.StatusBusy {
			return domain.ErrNumberBusy
		}
		record.Status = domain.StatusBusy
		rental = appendRental(state, userID, number, months)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// ListByUser returns the user's rentals in the order they were granted.
func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Rental, error) {
	var rentals []domain.Rental
	err := r.store.View(ctx, func(state *domain.State) error {
		rentals = append(rentals, state.Rentals[domain.UserKey(userID)]...)
		return nil
	})
	if err != nil {
		zap.L().Error("can't list rentals", zap.Error(err))
		return nil, err
	}
	return rentals, nil
}

// Extend adds months to the user's own rental of the number. Rentals held
// by other users are invisible here.
func (r *Repository) Extend(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	var rental *domain.Rental
	err := r.store.Update(ctx, func(state *domain.State) error {
		rentals := state.Rentals[domain.UserKey(userID)]
		for i := range rentals {
			if rentals[i].Number == number {
				rentals[i].Until = domain.NewTime(rentals[i].Until.Add(time.Duration(months) * rentalMonth))
				updated := rentals[i]
				rental = &updated
				return nil
			}
		}
		return domain.ErrRentalNotFound
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// ForceGrant assigns the number to the user unconditionally, evicting any
// current holder. There is no busy rejection on this path.
func (r *Repository) ForceGrant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	var rental *domain.Rental
	err := r.store.Update(ctx, func(state *domain.State) error {
		record := findNumber(state, number)
		if record == nil {
			return domain.ErrNumberNotFound
		}
		for key, rentals := range state.Rentals {
			remaining := rentals[:0]
			for _, rent := range rentals {
				if rent.Number != number {
					remaining = append(remaining, rent)
				}
			}
			state.Rentals[key] = remaining
		}
		record.Status = domain.StatusBusy
		rental = appendRental(state, userID, number, months)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// ReleaseExpired removes every rental with until <= now, flips the released
// numbers back to free and persists once. Returns how many were released.
func (r *Repository) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	released := 0
	err := r.store.Update(ctx, func(state *domain.State) error {
		for key, rentals := range state.Rentals {
			remaining := make([]domain.Rental, 0, len(rentals))
			for _, rent := range rentals {
				if rent.Until.After(now) {
					remaining = append(remaining, rent)
					continue
				}
				released++
				if record := findNumber(state, rent.Number); record != nil {
					record.Status = domain.StatusFree
				}
			}
			state.Rentals[key] = remaining
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't release expired rentals", zap.Error(err))
		return 0, err
	}
	return released, nil
}

func findNumber(state *domain.State, number string) *domain.NumberRecord {
	for i := range state.Numbers {
		if state.Numbers[i].Number == number {
			return &state.Numbers[i]
		}
	}
	return nil
}

func appendRental(state *domain.State, userID int, number string, months int) *domain.Rental {
	rental := domain.Rental{
		Number: number,
		Until:  domain.NewTime(time.Now().UTC().Add(time.Duration(months) * rentalMonth)),
	}
	key := domain.UserKey(userID)
	state.Rentals[key] = append(state.Rentals[key], rental)
	return &rental
}
