package userrepo

import (
	"context"
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

// Upsert creates the user on first contact and refreshes username and
// last-seen on every subsequent one.
func (r *Repository) Upsert(ctx context.Context, userID int, username string) (*domain.User, error) {
	now := domain.NewTime(time.Now().UTC())
	var user domain.User
	err := r.store.Update(ctx, func(state *domain.State) error {
		key := domain.UserKey(userID)
		existing, ok := state.Users[key]
		if !ok {
			existing = domain.User{UserID: userID, FirstSeen: now}
		}
		if username != "" {
			existing.Username = username
		}
		existing.LastSeen = now
		state.Users[key] = existing
		user = existing
		return nil
	})
	if err != nil {
		zap.L().Error("can't upsert user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Get(ctx context.Context, userID int) (*domain.User, error) {
	var found *domain.User
	err := r.store.View(ctx, func(state *domain.State) error {
		if user, ok := state.Users[domain.UserKey(userID)]; ok {
			found = &user
		}
		return nil
	})
	if err != nil {
		zap.L().Error("can't get user", zap.Error(err))
		return nil, err
	}
	return found, nil
}
