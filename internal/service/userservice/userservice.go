package userservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
)

type Repo interface {
	Upsert(ctx context.Context, userID int, username string) (*domain.User, error)
	Get(ctx context.Context, userID int) (*domain.User, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Identify registers the user on first contact and refreshes last-seen on
// every later one.
func (s *Service) Identify(ctx context.Context, userID int, username string) (*domain.User, error) {
	user, err := s.repo.Upsert(ctx, userID, username)
	if err != nil {
		zap.L().Error("failed to identify user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, userID int) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}
