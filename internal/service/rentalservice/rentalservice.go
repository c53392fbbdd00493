package rentalservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
)

type Repo interface {
	Grant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Rental, error)
	Extend(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
	ForceGrant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

var ErrInvalidMonths = errors.New("months must be a positive integer")

// Grant reserves the number for the user. Returns domain.ErrNumberBusy when
// another rental already holds it.
func (s *Service) Grant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	if months <= 0 {
		return nil, ErrInvalidMonths
	}
	rental, err := s.repo.Grant(ctx, userID, number, months)
	if err != nil {
		if errors.Is(err, domain.ErrNumberBusy) {
			zap.L().Info("grant rejected, number is busy",
				zap.Int("userID", userID), zap.String("number", number))
		} else if !errors.Is(err, domain.ErrNumberNotFound) {
			zap.L().Error("can't grant rental", zap.Error(err))
		}
		return nil, err
	}
	zap.L().Info("rental granted",
		zap.Int("userID", userID), zap.String("number", number), zap.Int("months", months))
	return rental, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]domain.Rental, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Extend(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	if months <= 0 {
		return nil, ErrInvalidMonths
	}
	rental, err := s.repo.Extend(ctx, userID, number, months)
	if err != nil {
		if !errors.Is(err, domain.ErrRentalNotFound) {
			zap.L().Error("can't extend rental", zap.Error(err))
		}
		return nil, err
	}
	zap.L().Info("rental extended",
		zap.Int("userID", userID), zap.String("number", number), zap.Int("months", months))
	return rental, nil
}

// ForceGrant is the administrative override: it evicts any current holder.
// Authorization happens at the boundary, not here.
func (s *Service) ForceGrant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error) {
	if months <= 0 {
		return nil, ErrInvalidMonths
	}
	rental, err := s.repo.ForceGrant(ctx, userID, number, months)
	if err != nil {
		if !errors.Is(err, domain.ErrNumberNotFound) {
			zap.L().Error("can't force-grant rental", zap.Error(err))
		}
		return nil, err
	}
	zap.L().Info("rental force-granted",
		zap.Int("userID", userID), zap.String("number", number), zap.Int("months", months))
	return rental, nil
}

func (s *Service) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	return s.repo.ReleaseExpired(ctx, now)
}
