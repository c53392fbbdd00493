package promoservice

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
)

type Repo interface {
	Add(ctx context.Context, code string, percent int, createdBy int) (*domain.PromoCode, error)
	Get(ctx context.Context, code string) (*domain.PromoCode, error)
	Deactivate(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domain.PromoCode, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

var (
	ErrInvalidPercent = errors.New("percent must be between 1 and 100")
	ErrEmptyCode      = errors.New("promo code must not be empty")
)

// Add creates an active promo code. Percent is validated before any state
// is touched.
func (s *Service) Add(ctx context.Context, code string, percent int, createdBy int) (*domain.PromoCode, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if percent < 1 || percent > 100 {
		return nil, ErrInvalidPercent
	}
	promo, err := s.repo.Add(ctx, code, percent, createdBy)
	if err != nil {
		if !errors.Is(err, domain.ErrPromoExists) {
			zap.L().Error("can't add promo code", zap.Error(err))
		}
		return nil, err
	}
	zap.L().Info("promo code created",
		zap.String("code", promo.Code), zap.Int("percent", promo.Percent))
	return promo, nil
}

// Get resolves an active code; deactivated and unknown codes are both
// reported as not found.
func (s *Service) Get(ctx context.Context, code string) (*domain.PromoCode, error) {
	promo, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, domain.ErrPromoNotFound
	}
	return promo, nil
}

func (s *Service) Deactivate(ctx context.Context, code string) (bool, error) {
	found, err := s.repo.Deactivate(ctx, code)
	if err != nil {
		return false, err
	}
	if found {
		zap.L().Info("promo code deactivated", zap.String("code", code))
	}
	return found, nil
}

func (s *Service) List(ctx context.Context) ([]domain.PromoCode, error) {
	return s.repo.List(ctx)
}

// ApplyDiscount rounds the discounted price to cents and floors it at one
// currency unit, so a 100% code never produces a free rental.
func ApplyDiscount(price float64, percent int) float64 {
	discounted := price * float64(100-percent) / 100
	rounded := math.Round(discounted*100) / 100
	if rounded < 1 {
		return 1
	}
	return rounded
}
