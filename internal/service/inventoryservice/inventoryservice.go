package inventoryservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
)

type Repo interface {
	List(ctx context.Context, category domain.Category) ([]domain.NumberRecord, error)
	Get(ctx context.Context, number string) (*domain.NumberRecord, error)
	SetStatus(ctx context.Context, number string, status domain.NumberStatus) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{repo: repo}
}

var ErrInvalidDuration = errors.New("unsupported rental duration")

// Rental terms offered by the storefront, in months.
var allowedMonths = map[int]bool{1: true, 3: true, 6: true, 12: true}

func ValidMonths(months int) bool {
	return allowedMonths[months]
}

func (s *Service) List(ctx context.Context, category domain.Category) ([]domain.NumberRecord, error) {
	numbers, err := s.repo.List(ctx, category)
	if err != nil {
		zap.L().Error("failed to list numbers", zap.Error(err))
		return nil, err
	}
	return numbers, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.NumberRecord, error) {
	record, err := s.repo.Get(ctx, number)
	if err != nil {
		zap.L().Error("failed to get number", zap.Error(err))
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNumberNotFound
	}
	return record, nil
}

// Quote prices a rental of the number for the given term. Busy numbers
// cannot be quoted.
func (s *Service) Quote(ctx context.Context, number string, months int) (float64, error) {
	if !ValidMonths(months) {
		return 0, ErrInvalidDuration
	}
	record, err := s.Get(ctx, number)
	if err != nil {
		return 0, err
	}
	if record.Status == domain.StatusBusy {
		return 0, domain.ErrNumberBusy
	}
	return float64(record.Price * months), nil
}
