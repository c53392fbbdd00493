package rentalservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadownumbers/numrent/internal/domain"
	rentalrepo "github.com/shadownumbers/numrent/internal/repo/rental-repo"
	"github.com/shadownumbers/numrent/internal/storage"
)

const freeNumber = "+888 741 0385"

func newService(t *testing.T) *Service {
	store := storage.New(filepath.Join(t.TempDir(), "state.json"))
	return New(rentalrepo.New(store))
}

func TestGrant(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.Grant(ctx, 7, freeNumber, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)

	_, err = service.Grant(ctx, 7, freeNumber, -3)
	assert.ErrorIs(t, err, ErrInvalidMonths)

	rental, err := service.Grant(ctx, 7, freeNumber, 3)
	require.NoError(t, err)
	assert.Equal(t, freeNumber, rental.Number)

	_, err = service.Grant(ctx, 8, freeNumber, 1)
	assert.ErrorIs(t, err, domain.ErrNumberBusy)
}

func TestExtend(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.Grant(ctx, 7, freeNumber, 1)
	require.NoError(t, err)

	_, err = service.Extend(ctx, 7, freeNumber, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)

	_, err = service.Extend(ctx, 8, freeNumber, 1)
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)

	rental, err := service.Extend(ctx, 7, freeNumber, 2)
	require.NoError(t, err)
	assert.Equal(t, freeNumber, rental.Number)
}

func TestForceGrant(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.ForceGrant(ctx, 7, freeNumber, 0)
	assert.ErrorIs(t, err, ErrInvalidMonths)

	_, err = service.Grant(ctx, 7, freeNumber, 1)
	require.NoError(t, err)

	// The override evicts user 7 and hands the number to user 9.
	_, err = service.ForceGrant(ctx, 9, freeNumber, 1)
	require.NoError(t, err)

	old, err := service.List(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, old)

	current, err := service.List(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, current, 1)
}
