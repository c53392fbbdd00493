package promorepo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/storage"
)

func newRepo(t *testing.T) *Repository {
	return New(storage.New(filepath.Join(t.TempDir(), "state.json")))
}

func TestAddNormalizesCode(t *testing.T) {
	repo := newRepo(t)

	promo, err := repo.Add(context.Background(), " save20 ", 20, 99)
	require.NoError(t, err)
	assert.Equal(t, "SAVE20", promo.Code)
	assert.Equal(t, 20, promo.Percent)
	assert.True(t, promo.Active)
	assert.Equal(t, 99, promo.CreatedBy)
}

func TestAddDuplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "SAVE20", 20, 99)
	require.NoError(t, err)

	// Case-insensitive collision.
	_, err = repo.Add(ctx, "save20", 30, 99)
	assert.ErrorIs(t, err, domain.ErrPromoExists)
}

func TestAddDuplicateOfInactive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "SAVE20", 20, 99)
	require.NoError(t, err)
	found, err := repo.Deactivate(ctx, "SAVE20")
	require.NoError(t, err)
	require.True(t, found)

	// Deactivated codes still block re-creation.
	_, err = repo.Add(ctx, "save20", 30, 99)
	assert.ErrorIs(t, err, domain.ErrPromoExists)
}

func TestGetCaseInsensitive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "SAVE20", 20, 99)
	require.NoError(t, err)

	lower, err := repo.Get(ctx, "save20")
	require.NoError(t, err)
	require.NotNil(t, lower)
	upper, err := repo.Get(ctx, "SAVE20")
	require.NoError(t, err)
	require.NotNil(t, upper)
	assert.Equal(t, lower.Code, upper.Code)
}

func TestGetInactiveLooksMissing(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "SAVE20", 20, 99)
	require.NoError(t, err)
	_, err = repo.Deactivate(ctx, "SAVE20")
	require.NoError(t, err)

	promo, err := repo.Get(ctx, "save20")
	require.NoError(t, err)
	assert.Nil(t, promo)
}

func TestDeactivateUnknown(t *testing.T) {
	repo := newRepo(t)

	found, err := repo.Deactivate(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListIncludesInactive(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, "SAVE20", 20, 99)
	require.NoError(t, err)
	_, err = repo.Add(ctx, "SALE50", 50, 99)
	require.NoError(t, err)
	_, err = repo.Deactivate(ctx, "SAVE20")
	require.NoError(t, err)

	promos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, promos, 2)
	assert.Equal(t, "SAVE20", promos[0].Code)
	assert.False(t, promos[0].Active)
	assert.True(t, promos[1].Active)
}
