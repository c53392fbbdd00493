package userservice

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userrepo "github.com/shadownumbers/numrent/internal/repo/user-repo"
	"github.com/shadownumbers/numrent/internal/storage"
)

func newService(t *testing.T) *Service {
	store := storage.New(filepath.Join(t.TempDir(), "state.json"))
	return New(userrepo.New(store))
}

func TestIdentify(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	user, err := service.Identify(ctx, 7, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, user.UserID)
	assert.Equal(t, "alice", user.Username)

	user, err = service.Identify(ctx, 7, "alice_new")
	require.NoError(t, err)
	assert.Equal(t, "alice_new", user.Username)

	stored, err := service.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice_new", stored.Username)
}
