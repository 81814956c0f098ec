package kv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
)

func openTestStore(t *testing.T) *kvstore.Store {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "repo.db"), "taskdesk-test", "1")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestStore(t))

	user, err := repo.Create(ctx, domain.UserInput{
		Username: "  demo  ",
		Email:    "demo@example.com",
		FullName: "Demo User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "demo", user.Username, "username is trimmed")
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	byName, err := repo.FindByUsername(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserCreateEmptyUsername(t *testing.T) {
	repo := NewUserRepository(openTestStore(t))

	_, err := repo.Create(context.Background(), domain.UserInput{Username: "   "})
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestStore(t))

	_, err := repo.Create(ctx, domain.UserInput{Username: "demo"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.UserInput{Username: "demo"})
	require.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// different case is a different user
	_, err = repo.Create(ctx, domain.UserInput{Username: "Demo"})
	require.NoError(t, err)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2, "the duplicate was not stored")
}

func TestUserFindAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestStore(t))

	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := repo.Create(ctx, domain.UserInput{Username: name})
		require.NoError(t, err)
	}

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alpha", users[0].Username)
	assert.Equal(t, "beta", users[1].Username)
	assert.Equal(t, "gamma", users[2].Username)
}

func TestUserFindMisses(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestStore(t))

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByUsername(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryReloadsPersistedData(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	first := NewUserRepository(store, WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	created, err := first.Create(ctx, domain.UserInput{Username: "demo"})
	require.NoError(t, err)

	// a second repository over the same store sees the persisted user
	second := NewUserRepository(store)
	found, err := second.FindByUsername(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, found.CreatedAt.Equal(created.CreatedAt))
}
