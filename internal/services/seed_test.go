package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/repository/kv"
)

func TestSeedDemoUsersOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	users := kv.NewUserRepository(openTestStore(t))

	require.NoError(t, SeedDemoUsers(ctx, users, nil))

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "demo", all[0].Username)
	assert.Equal(t, "john", all[1].Username)
}

func TestSeedDemoUsersSkipsExistingData(t *testing.T) {
	ctx := context.Background()
	users := kv.NewUserRepository(openTestStore(t))

	_, err := users.Create(ctx, domain.UserInput{Username: "existing"})
	require.NoError(t, err)

	require.NoError(t, SeedDemoUsers(ctx, users, nil))

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "seeding never touches an existing dataset")
}
