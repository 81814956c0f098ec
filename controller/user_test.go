package controller

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
	"github.com/taskdesk/taskdesk/repository"
	"github.com/taskdesk/taskdesk/repository/kv"
)

func newUserFixture(t *testing.T) (*UserController, repository.UserRepository, *domain.Session) {
	t.Helper()
	store, err := kvstore.Open(filepath.Join(t.TempDir(), "ctl.db"), "taskdesk-test", "1")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	users := kv.NewUserRepository(store)
	session := domain.NewSession()
	return NewUserController(users, session, nil), users, session
}

func TestLoginUnknownUser(t *testing.T) {
	ctl, _, session := newUserFixture(t)

	res := ctl.Login(context.Background(), "ghost")
	assert.False(t, res.Success)
	assert.Equal(t, "user not found", res.Error)
	assert.False(t, session.Active())
}

func TestLoginSetsSession(t *testing.T) {
	ctx := context.Background()
	ctl, users, session := newUserFixture(t)

	created, err := users.Create(ctx, domain.UserInput{Username: "demo", FullName: "Demo User"})
	require.NoError(t, err)

	res := ctl.Login(ctx, "demo")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, created.ID, session.UserID())
	assert.Contains(t, res.Message, "Demo User")

	user := res.Data.(*domain.User)
	assert.Equal(t, created.ID, user.ID)
}

func TestLoginEmptyUsername(t *testing.T) {
	ctl, _, _ := newUserFixture(t)

	res := ctl.Login(context.Background(), "   ")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	ctl, users, session := newUserFixture(t)

	res := ctl.Logout(ctx)
	assert.True(t, res.Success, "logging out while logged out still succeeds")

	_, err := users.Create(ctx, domain.UserInput{Username: "demo"})
	require.NoError(t, err)
	require.True(t, ctl.Login(ctx, "demo").Success)

	res = ctl.Logout(ctx)
	assert.True(t, res.Success)
	assert.False(t, session.Active())
}

func TestRegisterDoesNotAutoLogin(t *testing.T) {
	ctl, _, session := newUserFixture(t)

	res := ctl.Register(context.Background(), domain.UserInput{Username: "fresh"})
	require.True(t, res.Success, res.Error)
	assert.False(t, session.Active())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	ctl, _, _ := newUserFixture(t)

	require.True(t, ctl.Register(ctx, domain.UserInput{Username: "demo"}).Success)

	res := ctl.Register(ctx, domain.UserInput{Username: "demo"})
	assert.False(t, res.Success)
	assert.Equal(t, "username already exists", res.Error)

	list := ctl.GetAllUsers(ctx)
	require.True(t, list.Success)
	require.NotNil(t, list.Count)
	assert.Equal(t, 1, *list.Count)
}

func TestGetAllUsersCount(t *testing.T) {
	ctx := context.Background()
	ctl, users, _ := newUserFixture(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := users.Create(ctx, domain.UserInput{Username: name})
		require.NoError(t, err)
	}

	res := ctl.GetAllUsers(ctx)
	require.True(t, res.Success)
	require.NotNil(t, res.Count)
	assert.Equal(t, 3, *res.Count)
	assert.Len(t, res.Data.([]domain.User), 3)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	ctl, users, _ := newUserFixture(t)

	res := ctl.CurrentUser(ctx)
	assert.False(t, res.Success)

	_, err := users.Create(ctx, domain.UserInput{Username: "demo"})
	require.NoError(t, err)
	require.True(t, ctl.Login(ctx, "demo").Success)

	res = ctl.CurrentUser(ctx)
	require.True(t, res.Success)
	assert.Equal(t, "demo", res.Data.(*domain.User).Username)
}
