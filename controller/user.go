package controller

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/repository"
)

// UserController orchestrates registration and the login session. The session
// lives on the controller instance, never in storage: restarting the process
// logs everyone out.
type UserController struct {
	users   repository.UserRepository
	session *domain.Session
	logger  *zap.Logger
}

func NewUserController(users repository.UserRepository, session *domain.Session, logger *zap.Logger) *UserController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if session == nil {
		session = domain.NewSession()
	}
	return &UserController{
		users:   users,
		session: session,
		logger:  logger,
	}
}

// Login looks the user up by username and makes them the active session user.
func (c *UserController) Login(ctx context.Context, username string) Result {
	username = strings.TrimSpace(username)
	if username == "" {
		return NewFailure(domain.NewError(domain.ErrCodeInvalid, "username is required"))
	}

	user, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		c.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		return NewFailure(err)
	}

	c.session.Set(user.ID)
	c.logger.Info("user logged in", zap.String("user_id", user.ID))
	return NewSuccess(user, fmt.Sprintf("Welcome back, %s!", user.DisplayName()))
}

// Logout clears the session. It always succeeds, even when nobody is logged in.
func (c *UserController) Logout(ctx context.Context) Result {
	c.session.Clear()
	return NewSuccess(nil, "Logged out")
}

// Register creates a new user. It does not log the new user in.
func (c *UserController) Register(ctx context.Context, input domain.UserInput) Result {
	user, err := c.users.Create(ctx, input)
	if err != nil {
		c.logger.Warn("registration failed", zap.String("username", input.Username), zap.Error(err))
		return NewFailure(err)
	}
	return NewSuccess(user, fmt.Sprintf("User %s registered", user.Username))
}

// GetAllUsers returns every registered user in registration order.
func (c *UserController) GetAllUsers(ctx context.Context) Result {
	users, err := c.users.FindAll(ctx)
	if err != nil {
		return NewFailure(err)
	}
	return NewList(users, len(users), "")
}

// CurrentUser resolves the active session user.
func (c *UserController) CurrentUser(ctx context.Context) Result {
	id := c.session.UserID()
	if id == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}
	user, err := c.users.FindByID(ctx, id)
	if err != nil {
		return NewFailure(err)
	}
	return NewSuccess(user, "")
}
