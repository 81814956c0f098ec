package repository

import (
	"context"

	"github.com/taskdesk/taskdesk/domain"
)

type UserRepository interface {
	Create(ctx context.Context, input domain.UserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
