package repository

import (
	"context"
	"time"

	"github.com/taskdesk/taskdesk/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error)
	FindOverdue(ctx context.Context, now time.Time) ([]domain.Task, error)
	FindDueSoon(ctx context.Context, now time.Time, windowDays int) ([]domain.Task, error)
}
