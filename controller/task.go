package controller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/repository"
)

// AssigneeSelf is the sentinel that resolves to the current session user.
const AssigneeSelf = "self"

// DefaultDueSoonDays is the forward window used when a caller passes no
// explicit window.
const DefaultDueSoonDays = 3

// CreateTaskRequest carries the view-layer fields for a new task. Assignee is
// either AssigneeSelf (or empty) for the session user, or an explicit user id.
type CreateTaskRequest struct {
	Title       string
	Description string
	Priority    domain.Priority
	Category    domain.Category
	Assignee    string
	DueDate     *time.Time
}

// TaskController orchestrates the task lifecycle scoped to the session user.
// Every operation that reads or mutates a task enforces ownership: tasks
// belonging to other users are invisible and untouchable.
type TaskController struct {
	tasks   repository.TaskRepository
	session *domain.Session
	logger  *zap.Logger
	now     func() time.Time
}

// TaskOption customizes a TaskController.
type TaskOption func(*TaskController)

// WithClock overrides the time source used for overdue and due-soon queries.
func WithClock(now func() time.Time) TaskOption {
	return func(c *TaskController) {
		if now != nil {
			c.now = now
		}
	}
}

func NewTaskController(tasks repository.TaskRepository, session *domain.Session, logger *zap.Logger, opts ...TaskOption) *TaskController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if session == nil {
		session = domain.NewSession()
	}
	c := &TaskController{
		tasks:   tasks,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCurrentUser scopes subsequent calls to the given user. The id is not
// validated against the user repository; that is the caller's responsibility.
func (c *TaskController) SetCurrentUser(userID string) {
	c.session.Set(userID)
}

// CreateTask creates a task owned by the resolved assignee.
func (c *TaskController) CreateTask(ctx context.Context, req CreateTaskRequest) Result {
	current := c.session.UserID()
	if current == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}

	owner := req.Assignee
	if owner == "" || owner == AssigneeSelf {
		owner = current
	}

	task, err := c.tasks.Create(ctx, domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		OwnerID:     owner,
		DueDate:     req.DueDate,
	})
	if err != nil {
		c.logger.Warn("task creation failed", zap.Error(err))
		return NewFailure(err)
	}
	return NewSuccess(task, "Task created")
}

// ToggleTaskStatus flips a task between pending and completed.
func (c *TaskController) ToggleTaskStatus(ctx context.Context, id string) Result {
	task, err := c.ownedTask(ctx, id)
	if err != nil {
		return NewFailure(err)
	}

	status := task.Status.Toggle()
	updated, err := c.tasks.Update(ctx, id, domain.TaskPatch{Status: &status})
	if err != nil {
		return NewFailure(err)
	}

	message := "Task reopened"
	if updated.IsCompleted() {
		message = "Task completed"
	}
	return NewSuccess(updated, message)
}

// UpdateTask applies a partial update to one of the current user's tasks.
func (c *TaskController) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) Result {
	if _, err := c.ownedTask(ctx, id); err != nil {
		return NewFailure(err)
	}
	updated, err := c.tasks.Update(ctx, id, patch)
	if err != nil {
		return NewFailure(err)
	}
	return NewSuccess(updated, "Task updated")
}

// DeleteTask removes one of the current user's tasks.
func (c *TaskController) DeleteTask(ctx context.Context, id string) Result {
	if _, err := c.ownedTask(ctx, id); err != nil {
		return NewFailure(err)
	}
	if err := c.tasks.Delete(ctx, id); err != nil {
		return NewFailure(err)
	}
	return NewSuccess(nil, "Task deleted")
}

// GetAllTasks returns the current user's tasks in creation order.
func (c *TaskController) GetAllTasks(ctx context.Context) Result {
	current := c.session.UserID()
	if current == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}
	tasks, err := c.tasks.FindByOwner(ctx, current)
	if err != nil {
		return NewFailure(err)
	}
	return NewList(tasks, len(tasks), "")
}

// GetOverdueTasks returns the current user's unfinished tasks whose due date
// has passed.
func (c *TaskController) GetOverdueTasks(ctx context.Context) Result {
	current := c.session.UserID()
	if current == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}
	overdue, err := c.tasks.FindOverdue(ctx, c.now())
	if err != nil {
		return NewFailure(err)
	}
	mine := ownedBy(overdue, current)
	return NewList(mine, len(mine), "")
}

// GetTasksDueSoon returns the current user's unfinished tasks due within the
// window. A non-positive window falls back to DefaultDueSoonDays.
func (c *TaskController) GetTasksDueSoon(ctx context.Context, windowDays int) Result {
	current := c.session.UserID()
	if current == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}
	if windowDays <= 0 {
		windowDays = DefaultDueSoonDays
	}
	due, err := c.tasks.FindDueSoon(ctx, c.now(), windowDays)
	if err != nil {
		return NewFailure(err)
	}
	mine := ownedBy(due, current)
	return NewList(mine, len(mine), "")
}

// GetCategoryStats aggregates completion counts per category over the current
// user's full task set. Categories without tasks are omitted.
func (c *TaskController) GetCategoryStats(ctx context.Context) Result {
	current := c.session.UserID()
	if current == "" {
		return NewFailure(domain.ErrNoCurrentUser)
	}
	tasks, err := c.tasks.FindByOwner(ctx, current)
	if err != nil {
		return NewFailure(err)
	}
	stats := domain.ComputeCategoryStats(tasks)
	return NewList(stats, len(stats), "")
}

// ownedTask fetches a task and verifies it belongs to the session user.
func (c *TaskController) ownedTask(ctx context.Context, id string) (*domain.Task, error) {
	current := c.session.UserID()
	if current == "" {
		return nil, domain.ErrNoCurrentUser
	}
	task, err := c.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != current {
		c.logger.Warn("ownership violation",
			zap.String("task_id", id),
			zap.String("owner_id", task.OwnerID),
			zap.String("user_id", current))
		return nil, domain.ErrTaskForbidden
	}
	return task, nil
}

func ownedBy(tasks []domain.Task, ownerID string) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].OwnerID == ownerID {
			out = append(out, tasks[i])
		}
	}
	return out
}
