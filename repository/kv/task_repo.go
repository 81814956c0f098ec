package kv

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
	"github.com/taskdesk/taskdesk/repository"
)

type taskRepository struct {
	store    *kvstore.Store
	users    repository.UserRepository
	settings settings

	mu    sync.Mutex
	tasks []domain.Task
}

// NewTaskRepository loads the persisted task collection and serves it from
// memory. The user repository is consulted at creation time to enforce that
// every task references an existing owner.
func NewTaskRepository(store *kvstore.Store, users repository.UserRepository, opts ...Option) repository.TaskRepository {
	r := &taskRepository{
		store:    store,
		users:    users,
		settings: applyOptions(opts),
	}
	if raw, err := store.Get(kvstore.CollectionTasks); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &r.tasks)
	}
	return r
}

func (r *taskRepository) Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if input.OwnerID == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "owner is required")
	}
	if _, err := r.users.FindByID(ctx, input.OwnerID); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "owner does not exist", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.settings.now()
	task := domain.Task{
		ID:          r.settings.newID(),
		OwnerID:     input.OwnerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.StatusPending,
		Priority:    domain.NormalizePriority(input.Priority),
		Category:    domain.NormalizeCategory(input.Category),
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := append(append([]domain.Task(nil), r.tasks...), task)
	if err := r.persist(next); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	next := append([]domain.Task(nil), r.tasks...)
	task := &next[idx]

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown status")
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown priority")
		}
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "unknown category")
		}
		task.Category = *patch.Category
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	task.UpdatedAt = r.settings.now()

	if err := r.persist(next); err != nil {
		return nil, err
	}
	updated := *task
	return &updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrTaskNotFound
	}

	next := append([]domain.Task(nil), r.tasks[:idx]...)
	next = append(next, r.tasks[idx+1:]...)
	return r.persist(next)
}

func (r *taskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Task(nil), r.tasks...), nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		task := r.tasks[idx]
		return &task, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (r *taskRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return r.filter(func(t *domain.Task) bool {
		return t.OwnerID == ownerID
	})
}

func (r *taskRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Task, error) {
	return r.filter(func(t *domain.Task) bool {
		return t.Status == status
	})
}

func (r *taskRepository) FindOverdue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	return r.filter(func(t *domain.Task) bool {
		return t.IsOverdue(now)
	})
}

func (r *taskRepository) FindDueSoon(ctx context.Context, now time.Time, windowDays int) ([]domain.Task, error) {
	window := time.Duration(windowDays) * 24 * time.Hour
	return r.filter(func(t *domain.Task) bool {
		return t.IsDueSoon(now, window)
	})
}

// filter returns matching tasks in insertion order.
func (r *taskRepository) filter(match func(*domain.Task) bool) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Task, 0, len(r.tasks))
	for i := range r.tasks {
		if match(&r.tasks[i]) {
			out = append(out, r.tasks[i])
		}
	}
	return out, nil
}

func (r *taskRepository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection and only then swaps the in-memory view.
func (r *taskRepository) persist(tasks []domain.Task) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "encode tasks", err)
	}
	if err := r.store.Set(kvstore.CollectionTasks, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "persist tasks", err)
	}
	r.tasks = tasks
	return nil
}
