package kv

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/internal/infrastructure/kvstore"
	"github.com/taskdesk/taskdesk/repository"
)

type userRepository struct {
	store    *kvstore.Store
	settings settings

	mu    sync.Mutex
	users []domain.User
}

// NewUserRepository loads the persisted user collection and serves it from
// memory. An unreadable or missing collection starts the repository empty.
func NewUserRepository(store *kvstore.Store, opts ...Option) repository.UserRepository {
	r := &userRepository{
		store:    store,
		settings: applyOptions(opts),
	}
	if raw, err := store.Get(kvstore.CollectionUsers); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &r.users)
	}
	return r
}

func (r *userRepository) Create(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	input.Normalize()
	if input.Username == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "username is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Username == input.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	user := domain.User{
		ID:        r.settings.newID(),
		Username:  input.Username,
		Email:     input.Email,
		FullName:  input.FullName,
		CreatedAt: r.settings.now(),
	}

	next := append(append([]domain.User(nil), r.users...), user)
	if err := r.persist(next); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.User(nil), r.users...), nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Username == username {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// persist writes the full collection and only then swaps the in-memory view.
func (r *userRepository) persist(users []domain.User) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "encode users", err)
	}
	if err := r.store.Set(kvstore.CollectionUsers, payload); err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "persist users", err)
	}
	r.users = users
	return nil
}
