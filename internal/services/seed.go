package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdesk/taskdesk/domain"
	"github.com/taskdesk/taskdesk/repository"
)

// SeedDemoUsers creates two demo accounts when the user collection is empty,
// so a fresh install has someone to log in as. Existing data is never touched.
func SeedDemoUsers(ctx context.Context, users repository.UserRepository, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	existing, err := users.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	demos := []domain.UserInput{
		{Username: "demo", Email: "demo@example.com", FullName: "Demo User"},
		{Username: "john", Email: "john@example.com", FullName: "John Doe"},
	}
	for _, input := range demos {
		if _, err := users.Create(ctx, input); err != nil {
			logger.Warn("demo user seeding failed", zap.String("username", input.Username), zap.Error(err))
			return err
		}
	}
	logger.Info("demo users created", zap.Int("count", len(demos)))
	return nil
}
