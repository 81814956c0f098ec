// Package kv implements the repositories on top of the namespaced Bolt store.
// Each repository keeps the typed collection in memory and is its sole
// mutator; every mutation is persisted before the in-memory view changes, so
// a failed write never leaves the two out of sync.
package kv

import (
	"time"

	"github.com/google/uuid"
)

type settings struct {
	now   func() time.Time
	newID func() string
}

// Option customizes a repository, mainly for tests.
type Option func(*settings)

// WithClock overrides the time source used for entity timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
