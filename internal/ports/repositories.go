package ports

import (
	"context"
	"time"

	"github.com/seu-repo/habitua/internal/domain"
)

// ProfileStore is the persistence gateway the wizard commits into. The core
// calls CommitOnboarding exactly once per successful wizard run; the write
// must be a single logical transaction (no partial state on failure).
type ProfileStore interface {
	CommitOnboarding(ctx context.Context, payload *domain.CommitPayload) error
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile *domain.UserProfile) error
	SaveHabitConfig(ctx context.Context, habitID string, cfg *domain.HabitConfig) error
	GetHabitConfig(ctx context.Context, habitID string) (*domain.HabitConfig, error)
}

// Cache is a TTL key-value cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

// IDGenerator produces unique ids for sessions and custom habits. Injected
// so the core stays deterministic under test.
type IDGenerator interface {
	NewID() string
}

// CancelFunc cancels a scheduled callback. Calling it after the callback
// fired is a no-op.
type CancelFunc func()

// Scheduler runs a callback once after a delay. Every schedule must be
// paired with a guaranteed-cancel path on teardown so no timer fires into a
// disposed session.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelFunc
}
