package ports

import (
	"context"

	"github.com/seu-repo/habitua/internal/domain"
)

// CatalogService exposes the static archetype, habit and accessory catalogs
// plus the pure derivations built on them.
type CatalogService interface {
	ListArchetypes() []domain.Archetype
	GetArchetype(name domain.ArchetypeName) (*domain.Archetype, error)
	DeriveStats(name domain.ArchetypeName) (domain.Stats, error)
	ListHabits() []domain.HabitDefinition
	NewCustomHabit(name string) (*domain.HabitDefinition, error)
	ListAccessories() []domain.Accessory
	GetAccessory(id string) (*domain.Accessory, error)
}

// OnboardingService drives wizard sessions. All mutators are pure state
// updates; Commit is the only operation with side effects.
type OnboardingService interface {
	StartSession(ctx context.Context) (string, *domain.OnboardingState, error)
	GetSession(sessionID string) (*domain.OnboardingState, error)
	Advance(sessionID string) (*domain.OnboardingState, error)
	SelectArchetype(sessionID string, name domain.ArchetypeName) error
	ToggleHabit(sessionID string, habitID string) error
	AddCustomHabit(sessionID string, name string) (*domain.HabitDefinition, error)
	OpenAccessories(sessionID string) error
	SelectAccessory(sessionID string, accessoryID string) error
	CloseAccessories(sessionID string) error
	Commit(ctx context.Context, sessionID string) (*domain.UserProfile, error)
	Abandon(sessionID string) error
}

// ScheduleService validates and persists per-habit weekly schedules.
type ScheduleService interface {
	SetSchedule(ctx context.Context, habitID string, days []int, timeOfDay string, reminder bool) (*domain.HabitConfig, string, error)
	GetSchedule(ctx context.Context, habitID string) (*domain.HabitConfig, error)
	Summary(days []int) string
}

// RewardService runs lucky-card sessions and owns the reward tables.
type RewardService interface {
	OpenCards(guaranteed bool) (string, []domain.RewardCard, error)
	Reveal(ctx context.Context, sessionID string, index int) (*domain.RewardReveal, error)
	CloseCards(sessionID string) error
	LevelUpBonus() (energy, connection, skill int)
}

// ProgressionService applies deterministic level-up consequences. It does
// not decide when a level-up is earned.
type ProgressionService interface {
	ApplyLevelUp(ctx context.Context) (*domain.UserProfile, *domain.LevelUpBonus, error)
}
