package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

// MockProfileStore is a mock implementation of ProfileStore. Without
// overrides it behaves as an in-memory store.
type MockProfileStore struct {
	mu      sync.Mutex
	payload *domain.CommitPayload
	profile *domain.UserProfile
	configs map[string]*domain.HabitConfig

	CommitOnboardingFunc func(ctx context.Context, payload *domain.CommitPayload) error
	GetProfileFunc       func(ctx context.Context) (*domain.UserProfile, error)
	SaveProfileFunc      func(ctx context.Context, profile *domain.UserProfile) error
	SaveHabitConfigFunc  func(ctx context.Context, habitID string, cfg *domain.HabitConfig) error
	GetHabitConfigFunc   func(ctx context.Context, habitID string) (*domain.HabitConfig, error)
}

func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		configs: make(map[string]*domain.HabitConfig),
	}
}

func (m *MockProfileStore) CommitOnboarding(ctx context.Context, payload *domain.CommitPayload) error {
	if m.CommitOnboardingFunc != nil {
		return m.CommitOnboardingFunc(ctx, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	profile := payload.Profile
	m.profile = &profile
	return nil
}

func (m *MockProfileStore) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil, nil
	}
	profile := *m.profile
	return &profile, nil
}

func (m *MockProfileStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	if m.SaveProfileFunc != nil {
		return m.SaveProfileFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *profile
	m.profile = &p
	return nil
}

func (m *MockProfileStore) SaveHabitConfig(ctx context.Context, habitID string, cfg *domain.HabitConfig) error {
	if m.SaveHabitConfigFunc != nil {
		return m.SaveHabitConfigFunc(ctx, habitID, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *cfg
	m.configs[habitID] = &c
	return nil
}

func (m *MockProfileStore) GetHabitConfig(ctx context.Context, habitID string) (*domain.HabitConfig, error) {
	if m.GetHabitConfigFunc != nil {
		return m.GetHabitConfigFunc(ctx, habitID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[habitID]
	if !ok {
		return nil, nil
	}
	c := *cfg
	return &c, nil
}

// CommittedPayload returns the last payload passed to CommitOnboarding.
func (m *MockProfileStore) CommittedPayload() *domain.CommitPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload
}

// MockIDGenerator is a deterministic IDGenerator producing id-1, id-2, ...
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	NewIDFunc func() string
}

func (m *MockIDGenerator) NewID() string {
	if m.NewIDFunc != nil {
		return m.NewIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockScheduler captures scheduled callbacks so tests can fire them
// manually instead of waiting on real timers.
type MockScheduler struct {
	mu        sync.Mutex
	callbacks []*ScheduledCall

	ScheduleFunc func(delay time.Duration, fn func()) ports.CancelFunc
}

// ScheduledCall is one captured Schedule invocation.
type ScheduledCall struct {
	Delay     time.Duration
	Fn        func()
	Cancelled bool
}

func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

func (m *MockScheduler) Schedule(delay time.Duration, fn func()) ports.CancelFunc {
	if m.ScheduleFunc != nil {
		return m.ScheduleFunc(delay, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	call := &ScheduledCall{Delay: delay, Fn: fn}
	m.callbacks = append(m.callbacks, call)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		call.Cancelled = true
	}
}

// Calls returns all captured invocations, fired or not.
func (m *MockScheduler) Calls() []*ScheduledCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ScheduledCall, len(m.callbacks))
	copy(out, m.callbacks)
	return out
}

// FirePending runs every non-cancelled callback once and clears the list.
func (m *MockScheduler) FirePending() {
	m.mu.Lock()
	pending := make([]*ScheduledCall, 0, len(m.callbacks))
	for _, c := range m.callbacks {
		if !c.Cancelled {
			pending = append(pending, c)
		}
	}
	m.callbacks = nil
	m.mu.Unlock()

	for _, c := range pending {
		c.Fn()
	}
}
