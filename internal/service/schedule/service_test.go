package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestSetSchedule_Weekdays(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := mocks.NewMockProfileStore()
	service := NewService(store, mocks.NewMockCache(), newTestLogger())

	// Act
	cfg, summary, err := service.SetSchedule(ctx, "beber-agua", []int{1, 2, 3, 4, 5}, "08:00", true)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary != "5 dias por semana" {
		t.Errorf("expected summary '5 dias por semana', got %q", summary)
	}
	if cfg.Time != "08:00" {
		t.Errorf("expected time '08:00', got %q", cfg.Time)
	}
	if !cfg.Reminder {
		t.Error("expected reminder enabled")
	}

	saved, _ := store.GetHabitConfig(ctx, "beber-agua")
	if saved == nil {
		t.Fatal("expected config persisted, got nil")
	}
	if !reflect.DeepEqual(saved.Days, []int{1, 2, 3, 4, 5}) {
		t.Errorf("expected days [1 2 3 4 5], got %v", saved.Days)
	}
}

func TestSetSchedule_NormalizesDays(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	// Act
	cfg, _, err := service.SetSchedule(ctx, "meditar", []int{5, 1, 5, 3, 1}, "07:30", false)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(cfg.Days, []int{1, 3, 5}) {
		t.Errorf("expected deduplicated sorted days [1 3 5], got %v", cfg.Days)
	}
}

func TestSetSchedule_EmptyDays(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	// Act
	_, _, err := service.SetSchedule(ctx, "meditar", []int{}, "08:00", true)

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Code != domain.CodeEmptyDays {
		t.Errorf("expected code %q, got %q", domain.CodeEmptyDays, ve.Code)
	}
}

func TestSetSchedule_InvalidDay(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	// Act
	_, _, err := service.SetSchedule(ctx, "meditar", []int{1, 7}, "08:00", true)

	// Assert
	if !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetSchedule_InvalidTime(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	for _, bad := range []string{"25:00", "8:00", "08:60", "meio-dia", ""} {
		// Act
		_, _, err := service.SetSchedule(ctx, "meditar", []int{1}, bad, true)

		// Assert
		if !domain.IsValidationError(err) {
			t.Errorf("expected validation error for %q, got %v", bad, err)
		}
	}
}

func TestSetSchedule_PersistenceFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := mocks.NewMockProfileStore()
	store.SaveHabitConfigFunc = func(ctx context.Context, habitID string, cfg *domain.HabitConfig) error {
		return errors.New("connection refused")
	}
	service := NewService(store, mocks.NewMockCache(), newTestLogger())

	// Act
	_, _, err := service.SetSchedule(ctx, "meditar", []int{1}, "08:00", true)

	// Assert
	if !domain.IsPersistenceError(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestSetSchedule_InvalidatesCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := mocks.NewMockCache()
	stale, _ := json.Marshal(&domain.HabitConfig{Days: []int{0}, Time: "06:00"})
	cache.Set(ctx, "habitConfig:meditar", string(stale), 0)

	store := mocks.NewMockProfileStore()
	service := NewService(store, cache, newTestLogger())

	// Act
	_, _, err := service.SetSchedule(ctx, "meditar", []int{2}, "09:00", false)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cached, _ := cache.Get(ctx, "habitConfig:meditar"); cached != "" {
		t.Errorf("expected cache invalidated, got %q", cached)
	}
}

func TestGetSchedule_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := mocks.NewMockCache()
	cached, _ := json.Marshal(&domain.HabitConfig{Days: []int{1, 3}, Time: "08:00", Reminder: true})
	cache.Set(ctx, "habitConfig:ler", string(cached), 0)

	store := mocks.NewMockProfileStore()
	store.GetHabitConfigFunc = func(ctx context.Context, habitID string) (*domain.HabitConfig, error) {
		t.Error("store should not be called on cache hit")
		return nil, nil
	}
	service := NewService(store, cache, newTestLogger())

	// Act
	cfg, err := service.GetSchedule(ctx, "ler")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg == nil || cfg.Time != "08:00" {
		t.Errorf("expected cached config with time 08:00, got %+v", cfg)
	}
}

func TestGetSchedule_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	// Act
	cfg, err := service.GetSchedule(ctx, "inexistente")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestSummary(t *testing.T) {
	// Arrange
	service := NewService(mocks.NewMockProfileStore(), mocks.NewMockCache(), newTestLogger())

	cases := []struct {
		days     []int
		expected string
	}{
		{[]int{0, 1, 2, 3, 4, 5, 6}, "Todos os dias"},
		{[]int{1}, "Segunda-feira"},
		{[]int{0}, "Domingo"},
		{[]int{6}, "Sábado"},
		{[]int{1, 2, 3, 4, 5}, "5 dias por semana"},
		{[]int{2, 4}, "2 dias por semana"},
	}

	for _, c := range cases {
		// Act
		got := service.Summary(c.days)

		// Assert
		if got != c.expected {
			t.Errorf("expected %q for %v, got %q", c.expected, c.days, got)
		}
	}
}
