package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

// timePattern matches 24-hour "HH:MM".
var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

const configCacheTTL = 5 * time.Minute

// dayLabels maps day numbers (0 = Sunday) to pt-BR labels.
var dayLabels = [7]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// Service implements ports.ScheduleService.
type Service struct {
	store ports.ProfileStore
	cache ports.Cache
	log   *zap.Logger
}

// NewService creates a new schedule service
func NewService(store ports.ProfileStore, cache ports.Cache, log *zap.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log,
	}
}

// SetSchedule validates and persists the weekly schedule for a habit. The
// day set must be non-empty; an empty set is a hard precondition failure,
// not a warning. Returns the saved config and its display summary.
func (s *Service) SetSchedule(ctx context.Context, habitID string, days []int, timeOfDay string, reminder bool) (*domain.HabitConfig, string, error) {
	normalized, err := normalizeDays(days)
	if err != nil {
		return nil, "", err
	}

	if !timePattern.MatchString(timeOfDay) {
		return nil, "", domain.NewValidationError(domain.CodeInvalidTime,
			fmt.Sprintf("horário inválido: %q (esperado HH:MM)", timeOfDay))
	}

	cfg := &domain.HabitConfig{
		Days:     normalized,
		Time:     timeOfDay,
		Reminder: reminder,
	}

	if err := s.store.SaveHabitConfig(ctx, habitID, cfg); err != nil {
		return nil, "", &domain.PersistenceError{Op: "SaveHabitConfig", Err: err}
	}

	// Invalidate so the next read comes from the store
	if err := s.cache.Delete(ctx, cacheKey(habitID)); err != nil {
		s.log.Warn("Failed to invalidate habit config cache",
			zap.String("habit_id", habitID),
			zap.Error(err),
		)
	}

	summary := s.Summary(normalized)

	s.log.Info("Habit schedule saved",
		zap.String("habit_id", habitID),
		zap.Ints("days", normalized),
		zap.String("time", timeOfDay),
		zap.Bool("reminder", reminder),
	)

	return cfg, summary, nil
}

// GetSchedule reads a habit's saved schedule, nil when none exists.
func (s *Service) GetSchedule(ctx context.Context, habitID string) (*domain.HabitConfig, error) {
	if cached, err := s.cache.Get(ctx, cacheKey(habitID)); err == nil && cached != "" {
		var cfg domain.HabitConfig
		if err := json.Unmarshal([]byte(cached), &cfg); err == nil {
			return &cfg, nil
		}
	}

	cfg, err := s.store.GetHabitConfig(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit config: %w", err)
	}

	if cfg != nil {
		if data, err := json.Marshal(cfg); err == nil {
			if err := s.cache.Set(ctx, cacheKey(habitID), string(data), configCacheTTL); err != nil {
				s.log.Warn("Failed to cache habit config",
					zap.String("habit_id", habitID),
					zap.Error(err),
				)
			}
		}
	}

	return cfg, nil
}

// Summary produces the display string from the day count alone: all 7 days,
// a single day's label, or "N dias por semana".
func (s *Service) Summary(days []int) string {
	switch len(days) {
	case 7:
		return "Todos os dias"
	case 1:
		return dayLabels[days[0]]
	default:
		return fmt.Sprintf("%d dias por semana", len(days))
	}
}

func cacheKey(habitID string) string {
	return "habitConfig:" + habitID
}

// normalizeDays deduplicates, validates and sorts the day set.
func normalizeDays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, domain.NewValidationError(domain.CodeEmptyDays,
			"selecione pelo menos um dia da semana")
	}

	seen := make(map[int]bool, len(days))
	normalized := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, domain.NewValidationError(domain.CodeInvalidDay,
				fmt.Sprintf("dia inválido: %d", d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		normalized = append(normalized, d)
	}

	sort.Ints(normalized)
	return normalized, nil
}
