package catalog

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService() *Service {
	return NewService(nil, &mocks.MockIDGenerator{}, newTestLogger())
}

func TestDeriveStats_Guerreiro(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	stats, err := service.DeriveStats(domain.ArchetypeGuerreiro)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Energy != 30 {
		t.Errorf("expected energy 30, got %d", stats.Energy)
	}
	if stats.Connection != 20 {
		t.Errorf("expected connection 20, got %d", stats.Connection)
	}
	if stats.Skill != 25 {
		t.Errorf("expected skill 25, got %d", stats.Skill)
	}
}

func TestDeriveStats_AllArchetypesShareTotal(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act & Assert
	for _, a := range service.ListArchetypes() {
		stats, err := service.DeriveStats(a.Name)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", a.Name, err)
		}
		total := stats.Energy + stats.Connection + stats.Skill
		if total != 75 {
			t.Errorf("expected total 75 for %s, got %d", a.Name, total)
		}
	}
}

func TestDeriveStats_Deterministic(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	first, err1 := service.DeriveStats(domain.ArchetypeSabio)
	second, err2 := service.DeriveStats(domain.ArchetypeSabio)

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("expected identical stats, got %+v and %+v", first, second)
	}
}

func TestDeriveStats_UnknownArchetype(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	_, err := service.DeriveStats("Alquimista")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestListArchetypes_FixedOrder(t *testing.T) {
	// Arrange
	service := newTestService()
	expected := []domain.ArchetypeName{
		domain.ArchetypeGuerreiro,
		domain.ArchetypeMestre,
		domain.ArchetypeSabio,
		domain.ArchetypeGuardiao,
		domain.ArchetypeIndefinido,
	}

	// Act
	list := service.ListArchetypes()

	// Assert
	if len(list) != len(expected) {
		t.Fatalf("expected %d archetypes, got %d", len(expected), len(list))
	}
	for i, name := range expected {
		if list[i].Name != name {
			t.Errorf("expected archetype %s at index %d, got %s", name, i, list[i].Name)
		}
	}
}

func TestNewCustomHabit_Success(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	habit, err := service.NewCustomHabit("  Tocar violão  ")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if habit.Name != "Tocar violão" {
		t.Errorf("expected trimmed name, got %q", habit.Name)
	}
	if !strings.HasPrefix(habit.ID, domain.CustomHabitIDPrefix) {
		t.Errorf("expected id prefixed with %q, got %q", domain.CustomHabitIDPrefix, habit.ID)
	}
	if habit.Category != domain.CustomHabitCategory {
		t.Errorf("expected category %q, got %q", domain.CustomHabitCategory, habit.Category)
	}
	if habit.Icon != customHabitIcon {
		t.Errorf("expected icon %q, got %q", customHabitIcon, habit.Icon)
	}
}

func TestNewCustomHabit_EmptyName(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	_, err := service.NewCustomHabit("   ")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetAccessory_Unknown(t *testing.T) {
	// Arrange
	service := newTestService()

	// Act
	_, err := service.GetAccessory("asa-de-dragao")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
