package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

// profileID is the single row id: the store is owned by one active session.
const profileID = 1

type profileRecord struct {
	ID                  uint   `gorm:"primaryKey"`
	Level               int    `gorm:"not null"`
	Energy              int    `gorm:"not null"`
	Connection          int    `gorm:"not null"`
	Skill               int    `gorm:"not null"`
	Coins               int    `gorm:"not null"`
	Archetype           string `gorm:"not null"`
	IsDayZero           bool
	OnboardingCompleted bool
	GameMode            string
	AccessoryID         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (profileRecord) TableName() string { return "user_profile" }

type selectedHabitRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"not null"`
	HabitID  string `gorm:"not null;index"`
}

func (selectedHabitRecord) TableName() string { return "selected_habits" }

type customHabitRecord struct {
	ID      uint   `gorm:"primaryKey"`
	HabitID string `gorm:"not null;uniqueIndex"`
	Name    string `gorm:"not null"`
}

func (customHabitRecord) TableName() string { return "custom_habits" }

type habitConfigRecord struct {
	HabitID  string `gorm:"primaryKey"`
	Days     string `gorm:"not null"` // JSON array of ints
	Time     string `gorm:"not null"`
	Reminder bool
}

func (habitConfigRecord) TableName() string { return "habit_configs" }

// ProfileStore implements ports.ProfileStore over PostgreSQL.
type ProfileStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProfileStore(db *gorm.DB, log *zap.Logger) *ProfileStore {
	return &ProfileStore{
		db:  db,
		log: log,
	}
}

// CommitOnboarding persists the whole payload inside one database
// transaction.
func (s *ProfileStore) CommitOnboarding(ctx context.Context, payload *domain.CommitPayload) error {
	p := payload.Profile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := profileRecord{
			ID:                  profileID,
			Level:               p.Level,
			Energy:              p.Energy,
			Connection:          p.Connection,
			Skill:               p.Skill,
			Coins:               p.Coins,
			Archetype:           string(p.Archetype),
			IsDayZero:           p.IsDayZero,
			OnboardingCompleted: p.OnboardingCompleted,
			GameMode:            string(p.GameMode),
			AccessoryID:         payload.AccessoryID,
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&selectedHabitRecord{}).Error; err != nil {
			return err
		}
		for i, id := range payload.SelectedHabitIDs {
			if err := tx.Create(&selectedHabitRecord{Position: i, HabitID: id}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("1 = 1").Delete(&customHabitRecord{}).Error; err != nil {
			return err
		}
		for _, h := range payload.CustomHabits {
			if err := tx.Create(&customHabitRecord{HabitID: h.ID, Name: h.Name}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit onboarding: %w", err)
	}

	s.log.Info("Onboarding profile committed",
		zap.String("archetype", string(p.Archetype)),
		zap.Int("level", p.Level),
	)
	return nil
}

func (s *ProfileStore) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var record profileRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.UserProfile{
		Level:               record.Level,
		Energy:              record.Energy,
		Connection:          record.Connection,
		Skill:               record.Skill,
		Coins:               record.Coins,
		Archetype:           domain.ArchetypeName(record.Archetype),
		IsDayZero:           record.IsDayZero,
		OnboardingCompleted: record.OnboardingCompleted,
		GameMode:            domain.GameMode(record.GameMode),
	}, nil
}

func (s *ProfileStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	updates := map[string]interface{}{
		"level":                profile.Level,
		"energy":               profile.Energy,
		"connection":           profile.Connection,
		"skill":                profile.Skill,
		"coins":                profile.Coins,
		"archetype":            string(profile.Archetype),
		"is_day_zero":          profile.IsDayZero,
		"onboarding_completed": profile.OnboardingCompleted,
		"game_mode":            string(profile.GameMode),
	}

	return s.db.WithContext(ctx).
		Model(&profileRecord{}).
		Where("id = ?", profileID).
		Updates(updates).Error
}

func (s *ProfileStore) SaveHabitConfig(ctx context.Context, habitID string, cfg *domain.HabitConfig) error {
	days, err := json.Marshal(cfg.Days)
	if err != nil {
		return fmt.Errorf("failed to marshal days: %w", err)
	}

	record := habitConfigRecord{
		HabitID:  habitID,
		Days:     string(days),
		Time:     cfg.Time,
		Reminder: cfg.Reminder,
	}
	return s.db.WithContext(ctx).Save(&record).Error
}

func (s *ProfileStore) GetHabitConfig(ctx context.Context, habitID string) (*domain.HabitConfig, error) {
	var record habitConfigRecord
	err := s.db.WithContext(ctx).First(&record, "habit_id = ?", habitID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var days []int
	if err := json.Unmarshal([]byte(record.Days), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal days: %w", err)
	}

	return &domain.HabitConfig{
		Days:     days,
		Time:     record.Time,
		Reminder: record.Reminder,
	}, nil
}

var _ ports.ProfileStore = (*ProfileStore)(nil)
