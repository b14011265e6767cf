package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

// Persisted key schema. The keyspace is exclusively owned by the single
// active session, so no locking is required around the pipeline.
const (
	keySelectedHabits      = "selectedHabits"
	keyCustomHabits        = "customHabits"
	keyUserArchetype       = "userArchetype"
	keyOnboardingCompleted = "onboardingCompleted"
	keyGameMode            = "gameMode"
	keyUserLevel           = "userLevel"
	keyUserEnergy          = "userEnergy"
	keyUserConnection      = "userConnection"
	keyUserSkill           = "userSkill"
	keyUserCoins           = "userCoins"
	keyIsDayZero           = "isDayZero"
	keyAccessory           = "selectedAccessory"
	keyHabitConfigPrefix   = "habitConfig:"
)

// ProfileStore implements ports.ProfileStore over Redis.
type ProfileStore struct {
	client *redis.Client
	log    *zap.Logger
}

// NewProfileStore connects to Redis and returns a profile store.
func NewProfileStore(url string, log *zap.Logger) (*ProfileStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Successfully connected to Redis profile store")
	return &ProfileStore{
		client: client,
		log:    log,
	}, nil
}

// CommitOnboarding writes the full profile keyspace in one transactional
// pipeline. Either every key lands or none does.
func (s *ProfileStore) CommitOnboarding(ctx context.Context, payload *domain.CommitPayload) error {
	selected, err := json.Marshal(payload.SelectedHabitIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal selected habits: %w", err)
	}
	custom, err := json.Marshal(payload.CustomHabits)
	if err != nil {
		return fmt.Errorf("failed to marshal custom habits: %w", err)
	}

	p := payload.Profile
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keySelectedHabits, string(selected), 0)
	pipe.Set(ctx, keyCustomHabits, string(custom), 0)
	pipe.Set(ctx, keyUserArchetype, string(p.Archetype), 0)
	pipe.Set(ctx, keyOnboardingCompleted, strconv.FormatBool(p.OnboardingCompleted), 0)
	pipe.Set(ctx, keyGameMode, string(p.GameMode), 0)
	pipe.Set(ctx, keyUserLevel, strconv.Itoa(p.Level), 0)
	pipe.Set(ctx, keyUserEnergy, strconv.Itoa(p.Energy), 0)
	pipe.Set(ctx, keyUserConnection, strconv.Itoa(p.Connection), 0)
	pipe.Set(ctx, keyUserSkill, strconv.Itoa(p.Skill), 0)
	pipe.Set(ctx, keyUserCoins, strconv.Itoa(p.Coins), 0)
	pipe.Set(ctx, keyIsDayZero, strconv.FormatBool(p.IsDayZero), 0)
	if payload.AccessoryID != "" {
		pipe.Set(ctx, keyAccessory, payload.AccessoryID, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to commit onboarding: %w", err)
	}

	s.log.Info("Onboarding profile committed",
		zap.String("archetype", string(p.Archetype)),
		zap.Int("level", p.Level),
	)
	return nil
}

// GetProfile reads the committed profile, nil when onboarding never ran.
func (s *ProfileStore) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	vals, err := s.client.MGet(ctx,
		keyUserLevel, keyUserEnergy, keyUserConnection, keyUserSkill,
		keyUserCoins, keyUserArchetype, keyIsDayZero, keyOnboardingCompleted,
		keyGameMode,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if vals[0] == nil {
		return nil, nil
	}

	profile := &domain.UserProfile{
		Level:               atoi(vals[0]),
		Energy:              atoi(vals[1]),
		Connection:          atoi(vals[2]),
		Skill:               atoi(vals[3]),
		Coins:               atoi(vals[4]),
		Archetype:           domain.ArchetypeName(str(vals[5])),
		IsDayZero:           str(vals[6]) == "true",
		OnboardingCompleted: str(vals[7]) == "true",
		GameMode:            domain.GameMode(str(vals[8])),
	}
	return profile, nil
}

// SaveProfile overwrites the profile fields, leaving habit keys untouched.
func (s *ProfileStore) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyUserLevel, strconv.Itoa(profile.Level), 0)
	pipe.Set(ctx, keyUserEnergy, strconv.Itoa(profile.Energy), 0)
	pipe.Set(ctx, keyUserConnection, strconv.Itoa(profile.Connection), 0)
	pipe.Set(ctx, keyUserSkill, strconv.Itoa(profile.Skill), 0)
	pipe.Set(ctx, keyUserCoins, strconv.Itoa(profile.Coins), 0)
	pipe.Set(ctx, keyUserArchetype, string(profile.Archetype), 0)
	pipe.Set(ctx, keyIsDayZero, strconv.FormatBool(profile.IsDayZero), 0)
	pipe.Set(ctx, keyOnboardingCompleted, strconv.FormatBool(profile.OnboardingCompleted), 0)
	pipe.Set(ctx, keyGameMode, string(profile.GameMode), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// SaveHabitConfig stores one habit's weekly schedule.
func (s *ProfileStore) SaveHabitConfig(ctx context.Context, habitID string, cfg *domain.HabitConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal habit config: %w", err)
	}

	if err := s.client.Set(ctx, keyHabitConfigPrefix+habitID, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save habit config: %w", err)
	}
	return nil
}

// GetHabitConfig reads one habit's schedule, nil when none was saved.
func (s *ProfileStore) GetHabitConfig(ctx context.Context, habitID string) (*domain.HabitConfig, error) {
	data, err := s.client.Get(ctx, keyHabitConfigPrefix+habitID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read habit config: %w", err)
	}

	var cfg domain.HabitConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal habit config: %w", err)
	}
	return &cfg, nil
}

// Close releases the client connection.
func (s *ProfileStore) Close() error {
	return s.client.Close()
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func atoi(v interface{}) int {
	n, _ := strconv.Atoi(str(v))
	return n
}

var _ ports.ProfileStore = (*ProfileStore)(nil)
