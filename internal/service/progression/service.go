package progression

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/adapter/queue"
	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/observability/telemetry"
	"github.com/seu-repo/habitua/internal/ports"
)

// SubjectLevelUp is the queue subject for level-up events.
const SubjectLevelUp = "progression.levelup"

// Service implements ports.ProgressionService. It applies the deterministic
// consequence of a level-up; deciding when one is earned belongs to the
// challenge-tracking surface that invokes it.
type Service struct {
	store   ports.ProfileStore
	rewards ports.RewardService
	mq      queue.MessageQueue
	log     *zap.Logger
}

// NewService creates a new progression service
func NewService(store ports.ProfileStore, rewards ports.RewardService, mq queue.MessageQueue, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		rewards: rewards,
		mq:      mq,
		log:     log,
	}
}

// ApplyLevelUp increments the level and applies the fixed stat bonus,
// unconditionally per invocation. The returned bonus is a single terminal
// notification value for the caller.
func (s *Service) ApplyLevelUp(ctx context.Context) (*domain.UserProfile, *domain.LevelUpBonus, error) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("no committed profile")
	}

	energy, connection, skill := s.rewards.LevelUpBonus()

	profile.Level++
	profile.Energy += energy
	profile.Connection += connection
	profile.Skill += skill
	profile.IsDayZero = false

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, nil, &domain.PersistenceError{Op: "SaveProfile", Err: err}
	}

	bonus := &domain.LevelUpBonus{
		NewLevel:   profile.Level,
		Energy:     energy,
		Connection: connection,
		Skill:      skill,
	}

	s.publishLevelUp(bonus)
	telemetry.LevelUpsTotal.Inc()

	s.log.Info("Level up applied",
		zap.Int("new_level", bonus.NewLevel),
		zap.Int("energy_bonus", bonus.Energy),
		zap.Int("connection_bonus", bonus.Connection),
		zap.Int("skill_bonus", bonus.Skill),
	)

	return profile, bonus, nil
}

func (s *Service) publishLevelUp(bonus *domain.LevelUpBonus) {
	payload, err := json.Marshal(bonus)
	if err != nil {
		return
	}

	if err := s.mq.Publish(SubjectLevelUp, payload); err != nil {
		s.log.Error("Failed to publish level-up event", zap.Error(err))
	}
}
