package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/adapter/queue"
	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/observability/telemetry"
	"github.com/seu-repo/habitua/internal/ports"
)

// Queue subjects for reward events.
const (
	SubjectRewardApplied  = "reward.applied"
	SubjectCardsDismissed = "reward.cards.dismissed"
)

// cardSlots is the fixed number of cards per lucky-card session.
const cardSlots = 3

// rewardMessages maps reward types to their reveal message templates.
var rewardMessages = map[domain.RewardType]string{
	domain.RewardCoins:      "Você ganhou %d moedas!",
	domain.RewardSkill:      "Você ganhou %d pontos de Habilidade!",
	domain.RewardEnergy:     "Você ganhou %d pontos de Energia!",
	domain.RewardConnection: "Você ganhou %d pontos de Conexão!",
}

// cardSession is one open lucky-card dialog.
type cardSession struct {
	id            string
	cards         [cardSlots]domain.RewardCard
	flipped       [cardSlots]bool
	flippedCount  int
	cancelDismiss ports.CancelFunc
}

// Service implements ports.RewardService. Despite the "lucky" name, rewards
// are assigned deterministically by slot index in the fixed type order
// [coins, skill, energy]; there is no random draw.
type Service struct {
	cfg       *domain.GameConfig
	idGen     ports.IDGenerator
	scheduler ports.Scheduler
	mq        queue.MessageQueue
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*cardSession
}

// NewService creates a new reward service
func NewService(cfg *domain.GameConfig, idGen ports.IDGenerator, scheduler ports.Scheduler, mq queue.MessageQueue, log *zap.Logger) *Service {
	if cfg == nil {
		cfg = domain.DefaultGameConfig()
	}

	return &Service{
		cfg:       cfg,
		idGen:     idGen,
		scheduler: scheduler,
		mq:        mq,
		log:       log,
		sessions:  make(map[string]*cardSession),
	}
}

// OpenCards starts a lucky-card session and returns its id and the face-down
// card set.
func (s *Service) OpenCards(guaranteed bool) (string, []domain.RewardCard, error) {
	amounts := s.cfg.NormalCards
	if guaranteed {
		amounts = s.cfg.GuaranteedCards
	}

	session := &cardSession{
		id: s.idGen.NewID(),
		cards: [cardSlots]domain.RewardCard{
			{Type: domain.RewardCoins, Amount: amounts.Coins},
			{Type: domain.RewardSkill, Amount: amounts.Skill},
			{Type: domain.RewardEnergy, Amount: amounts.Energy},
		},
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	s.log.Info("Lucky cards opened",
		zap.String("session_id", session.id),
		zap.Bool("guaranteed", guaranteed),
	)

	return session.id, session.cards[:], nil
}

// Reveal flips one card. Re-flipping an already revealed card is a no-op:
// the same card comes back marked Repeated and no event is emitted. The
// second reveal schedules a single auto-dismiss callback; closing the
// session first cancels it.
func (s *Service) Reveal(ctx context.Context, sessionID string, index int) (*domain.RewardReveal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if index < 0 || index >= cardSlots {
		return nil, domain.NewValidationError(domain.CodeInvalidStep,
			fmt.Sprintf("índice de carta inválido: %d", index))
	}

	card := session.cards[index]

	if session.flipped[index] {
		return &domain.RewardReveal{Index: index, Card: card, Repeated: true}, nil
	}

	session.flipped[index] = true
	session.flippedCount++

	reveal := &domain.RewardReveal{
		Index:   index,
		Card:    card,
		Message: fmt.Sprintf(rewardMessages[card.Type], card.Amount),
	}

	s.publishReveal(sessionID, reveal)
	telemetry.CardsRevealedTotal.WithLabelValues(string(card.Type)).Inc()

	if session.flippedCount == 2 {
		session.cancelDismiss = s.scheduler.Schedule(s.cfg.CardDismissDelay, func() {
			s.dismiss(sessionID)
		})
	}

	return reveal, nil
}

// CloseCards dismisses a session before (or after) the auto-dismiss timer,
// cancelling any pending callback.
func (s *Service) CloseCards(sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		if session.cancelDismiss != nil {
			session.cancelDismiss()
		}
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	s.publishDismissed(sessionID)
	s.log.Info("Lucky cards closed", zap.String("session_id", sessionID))
	return nil
}

// LevelUpBonus returns the fixed per-stat bonus applied on level-up.
func (s *Service) LevelUpBonus() (energy, connection, skill int) {
	b := s.cfg.LevelUpStatBonus
	return b, b, b
}

// dismiss is the auto-close path. The flipped set dies with the session.
func (s *Service) dismiss(sessionID string) {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	s.publishDismissed(sessionID)
	s.log.Info("Lucky cards auto-dismissed", zap.String("session_id", sessionID))
}

func (s *Service) publishReveal(sessionID string, reveal *domain.RewardReveal) {
	payload, err := json.Marshal(map[string]interface{}{
		"session_id": sessionID,
		"type":       reveal.Card.Type,
		"amount":     reveal.Card.Amount,
		"message":    reveal.Message,
	})
	if err != nil {
		return
	}

	if err := s.mq.Publish(SubjectRewardApplied, payload); err != nil {
		s.log.Error("Failed to publish reward event",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func (s *Service) publishDismissed(sessionID string) {
	payload, _ := json.Marshal(map[string]string{"session_id": sessionID})
	if err := s.mq.Publish(SubjectCardsDismissed, payload); err != nil {
		s.log.Error("Failed to publish dismissal event",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}
