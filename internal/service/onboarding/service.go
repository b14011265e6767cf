package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/adapter/queue"
	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/observability/telemetry"
	"github.com/seu-repo/habitua/internal/ports"
)

// SubjectOnboardingCompleted is the queue subject for commit events.
const SubjectOnboardingCompleted = "onboarding.completed"

// session is one wizard run. The state is exclusively owned by this
// controller until commit or abandonment.
type session struct {
	state          *domain.OnboardingState
	commitInFlight bool
	cancelExpiry   ports.CancelFunc
}

// Service implements ports.OnboardingService: the finite-state sequencer
// over the onboarding steps plus the commit protocol.
type Service struct {
	catalog   ports.CatalogService
	store     ports.ProfileStore
	cfg       *domain.GameConfig
	idGen     ports.IDGenerator
	scheduler ports.Scheduler
	mq        queue.MessageQueue
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a new onboarding service
func NewService(
	catalog ports.CatalogService,
	store ports.ProfileStore,
	cfg *domain.GameConfig,
	idGen ports.IDGenerator,
	scheduler ports.Scheduler,
	mq queue.MessageQueue,
	log *zap.Logger,
) *Service {
	if cfg == nil {
		cfg = domain.DefaultGameConfig()
	}

	return &Service{
		catalog:   catalog,
		store:     store,
		cfg:       cfg,
		idGen:     idGen,
		scheduler: scheduler,
		mq:        mq,
		log:       log,
		sessions:  make(map[string]*session),
	}
}

// StartSession opens a new wizard run at the Welcome step. Sessions that
// are neither committed nor abandoned expire after the configured TTL with
// no persisted side effects.
func (s *Service) StartSession(ctx context.Context) (string, *domain.OnboardingState, error) {
	id := s.idGen.NewID()
	sess := &session{state: domain.NewOnboardingState()}

	s.mu.Lock()
	s.sessions[id] = sess
	sess.cancelExpiry = s.scheduler.Schedule(s.cfg.SessionTTL, func() {
		s.expire(id)
	})
	s.mu.Unlock()

	telemetry.ActiveOnboardingSessions.Inc()
	s.log.Info("Onboarding session started", zap.String("session_id", id))

	return id, sess.state, nil
}

// GetSession returns a snapshot of the wizard state.
func (s *Service) GetSession(sessionID string) (*domain.OnboardingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	snapshot := *sess.state
	return &snapshot, nil
}

// Advance moves the wizard to the next main-sequence step. It refuses to
// leave ArchetypeSelection without a selected archetype and HabitSelection
// without at least one selected or custom habit; the state is unchanged on
// failure.
func (s *Service) Advance(sessionID string) (*domain.OnboardingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	state := sess.state
	switch state.Step {
	case domain.StepWelcome:
		state.Step = domain.StepArchetypeSelection
	case domain.StepArchetypeSelection:
		if !state.HasArchetype() {
			return nil, domain.NewValidationError(domain.CodeArchetypeRequired,
				"escolha um arquétipo antes de continuar")
		}
		state.Step = domain.StepAvatarPreview
	case domain.StepAvatarPreview:
		state.Step = domain.StepHabitSelection
	case domain.StepHabitSelection:
		if !state.HasHabits() {
			return nil, domain.NewValidationError(domain.CodeNoHabitsSelected,
				"selecione pelo menos um hábito antes de continuar")
		}
		state.Step = domain.StepCommit
	default:
		return nil, domain.NewValidationError(domain.CodeInvalidStep,
			fmt.Sprintf("não é possível avançar a partir de %s", state.Step))
	}

	snapshot := *state
	return &snapshot, nil
}

// SelectArchetype records the chosen archetype. Re-selecting overwrites.
func (s *Service) SelectArchetype(sessionID string, name domain.ArchetypeName) error {
	if _, err := s.catalog.GetArchetype(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	sess.state.SelectedArchetype = name
	return nil
}

// ToggleHabit adds or removes a habit id from the selection, preserving
// selection order. Toggling twice is its own inverse.
func (s *Service) ToggleHabit(sessionID string, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	ids := sess.state.SelectedHabitIDs
	for i, id := range ids {
		if id == habitID {
			sess.state.SelectedHabitIDs = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}

	sess.state.SelectedHabitIDs = append(ids, habitID)
	return nil
}

// AddCustomHabit builds a habit through the factory and appends it to the
// session. Empty or whitespace-only names are rejected.
func (s *Service) AddCustomHabit(sessionID string, name string) (*domain.HabitDefinition, error) {
	habit, err := s.catalog.NewCustomHabit(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	sess.state.CustomHabits = append(sess.state.CustomHabits, *habit)
	return habit, nil
}

// OpenAccessories enters the accessory overlay from the avatar preview.
func (s *Service) OpenAccessories(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	if sess.state.Step != domain.StepAvatarPreview {
		return domain.NewValidationError(domain.CodeInvalidStep,
			"acessórios só podem ser abertos na prévia do avatar")
	}

	sess.state.Step = domain.StepAccessorySelection
	return nil
}

// SelectAccessory records the confirmed selection and resumes the main
// sequence past the avatar preview, landing on habit selection.
func (s *Service) SelectAccessory(sessionID string, accessoryID string) error {
	if _, err := s.catalog.GetAccessory(accessoryID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	if sess.state.Step != domain.StepAccessorySelection {
		return domain.NewValidationError(domain.CodeInvalidStep,
			"nenhuma seleção de acessório em andamento")
	}

	sess.state.SelectedAccessoryID = accessoryID
	sess.state.Step = domain.StepHabitSelection
	return nil
}

// CloseAccessories cancels the overlay without a selection and returns to
// the avatar preview.
func (s *Service) CloseAccessories(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	if sess.state.Step != domain.StepAccessorySelection {
		return domain.NewValidationError(domain.CodeInvalidStep,
			"nenhuma seleção de acessório em andamento")
	}

	sess.state.Step = domain.StepAvatarPreview
	return nil
}

// Commit turns the wizard answers into a persisted profile through one
// atomic store write. Only callable from the Commit step; a second call
// while one is outstanding is rejected. On persistence failure the session
// stays in Commit so the same payload can be retried.
func (s *Service) Commit(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	state := sess.state
	if state.Step != domain.StepCommit {
		s.mu.Unlock()
		return nil, domain.NewValidationError(domain.CodeInvalidStep,
			fmt.Sprintf("commit não permitido a partir de %s", state.Step))
	}
	if !state.HasArchetype() {
		s.mu.Unlock()
		return nil, domain.NewValidationError(domain.CodeArchetypeRequired,
			"escolha um arquétipo antes de concluir")
	}
	if !state.HasHabits() {
		s.mu.Unlock()
		return nil, domain.NewValidationError(domain.CodeNoHabitsSelected,
			"selecione pelo menos um hábito antes de concluir")
	}
	if sess.commitInFlight {
		s.mu.Unlock()
		return nil, domain.ErrCommitInFlight
	}
	sess.commitInFlight = true
	snapshot := *state
	s.mu.Unlock()

	payload, err := s.buildPayload(&snapshot)
	if err != nil {
		s.clearInFlight(sessionID)
		return nil, err
	}

	start := time.Now()
	if err := s.store.CommitOnboarding(ctx, payload); err != nil {
		s.clearInFlight(sessionID)
		return nil, &domain.PersistenceError{Op: "CommitOnboarding", Err: err}
	}
	telemetry.CommitLatency.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	sess.state.Step = domain.StepCompleted
	if sess.cancelExpiry != nil {
		sess.cancelExpiry()
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	telemetry.ActiveOnboardingSessions.Dec()
	telemetry.OnboardingsCompletedTotal.Inc()
	s.publishCompleted(&payload.Profile)

	s.log.Info("Onboarding committed",
		zap.String("session_id", sessionID),
		zap.String("archetype", string(payload.Profile.Archetype)),
		zap.Int("habits", len(payload.SelectedHabitIDs)+len(payload.CustomHabits)),
	)

	profile := payload.Profile
	return &profile, nil
}

// Abandon discards the session without any persisted side effects.
func (s *Service) Abandon(sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		if sess.cancelExpiry != nil {
			sess.cancelExpiry()
		}
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}

	telemetry.ActiveOnboardingSessions.Dec()
	s.log.Info("Onboarding session abandoned", zap.String("session_id", sessionID))
	return nil
}

// buildPayload derives the initial profile and assembles the commit payload.
func (s *Service) buildPayload(state *domain.OnboardingState) (*domain.CommitPayload, error) {
	stats, err := s.catalog.DeriveStats(state.SelectedArchetype)
	if err != nil {
		return nil, err
	}

	customRefs := make([]domain.CustomHabitRef, 0, len(state.CustomHabits))
	for _, h := range state.CustomHabits {
		customRefs = append(customRefs, domain.CustomHabitRef{ID: h.ID, Name: h.Name})
	}

	return &domain.CommitPayload{
		Profile: domain.UserProfile{
			Level:               s.cfg.StartingLevel,
			Energy:              stats.Energy,
			Connection:          stats.Connection,
			Skill:               stats.Skill,
			Coins:               s.cfg.StartingCoins,
			Archetype:           state.SelectedArchetype,
			IsDayZero:           true,
			OnboardingCompleted: true,
			GameMode:            domain.GameModeRegular,
		},
		SelectedHabitIDs: append([]string{}, state.SelectedHabitIDs...),
		CustomHabits:     customRefs,
		AccessoryID:      state.SelectedAccessoryID,
	}, nil
}

func (s *Service) clearInFlight(sessionID string) {
	s.mu.Lock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.commitInFlight = false
	}
	s.mu.Unlock()
}

// expire is the TTL path for sessions that were never finished.
func (s *Service) expire(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok && sess.commitInFlight {
		// A commit is outstanding; let it finish.
		s.mu.Unlock()
		return
	}
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	telemetry.ActiveOnboardingSessions.Dec()
	s.log.Info("Onboarding session expired", zap.String("session_id", sessionID))
}

func (s *Service) publishCompleted(profile *domain.UserProfile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return
	}

	if err := s.mq.Publish(SubjectOnboardingCompleted, payload); err != nil {
		s.log.Error("Failed to publish onboarding event", zap.Error(err))
	}
}
