package onboarding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/mocks"
	"github.com/seu-repo/habitua/internal/service/catalog"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type testEnv struct {
	service   *Service
	store     *mocks.MockProfileStore
	scheduler *mocks.MockScheduler
	queue     *mocks.MockMessageQueue
}

func newTestEnv() *testEnv {
	idGen := &mocks.MockIDGenerator{}
	store := mocks.NewMockProfileStore()
	scheduler := mocks.NewMockScheduler()
	queue := mocks.NewMockMessageQueue()
	log := newTestLogger()

	catalogService := catalog.NewService(nil, idGen, log)
	service := NewService(catalogService, store, nil, idGen, scheduler, queue, log)

	return &testEnv{
		service:   service,
		store:     store,
		scheduler: scheduler,
		queue:     queue,
	}
}

// startAt drives a fresh session to the given step with valid answers.
func (e *testEnv) startAt(t *testing.T, step domain.OnboardingStep) string {
	t.Helper()
	ctx := context.Background()

	id, _, err := e.service.StartSession(ctx)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	if step == domain.StepWelcome {
		return id
	}

	e.mustAdvance(t, id, domain.StepArchetypeSelection)
	if step == domain.StepArchetypeSelection {
		return id
	}

	if err := e.service.SelectArchetype(id, domain.ArchetypeGuerreiro); err != nil {
		t.Fatalf("failed to select archetype: %v", err)
	}
	e.mustAdvance(t, id, domain.StepAvatarPreview)
	if step == domain.StepAvatarPreview {
		return id
	}

	e.mustAdvance(t, id, domain.StepHabitSelection)
	if step == domain.StepHabitSelection {
		return id
	}

	if err := e.service.ToggleHabit(id, "beber-agua"); err != nil {
		t.Fatalf("failed to toggle habit: %v", err)
	}
	e.mustAdvance(t, id, domain.StepCommit)
	return id
}

func (e *testEnv) mustAdvance(t *testing.T, id string, expected domain.OnboardingStep) {
	t.Helper()
	state, err := e.service.Advance(id)
	if err != nil {
		t.Fatalf("failed to advance: %v", err)
	}
	if state.Step != expected {
		t.Fatalf("expected step %s, got %s", expected, state.Step)
	}
}

func TestStartSession_BeginsAtWelcome(t *testing.T) {
	// Arrange
	env := newTestEnv()

	// Act
	id, state, err := env.service.StartSession(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id == "" {
		t.Fatal("expected session id")
	}
	if state.Step != domain.StepWelcome {
		t.Errorf("expected welcome step, got %s", state.Step)
	}
	if len(env.scheduler.Calls()) != 1 {
		t.Errorf("expected expiry timer scheduled, got %d calls", len(env.scheduler.Calls()))
	}
}

func TestAdvance_WithoutArchetypeFails(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepArchetypeSelection)

	// Act
	_, err := env.service.Advance(id)

	// Assert
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Code != domain.CodeArchetypeRequired {
		t.Errorf("expected code %q, got %q", domain.CodeArchetypeRequired, ve.Code)
	}

	// State is unchanged and the wizard can proceed after correcting
	state, _ := env.service.GetSession(id)
	if state.Step != domain.StepArchetypeSelection {
		t.Errorf("expected step unchanged, got %s", state.Step)
	}
	if err := env.service.SelectArchetype(id, domain.ArchetypeMestre); err != nil {
		t.Fatalf("expected selection to succeed, got %v", err)
	}
	env.mustAdvance(t, id, domain.StepAvatarPreview)
}

func TestAdvance_WithoutHabitsFails(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepHabitSelection)

	// Act
	_, err := env.service.Advance(id)

	// Assert
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Code != domain.CodeNoHabitsSelected {
		t.Errorf("expected code %q, got %q", domain.CodeNoHabitsSelected, ve.Code)
	}
}

func TestToggleHabit_IsItsOwnInverse(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepHabitSelection)

	// Act
	env.service.ToggleHabit(id, "meditar")
	env.service.ToggleHabit(id, "ler")
	env.service.ToggleHabit(id, "meditar")

	// Assert
	state, _ := env.service.GetSession(id)
	if len(state.SelectedHabitIDs) != 1 || state.SelectedHabitIDs[0] != "ler" {
		t.Errorf("expected only 'ler' selected, got %v", state.SelectedHabitIDs)
	}
}

func TestAddCustomHabit(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepHabitSelection)

	// Act
	habit, err := env.service.AddCustomHabit(id, "Estudar japonês")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if habit.Category != domain.CustomHabitCategory {
		t.Errorf("expected category %q, got %q", domain.CustomHabitCategory, habit.Category)
	}

	state, _ := env.service.GetSession(id)
	if len(state.CustomHabits) != 1 {
		t.Fatalf("expected 1 custom habit, got %d", len(state.CustomHabits))
	}
	if !state.HasHabits() {
		t.Error("a custom habit alone must satisfy the habit requirement")
	}
}

func TestAccessoryOverlay_SelectLandsOnHabitSelection(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepAvatarPreview)

	// Act
	if err := env.service.OpenAccessories(id); err != nil {
		t.Fatalf("failed to open accessories: %v", err)
	}
	if err := env.service.SelectAccessory(id, "capa-coragem"); err != nil {
		t.Fatalf("failed to select accessory: %v", err)
	}

	// Assert
	state, _ := env.service.GetSession(id)
	if state.Step != domain.StepHabitSelection {
		t.Errorf("expected habit selection after accessory pick, got %s", state.Step)
	}
	if state.SelectedAccessoryID != "capa-coragem" {
		t.Errorf("expected accessory recorded, got %q", state.SelectedAccessoryID)
	}
}

func TestAccessoryOverlay_CloseReturnsToPreview(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepAvatarPreview)
	env.service.OpenAccessories(id)

	// Act
	if err := env.service.CloseAccessories(id); err != nil {
		t.Fatalf("failed to close accessories: %v", err)
	}

	// Assert
	state, _ := env.service.GetSession(id)
	if state.Step != domain.StepAvatarPreview {
		t.Errorf("expected avatar preview after close, got %s", state.Step)
	}
	if state.SelectedAccessoryID != "" {
		t.Errorf("expected no accessory recorded, got %q", state.SelectedAccessoryID)
	}
}

func TestOpenAccessories_OnlyFromPreview(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepWelcome)

	// Act
	err := env.service.OpenAccessories(id)

	// Assert
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCommit_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	env := newTestEnv()
	id := env.startAt(t, domain.StepCommit)

	// Act
	profile, err := env.service.Commit(ctx, id)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Level != 1 {
		t.Errorf("expected level 1, got %d", profile.Level)
	}
	if profile.Coins != 100 {
		t.Errorf("expected 100 coins, got %d", profile.Coins)
	}
	if profile.Energy != 30 || profile.Connection != 20 || profile.Skill != 25 {
		t.Errorf("expected stats (30, 20, 25), got (%d, %d, %d)",
			profile.Energy, profile.Connection, profile.Skill)
	}
	if !profile.IsDayZero {
		t.Error("expected day-zero flag set")
	}
	if !profile.OnboardingCompleted {
		t.Error("expected onboarding completed flag set")
	}
	if profile.GameMode != domain.GameModeRegular {
		t.Errorf("expected regular game mode, got %s", profile.GameMode)
	}

	payload := env.store.CommittedPayload()
	if payload == nil {
		t.Fatal("expected payload committed")
	}
	if len(payload.SelectedHabitIDs) != 1 || payload.SelectedHabitIDs[0] != "beber-agua" {
		t.Errorf("expected habit 'beber-agua' in payload, got %v", payload.SelectedHabitIDs)
	}

	// The session is gone and further calls fail
	if _, err := env.service.GetSession(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected session discarded after commit, got %v", err)
	}
	if len(env.queue.PublishedMessages[SubjectOnboardingCompleted]) != 1 {
		t.Errorf("expected 1 completion event, got %d",
			len(env.queue.PublishedMessages[SubjectOnboardingCompleted]))
	}
}

func TestCommit_BeforeCommitStepFails(t *testing.T) {
	// Arrange
	ctx := context.Background()
	env := newTestEnv()
	id := env.startAt(t, domain.StepHabitSelection)

	// Act
	_, err := env.service.Commit(ctx, id)

	// Assert
	if !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if env.store.CommittedPayload() != nil {
		t.Error("nothing may be persisted on a rejected commit")
	}
}

func TestCommit_RejectsConcurrentSecondCall(t *testing.T) {
	// Arrange
	ctx := context.Background()
	env := newTestEnv()
	id := env.startAt(t, domain.StepCommit)

	entered := make(chan struct{})
	release := make(chan struct{})
	env.store.CommitOnboardingFunc = func(ctx context.Context, payload *domain.CommitPayload) error {
		close(entered)
		<-release
		return nil
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := env.service.Commit(ctx, id)
		firstDone <- err
	}()
	<-entered

	// Act
	_, err := env.service.Commit(ctx, id)

	// Assert
	if !errors.Is(err, domain.ErrCommitInFlight) {
		t.Errorf("expected ErrCommitInFlight, got %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Errorf("expected first commit to succeed, got %v", err)
	}
}

func TestCommit_PersistenceFailureAllowsRetry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	env := newTestEnv()
	id := env.startAt(t, domain.StepCommit)

	calls := 0
	env.store.CommitOnboardingFunc = func(ctx context.Context, payload *domain.CommitPayload) error {
		calls++
		if calls == 1 {
			return errors.New("connection reset")
		}
		return nil
	}

	// Act
	_, firstErr := env.service.Commit(ctx, id)
	profile, retryErr := env.service.Commit(ctx, id)

	// Assert
	if !domain.IsPersistenceError(firstErr) {
		t.Fatalf("expected persistence error, got %v", firstErr)
	}
	if retryErr != nil {
		t.Fatalf("expected retry to succeed, got %v", retryErr)
	}
	if profile == nil || profile.Level != 1 {
		t.Errorf("expected committed profile on retry, got %+v", profile)
	}
	if calls != 2 {
		t.Errorf("expected 2 store calls, got %d", calls)
	}
}

func TestAbandon_DiscardsWithoutSideEffects(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepCommit)

	// Act
	if err := env.service.Abandon(id); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Assert
	if _, err := env.service.GetSession(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected session gone, got %v", err)
	}
	if env.store.CommittedPayload() != nil {
		t.Error("abandonment must not persist anything")
	}

	calls := env.scheduler.Calls()
	if len(calls) != 1 || !calls[0].Cancelled {
		t.Error("expected expiry timer cancelled on abandonment")
	}
}

func TestSessionExpiry_DiscardsStaleSession(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepArchetypeSelection)

	// Act
	env.scheduler.FirePending()

	// Assert
	if _, err := env.service.GetSession(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected expired session gone, got %v", err)
	}
	if env.store.CommittedPayload() != nil {
		t.Error("expiry must not persist anything")
	}
}

func TestSelectArchetype_Unknown(t *testing.T) {
	// Arrange
	env := newTestEnv()
	id := env.startAt(t, domain.StepArchetypeSelection)

	// Act
	err := env.service.SelectArchetype(id, "Bardo")

	// Assert
	if !domain.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
