package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService() (*Service, *mocks.MockScheduler, *mocks.MockMessageQueue) {
	scheduler := mocks.NewMockScheduler()
	queue := mocks.NewMockMessageQueue()
	service := NewService(nil, &mocks.MockIDGenerator{}, scheduler, queue, newTestLogger())
	return service, scheduler, queue
}

func TestOpenCards_NormalAmounts(t *testing.T) {
	// Arrange
	service, _, _ := newTestService()

	// Act
	sessionID, cards, err := service.OpenCards(false)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected session id")
	}
	expected := []domain.RewardCard{
		{Type: domain.RewardCoins, Amount: 30},
		{Type: domain.RewardSkill, Amount: 10},
		{Type: domain.RewardEnergy, Amount: 5},
	}
	if len(cards) != len(expected) {
		t.Fatalf("expected %d cards, got %d", len(expected), len(cards))
	}
	for i, want := range expected {
		if cards[i] != want {
			t.Errorf("expected card %+v at slot %d, got %+v", want, i, cards[i])
		}
	}
}

func TestOpenCards_GuaranteedAmounts(t *testing.T) {
	// Arrange
	service, _, _ := newTestService()

	// Act
	_, cards, err := service.OpenCards(true)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expected := []domain.RewardCard{
		{Type: domain.RewardCoins, Amount: 50},
		{Type: domain.RewardSkill, Amount: 15},
		{Type: domain.RewardEnergy, Amount: 20},
	}
	for i, want := range expected {
		if cards[i] != want {
			t.Errorf("expected card %+v at slot %d, got %+v", want, i, cards[i])
		}
	}
}

func TestReveal_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, queue := newTestService()
	sessionID, _, _ := service.OpenCards(false)

	// Act
	reveal, err := service.Reveal(ctx, sessionID, 0)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reveal.Card.Type != domain.RewardCoins || reveal.Card.Amount != 30 {
		t.Errorf("expected 30 coins, got %+v", reveal.Card)
	}
	if reveal.Message != "Você ganhou 30 moedas!" {
		t.Errorf("unexpected message %q", reveal.Message)
	}
	if reveal.Repeated {
		t.Error("first flip must not be marked repeated")
	}
	if len(queue.PublishedMessages[SubjectRewardApplied]) != 1 {
		t.Errorf("expected 1 reward event, got %d", len(queue.PublishedMessages[SubjectRewardApplied]))
	}
}

func TestReveal_RepeatedFlipIsNoOp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, scheduler, queue := newTestService()
	sessionID, _, _ := service.OpenCards(false)
	first, _ := service.Reveal(ctx, sessionID, 1)

	// Act
	second, err := service.Reveal(ctx, sessionID, 1)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !second.Repeated {
		t.Error("expected repeated flag on re-flip")
	}
	if second.Card != first.Card {
		t.Errorf("expected same card, got %+v and %+v", first.Card, second.Card)
	}
	if len(queue.PublishedMessages[SubjectRewardApplied]) != 1 {
		t.Errorf("expected exactly 1 reward event, got %d", len(queue.PublishedMessages[SubjectRewardApplied]))
	}
	if len(scheduler.Calls()) != 0 {
		t.Errorf("re-flip must not count towards auto-dismiss, got %d scheduled calls", len(scheduler.Calls()))
	}
}

func TestReveal_SecondFlipSchedulesAutoDismiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, scheduler, queue := newTestService()
	sessionID, _, _ := service.OpenCards(false)

	// Act
	service.Reveal(ctx, sessionID, 0)
	service.Reveal(ctx, sessionID, 2)

	// Assert
	calls := scheduler.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 scheduled dismiss, got %d", len(calls))
	}
	if calls[0].Delay != 1500*time.Millisecond {
		t.Errorf("expected 1.5s delay, got %v", calls[0].Delay)
	}

	// Firing the timer dismisses the session
	scheduler.FirePending()

	if _, err := service.Reveal(ctx, sessionID, 1); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected session gone after auto-dismiss, got %v", err)
	}
	if len(queue.PublishedMessages[SubjectCardsDismissed]) != 1 {
		t.Errorf("expected 1 dismissal event, got %d", len(queue.PublishedMessages[SubjectCardsDismissed]))
	}
}

func TestCloseCards_CancelsPendingDismiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, scheduler, _ := newTestService()
	sessionID, _, _ := service.OpenCards(false)
	service.Reveal(ctx, sessionID, 0)
	service.Reveal(ctx, sessionID, 1)

	// Act
	if err := service.CloseCards(sessionID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Assert
	calls := scheduler.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 scheduled dismiss, got %d", len(calls))
	}
	if !calls[0].Cancelled {
		t.Error("expected pending dismiss cancelled after close")
	}
}

func TestReveal_InvalidIndex(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, _ := newTestService()
	sessionID, _, _ := service.OpenCards(false)

	for _, index := range []int{-1, 3} {
		// Act
		_, err := service.Reveal(ctx, sessionID, index)

		// Assert
		if !domain.IsValidationError(err) {
			t.Errorf("expected validation error for index %d, got %v", index, err)
		}
	}
}

func TestReveal_UnknownSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, _ := newTestService()

	// Act
	_, err := service.Reveal(ctx, "nope", 0)

	// Assert
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLevelUpBonus(t *testing.T) {
	// Arrange
	service, _, _ := newTestService()

	// Act
	energy, connection, skill := service.LevelUpBonus()

	// Assert
	if energy != 5 || connection != 5 || skill != 5 {
		t.Errorf("expected bonus (5, 5, 5), got (%d, %d, %d)", energy, connection, skill)
	}
}
