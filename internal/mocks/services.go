package mocks

import (
	"context"

	"github.com/seu-repo/habitua/internal/domain"
)

// MockRewardService is a mock implementation of RewardService
type MockRewardService struct {
	OpenCardsFunc    func(guaranteed bool) (string, []domain.RewardCard, error)
	RevealFunc       func(ctx context.Context, sessionID string, index int) (*domain.RewardReveal, error)
	CloseCardsFunc   func(sessionID string) error
	LevelUpBonusFunc func() (int, int, int)
}

func (m *MockRewardService) OpenCards(guaranteed bool) (string, []domain.RewardCard, error) {
	if m.OpenCardsFunc != nil {
		return m.OpenCardsFunc(guaranteed)
	}
	return "", nil, nil
}

func (m *MockRewardService) Reveal(ctx context.Context, sessionID string, index int) (*domain.RewardReveal, error) {
	if m.RevealFunc != nil {
		return m.RevealFunc(ctx, sessionID, index)
	}
	return nil, nil
}

func (m *MockRewardService) CloseCards(sessionID string) error {
	if m.CloseCardsFunc != nil {
		return m.CloseCardsFunc(sessionID)
	}
	return nil
}

func (m *MockRewardService) LevelUpBonus() (energy, connection, skill int) {
	if m.LevelUpBonusFunc != nil {
		return m.LevelUpBonusFunc()
	}
	return 5, 5, 5
}
