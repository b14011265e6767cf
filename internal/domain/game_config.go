package domain

import "time"

// CardAmounts are the fixed amounts for one lucky-card session, indexed by
// slot in the fixed type order [coins, skill, energy].
type CardAmounts struct {
	Coins  int `mapstructure:"coins"`
	Skill  int `mapstructure:"skill"`
	Energy int `mapstructure:"energy"`
}

// GameConfig holds the designer-tunable economy constants.
type GameConfig struct {
	BaseStat         int           `mapstructure:"base_stat"`
	WeightMultiplier int           `mapstructure:"weight_multiplier"`
	StartingLevel    int           `mapstructure:"starting_level"`
	StartingCoins    int           `mapstructure:"starting_coins"`
	LevelUpStatBonus int           `mapstructure:"level_up_stat_bonus"`
	NormalCards      CardAmounts   `mapstructure:"normal_cards"`
	GuaranteedCards  CardAmounts   `mapstructure:"guaranteed_cards"`
	CardDismissDelay time.Duration `mapstructure:"card_dismiss_delay"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
}

// DefaultGameConfig returns the shipped economy tuning.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		BaseStat:         15,
		WeightMultiplier: 5,
		StartingLevel:    1,
		StartingCoins:    100,
		LevelUpStatBonus: 5,
		NormalCards:      CardAmounts{Coins: 30, Skill: 10, Energy: 5},
		GuaranteedCards:  CardAmounts{Coins: 50, Skill: 15, Energy: 20},
		CardDismissDelay: 1500 * time.Millisecond,
		SessionTTL:       30 * time.Minute,
	}
}
