package domain

type RewardType string

const (
	RewardCoins      RewardType = "coins"
	RewardSkill      RewardType = "skill"
	RewardEnergy     RewardType = "energy"
	RewardConnection RewardType = "connection"
)

// RewardCard is one slot of a lucky-card session. Cards are ephemeral and
// discarded after the session is dismissed.
type RewardCard struct {
	Type   RewardType `json:"type"`
	Amount int        `json:"amount"`
}

// RewardReveal is the result of flipping a card.
type RewardReveal struct {
	Index    int        `json:"index"`
	Card     RewardCard `json:"card"`
	Message  string     `json:"message"`
	Repeated bool       `json:"repeated"` // true when the card was already flipped; no event was emitted
}

// LevelUpBonus is the single terminal notification produced by a level-up.
type LevelUpBonus struct {
	NewLevel   int `json:"new_level"`
	Energy     int `json:"energy"`
	Connection int `json:"connection"`
	Skill      int `json:"skill"`
}
