package domain

type GameMode string

const (
	GameModeRegular     GameMode = "regular"
	GameModeSquad       GameMode = "squad"
	GameModeCompetitive GameMode = "competitive"
)

// UserProfile is the durable progression profile. It is created exactly once
// when the onboarding wizard commits and mutated afterwards by progression
// and reward events.
type UserProfile struct {
	Level               int           `json:"level"`
	Energy              int           `json:"energy"`
	Connection          int           `json:"connection"`
	Skill               int           `json:"skill"`
	Coins               int           `json:"coins"`
	Archetype           ArchetypeName `json:"archetype"`
	IsDayZero           bool          `json:"is_day_zero"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
	GameMode            GameMode      `json:"game_mode"`
}

// Stats returns the profile's stat triple.
func (p *UserProfile) Stats() Stats {
	return Stats{Energy: p.Energy, Connection: p.Connection, Skill: p.Skill}
}

// CommitPayload carries everything the wizard persists in one logical
// transaction.
type CommitPayload struct {
	Profile          UserProfile      `json:"profile"`
	SelectedHabitIDs []string         `json:"selected_habit_ids"`
	CustomHabits     []CustomHabitRef `json:"custom_habits"`
	AccessoryID      string           `json:"accessory_id,omitempty"`
}
