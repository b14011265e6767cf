package domain

// CustomHabitCategory is assigned to every user-created habit.
const CustomHabitCategory = "Personalizado"

// CustomHabitIDPrefix prefixes ids produced by the custom habit factory.
const CustomHabitIDPrefix = "custom-"

type HabitInfo struct {
	WhyDo string `json:"why_do"`
	HowDo string `json:"how_do"`
}

// HabitDefinition is immutable once created. Definitions come from the fixed
// default catalog or from the custom habit factory.
type HabitDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Info        HabitInfo `json:"info"`
}

// CustomHabitRef is the persisted shape of a user-created habit.
type CustomHabitRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HabitConfig is the weekly schedule for one habit. Days are integers in
// [0,6] with 0 = Sunday; the set must be non-empty before it may be saved.
type HabitConfig struct {
	Days     []int  `json:"days"`
	Time     string `json:"time"` // 24h "HH:MM"
	Reminder bool   `json:"reminder"`
}
