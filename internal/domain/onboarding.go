package domain

// OnboardingStep is the current position in the wizard's main sequence.
// AccessorySelection is an overlay reachable from AvatarPreview; it returns
// to the preview and does not advance the sequence by itself.
type OnboardingStep string

const (
	StepWelcome            OnboardingStep = "welcome"
	StepArchetypeSelection OnboardingStep = "archetype_selection"
	StepAvatarPreview      OnboardingStep = "avatar_preview"
	StepAccessorySelection OnboardingStep = "accessory_selection"
	StepHabitSelection     OnboardingStep = "habit_selection"
	StepCommit             OnboardingStep = "commit"
	StepCompleted          OnboardingStep = "completed"
)

// OnboardingState is the transient wizard state for one session. It lives
// only in memory and is discarded after commit or abandonment.
type OnboardingState struct {
	Step                OnboardingStep    `json:"step"`
	SelectedArchetype   ArchetypeName     `json:"selected_archetype,omitempty"`
	SelectedHabitIDs    []string          `json:"selected_habit_ids"`
	CustomHabits        []HabitDefinition `json:"custom_habits"`
	SelectedAccessoryID string            `json:"selected_accessory_id,omitempty"`
}

// NewOnboardingState returns the wizard's initial state.
func NewOnboardingState() *OnboardingState {
	return &OnboardingState{
		Step:             StepWelcome,
		SelectedHabitIDs: []string{},
		CustomHabits:     []HabitDefinition{},
	}
}

// HasHabits reports whether at least one default or custom habit was chosen.
func (s *OnboardingState) HasHabits() bool {
	return len(s.SelectedHabitIDs) > 0 || len(s.CustomHabits) > 0
}

// HasArchetype reports whether an archetype was selected.
func (s *OnboardingState) HasArchetype() bool {
	return s.SelectedArchetype != ""
}
