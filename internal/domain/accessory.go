package domain

// Accessory is a cosmetic avatar item. The catalog is static; onboarding
// records at most one selected id on the profile.
type Accessory struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EffectDescription string `json:"effect_description"`
}
