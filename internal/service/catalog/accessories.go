package catalog

import (
	"fmt"

	"github.com/seu-repo/habitua/internal/domain"
)

// accessories is the static avatar accessory catalog. Onboarding records at
// most one selected id.
var accessories = []domain.Accessory{
	{
		ID:                "oculos-foco",
		Name:              "Óculos do Foco",
		EffectDescription: "Um olhar atento para não perder nenhuma missão diária.",
	},
	{
		ID:                "capa-coragem",
		Name:              "Capa da Coragem",
		EffectDescription: "Para encarar os hábitos mais difíceis sem hesitar.",
	},
	{
		ID:                "amuleto-constancia",
		Name:              "Amuleto da Constância",
		EffectDescription: "Um lembrete de que pequenos passos constroem grandes sequências.",
	},
	{
		ID:                "elmo-guardiao",
		Name:              "Elmo do Guardião",
		EffectDescription: "Proteção extra para os dias em que a motivação falta.",
	},
}

// ListAccessories returns the accessory catalog.
func (s *Service) ListAccessories() []domain.Accessory {
	out := make([]domain.Accessory, len(accessories))
	copy(out, accessories)
	return out
}

// GetAccessory looks up one accessory by id.
func (s *Service) GetAccessory(id string) (*domain.Accessory, error) {
	for i := range accessories {
		if accessories[i].ID == id {
			a := accessories[i]
			return &a, nil
		}
	}
	return nil, domain.NewValidationError(domain.CodeUnknownAccessory,
		fmt.Sprintf("acessório desconhecido: %s", id))
}
