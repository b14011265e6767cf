package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
)

// customHabitIcon is the fixed icon assigned by the custom habit factory.
const customHabitIcon = "star"

// defaultHabits is the fixed default catalog shown during onboarding.
var defaultHabits = []domain.HabitDefinition{
	{
		ID:          "beber-agua",
		Name:        "Beber água",
		Icon:        "water_drop",
		Description: "Beba pelo menos 2 litros de água por dia.",
		Category:    "Saúde",
		Info: domain.HabitInfo{
			WhyDo: "A hidratação melhora a energia, a pele e a concentração.",
			HowDo: "Deixe uma garrafa por perto e beba um copo a cada hora.",
		},
	},
	{
		ID:          "meditar",
		Name:        "Meditar",
		Icon:        "self_improvement",
		Description: "Reserve 10 minutos de silêncio e respiração.",
		Category:    "Mente",
		Info: domain.HabitInfo{
			WhyDo: "A meditação reduz a ansiedade e aumenta o foco.",
			HowDo: "Sente-se confortavelmente, feche os olhos e acompanhe a respiração.",
		},
	},
	{
		ID:          "exercitar",
		Name:        "Exercitar-se",
		Icon:        "fitness_center",
		Description: "Mova o corpo por pelo menos 30 minutos.",
		Category:    "Saúde",
		Info: domain.HabitInfo{
			WhyDo: "O exercício regular fortalece o corpo e melhora o humor.",
			HowDo: "Escolha uma atividade que goste: caminhada, corrida ou academia.",
		},
	},
	{
		ID:          "ler",
		Name:        "Ler",
		Icon:        "menu_book",
		Description: "Leia ao menos 10 páginas por dia.",
		Category:    "Mente",
		Info: domain.HabitInfo{
			WhyDo: "A leitura diária expande vocabulário e repertório.",
			HowDo: "Mantenha um livro na mesa de cabeceira e leia antes de dormir.",
		},
	},
	{
		ID:          "dormir-cedo",
		Name:        "Dormir cedo",
		Icon:        "bedtime",
		Description: "Vá para a cama antes das 23h.",
		Category:    "Saúde",
		Info: domain.HabitInfo{
			WhyDo: "Dormir bem consolida a memória e recupera a energia.",
			HowDo: "Desligue as telas 30 minutos antes de deitar.",
		},
	},
	{
		ID:          "gratidao",
		Name:        "Praticar gratidão",
		Icon:        "volunteer_activism",
		Description: "Anote três coisas boas do seu dia.",
		Category:    "Conexão",
		Info: domain.HabitInfo{
			WhyDo: "A gratidão fortalece vínculos e o bem-estar emocional.",
			HowDo: "Antes de dormir, escreva três momentos pelos quais é grato.",
		},
	},
}

// ListHabits returns the default habit catalog.
func (s *Service) ListHabits() []domain.HabitDefinition {
	out := make([]domain.HabitDefinition, len(defaultHabits))
	copy(out, defaultHabits)
	return out
}

// NewCustomHabit builds a user-created habit. The id comes from the injected
// generator prefixed with "custom-"; icon and category are fixed.
func (s *Service) NewCustomHabit(name string) (*domain.HabitDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError(domain.CodeEmptyHabitName,
			"o nome do hábito não pode ser vazio")
	}

	habit := &domain.HabitDefinition{
		ID:       domain.CustomHabitIDPrefix + s.idGen.NewID(),
		Name:     name,
		Icon:     customHabitIcon,
		Category: domain.CustomHabitCategory,
	}

	s.log.Info("Custom habit created",
		zap.String("habit_id", habit.ID),
		zap.String("name", habit.Name),
	)

	return habit, nil
}
