package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/habitua/internal/domain"
	"github.com/seu-repo/habitua/internal/ports"
)

// archetypes is the fixed ordered catalog. Weights are designer-tunable bias
// constants in [1,3]; the derived stat is base + weight * multiplier.
var archetypes = []domain.Archetype{
	{
		Name:        domain.ArchetypeGuerreiro,
		Description: "Enfrenta os desafios de frente e transforma disciplina em força.",
		Weights:     domain.StatWeights{Energy: 3, Skill: 2, Connection: 1},
	},
	{
		Name:        domain.ArchetypeMestre,
		Description: "Domina suas rotinas e aprimora cada habilidade com constância.",
		Weights:     domain.StatWeights{Energy: 2, Skill: 3, Connection: 1},
	},
	{
		Name:        domain.ArchetypeSabio,
		Description: "Aprende com cada hábito e compartilha o que descobre.",
		Weights:     domain.StatWeights{Energy: 1, Skill: 3, Connection: 2},
	},
	{
		Name:        domain.ArchetypeGuardiao,
		Description: "Protege quem está ao redor e cultiva laços duradouros.",
		Weights:     domain.StatWeights{Energy: 2, Skill: 1, Connection: 3},
	},
	{
		Name:        domain.ArchetypeIndefinido,
		Description: "Ainda descobrindo seu caminho, com potencial em tudo.",
		Weights:     domain.StatWeights{Energy: 2, Skill: 2, Connection: 2},
	},
}

// Service implements ports.CatalogService over the static catalogs.
type Service struct {
	cfg   *domain.GameConfig
	idGen ports.IDGenerator
	log   *zap.Logger
}

// NewService creates a new catalog service
func NewService(cfg *domain.GameConfig, idGen ports.IDGenerator, log *zap.Logger) *Service {
	if cfg == nil {
		cfg = domain.DefaultGameConfig()
	}

	return &Service{
		cfg:   cfg,
		idGen: idGen,
		log:   log,
	}
}

// ListArchetypes returns the catalog in its fixed order.
func (s *Service) ListArchetypes() []domain.Archetype {
	out := make([]domain.Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}

// GetArchetype looks up one archetype by name.
func (s *Service) GetArchetype(name domain.ArchetypeName) (*domain.Archetype, error) {
	for i := range archetypes {
		if archetypes[i].Name == name {
			a := archetypes[i]
			return &a, nil
		}
	}
	return nil, domain.NewValidationError(domain.CodeUnknownArchetype,
		fmt.Sprintf("arquétipo desconhecido: %s", name))
}

// DeriveStats computes the initial stat triple for an archetype. The rule is
// deterministic: the same archetype always yields the same stats.
func (s *Service) DeriveStats(name domain.ArchetypeName) (domain.Stats, error) {
	a, err := s.GetArchetype(name)
	if err != nil {
		return domain.Stats{}, err
	}

	return domain.Stats{
		Energy:     s.cfg.BaseStat + a.Weights.Energy*s.cfg.WeightMultiplier,
		Connection: s.cfg.BaseStat + a.Weights.Connection*s.cfg.WeightMultiplier,
		Skill:      s.cfg.BaseStat + a.Weights.Skill*s.cfg.WeightMultiplier,
	}, nil
}
