package domain

type ArchetypeName string

const (
	ArchetypeGuerreiro  ArchetypeName = "Guerreiro"
	ArchetypeMestre     ArchetypeName = "Mestre"
	ArchetypeSabio      ArchetypeName = "Sábio"
	ArchetypeGuardiao   ArchetypeName = "Guardião"
	ArchetypeIndefinido ArchetypeName = "Indefinido"
)

// StatWeights bias the initial stat allocation. Each weight is in [1,3].
type StatWeights struct {
	Energy     int `json:"energy"`
	Skill      int `json:"skill"`
	Connection int `json:"connection"`
}

// Sum returns the total of the three weights.
func (w StatWeights) Sum() int {
	return w.Energy + w.Skill + w.Connection
}

// Archetype is a named personality profile. The catalog is immutable and
// defined once at process start.
type Archetype struct {
	Name        ArchetypeName `json:"name"`
	Description string        `json:"description"`
	Weights     StatWeights   `json:"strength_weights"`
}

// Stats are the three numeric progression attributes of a profile.
type Stats struct {
	Energy     int `json:"energy"`
	Connection int `json:"connection"`
	Skill      int `json:"skill"`
}
