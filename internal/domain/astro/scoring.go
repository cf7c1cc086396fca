package astro

import (
	"errors"
	"fmt"
	"math"
)

// ScoringTable holds the weights used to rank transit aspects. Tables are
// values: callers receive copies and never mutate a table in use.
type ScoringTable struct {
	Orb           float64            `yaml:"orb" json:"orb"`
	OrbBase       float64            `yaml:"orbBase" json:"orbBase"`
	MoonBonus     int                `yaml:"moonBonus" json:"moonBonus"`
	PlanetWeights map[Body]int       `yaml:"planetWeights" json:"planetWeights"`
	AspectWeights map[AspectType]int `yaml:"aspectWeights" json:"aspectWeights"`
}

// DefaultScoring returns the stock table: 8° orb, Pluto-heavy planet weights,
// conjunction-heavy aspect weights and a 15 point bonus for natal Moon contacts.
func DefaultScoring() ScoringTable {
	return ScoringTable{
		Orb:       8,
		OrbBase:   10,
		MoonBonus: 15,
		PlanetWeights: map[Body]int{
			Pluto:   50,
			Uranus:  40,
			Saturn:  30,
			Neptune: 25,
			Jupiter: 15,
		},
		AspectWeights: map[AspectType]int{
			Conjunction: 30,
			Opposition:  25,
			Square:      20,
			Trine:       10,
			Sextile:     5,
		},
	}
}

// Clone returns a deep copy.
func (t ScoringTable) Clone() ScoringTable {
	out := t
	out.PlanetWeights = make(map[Body]int, len(t.PlanetWeights))
	for k, v := range t.PlanetWeights {
		out.PlanetWeights[k] = v
	}
	out.AspectWeights = make(map[AspectType]int, len(t.AspectWeights))
	for k, v := range t.AspectWeights {
		out.AspectWeights[k] = v
	}
	return out
}

// MaxOrb keeps aspect windows disjoint: the closest major aspects are 60° apart.
const MaxOrb = 10.0

// Validate checks that every slow body and major aspect has a non-negative weight.
func (t ScoringTable) Validate() error {
	if t.Orb <= 0 || t.Orb > MaxOrb {
		return fmt.Errorf("orb must be within (0, %v], got %v", MaxOrb, t.Orb)
	}
	if t.OrbBase < t.Orb {
		return errors.New("orbBase must not be smaller than orb")
	}
	if t.MoonBonus < 0 {
		return errors.New("moonBonus must be non-negative")
	}
	for _, body := range SlowBodies {
		w, ok := t.PlanetWeights[body]
		if !ok {
			return fmt.Errorf("planet weight for %s missing", body)
		}
		if w < 0 {
			return fmt.Errorf("planet weight for %s must be non-negative", body)
		}
	}
	for _, aspect := range MajorAspects {
		w, ok := t.AspectWeights[aspect.Type]
		if !ok {
			return fmt.Errorf("aspect weight for %s missing", aspect.Type)
		}
		if w < 0 {
			return fmt.Errorf("aspect weight for %s must be non-negative", aspect.Type)
		}
	}
	return nil
}

// Score weighs one matched aspect.
func (t ScoringTable) Score(transit, natal Body, aspect AspectType, orb float64) int {
	score := t.PlanetWeights[transit] + t.AspectWeights[aspect] + int(math.Round(t.OrbBase-orb))
	if natal == Moon {
		score += t.MoonBonus
	}
	if score < 0 {
		return 0
	}
	return score
}

// StaticScoring serves one fixed table.
type StaticScoring struct {
	table ScoringTable
}

// NewStaticScoring freezes a copy of table.
func NewStaticScoring(table ScoringTable) StaticScoring {
	return StaticScoring{table: table.Clone()}
}

// Scoring implements ScoringSource.
func (s StaticScoring) Scoring() ScoringTable {
	if s.table.PlanetWeights == nil {
		return DefaultScoring()
	}
	return s.table.Clone()
}
