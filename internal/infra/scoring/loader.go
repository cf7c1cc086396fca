package scoring

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// fileTable is the on-disk shape. Absent fields keep the base value.
type fileTable struct {
	Orb           *float64                 `yaml:"orb"`
	OrbBase       *float64                 `yaml:"orbBase"`
	MoonBonus     *int                     `yaml:"moonBonus"`
	PlanetWeights map[astro.Body]int       `yaml:"planetWeights"`
	AspectWeights map[astro.AspectType]int `yaml:"aspectWeights"`
}

// Load overlays the YAML file at path onto base and validates the result.
func Load(path string, base astro.ScoringTable) (astro.ScoringTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return astro.ScoringTable{}, fmt.Errorf("read scoring file: %w", err)
	}
	return Parse(data, base)
}

// Parse overlays a YAML document onto base and validates the result.
func Parse(data []byte, base astro.ScoringTable) (astro.ScoringTable, error) {
	var file fileTable
	if err := yaml.Unmarshal(data, &file); err != nil {
		return astro.ScoringTable{}, fmt.Errorf("parse scoring file: %w", err)
	}

	table := base.Clone()
	if file.Orb != nil {
		table.Orb = *file.Orb
	}
	if file.OrbBase != nil {
		table.OrbBase = *file.OrbBase
	}
	if file.MoonBonus != nil {
		table.MoonBonus = *file.MoonBonus
	}
	for body, w := range file.PlanetWeights {
		body = astro.Body(strings.ToLower(string(body)))
		if !body.Valid() {
			return astro.ScoringTable{}, fmt.Errorf("unknown body %q in planetWeights", body)
		}
		table.PlanetWeights[body] = w
	}
	for aspect, w := range file.AspectWeights {
		aspect = astro.AspectType(strings.ToLower(string(aspect)))
		if !knownAspect(aspect) {
			return astro.ScoringTable{}, fmt.Errorf("unknown aspect %q in aspectWeights", aspect)
		}
		table.AspectWeights[aspect] = w
	}
	if err := table.Validate(); err != nil {
		return astro.ScoringTable{}, err
	}
	return table, nil
}

func knownAspect(a astro.AspectType) bool {
	for _, def := range astro.MajorAspects {
		if def.Type == a {
			return true
		}
	}
	return false
}
