package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/gambitcore/types"
)

// LoadScenario reads a YAML scenario (roster) file and validates it.
// Gambit references are resolved against a Library by the host when the
// battle is assembled.
func LoadScenario(path string) (*types.ScenarioDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var sc types.ScenarioDef
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func validateScenario(sc *types.ScenarioDef) error {
	ve := &ValidationError{}

	if sc.TickSeconds < 0 {
		ve.Errors = append(ve.Errors, "tick_seconds must not be negative")
	}
	if sc.TickSeconds == 0 {
		sc.TickSeconds = 0.1
	}
	if len(sc.Combatants) == 0 {
		ve.Errors = append(ve.Errors, "scenario defines no combatants")
	}

	seen := map[string]bool{}
	for _, c := range sc.Combatants {
		if c.ID == "" {
			ve.Errors = append(ve.Errors, "combatant with empty id")
			continue
		}
		if seen[c.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate combatant ID %q", c.ID))
		}
		seen[c.ID] = true

		if c.Faction == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("combatant %q: faction is required", c.ID))
		}
		if c.Gambit == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("combatant %q: gambit is required", c.ID))
		}
		if c.Speed < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("combatant %q: speed must not be negative", c.ID))
		}
		for name, pool := range c.Stats {
			if pool.Max <= 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"combatant %q: stat %q needs a positive max", c.ID, name))
			}
			if pool.Current < 0 || pool.Current > pool.Max {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"combatant %q: stat %q current %v outside [0, %v]", c.ID, name, pool.Current, pool.Max))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
