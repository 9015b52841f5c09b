package target

import (
	"fmt"

	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/types"
)

// Filter is one narrowing/reordering step in a rule's filter chain.
// Apply must return a subset of candidates written into the prefix of the
// input slice (in-place narrowing — no per-filter copies). Returning an
// empty slice is a valid outcome.
//
// Filter chains are NOT commutative: later filters only see what earlier
// filters kept, so reordering can change whether any target is found at
// all, not just which one.
type Filter interface {
	Apply(self *combat.Combatant, candidates []*combat.Combatant) []*combat.Combatant
}

// ApplyAll threads candidates through the filters in declared order,
// short-circuiting as soon as the set becomes empty.
func ApplyAll(filters []Filter, self *combat.Combatant, candidates []*combat.Combatant) []*combat.Combatant {
	for _, f := range filters {
		candidates = f.Apply(self, candidates)
		if len(candidates) == 0 {
			return candidates
		}
	}
	return candidates
}

// StatThreshold retains candidates whose named stat pool sits below (or
// above) a percentage of that pool's maximum. Candidates missing the stat
// are dropped.
type StatThreshold struct {
	Stat    string
	Percent float64 // 0-100
	Above   bool    // retain above the threshold instead of below
}

// Apply narrows candidates in place, preserving input order.
func (f StatThreshold) Apply(self *combat.Combatant, candidates []*combat.Combatant) []*combat.Combatant {
	kept := candidates[:0]
	for _, c := range candidates {
		p, ok := c.Stat(f.Stat)
		if !ok || p.Max <= 0 {
			continue
		}
		pct := p.Current / p.Max * 100
		if (f.Above && pct > f.Percent) || (!f.Above && pct < f.Percent) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Nearest retains exactly the single candidate closest to self. Distance
// ties keep the earlier candidate (first minimum wins). Empty input passes
// through unchanged.
type Nearest struct{}

// Apply moves the nearest candidate to the front and truncates to one.
func (Nearest) Apply(self *combat.Combatant, candidates []*combat.Combatant) []*combat.Combatant {
	if len(candidates) == 0 {
		return candidates
	}
	best := 0
	bestDist := combat.Distance(self.Pos, candidates[0].Pos)
	for i := 1; i < len(candidates); i++ {
		if d := combat.Distance(self.Pos, candidates[i].Pos); d < bestDist {
			best, bestDist = i, d
		}
	}
	candidates[0] = candidates[best]
	return candidates[:1]
}

// FilterFactory builds a Filter from its authoring parameters.
type FilterFactory func(params map[string]any) (Filter, error)

// filterFactories maps variant tags to factories. Content-authoring
// extensibility goes through RegisterFilter rather than new built-ins.
var filterFactories = map[string]FilterFactory{
	"stat_below": statThresholdFactory(false),
	"stat_above": statThresholdFactory(true),
	"nearest": func(map[string]any) (Filter, error) {
		return Nearest{}, nil
	},
}

func statThresholdFactory(above bool) FilterFactory {
	return func(params map[string]any) (Filter, error) {
		stat, _ := params["stat"].(string)
		if stat == "" {
			return nil, fmt.Errorf("stat threshold filter requires a stat name")
		}
		pct := combat.Num(params["percent"])
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("stat threshold percent %v out of range [0, 100]", pct)
		}
		return StatThreshold{Stat: stat, Percent: pct, Above: above}, nil
	}
}

// RegisterFilter adds a custom filter variant under the given tag.
// Registering an existing tag replaces it.
func RegisterFilter(tag string, factory FilterFactory) {
	filterFactories[tag] = factory
}

// KnownFilter reports whether a filter tag is registered.
func KnownFilter(tag string) bool {
	_, ok := filterFactories[tag]
	return ok
}

// NewFilter builds a Filter from its data definition via the registered
// factory for its tag.
func NewFilter(def types.FilterDef) (Filter, error) {
	factory, ok := filterFactories[def.Type]
	if !ok {
		return nil, fmt.Errorf("unknown filter type %q", def.Type)
	}
	f, err := factory(def.Params)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", def.Type, err)
	}
	return f, nil
}
