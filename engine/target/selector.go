// Package target implements faction-relative target selection and the
// ordered, order-sensitive filter chain that narrows a candidate set down
// to at most one target.
package target

import (
	"fmt"

	"github.com/nathoo/gambitcore/engine/combat"
)

// Selector narrows a roster to a faction-relative candidate subset.
// Selectors are pure and stateless.
type Selector int

const (
	// SelectSelf yields exactly the acting combatant.
	SelectSelf Selector = iota
	// SelectAllies yields same-faction roster members, excluding self.
	SelectAllies
	// SelectEnemies yields roster members of a different faction.
	SelectEnemies
)

// ParseSelector maps an authoring tag to its Selector.
func ParseSelector(kind string) (Selector, error) {
	switch kind {
	case "self":
		return SelectSelf, nil
	case "allies":
		return SelectAllies, nil
	case "enemies":
		return SelectEnemies, nil
	default:
		return 0, fmt.Errorf("unknown selector %q", kind)
	}
}

// String returns the authoring tag for the selector.
func (s Selector) String() string {
	switch s {
	case SelectSelf:
		return "self"
	case SelectAllies:
		return "allies"
	case SelectEnemies:
		return "enemies"
	default:
		return "unknown"
	}
}

// Select appends the selected candidates to dst and returns it, preserving
// roster order. dst is a caller-owned scratch buffer reused across
// evaluations so a full pass allocates nothing; an empty result is a valid
// outcome, not an error.
func (s Selector) Select(self *combat.Combatant, roster combat.Roster, dst []*combat.Combatant) []*combat.Combatant {
	switch s {
	case SelectSelf:
		return append(dst, self)
	case SelectAllies:
		for _, c := range roster {
			if c != self && c.Faction == self.Faction {
				dst = append(dst, c)
			}
		}
	case SelectEnemies:
		for _, c := range roster {
			if c.Faction != self.Faction {
				dst = append(dst, c)
			}
		}
	}
	return dst
}
