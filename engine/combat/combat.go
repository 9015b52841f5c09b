// Package combat defines the runtime combatant model shared by target
// selection, rule evaluation, and action execution. Combatants are owned
// by the simulation; everything above this package holds references only.
package combat

import (
	"math"

	"github.com/nathoo/gambitcore/types"
)

// Ability performs the concrete effect of one action kind. The core never
// implements effects itself; it invokes Perform exactly once per execution
// and then polls DonePerforming once per tick until it reports true.
type Ability interface {
	Perform(actor, target *Combatant, payload map[string]any)
	DonePerforming() bool
}

// Mover is the movement collaborator. The core asks it to start closing
// distance and whether the actor is within execution range; pathfinding
// and actual position updates are the host's concern.
type Mover interface {
	BeginMove(actor, target *Combatant)
	InRange(actor, target *Combatant, rng float64) bool
}

// Combatant is one agent participating in combat. Faction must not change
// once the combatant has entered a roster.
type Combatant struct {
	ID        string
	Name      string
	Faction   string
	Pos       types.Vec3
	Speed     float64
	Stats     map[string]types.StatPool
	Abilities map[string]Ability // keyed by ability kind
}

// Stat returns the named stat pool and whether it exists.
func (c *Combatant) Stat(name string) (types.StatPool, bool) {
	p, ok := c.Stats[name]
	return p, ok
}

// SetStat sets a stat pool's current value, clamped to [0, Max].
// Setting an undefined stat is a no-op.
func (c *Combatant) SetStat(name string, value float64) {
	p, ok := c.Stats[name]
	if !ok {
		return
	}
	p.Current = math.Max(0, math.Min(value, p.Max))
	c.Stats[name] = p
}

// AdjustStat adds delta to a stat pool's current value, clamped to [0, Max].
func (c *Combatant) AdjustStat(name string, delta float64) {
	if p, ok := c.Stats[name]; ok {
		c.SetStat(name, p.Current+delta)
	}
}

// StatFraction returns current/max for the named pool, or 0 if the pool
// is missing or has a zero maximum.
func (c *Combatant) StatFraction(name string) float64 {
	p, ok := c.Stats[name]
	if !ok || p.Max <= 0 {
		return 0
	}
	return p.Current / p.Max
}

// Alive reports whether the combatant can still act. A combatant with a
// health pool is alive while it is above zero; one without a health pool
// is always considered alive.
func (c *Combatant) Alive() bool {
	p, ok := c.Stats["health"]
	if !ok {
		return true
	}
	return p.Current > 0
}

// Ability returns the combatant's ability for the given kind.
func (c *Combatant) Ability(kind string) (Ability, bool) {
	a, ok := c.Abilities[kind]
	return a, ok
}

// Roster is the set of combatants currently in the fight.
type Roster []*Combatant

// Contains reports whether c is still part of the roster.
func (r Roster) Contains(c *Combatant) bool {
	for _, m := range r {
		if m == c {
			return true
		}
	}
	return false
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b types.Vec3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Num coerces an authoring parameter or payload value to float64. Lua
// decoding produces float64, programmatic defs may carry int or int64;
// anything else reads as zero.
func Num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
