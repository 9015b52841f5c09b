// Package types defines the shared data structures for the GambitCore engine.
// This package contains only type definitions — no logic, no methods.
package types

// Vec3 is a position in 3D space.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// StatPool is a bounded named resource (health, mana, stamina, ...).
// Current is always kept in [0, Max].
type StatPool struct {
	Current float64 `yaml:"current"`
	Max     float64 `yaml:"max"`
}

// SelectorDef names one of the faction-relative target selectors.
type SelectorDef struct {
	Kind string // "self", "allies", "enemies"
}

// FilterDef is the data description of one target filter.
type FilterDef struct {
	Type   string // "stat_below", "stat_above", "nearest"
	Params map[string]any
}

// RequirementDef is a data precondition attached to an action template,
// checked against (actor, target) after the filter chain picks a target.
type RequirementDef struct {
	Type   string // "stat_at_least"
	Params map[string]any
}

// ActionDef describes one performable action kind.
type ActionDef struct {
	ID        string
	Name      string // display name
	Kind      string // ability kind the actor must carry
	Range     float64
	Delay     float64 // combat delay in seconds
	DelayStat string  // optional stat pool that scales the delay down
	Requires  []RequirementDef
	Payload   map[string]any // opaque, handed to the ability on perform
}

// RuleDef is a single combat rule: selector + ordered filters + action.
type RuleDef struct {
	ID          string
	Selector    SelectorDef
	Filters     []FilterDef
	Action      string // ActionDef ID
	SourceOrder int
}

// GambitDef is an ordered behavior profile. Rule order is priority order.
type GambitDef struct {
	ID    string
	Rules []RuleDef
}

// CombatantDef is the scenario-authoring description of one combatant.
type CombatantDef struct {
	ID        string              `yaml:"id"`
	Name      string              `yaml:"name"`
	Faction   string              `yaml:"faction"`
	Gambit    string              `yaml:"gambit"`
	Position  Vec3                `yaml:"position"`
	Speed     float64             `yaml:"speed"`
	Stats     map[string]StatPool `yaml:"stats"`
	Abilities []string            `yaml:"abilities"` // ability kinds
}

// ScenarioDef describes a full battle setup loaded from YAML.
type ScenarioDef struct {
	Name        string         `yaml:"name"`
	TickSeconds float64        `yaml:"tick_seconds"`
	Combatants  []CombatantDef `yaml:"combatants"`
}

// Event is emitted by drivers and the sim as actions change state.
type Event struct {
	Type string
	Data map[string]any
}
