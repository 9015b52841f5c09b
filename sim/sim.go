// Package sim provides a headless battle harness: it assembles combatants
// from a scenario, wires the sample abilities and a linear mover into the
// engine, and sweeps defeated combatants out of the roster.
package sim

import (
	"fmt"

	"github.com/nathoo/gambitcore/engine"
	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/loader"
	"github.com/nathoo/gambitcore/types"
)

// EventCombatantDefeated is emitted when a combatant's health pool empties
// and it is removed from the roster.
const EventCombatantDefeated = "combatant_defeated"

// Sim runs one battle to completion, one cooperative tick at a time.
type Sim struct {
	eng         *engine.Engine
	mover       *LinearMover
	tickSeconds float64
}

// New assembles a battle from compiled behavior content and a scenario.
// Unknown gambit or ability references fail here, before the first tick.
func New(lib *loader.Library, sc *types.ScenarioDef, seed int64) (*Sim, error) {
	s := &Sim{
		eng:         engine.New(),
		mover:       NewLinearMover(0.5),
		tickSeconds: sc.TickSeconds,
	}
	rng := NewRNG(seed)

	for _, def := range sc.Combatants {
		gambit, ok := lib.Gambits[def.Gambit]
		if !ok {
			return nil, fmt.Errorf("combatant %q references undefined gambit %q", def.ID, def.Gambit)
		}

		abilities := make(map[string]combat.Ability, len(def.Abilities))
		for _, kind := range def.Abilities {
			factory, ok := abilityFactories[kind]
			if !ok {
				return nil, fmt.Errorf("combatant %q references unknown ability kind %q", def.ID, kind)
			}
			abilities[kind] = factory(rng)
		}

		stats := make(map[string]types.StatPool, len(def.Stats))
		for name, pool := range def.Stats {
			stats[name] = pool
		}

		name := def.Name
		if name == "" {
			name = def.ID
		}
		s.eng.Add(&combat.Combatant{
			ID:        def.ID,
			Name:      name,
			Faction:   def.Faction,
			Pos:       def.Position,
			Speed:     def.Speed,
			Stats:     stats,
			Abilities: abilities,
		}, gambit, s.mover)
	}

	return s, nil
}

// Engine exposes the underlying engine (drivers, roster, tick count).
func (s *Sim) Engine() *engine.Engine { return s.eng }

// TickSeconds returns the configured tick duration.
func (s *Sim) TickSeconds() float64 { return s.tickSeconds }

// Roster returns the living combatants.
func (s *Sim) Roster() combat.Roster { return s.eng.Roster() }

// Tick advances movement, steps every driver once, then removes defeated
// combatants. Returns the events emitted this tick.
func (s *Sim) Tick() []types.Event {
	s.mover.Tick(s.tickSeconds)
	events := s.eng.Tick(s.tickSeconds)

	// Defeat sweep. Removal happens after the pass, so executions aimed at
	// the fallen cancel on their owners' next tick.
	for _, c := range append(combat.Roster{}, s.eng.Roster()...) {
		if !c.Alive() {
			s.eng.Remove(c)
			events = append(events, types.Event{
				Type: EventCombatantDefeated,
				Data: map[string]any{"combatant": c.ID, "faction": c.Faction},
			})
		}
	}
	return events
}

// Over reports whether at most one faction still has living members.
func (s *Sim) Over() bool {
	factions := map[string]bool{}
	for _, c := range s.eng.Roster() {
		factions[c.Faction] = true
	}
	return len(factions) <= 1
}

// Run ticks until the battle is over or maxTicks elapse, returning all
// events in order.
func (s *Sim) Run(maxTicks int) []types.Event {
	var events []types.Event
	for i := 0; i < maxTicks && !s.Over(); i++ {
		events = append(events, s.Tick()...)
	}
	return events
}
