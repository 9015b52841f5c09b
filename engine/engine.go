// Package engine drives rule-based behavior selection for a roster of
// combatants across a single cooperative tick loop. One Driver per
// combatant; the Engine serializes one pass over all drivers per tick, so
// no locking is needed beyond fencing gambit edits outside tick boundaries.
package engine

import (
	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/engine/rules"
	"github.com/nathoo/gambitcore/types"
)

// Engine owns the roster and one driver per combatant.
type Engine struct {
	drivers []*Driver
	roster  combat.Roster
	ticks   int
	elapsed float64
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{}
}

// Add registers a combatant with its gambit and movement collaborator,
// returning the combatant's driver.
func (e *Engine) Add(c *combat.Combatant, gambit *rules.Gambit, mover combat.Mover) *Driver {
	d := NewDriver(c, gambit, mover)
	e.drivers = append(e.drivers, d)
	e.roster = append(e.roster, c)
	return d
}

// Remove takes a combatant out of the roster and drops its driver. Any
// in-flight execution targeting the removed combatant will be cancelled by
// its owning driver on the next tick.
func (e *Engine) Remove(c *combat.Combatant) {
	for i, m := range e.roster {
		if m == c {
			e.roster = append(e.roster[:i], e.roster[i+1:]...)
			break
		}
	}
	for i, d := range e.drivers {
		if d.self == c {
			e.drivers = append(e.drivers[:i], e.drivers[i+1:]...)
			break
		}
	}
}

// Roster returns the current roster. Callers must treat it as read-only.
func (e *Engine) Roster() combat.Roster { return e.roster }

// Drivers returns the registered drivers in registration order.
func (e *Engine) Drivers() []*Driver { return e.drivers }

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() int { return e.ticks }

// Elapsed returns the total simulated time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Tick steps every driver once, in registration order, and returns the
// events emitted during the pass. Each driver's step is synchronous and
// non-blocking.
func (e *Engine) Tick(dt float64) []types.Event {
	var events []types.Event
	for _, d := range e.drivers {
		events = append(events, d.Step(e.roster, dt)...)
	}
	e.ticks++
	e.elapsed += dt
	return events
}
