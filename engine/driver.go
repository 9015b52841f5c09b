package engine

import (
	"github.com/nathoo/gambitcore/engine/action"
	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/engine/rules"
	"github.com/nathoo/gambitcore/types"
)

// Event types emitted by drivers.
const (
	EventActionStarted    = "action_started"
	EventActionPerforming = "action_performing"
	EventActionCompleted  = "action_completed"
	EventActionCancelled  = "action_cancelled"
)

// Driver orchestrates one combatant: it owns that combatant's current
// action execution (zero or one at a time) and a shared gambit reference.
// Idleness is simply the absence of an execution — there is no idle state
// object, and re-evaluation happens at most once per tick.
type Driver struct {
	self    *combat.Combatant
	gambit  *rules.Gambit
	mover   combat.Mover
	current *action.Execution
	scratch []*combat.Combatant
}

// NewDriver creates a driver for one combatant. Many drivers may share the
// same gambit; it is read-only during evaluation.
func NewDriver(self *combat.Combatant, gambit *rules.Gambit, mover combat.Mover) *Driver {
	return &Driver{self: self, gambit: gambit, mover: mover}
}

// Combatant returns the driven combatant.
func (d *Driver) Combatant() *combat.Combatant { return d.self }

// Current returns the in-flight execution, or nil when idle.
func (d *Driver) Current() *action.Execution { return d.current }

// Idle reports whether the driver has no in-flight execution.
func (d *Driver) Idle() bool { return d.current == nil }

// Step advances the driver by one tick: advance any in-flight execution,
// discard it once terminal, then — if idle — ask the gambit for a match and
// begin driving a fresh execution from Created. Failing to match leaves the
// driver idle until the next tick.
func (d *Driver) Step(roster combat.Roster, dt float64) []types.Event {
	var events []types.Event

	if d.current != nil {
		events = d.advance(roster, dt, events)
		if d.current.State().Terminal() {
			d.current = nil
		}
	}

	if d.current == nil && d.self.Alive() {
		if m, ok := d.gambit.FindMatch(d.self, roster, d.ensureScratch(len(roster))); ok {
			d.current = m.Template.Execute(d.self, m.Target)
			events = append(events, d.event(EventActionStarted, map[string]any{
				"rule":   m.RuleID,
				"target": m.Target.ID,
			}))
			// Drive from Created: setup happens on the match tick, readiness
			// gating starts next tick. A setup that cancels surfaces as an
			// event like any later transition.
			events = d.advance(roster, dt, events)
			if d.current.State().Terminal() {
				d.current = nil
			}
		}
	}

	return events
}

// advance steps the in-flight execution, cancelling it first if its target
// was invalidated. Executions that already reached Performing are never
// aborted — completion is awaited before re-evaluation.
func (d *Driver) advance(roster combat.Roster, dt float64, events []types.Event) []types.Event {
	x := d.current
	if x.State().Terminal() {
		return events
	}

	if x.State() != action.Performing && staleTarget(x, d.self, roster) {
		x.Cancel()
		return append(events, d.event(EventActionCancelled, map[string]any{
			"target": x.Target().ID,
		}))
	}

	prev := x.State()
	next := x.Step(d.mover, dt)
	if next == prev {
		return events
	}
	switch next {
	case action.Performing:
		events = append(events, d.event(EventActionPerforming, map[string]any{
			"target": x.Target().ID,
		}))
	case action.Completed:
		events = append(events, d.event(EventActionCompleted, map[string]any{
			"target": x.Target().ID,
		}))
	case action.Cancelled:
		events = append(events, d.event(EventActionCancelled, map[string]any{
			"target": x.Target().ID,
		}))
	}
	return events
}

// staleTarget reports whether the execution's target left combat. Targeting
// yourself never goes stale while you live; a dead actor's execution is
// stale regardless of target.
func staleTarget(x *action.Execution, self *combat.Combatant, roster combat.Roster) bool {
	if !self.Alive() {
		return true
	}
	tgt := x.Target()
	if tgt == self {
		return false
	}
	return !tgt.Alive() || !roster.Contains(tgt)
}

// ensureScratch grows the reusable candidate buffer to roster capacity so
// a full evaluation pass allocates nothing.
func (d *Driver) ensureScratch(n int) []*combat.Combatant {
	if cap(d.scratch) < n {
		d.scratch = make([]*combat.Combatant, 0, n)
	}
	return d.scratch[:0]
}

func (d *Driver) event(typ string, data map[string]any) types.Event {
	data["actor"] = d.self.ID
	if d.current != nil {
		data["action"] = d.current.Template().Name()
		data["execution"] = d.current.ID()
	}
	return types.Event{Type: typ, Data: data}
}
