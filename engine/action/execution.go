package action

import (
	"github.com/google/uuid"

	"github.com/nathoo/gambitcore/engine/combat"
)

// State identifies a phase of an action execution.
type State int

const (
	// Created means the execution exists but has not been stepped yet.
	Created State = iota
	// Preparing covers the one-time synchronous setup (binding the ability,
	// starting movement toward the target).
	Preparing
	// AwaitingReadiness gates on range and combat delay, checked every tick.
	AwaitingReadiness
	// Performing means the ability has been invoked and is running.
	Performing
	// Completed is terminal: the ability reported completion.
	Completed
	// Cancelled is terminal: the execution was aborted externally.
	Cancelled
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Preparing:
		return "preparing"
	case AwaitingReadiness:
		return "awaiting"
	case Performing:
		return "performing"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the execution.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Execution tracks one in-flight action from creation to completion. It is
// owned exclusively by one driver and discarded when terminal — there is no
// persisted history of past executions.
type Execution struct {
	id      string
	tmpl    *Template
	actor   *combat.Combatant
	target  *combat.Combatant
	ability combat.Ability
	state   State
	delay   float64 // resolved from the template at prepare time
	elapsed float64 // accumulated tick time in AwaitingReadiness
}

func newExecution(t *Template, actor, target *combat.Combatant) *Execution {
	return &Execution{
		id:     uuid.NewString(),
		tmpl:   t,
		actor:  actor,
		target: target,
		state:  Created,
	}
}

// ID returns the per-invocation identifier used for event correlation.
func (x *Execution) ID() string { return x.id }

// State returns the current state.
func (x *Execution) State() State { return x.state }

// Actor returns the acting combatant.
func (x *Execution) Actor() *combat.Combatant { return x.actor }

// Target returns the target combatant.
func (x *Execution) Target() *combat.Combatant { return x.target }

// Template returns the originating action template.
func (x *Execution) Template() *Template { return x.tmpl }

// Step advances the state machine by one tick of dt seconds and returns
// the resulting state.
//
// The tick that steps a Created execution performs the whole synchronous
// setup (Preparing) and lands in AwaitingReadiness; the range and delay
// gates are first checked on the following tick, so at least one tick
// boundary always passes before Performing. The two gates run concurrently
// from the same starting tick — there is no ordering between reaching range
// and the delay elapsing.
func (x *Execution) Step(mover combat.Mover, dt float64) State {
	switch x.state {
	case Created:
		x.state = Preparing
		ability, ok := x.actor.Ability(x.tmpl.Kind())
		if !ok {
			// The precondition guards this; losing the ability between match
			// and prepare is an external invalidation.
			x.state = Cancelled
			return x.state
		}
		x.ability = ability
		x.delay = x.tmpl.Delay(x.actor)
		mover.BeginMove(x.actor, x.target)
		x.state = AwaitingReadiness

	case AwaitingReadiness:
		x.elapsed += dt
		if x.elapsed >= x.delay && mover.InRange(x.actor, x.target, x.tmpl.Range()) {
			x.state = Performing
			x.ability.Perform(x.actor, x.target, x.tmpl.Payload())
		}

	case Performing:
		if x.ability.DonePerforming() {
			x.state = Completed
		}
	}
	return x.state
}

// Cancel forces the execution into the Cancelled terminal state. It has no
// effect on an execution that already completed.
func (x *Execution) Cancel() {
	if !x.state.Terminal() {
		x.state = Cancelled
	}
}
