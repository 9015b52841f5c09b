package sim

import (
	"github.com/nathoo/gambitcore/engine/combat"
)

// LinearMover is a minimal movement collaborator: actors close distance in
// a straight line at their own speed. No pathfinding, no avoidance.
type LinearMover struct {
	moving []movement
	stopAt float64 // how close an actor walks before stopping
}

type movement struct {
	actor  *combat.Combatant
	target *combat.Combatant
}

// NewLinearMover creates a mover that halts actors at stopAt world units
// from their target.
func NewLinearMover(stopAt float64) *LinearMover {
	return &LinearMover{stopAt: stopAt}
}

// BeginMove starts (or redirects) the actor toward the target.
func (m *LinearMover) BeginMove(actor, target *combat.Combatant) {
	for i := range m.moving {
		if m.moving[i].actor == actor {
			m.moving[i].target = target
			return
		}
	}
	m.moving = append(m.moving, movement{actor: actor, target: target})
}

// InRange reports whether the actor is within rng units of the target.
func (m *LinearMover) InRange(actor, target *combat.Combatant, rng float64) bool {
	return combat.Distance(actor.Pos, target.Pos) <= rng
}

// Tick advances every moving actor toward its target by speed*dt units,
// in the order movement began. Dead participants stop moving.
func (m *LinearMover) Tick(dt float64) {
	kept := m.moving[:0]
	for _, mv := range m.moving {
		if !mv.actor.Alive() || !mv.target.Alive() {
			continue
		}
		d := combat.Distance(mv.actor.Pos, mv.target.Pos)
		if d <= m.stopAt {
			continue
		}
		step := mv.actor.Speed * dt
		if step >= d-m.stopAt {
			step = d - m.stopAt
		}
		frac := step / d
		mv.actor.Pos.X += (mv.target.Pos.X - mv.actor.Pos.X) * frac
		mv.actor.Pos.Y += (mv.target.Pos.Y - mv.actor.Pos.Y) * frac
		mv.actor.Pos.Z += (mv.target.Pos.Z - mv.actor.Pos.Z) * frac
		kept = append(kept, mv)
	}
	m.moving = kept
}
