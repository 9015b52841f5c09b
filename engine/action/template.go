// Package action defines immutable action templates and the per-invocation
// execution state machine that drives one action from match to completion.
package action

import (
	"fmt"

	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/types"
)

// Precondition is the action's own eligibility check over (actor, target),
// evaluated after the filter chain has produced a tentative target. A false
// result fails the owning rule without error.
type Precondition func(actor, target *combat.Combatant) bool

// Template describes one performable action kind. Templates are immutable,
// hold no per-agent state, and are shared by any number of combatants;
// per-invocation state lives in the Execution a template creates.
type Template struct {
	id        string
	name      string
	kind      string
	execRange float64
	delay     float64
	delayStat string
	precond   Precondition
	payload   map[string]any
}

// NewTemplate builds a Template from its data definition, compiling the
// requirement list into a single precondition.
func NewTemplate(def types.ActionDef) (*Template, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("action template requires an id")
	}
	if def.Kind == "" {
		return nil, fmt.Errorf("action %q requires a kind", def.ID)
	}
	if def.Range < 0 {
		return nil, fmt.Errorf("action %q: negative range %v", def.ID, def.Range)
	}
	if def.Delay < 0 {
		return nil, fmt.Errorf("action %q: negative delay %v", def.ID, def.Delay)
	}
	precond, err := compileRequirements(def.Kind, def.Requires)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", def.ID, err)
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}
	return &Template{
		id:        def.ID,
		name:      name,
		kind:      def.Kind,
		execRange: def.Range,
		delay:     def.Delay,
		delayStat: def.DelayStat,
		precond:   precond,
		payload:   def.Payload,
	}, nil
}

// ID returns the template's authoring ID.
func (t *Template) ID() string { return t.id }

// Name returns the display name.
func (t *Template) Name() string { return t.name }

// Kind returns the ability kind the actor must carry.
func (t *Template) Kind() string { return t.kind }

// Range returns the required execution range in world units.
func (t *Template) Range() float64 { return t.execRange }

// Payload returns the opaque action payload handed to the ability.
func (t *Template) Payload() map[string]any { return t.payload }

// Delay returns the combat delay in seconds for the given actor. Templates
// with a delay stat scale down as the pool fills: base / (1 + current/max).
func (t *Template) Delay(actor *combat.Combatant) float64 {
	if t.delayStat == "" {
		return t.delay
	}
	return t.delay / (1 + actor.StatFraction(t.delayStat))
}

// Eligible evaluates the template's precondition. The actor must carry an
// ability of the template's kind; any authored requirements come on top.
func (t *Template) Eligible(actor, target *combat.Combatant) bool {
	if _, ok := actor.Ability(t.kind); !ok {
		return false
	}
	return t.precond == nil || t.precond(actor, target)
}

// Execute creates a fresh execution record for one invocation. Executions
// are never pooled across invocations.
func (t *Template) Execute(actor, target *combat.Combatant) *Execution {
	return newExecution(t, actor, target)
}

// compileRequirements folds requirement defs into one AND-ed precondition.
func compileRequirements(kind string, reqs []types.RequirementDef) (Precondition, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	checks := make([]Precondition, 0, len(reqs))
	for _, r := range reqs {
		switch r.Type {
		case "stat_at_least":
			stat, _ := r.Params["stat"].(string)
			if stat == "" {
				return nil, fmt.Errorf("stat_at_least requires a stat name")
			}
			amount := combat.Num(r.Params["amount"])
			checks = append(checks, func(actor, _ *combat.Combatant) bool {
				p, ok := actor.Stat(stat)
				return ok && p.Current >= amount
			})
		default:
			return nil, fmt.Errorf("unknown requirement type %q", r.Type)
		}
	}
	return func(actor, target *combat.Combatant) bool {
		for _, check := range checks {
			if !check(actor, target) {
				return false
			}
		}
		return true
	}, nil
}

// KnownRequirement reports whether a requirement type is supported.
// The loader uses this to reject malformed content at load time.
func KnownRequirement(typ string) bool {
	return typ == "stat_at_least"
}
