package sim

import (
	"github.com/nathoo/gambitcore/engine/combat"
)

// AbilityFactory builds one ability instance for one combatant. Each
// combatant gets its own instance per kind, so the done-performing state
// never leaks between agents.
type AbilityFactory func(rng *RNG) combat.Ability

// abilityFactories maps ability kinds to factories. Hosts add their own
// kinds via RegisterAbility.
var abilityFactories = map[string]AbilityFactory{
	"attack": func(rng *RNG) combat.Ability { return &AttackAbility{rng: rng} },
	"heal":   func(rng *RNG) combat.Ability { return &HealAbility{} },
	"potion": func(rng *RNG) combat.Ability { return &PotionAbility{} },
}

// RegisterAbility adds a custom ability kind. Registering an existing kind
// replaces it.
func RegisterAbility(kind string, factory AbilityFactory) {
	abilityFactories[kind] = factory
}

// AttackAbility strikes the target for the payload's damage plus a small
// die roll, optionally spending a stat cost. The strike itself is instant.
//
// Payload keys: damage (base, default 1), variance (die sides, default 0),
// cost_stat + cost (optional resource spend).
type AttackAbility struct {
	rng  *RNG
	done bool
}

// Perform applies the damage.
func (a *AttackAbility) Perform(actor, target *combat.Combatant, payload map[string]any) {
	a.done = false
	dmg := payloadFloat(payload, "damage", 1)
	if sides := int(payloadFloat(payload, "variance", 0)); sides > 1 {
		dmg += float64(a.rng.Roll(sides))
	}
	spendCost(actor, payload)
	target.AdjustStat("health", -dmg)
	a.done = true
}

// DonePerforming reports completion.
func (a *AttackAbility) DonePerforming() bool { return a.done }

// HealAbility restores a stat pool on the target, then keeps performing for
// a configured number of ticks to model the cast animation.
//
// Payload keys: amount (default 1), stat (default "health"),
// cast_ticks (how many done-polls before completion, default 0),
// cost_stat + cost (optional resource spend).
type HealAbility struct {
	remaining int
}

// Perform applies the heal and arms the cast timer.
func (h *HealAbility) Perform(actor, target *combat.Combatant, payload map[string]any) {
	stat, _ := payload["stat"].(string)
	if stat == "" {
		stat = "health"
	}
	spendCost(actor, payload)
	target.AdjustStat(stat, payloadFloat(payload, "amount", 1))
	h.remaining = int(payloadFloat(payload, "cast_ticks", 0))
}

// DonePerforming is polled once per tick; the cast finishes when the
// remaining tick count runs out.
func (h *HealAbility) DonePerforming() bool {
	if h.remaining > 0 {
		h.remaining--
		return false
	}
	return true
}

// PotionAbility drinks one charge from the actor's "potions" pool and
// restores a stat. Pair it with a StatAtLeast("potions", 1) requirement so
// rules never match an empty belt.
//
// Payload keys: amount (default 1), stat (default "health").
type PotionAbility struct {
	done bool
}

// Perform consumes a charge and applies the restore.
func (p *PotionAbility) Perform(actor, target *combat.Combatant, payload map[string]any) {
	p.done = false
	stat, _ := payload["stat"].(string)
	if stat == "" {
		stat = "health"
	}
	actor.AdjustStat("potions", -1)
	target.AdjustStat(stat, payloadFloat(payload, "amount", 1))
	p.done = true
}

// DonePerforming reports completion.
func (p *PotionAbility) DonePerforming() bool { return p.done }

// spendCost applies an optional cost_stat/cost pair from the payload.
func spendCost(actor *combat.Combatant, payload map[string]any) {
	stat, _ := payload["cost_stat"].(string)
	if stat == "" {
		return
	}
	actor.AdjustStat(stat, -payloadFloat(payload, "cost", 0))
}

// payloadFloat reads a numeric payload value, falling back to def when the
// key is absent.
func payloadFloat(payload map[string]any, key string, def float64) float64 {
	v, ok := payload[key]
	if !ok {
		return def
	}
	return combat.Num(v)
}
