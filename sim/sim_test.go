package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/loader"
	"github.com/nathoo/gambitcore/types"
)

func testLibrary(t *testing.T) *loader.Library {
	t.Helper()
	lib, err := loader.NewLibrary(
		[]types.ActionDef{{
			ID: "strike", Name: "Strike", Kind: "attack", Range: 1, Delay: 0.5,
			Payload: map[string]any{"damage": 5.0},
		}},
		[]types.GambitDef{{
			ID: "brawler",
			Rules: []types.RuleDef{{
				ID:       "hit_nearest",
				Selector: types.SelectorDef{Kind: "enemies"},
				Filters:  []types.FilterDef{{Type: "nearest"}},
				Action:   "strike",
			}},
		}},
	)
	require.NoError(t, err)
	return lib
}

func duelScenario() *types.ScenarioDef {
	return &types.ScenarioDef{
		Name:        "duel",
		TickSeconds: 0.5,
		Combatants: []types.CombatantDef{
			{
				ID: "hero", Faction: "blue", Gambit: "brawler",
				Position: types.Vec3{X: 0}, Speed: 4,
				Stats: map[string]types.StatPool{
					"health": {Current: 30, Max: 30},
				},
				Abilities: []string{"attack"},
			},
			{
				ID: "bandit", Faction: "red", Gambit: "brawler",
				Position: types.Vec3{X: 6}, Speed: 3,
				Stats: map[string]types.StatPool{
					"health": {Current: 20, Max: 20},
				},
				Abilities: []string{"attack"},
			},
		},
	}
}

func TestNew_RejectsUnknownGambit(t *testing.T) {
	sc := duelScenario()
	sc.Combatants[0].Gambit = "missing"

	_, err := New(testLibrary(t), sc, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undefined gambit "missing"`)
}

func TestNew_RejectsUnknownAbilityKind(t *testing.T) {
	sc := duelScenario()
	sc.Combatants[0].Abilities = []string{"summon_dragon"}

	_, err := New(testLibrary(t), sc, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown ability kind "summon_dragon"`)
}

func TestSim_DuelRunsToCompletion(t *testing.T) {
	s, err := New(testLibrary(t), duelScenario(), 42)
	require.NoError(t, err)
	require.False(t, s.Over())

	events := s.Run(200)
	assert.True(t, s.Over(), "one side should fall within 200 ticks")
	require.Len(t, s.Roster(), 1)

	var defeats int
	for _, e := range events {
		if e.Type == EventCombatantDefeated {
			defeats++
		}
	}
	assert.Equal(t, 1, defeats)
}

func TestSim_SameSeedReplaysIdentically(t *testing.T) {
	s1, err := New(testLibrary(t), duelScenario(), 7)
	require.NoError(t, err)
	s2, err := New(testLibrary(t), duelScenario(), 7)
	require.NoError(t, err)

	e1 := s1.Run(200)
	e2 := s2.Run(200)

	require.Equal(t, len(e1), len(e2))
	for i := range e1 {
		assert.Equal(t, e1[i].Type, e2[i].Type)
		assert.Equal(t, e1[i].Data["actor"], e2[i].Data["actor"])
	}
	assert.Equal(t, s1.Engine().Ticks(), s2.Engine().Ticks())
}

func TestLinearMover(t *testing.T) {
	actor := &combat.Combatant{
		ID: "a", Speed: 4,
		Stats: map[string]types.StatPool{"health": {Current: 10, Max: 10}},
	}
	target := &combat.Combatant{
		ID: "t", Pos: types.Vec3{X: 10},
		Stats: map[string]types.StatPool{"health": {Current: 10, Max: 10}},
	}
	m := NewLinearMover(0.5)
	m.BeginMove(actor, target)

	assert.False(t, m.InRange(actor, target, 3))

	m.Tick(0.5) // 2 units
	assert.InDelta(t, 2.0, actor.Pos.X, 1e-9)

	for i := 0; i < 10; i++ {
		m.Tick(0.5)
	}
	// Halted at the stop distance, never overlapping the target.
	assert.InDelta(t, 9.5, actor.Pos.X, 1e-9)
	assert.True(t, m.InRange(actor, target, 1))
}

func TestLinearMover_StopsWhenTargetDies(t *testing.T) {
	actor := &combat.Combatant{
		ID: "a", Speed: 4,
		Stats: map[string]types.StatPool{"health": {Current: 10, Max: 10}},
	}
	target := &combat.Combatant{
		ID: "t", Pos: types.Vec3{X: 10},
		Stats: map[string]types.StatPool{"health": {Current: 0, Max: 10}},
	}
	m := NewLinearMover(0.5)
	m.BeginMove(actor, target)

	m.Tick(0.5)
	assert.Equal(t, 0.0, actor.Pos.X)
}

func TestAttackAbility(t *testing.T) {
	rng := NewRNG(1)
	a := &AttackAbility{rng: rng}
	actor := &combat.Combatant{
		ID: "a",
		Stats: map[string]types.StatPool{
			"stamina": {Current: 10, Max: 10},
		},
	}
	target := &combat.Combatant{
		ID: "t",
		Stats: map[string]types.StatPool{
			"health": {Current: 20, Max: 20},
		},
	}

	a.Perform(actor, target, map[string]any{
		"damage": 5.0, "cost_stat": "stamina", "cost": 2.0,
	})
	assert.True(t, a.DonePerforming())

	hp, _ := target.Stat("health")
	assert.Equal(t, 15.0, hp.Current)
	st, _ := actor.Stat("stamina")
	assert.Equal(t, 8.0, st.Current)
}

func TestAttackAbility_VarianceAddsToDamage(t *testing.T) {
	a := &AttackAbility{rng: NewRNG(1)}
	target := &combat.Combatant{
		ID: "t",
		Stats: map[string]types.StatPool{
			"health": {Current: 20, Max: 20},
		},
	}

	a.Perform(&combat.Combatant{ID: "a"}, target, map[string]any{
		"damage": 5.0, "variance": 4.0,
	})
	hp, _ := target.Stat("health")
	assert.Less(t, hp.Current, 15.0)
	assert.GreaterOrEqual(t, hp.Current, 11.0)
}

func TestHealAbility_CastTicks(t *testing.T) {
	h := &HealAbility{}
	target := &combat.Combatant{
		ID: "t",
		Stats: map[string]types.StatPool{
			"health": {Current: 5, Max: 20},
		},
	}

	h.Perform(&combat.Combatant{ID: "a"}, target, map[string]any{
		"amount": 10.0, "cast_ticks": 2.0,
	})
	hp, _ := target.Stat("health")
	assert.Equal(t, 15.0, hp.Current)

	assert.False(t, h.DonePerforming())
	assert.False(t, h.DonePerforming())
	assert.True(t, h.DonePerforming())
}

func TestPotionAbility_ConsumesCharge(t *testing.T) {
	p := &PotionAbility{}
	actor := &combat.Combatant{
		ID: "a",
		Stats: map[string]types.StatPool{
			"health":  {Current: 5, Max: 20},
			"potions": {Current: 2, Max: 3},
		},
	}

	p.Perform(actor, actor, map[string]any{"amount": 10.0})
	assert.True(t, p.DonePerforming())

	hp, _ := actor.Stat("health")
	assert.Equal(t, 15.0, hp.Current)
	charges, _ := actor.Stat("potions")
	assert.Equal(t, 1.0, charges.Current)
}

func TestRegisterAbility(t *testing.T) {
	RegisterAbility("taunt", func(rng *RNG) combat.Ability {
		return &PotionAbility{}
	})

	sc := duelScenario()
	sc.Combatants[0].Abilities = []string{"attack", "taunt"}
	_, err := New(testLibrary(t), sc, 1)
	assert.NoError(t, err)
}

func TestRNG_Deterministic(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Roll(6), b.Roll(6))
	}
	assert.Equal(t, 1, NewRNG(1).Roll(1))
}
