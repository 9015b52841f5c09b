package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/types"
)

func TestLoad_Basic(t *testing.T) {
	lib, err := Load("testdata/basic")
	require.NoError(t, err)

	require.Len(t, lib.Actions, 2)
	require.Len(t, lib.Gambits, 1)

	strike := lib.Actions["power_strike"]
	require.NotNil(t, strike)
	assert.Equal(t, "Power Strike", strike.Name())
	assert.Equal(t, "attack", strike.Kind())
	assert.Equal(t, 1.5, strike.Range())
	assert.Equal(t, 8.0, strike.Payload()["damage"])

	// No haste pool: the delay stays at its base value.
	actor := &combat.Combatant{Stats: map[string]types.StatPool{}}
	assert.Equal(t, 1.2, strike.Delay(actor))

	g := lib.Gambits["bruiser"]
	require.NotNil(t, g)
	assert.Equal(t, 3, g.Len())
}

func TestLoad_CompiledPreconditionHolds(t *testing.T) {
	lib, err := Load("testdata/basic")
	require.NoError(t, err)
	strike := lib.Actions["power_strike"]

	target := &combat.Combatant{ID: "t", Stats: map[string]types.StatPool{}}
	actor := &combat.Combatant{
		ID: "a",
		Stats: map[string]types.StatPool{
			"stamina": {Current: 3, Max: 20},
		},
		Abilities: map[string]combat.Ability{"attack": nil},
	}
	// nil map entry still counts as carrying the kind; only the stamina
	// requirement gates here.
	assert.False(t, strike.Eligible(actor, target))

	actor.SetStat("stamina", 5)
	assert.True(t, strike.Eligible(actor, target))
}

func TestLoad_RejectsUndefinedActionReference(t *testing.T) {
	_, err := Load("testdata/bad_ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `references undefined action "fireball"`)
	assert.Contains(t, err.Error(), "cast_missing")
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load("testdata/nope")
	require.Error(t, err)
}

func TestLoad_NoLuaFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .lua files")
}

func TestLoad_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"),
		[]byte("Gambit \"oops\" {"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.lua")
}

func validActions() []types.ActionDef {
	return []types.ActionDef{{ID: "strike", Kind: "attack", Range: 1}}
}

func validGambits() []types.GambitDef {
	return []types.GambitDef{{
		ID: "g",
		Rules: []types.RuleDef{{
			ID:       "r",
			Selector: types.SelectorDef{Kind: "enemies"},
			Filters:  []types.FilterDef{{Type: "nearest"}},
			Action:   "strike",
		}},
	}}
}

func TestNewLibrary_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef)
		wantErr string
	}{
		{
			name: "valid",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				return a, g
			},
		},
		{
			name: "duplicate action id",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				return append(a, a[0]), g
			},
			wantErr: `duplicate action ID "strike"`,
		},
		{
			name: "duplicate gambit id",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				dup := g[0]
				dup.Rules = []types.RuleDef{{ID: "r2", Selector: types.SelectorDef{Kind: "self"}, Action: "strike"}}
				return a, append(g, dup)
			},
			wantErr: `duplicate gambit ID "g"`,
		},
		{
			name: "duplicate rule id",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				g[0].Rules = append(g[0].Rules, g[0].Rules[0])
				return a, g
			},
			wantErr: `duplicate rule ID "r"`,
		},
		{
			name: "no gambits",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				return a, nil
			},
			wantErr: "no gambits defined",
		},
		{
			name: "empty gambit",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				g[0].Rules = nil
				return a, g
			},
			wantErr: `gambit "g" has no rules`,
		},
		{
			name: "unknown selector",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				g[0].Rules[0].Selector.Kind = "everyone"
				return a, g
			},
			wantErr: `unknown selector "everyone"`,
		},
		{
			name: "unknown filter",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				g[0].Rules[0].Filters = []types.FilterDef{{Type: "weakest"}}
				return a, g
			},
			wantErr: `unknown filter type "weakest"`,
		},
		{
			name: "missing action kind",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				a[0].Kind = ""
				return a, g
			},
			wantErr: "kind is required",
		},
		{
			name: "unknown requirement type",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				a[0].Requires = []types.RequirementDef{{Type: "blood_moon"}}
				return a, g
			},
			wantErr: `unknown requirement type "blood_moon"`,
		},
		{
			name: "rule without action",
			mutate: func(a []types.ActionDef, g []types.GambitDef) ([]types.ActionDef, []types.GambitDef) {
				g[0].Rules[0].Action = ""
				return a, g
			},
			wantErr: "action is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, gambits := tt.mutate(validActions(), validGambits())
			lib, err := NewLibrary(actions, gambits)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, lib)
		})
	}
}

func TestNewLibrary_BadFilterParamsFailAtBuild(t *testing.T) {
	gambits := validGambits()
	gambits[0].Rules[0].Filters = []types.FilterDef{
		{Type: "stat_below", Params: map[string]any{"percent": 20.0}}, // missing stat
	}
	_, err := NewLibrary(validActions(), gambits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a stat name")
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario("testdata/skirmish.yaml")
	require.NoError(t, err)

	assert.Equal(t, "skirmish", sc.Name)
	assert.Equal(t, 0.5, sc.TickSeconds)
	require.Len(t, sc.Combatants, 2)

	hero := sc.Combatants[0]
	assert.Equal(t, "hero", hero.ID)
	assert.Equal(t, "blue", hero.Faction)
	assert.Equal(t, "bruiser", hero.Gambit)
	assert.Equal(t, 4.0, hero.Speed)
	assert.Equal(t, types.StatPool{Current: 30, Max: 30}, hero.Stats["health"])
	assert.Equal(t, []string{"attack", "heal"}, hero.Abilities)

	bandit := sc.Combatants[1]
	assert.Equal(t, 8.0, bandit.Position.X)
}

func TestLoadScenario_DefaultsTick(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
combatants:
  - id: a
    faction: blue
    gambit: g
`), 0o644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, sc.TickSeconds)
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no combatants",
			yaml:    "name: empty\n",
			wantErr: "no combatants",
		},
		{
			name: "duplicate id",
			yaml: `
combatants:
  - {id: a, faction: blue, gambit: g}
  - {id: a, faction: red, gambit: g}
`,
			wantErr: `duplicate combatant ID "a"`,
		},
		{
			name: "missing faction",
			yaml: `
combatants:
  - {id: a, gambit: g}
`,
			wantErr: "faction is required",
		},
		{
			name: "missing gambit",
			yaml: `
combatants:
  - {id: a, faction: blue}
`,
			wantErr: "gambit is required",
		},
		{
			name: "bad stat pool",
			yaml: `
combatants:
  - id: a
    faction: blue
    gambit: g
    stats:
      health: {current: 10, max: 0}
`,
			wantErr: "needs a positive max",
		},
		{
			name: "current above max",
			yaml: `
combatants:
  - id: a
    faction: blue
    gambit: g
    stats:
      health: {current: 50, max: 30}
`,
			wantErr: "outside [0, 30]",
		},
		{
			name:    "not yaml",
			yaml:    "combatants: [:::",
			wantErr: "parsing scenario",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sc.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
