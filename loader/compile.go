package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/gambitcore/types"
)

// rawAction holds an action table before compilation.
type rawAction struct {
	id    string
	table *lua.LTable
}

// rawGambit holds a gambit table before compilation.
type rawGambit struct {
	id    string
	table *lua.LTable
}

// compile turns collected Lua tables into definition structs. Structural
// problems (wrong shapes, missing tags) fail here; referential problems
// are left to validate.
func compile(coll *collector) ([]types.ActionDef, []types.GambitDef, error) {
	actions := make([]types.ActionDef, 0, len(coll.actions))
	for _, raw := range coll.actions {
		def, err := compileAction(raw)
		if err != nil {
			return nil, nil, err
		}
		actions = append(actions, def)
	}

	gambits := make([]types.GambitDef, 0, len(coll.gambits))
	order := 0
	for _, raw := range coll.gambits {
		def, err := compileGambit(raw, &order)
		if err != nil {
			return nil, nil, err
		}
		gambits = append(gambits, def)
	}

	return actions, gambits, nil
}

func compileAction(raw rawAction) (types.ActionDef, error) {
	def := types.ActionDef{
		ID:        raw.id,
		Name:      getString(raw.table, "name"),
		Kind:      getString(raw.table, "kind"),
		Range:     getNumber(raw.table, "range"),
		Delay:     getNumber(raw.table, "delay"),
		DelayStat: getString(raw.table, "delay_stat"),
	}

	if payload := getTable(raw.table, "payload"); payload != nil {
		def.Payload = tableToMap(payload)
	}

	if reqs := getTable(raw.table, "requires"); reqs != nil {
		var err error
		reqs.ForEach(func(_, v lua.LValue) {
			if err != nil {
				return
			}
			tbl, ok := v.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("action %q: requires entries must be requirement tables", raw.id)
				return
			}
			typ := getString(tbl, "__require")
			if typ == "" {
				err = fmt.Errorf("action %q: requires entry is not a requirement table", raw.id)
				return
			}
			params := tableToMap(tbl)
			delete(params, "__require")
			def.Requires = append(def.Requires, types.RequirementDef{Type: typ, Params: params})
		})
		if err != nil {
			return types.ActionDef{}, err
		}
	}

	return def, nil
}

func compileGambit(raw rawGambit, order *int) (types.GambitDef, error) {
	def := types.GambitDef{ID: raw.id}

	var err error
	raw.table.ForEach(func(_, v lua.LValue) {
		if err != nil {
			return
		}
		tbl, ok := v.(*lua.LTable)
		if !ok || getString(tbl, "__rule") == "" {
			err = fmt.Errorf("gambit %q: entries must be Rule(...) values", raw.id)
			return
		}
		var rule types.RuleDef
		rule, err = compileRule(raw.id, tbl, order)
		if err != nil {
			return
		}
		def.Rules = append(def.Rules, rule)
	})
	if err != nil {
		return types.GambitDef{}, err
	}

	return def, nil
}

func compileRule(gambitID string, tbl *lua.LTable, order *int) (types.RuleDef, error) {
	id := getString(tbl, "__rule")

	selTbl := getTable(tbl, "selector")
	if selTbl == nil {
		return types.RuleDef{}, fmt.Errorf("gambit %q rule %q: missing selector", gambitID, id)
	}
	kind := getString(selTbl, "__selector")
	if kind == "" {
		return types.RuleDef{}, fmt.Errorf("gambit %q rule %q: selector is not a selector table", gambitID, id)
	}

	var filters []types.FilterDef
	if fTbl := getTable(tbl, "filters"); fTbl != nil {
		var err error
		fTbl.ForEach(func(_, v lua.LValue) {
			if err != nil {
				return
			}
			ft, ok := v.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("gambit %q rule %q: filters entries must be filter tables", gambitID, id)
				return
			}
			typ := getString(ft, "__filter")
			if typ == "" {
				err = fmt.Errorf("gambit %q rule %q: filters entry is not a filter table", gambitID, id)
				return
			}
			params := tableToMap(ft)
			delete(params, "__filter")
			filters = append(filters, types.FilterDef{Type: typ, Params: params})
		})
		if err != nil {
			return types.RuleDef{}, err
		}
	}

	*order++
	return types.RuleDef{
		ID:          id,
		Selector:    types.SelectorDef{Kind: kind},
		Filters:     filters,
		Action:      getString(tbl, "action"),
		SourceOrder: *order,
	}, nil
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToMap converts a Lua table's string keys to a Go map. Numbers become
// float64, nested tables become nested maps.
func tableToMap(tbl *lua.LTable) map[string]any {
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		m[string(key)] = luaToGo(v)
	})
	return m
}

func luaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		return tableToMap(val)
	default:
		return nil
	}
}
