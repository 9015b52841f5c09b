package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerSelectorHelpers(L)
	registerFilterHelpers(L)
	registerRequirementHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Action "id" { ... } — curried: Action("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Action", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.actions = append(coll.actions, rawAction{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Gambit "id" { rule, rule, ... } — curried. The array order of the
	// rule entries is the priority order.
	L.SetGlobal("Gambit", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.gambits = append(coll.gambits, rawGambit{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Rule("id", selector, filters, "action_id") — returns a tagged table
	// collected by the enclosing Gambit.
	L.SetGlobal("Rule", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		selector := L.CheckTable(2)
		filters := L.CheckTable(3)
		actionID := L.CheckString(4)

		rule := L.NewTable()
		rule.RawSetString("__rule", lua.LString(id))
		rule.RawSetString("selector", selector)
		rule.RawSetString("filters", filters)
		rule.RawSetString("action", lua.LString(actionID))
		L.Push(rule)
		return 1
	}))
}

// selectorTable builds a tagged selector table.
func selectorTable(L *lua.LState, kind string) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("__selector", lua.LString(kind))
	return tbl
}

func registerSelectorHelpers(L *lua.LState) {
	for _, kind := range []string{"self", "allies", "enemies"} {
		kind := kind
		name := map[string]string{"self": "Self", "allies": "Allies", "enemies": "Enemies"}[kind]
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			L.Push(selectorTable(L, kind))
			return 1
		}))
	}
}

func registerFilterHelpers(L *lua.LState) {
	// StatBelow("health", 20) — keep candidates below 20% of max health.
	L.SetGlobal("StatBelow", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		pct := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("__filter", lua.LString("stat_below"))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("percent", pct)
		L.Push(tbl)
		return 1
	}))

	// StatAbove("health", 80) — keep candidates above 80% of max health.
	L.SetGlobal("StatAbove", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		pct := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("__filter", lua.LString("stat_above"))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("percent", pct)
		L.Push(tbl)
		return 1
	}))

	// Nearest() — keep only the closest candidate.
	L.SetGlobal("Nearest", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("__filter", lua.LString("nearest"))
		L.Push(tbl)
		return 1
	}))

	// Filter("tag", { ... }) — escape hatch for registered custom filters.
	L.SetGlobal("Filter", L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		tbl := L.OptTable(2, L.NewTable())
		tbl.RawSetString("__filter", lua.LString(tag))
		L.Push(tbl)
		return 1
	}))
}

func registerRequirementHelpers(L *lua.LState) {
	// StatAtLeast("mana", 10) — actor must have at least 10 mana.
	L.SetGlobal("StatAtLeast", L.NewFunction(func(L *lua.LState) int {
		stat := L.CheckString(1)
		amount := L.CheckNumber(2)
		tbl := L.NewTable()
		tbl.RawSetString("__require", lua.LString("stat_at_least"))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("amount", amount)
		L.Push(tbl)
		return 1
	}))
}
