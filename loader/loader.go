// Package loader loads Lua behavior content (action templates and gambits)
// into compiled runtime objects, and YAML scenario files into roster
// definitions. All referential problems are rejected here, at load time —
// never during evaluation. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/gambitcore/engine/action"
	"github.com/nathoo/gambitcore/engine/rules"
	"github.com/nathoo/gambitcore/types"
)

// Library holds the compiled behavior content shared by all drivers.
type Library struct {
	Actions map[string]*action.Template
	Gambits map[string]*rules.Gambit
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	actions []rawAction
	gambits []rawGambit
}

// Load reads all .lua files from dir, compiles them into behavior
// definitions, validates references, and builds the runtime Library.
func Load(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading behavior directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Strings(luaFiles) // file order must not matter; sort for determinism

	// Create sandboxed VM with the safe libs only.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	actions, gambits, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling behavior content: %w", err)
	}

	return NewLibrary(actions, gambits)
}

// NewLibrary validates definitions and builds the runtime Library. Hosts
// that author content programmatically (or from another format) enter here.
func NewLibrary(actions []types.ActionDef, gambits []types.GambitDef) (*Library, error) {
	if err := validate(actions, gambits); err != nil {
		return nil, err
	}
	return build(actions, gambits)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
