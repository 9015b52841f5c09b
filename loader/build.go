package loader

import (
	"fmt"

	"github.com/nathoo/gambitcore/engine/action"
	"github.com/nathoo/gambitcore/engine/rules"
	"github.com/nathoo/gambitcore/engine/target"
	"github.com/nathoo/gambitcore/types"
)

// build turns validated definitions into runtime templates and gambits.
// Factory-level parameter problems (e.g. a threshold percent out of range)
// surface here, still before any evaluation runs.
func build(actionDefs []types.ActionDef, gambitDefs []types.GambitDef) (*Library, error) {
	lib := &Library{
		Actions: make(map[string]*action.Template, len(actionDefs)),
		Gambits: make(map[string]*rules.Gambit, len(gambitDefs)),
	}

	for _, def := range actionDefs {
		tmpl, err := action.NewTemplate(def)
		if err != nil {
			return nil, err
		}
		lib.Actions[def.ID] = tmpl
	}

	for _, def := range gambitDefs {
		compiled := make([]rules.Rule, 0, len(def.Rules))
		for _, rd := range def.Rules {
			sel, err := target.ParseSelector(rd.Selector.Kind)
			if err != nil {
				return nil, fmt.Errorf("gambit %q rule %q: %w", def.ID, rd.ID, err)
			}
			filters := make([]target.Filter, 0, len(rd.Filters))
			for _, fd := range rd.Filters {
				f, err := target.NewFilter(fd)
				if err != nil {
					return nil, fmt.Errorf("gambit %q rule %q: %w", def.ID, rd.ID, err)
				}
				filters = append(filters, f)
			}
			compiled = append(compiled, rules.NewRule(rd.ID, sel, filters, lib.Actions[rd.Action]))
		}
		lib.Gambits[def.ID] = rules.NewGambit(def.ID, compiled)
	}

	return lib, nil
}
