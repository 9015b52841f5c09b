package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/gambitcore/engine/action"
	"github.com/nathoo/gambitcore/engine/target"
	"github.com/nathoo/gambitcore/types"
)

// ValidationError collects every validation problem found in a content set,
// so authors can fix a whole batch at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity. A rule that
// names an undefined action template, an unknown selector or filter tag, or
// an unknown requirement type is rejected here rather than at evaluation
// time.
func validate(actions []types.ActionDef, gambits []types.GambitDef) error {
	ve := &ValidationError{}

	actionIDs := map[string]bool{}
	for _, a := range actions {
		if actionIDs[a.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate action ID %q", a.ID))
		}
		actionIDs[a.ID] = true

		if a.Kind == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("action %q: kind is required", a.ID))
		}
		if a.Range < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("action %q: range must not be negative", a.ID))
		}
		if a.Delay < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("action %q: delay must not be negative", a.ID))
		}
		for _, r := range a.Requires {
			if !action.KnownRequirement(r.Type) {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"action %q: unknown requirement type %q", a.ID, r.Type))
			}
		}
	}

	if len(gambits) == 0 {
		ve.Errors = append(ve.Errors, "no gambits defined")
	}

	gambitIDs := map[string]bool{}
	ruleIDs := map[string]bool{}
	for _, g := range gambits {
		if gambitIDs[g.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate gambit ID %q", g.ID))
		}
		gambitIDs[g.ID] = true

		if len(g.Rules) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("gambit %q has no rules", g.ID))
		}

		for _, r := range g.Rules {
			if ruleIDs[r.ID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate rule ID %q", r.ID))
			}
			ruleIDs[r.ID] = true

			if _, err := target.ParseSelector(r.Selector.Kind); err != nil {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"gambit %q rule %q: %v", g.ID, r.ID, err))
			}
			for _, f := range r.Filters {
				if !target.KnownFilter(f.Type) {
					ve.Errors = append(ve.Errors, fmt.Sprintf(
						"gambit %q rule %q: unknown filter type %q", g.ID, r.ID, f.Type))
				}
			}
			if r.Action == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"gambit %q rule %q: action is required", g.ID, r.ID))
			} else if !actionIDs[r.Action] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"gambit %q rule %q references undefined action %q", g.ID, r.ID, r.Action))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
