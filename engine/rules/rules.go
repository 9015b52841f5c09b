// Package rules implements combat rules and ordered rule sets (gambits).
// A rule resolves to at most one (action template, target) pair; a gambit
// returns the result of the first rule that resolves, in declared order.
package rules

import (
	"sync"

	"github.com/nathoo/gambitcore/engine/action"
	"github.com/nathoo/gambitcore/engine/combat"
	"github.com/nathoo/gambitcore/engine/target"
)

// Rule pairs a target selector and an ordered filter chain with an action
// template. Rules are immutable once built and owned by exactly one gambit.
type Rule struct {
	id       string
	selector target.Selector
	filters  []target.Filter
	tmpl     *action.Template
}

// NewRule builds a rule. The filter chain is evaluated left to right and is
// not commutative.
func NewRule(id string, sel target.Selector, filters []target.Filter, tmpl *action.Template) Rule {
	return Rule{id: id, selector: sel, filters: filters, tmpl: tmpl}
}

// ID returns the rule's authoring ID.
func (r Rule) ID() string { return r.id }

// Template returns the rule's action template.
func (r Rule) Template() *action.Template { return r.tmpl }

// TryResolve runs the selector against the roster, threads the candidates
// through the filter chain (short-circuiting on empty), takes the first
// remaining candidate as the tentative target, and finally evaluates the
// action's own precondition. Every failure mode is an ordinary "no match".
//
// scratch is a caller-owned buffer with capacity for the full roster; the
// whole evaluation narrows it in place and allocates nothing.
func (r Rule) TryResolve(self *combat.Combatant, roster combat.Roster, scratch []*combat.Combatant) (*action.Template, *combat.Combatant, bool) {
	candidates := r.selector.Select(self, roster, scratch[:0])
	if len(candidates) == 0 {
		return nil, nil, false
	}
	candidates = target.ApplyAll(r.filters, self, candidates)
	if len(candidates) == 0 {
		return nil, nil, false
	}
	tgt := candidates[0]
	if !r.tmpl.Eligible(self, tgt) {
		return nil, nil, false
	}
	return r.tmpl, tgt, true
}

// Match is a successful gambit resolution.
type Match struct {
	RuleID   string
	Template *action.Template
	Target   *combat.Combatant
}

// Gambit is an ordered rule set shared read-only by any number of drivers.
// Rule order is a deliberate priority ordering authored by designers:
// resolution is strictly first-match-wins.
type Gambit struct {
	id string

	mu    sync.RWMutex
	rules []Rule
}

// NewGambit builds a gambit from its rules.
func NewGambit(id string, rules []Rule) *Gambit {
	return &Gambit{id: id, rules: rules}
}

// ID returns the gambit's authoring ID.
func (g *Gambit) ID() string { return g.id }

// Len returns the number of rules.
func (g *Gambit) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rules)
}

// Swap replaces the rule list, for live editing. Swaps must be fenced
// outside tick boundaries; evaluations in progress keep their snapshot.
func (g *Gambit) Swap(rules []Rule) {
	g.mu.Lock()
	g.rules = rules
	g.mu.Unlock()
}

// FindMatch returns the result of the first rule whose TryResolve succeeds.
// No rules after the first match are evaluated. Returning no match is the
// expected "nothing to do right now" outcome, never an error.
func (g *Gambit) FindMatch(self *combat.Combatant, roster combat.Roster, scratch []*combat.Combatant) (Match, bool) {
	g.mu.RLock()
	rules := g.rules // snapshot: Swap installs a new slice, never mutates
	g.mu.RUnlock()

	for _, r := range rules {
		if tmpl, tgt, ok := r.TryResolve(self, roster, scratch); ok {
			return Match{RuleID: r.id, Template: tmpl, Target: tgt}, true
		}
	}
	return Match{}, false
}
