package rules

import (
	"sort"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/subject"
)

// Rule is one compiled drop rule. Rules are immutable once in a Set.
type Rule struct {
	ID             string
	Actions        []action.Action
	Targets        []subject.Subject // any-of
	Tools          []subject.Subject // any-of; empty means any tool
	ToolExceptions []subject.Subject // none-of
	Worlds         []string          // empty means every world
	Drop           drop.DropType
	Spread         bool
	Protected      bool // consult the permission predicate first
	SourceOrder    int
}

// Chance is the drop's probability in [0,100].
func (r Rule) Chance() float64 {
	if r.Drop == nil {
		return 0
	}
	return r.Drop.Chance()
}

// Set is an immutable, action-indexed rule list in configured order.
type Set struct {
	rules    []Rule
	byAction map[string][]int
}

// NewSet orders rules by SourceOrder (stable) and indexes them by action.
func NewSet(rules []Rule) *Set {
	s := &Set{
		rules:    make([]Rule, len(rules)),
		byAction: map[string][]int{},
	}
	copy(s.rules, rules)
	sort.SliceStable(s.rules, func(i, j int) bool {
		return s.rules[i].SourceOrder < s.rules[j].SourceOrder
	})
	for i, r := range s.rules {
		seen := map[string]bool{}
		for _, a := range r.Actions {
			if seen[a.Name()] {
				continue
			}
			seen[a.Name()] = true
			s.byAction[a.Name()] = append(s.byAction[a.Name()], i)
		}
	}
	return s
}

// Empty is a set with no rules.
func Empty() *Set { return NewSet(nil) }

// Len is the number of rules.
func (s *Set) Len() int { return len(s.rules) }

// Rules returns the rules in evaluation order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// For returns the rules configured for a, in evaluation order.
func (s *Set) For(a action.Action) []Rule {
	idx := s.byAction[a.Name()]
	out := make([]Rule, len(idx))
	for i, j := range idx {
		out[i] = s.rules[j]
	}
	return out
}

// Actions lists the action names that have at least one rule.
func (s *Set) Actions() []string {
	out := make([]string, 0, len(s.byAction))
	for name := range s.byAction {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
