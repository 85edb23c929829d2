package rules

import (
	"fmt"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/types"
)

// Occurrence is one trigger submitted for resolution.
type Occurrence struct {
	Action   string // raw action name, resolved through the registry
	Target   subject.Subject
	Tool     subject.Subject // nil when nothing was used
	Location types.Location
	Flags    types.Flags
}

// Step records what happened to one candidate rule.
type Step struct {
	RuleID  string
	Matched bool
	Fired   bool
	Draw    float64 // in [0,100); only set when Matched
	Result  drop.Result
	Err     error // recovered panic
}

// Env carries the collaborators an evaluation needs.
type Env struct {
	Registry *action.Registry
	RNG      drop.Rand
	Allowed  func(action.Action, types.Location) bool
	Logf     func(format string, args ...any)
	Trace    func(Step)
}

// Evaluate runs the pipeline for one occurrence:
//  1. resolve the action; an unknown action yields an empty result
//  2. collect the rules configured for it
//  3. filter on target, tool, world and permission
//  4. roll each survivor's chance and merge what fires, in configured order
//
// Every matching rule is rolled even after one has set override. A rule
// that panics contributes nothing.
func Evaluate(set *Set, occ Occurrence, env Env) drop.Result {
	var res drop.Result
	if set == nil || env.Registry == nil {
		return res
	}
	a, ok := env.Registry.Resolve(occ.Action)
	if !ok {
		env.logf("unknown action %q in occurrence", occ.Action)
		return res
	}
	for _, r := range set.For(a) {
		step := evalRule(r, a, occ, env)
		if step.Fired {
			res.Merge(step.Result)
		}
		if env.Trace != nil {
			env.Trace(step)
		}
	}
	return res
}

func evalRule(r Rule, a action.Action, occ Occurrence, env Env) (step Step) {
	step.RuleID = r.ID
	defer func() {
		if p := recover(); p != nil {
			step.Fired = false
			step.Result = drop.Result{}
			step.Err = fmt.Errorf("rule %s: %v", r.ID, p)
			env.logf("rule %s failed: %v", r.ID, p)
		}
	}()

	if !MatchesTarget(r, occ.Target) || !MatchesTool(r, occ.Tool) ||
		!InWorld(r, occ.Location) || !Permitted(r, a, occ.Location, env.Allowed) {
		return step
	}
	step.Matched = true
	if r.Drop == nil {
		return step
	}

	step.Draw = env.RNG.Float64() * 100
	// A chance that is not a number never fires.
	if !(step.Draw < r.Chance()) {
		return step
	}

	flags := occ.Flags
	flags.Spread = flags.Spread || r.Spread
	step.Fired = true
	step.Result = r.Drop.Perform(drop.Context{
		Target:   occ.Target,
		Tool:     occ.Tool,
		Location: occ.Location,
		Flags:    flags,
	}, env.RNG)
	return step
}

func (e Env) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}
