package rules

import (
	"github.com/nathoo/dropcore/engine/subject"
)

// MatchesTarget reports whether any configured target, expanded through
// CanMatch, matches the occurrence target.
func MatchesTarget(r Rule, target subject.Subject) bool {
	if target == nil {
		return false
	}
	for _, t := range r.Targets {
		if subject.MatchesAny(t, target) {
			return true
		}
	}
	return false
}

// MatchesTool checks the tool constraint. No configured tools accepts any
// tool, including none. An exception match always rejects.
func MatchesTool(r Rule, tool subject.Subject) bool {
	if tool != nil {
		for _, ex := range r.ToolExceptions {
			if subject.MatchesAny(ex, tool) {
				return false
			}
		}
	}
	if len(r.Tools) == 0 {
		return true
	}
	if tool == nil {
		return false
	}
	for _, t := range r.Tools {
		if subject.MatchesAny(t, tool) {
			return true
		}
	}
	return false
}
