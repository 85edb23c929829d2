// Package rules holds compiled drop rules and evaluates an occurrence
// against them: collect by action, filter by target, tool and conditions,
// then roll each survivor in configured order.
package rules

import (
	"slices"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/types"
)

// InWorld reports whether loc's world passes the rule's world filter.
func InWorld(r Rule, loc types.Location) bool {
	if len(r.Worlds) == 0 {
		return true
	}
	return slices.ContainsFunc(r.Worlds, func(w string) bool {
		return strings.EqualFold(w, loc.World) || w == "*"
	})
}

// Permitted consults allowed for protected rules. A nil predicate allows.
func Permitted(r Rule, a action.Action, loc types.Location, allowed func(action.Action, types.Location) bool) bool {
	if !r.Protected || allowed == nil {
		return true
	}
	return allowed(a, loc)
}
