package drop

import "github.com/nathoo/dropcore/types"

// Result is the outcome of one resolution: produced stacks in rule order and
// whether the host's own outcome is suppressed.
type Result struct {
	Items    []types.ItemStack
	Override bool
}

// Add appends stacks.
func (r *Result) Add(items ...types.ItemStack) {
	r.Items = append(r.Items, items...)
}

// Merge appends other's stacks after r's. Override only ever turns on.
func (r *Result) Merge(other Result) {
	r.Items = append(r.Items, other.Items...)
	r.Override = r.Override || other.Override
}

// Empty reports whether nothing was produced and nothing suppressed.
func (r Result) Empty() bool { return len(r.Items) == 0 && !r.Override }

// Count sums the amounts of every stack.
func (r Result) Count() int {
	n := 0
	for _, it := range r.Items {
		n += it.Amount
	}
	return n
}
