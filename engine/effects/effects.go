// Package effects applies a resolution result to the world. It
// materializes produced stacks and plays out the host's own outcome for the
// action unless the result overrides it. No rule logic lives here.
package effects

import (
	"fmt"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// Apply materializes res at the occurrence location and mutates w the way
// the host would after the action. Returns output text collected.
func Apply(w *world.World, occ rules.Occurrence, res drop.Result) []string {
	var output []string

	for _, it := range res.Items {
		w.Drop(occ.Location, it, occ.Flags.Naturally)
		output = append(output, "Dropped "+Describe(it)+".")
	}

	a, _ := action.Builtin(occ.Action)
	switch a {
	case action.Break:
		if v, ok := occ.Target.(subject.Vehicle); ok {
			output = append(output, breakVehicle(w, occ, v, res.Override)...)
			break
		}
		output = append(output, breakBlock(w, occ, res.Override)...)

	case action.LeafDecay:
		if _, ok := w.BlockAt(occ.Location); ok {
			w.RemoveBlock(occ.Location)
		}

	case action.MobSpawn:
		if c, ok := occ.Target.(subject.Creature); ok && res.Override && c.ID != 0 {
			w.Kill(c.ID)
			output = append(output, "The "+c.ReadableName()+" never appears.")
		}

	case action.PowerUp, action.PowerDown:
		if b, ok := w.BlockAt(occ.Location); ok {
			b.Powered = a == action.PowerUp
		}
	}

	if res.Override && len(res.Items) == 0 && len(output) == 0 {
		output = append(output, "Nothing drops.")
	}
	return output
}

// breakBlock removes the broken block. Without an override the block drops
// itself, carrying its simple sub-state.
func breakBlock(w *world.World, occ rules.Occurrence, override bool) []string {
	b, ok := w.BlockAt(occ.Location)
	if !ok {
		return nil
	}
	var output []string
	if !override && !b.Material.IsNothing() {
		it := types.ItemStack{Kind: b.Material.Name, ID: b.Material.ID, Data: b.Value, Amount: 1}
		w.Drop(occ.Location, it, occ.Flags.Naturally)
		output = append(output, "Dropped "+Describe(it)+".")
	}
	for _, it := range b.Contents {
		w.Drop(occ.Location, it, true)
		output = append(output, "Spilled "+Describe(it)+".")
	}
	w.RemoveBlock(occ.Location)
	return output
}

// breakVehicle drops the vehicle as an item unless overridden. The world
// holds no vehicles, so nothing is removed.
func breakVehicle(w *world.World, occ rules.Occurrence, v subject.Vehicle, override bool) []string {
	if override {
		return nil
	}
	it := types.ItemStack{Kind: v.Material.Name, ID: v.Material.ID, Amount: 1}
	w.Drop(occ.Location, it, occ.Flags.Naturally)
	return []string{"Dropped " + Describe(it) + "."}
}

// Describe renders a stack for display: "3 x Red Wool",
// "1 x \"Big Sword\" (Diamond Sword) [Damage All 5]".
func Describe(it types.ItemStack) string {
	name := subject.FromItem(it).ReadableName()
	if it.DisplayName != "" {
		name = fmt.Sprintf("%q (%s)", it.DisplayName, name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d x %s", it.Amount, name)
	if it.Tint != "" {
		fmt.Fprintf(&b, " tinted %s", it.Tint)
	}
	if len(it.Enchantments) > 0 {
		parts := make([]string, len(it.Enchantments))
		for i, e := range it.Enchantments {
			parts[i] = fmt.Sprintf("%s %d", subject.Readable(e.Name), e.Level)
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, ", "))
	}
	return b.String()
}
