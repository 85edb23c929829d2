// Package drop parses drop specs and rolls them into produced items.
//
// A drop spec uses the subject grammar:
//
//	<kind>[@<substate>|:<substate>][!<ench>[#lvl],...][~<name>[~<lore>...]]
//
// A sub-state of THIS or -1 is taken from the triggering subject when the
// drop is rolled. DEFAULT produces nothing and leaves the host's own outcome
// alone.
package drop

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/types"
)

// ErrBadChance is returned for a chance that is not a number.
var ErrBadChance = errors.New("bad chance")

// Substate is either an explicit value or a marker to derive it from the
// triggering subject.
type Substate struct {
	derive bool
	value  data.Data
}

// Explicit wraps a concrete sub-state. A nil d means none.
func Explicit(d data.Data) Substate { return Substate{value: d} }

// DeriveFromContext takes the sub-state from the trigger at roll time.
var DeriveFromContext = Substate{derive: true}

// Derive reports whether s is the derive marker.
func (s Substate) Derive() bool { return s.derive }

// Value is the explicit sub-state, nil when absent or derived.
func (s Substate) Value() data.Data { return s.value }

// Category is the kind of thing a drop produces.
type Category int

// CategoryItem is the only category: drops produce item stacks.
const CategoryItem Category = iota

// Context is the trigger a drop is rolled against.
type Context struct {
	Target   subject.Subject
	Tool     subject.Subject
	Location types.Location
	Flags    types.Flags
}

// DropType is a configured potential outcome.
type DropType interface {
	Category() Category
	Chance() float64
	Quantity() Range
	Override() bool
	Perform(ctx Context, rng Rand) Result
	String() string
}

const defaultKind = "DEFAULT"

// ItemDrop produces stacks of one material. It is immutable after Parse.
type ItemDrop struct {
	material     material.Material
	substate     Substate
	quantity     Range
	chance       float64
	enchantments []types.Enchantment
	displayName  string
	lore         []string
	override     bool
	passThrough  bool
	warnings     []error
}

var _ DropType = (*ItemDrop)(nil)

// Parse reads raw in section order: "~" display text, then the sub-state at
// the first "@" or ":", then the "!" enchantment list. The kind must resolve;
// sub-state and enchantment problems are kept as Warnings and tolerated.
// def is used when raw names no sub-state.
func Parse(raw string, def Substate, quantity Range, chance float64) (*ItemDrop, error) {
	if math.IsNaN(chance) {
		return nil, fmt.Errorf("drop %q: %w: NaN", raw, ErrBadChance)
	}
	p := subject.Split(raw)
	d := &ItemDrop{
		substate: def,
		quantity: quantity,
		chance:   max(0, min(chance, 100)),
		override: true,
	}
	if strings.EqualFold(p.Kind, defaultKind) {
		d.passThrough, d.override = true, false
		return d, nil
	}
	m, ok := material.Match(p.Kind)
	if !ok {
		return nil, fmt.Errorf("drop %q: %w", p.Kind, subject.ErrUnknownKind)
	}
	d.material = m

	if p.HasName {
		d.displayName = p.DisplayName
		d.lore = slices.Clone(p.Lore)
	}

	if p.HasSubstate {
		switch sub := strings.ToUpper(p.Substate); {
		case sub == "THIS" || sub == "-1":
			d.substate = DeriveFromContext
		case sub == "":
			d.substate = Explicit(nil)
		default:
			v, err := subject.ResolveSubstate(m, p.Substate)
			if err != nil {
				d.warnings = append(d.warnings, err)
			}
			d.substate = Explicit(v)
		}
	}

	for _, e := range p.Enchants {
		kind, lvl, err := material.ParseEnchantment(e)
		if err != nil {
			d.warnings = append(d.warnings, fmt.Errorf("drop %s: %w", m.Name, err))
			continue
		}
		d.enchantments = append(d.enchantments, types.Enchantment{Name: kind.Name, Level: lvl})
	}
	return d, nil
}

// MustParse is Parse for tests and static tables.
func MustParse(raw string, quantity Range, chance float64) *ItemDrop {
	d, err := Parse(raw, Explicit(nil), quantity, chance)
	if err != nil {
		panic(err)
	}
	return d
}

// WithOverride returns a copy with the override flag set to v. Pass-through
// drops never override.
func (d *ItemDrop) WithOverride(v bool) *ItemDrop {
	c := *d
	c.override = v && !d.passThrough
	return &c
}

func (d *ItemDrop) Category() Category                { return CategoryItem }
func (d *ItemDrop) Chance() float64                   { return d.chance }
func (d *ItemDrop) Quantity() Range                   { return d.quantity }
func (d *ItemDrop) Override() bool                    { return d.override }
func (d *ItemDrop) Material() material.Material       { return d.material }
func (d *ItemDrop) Substate() Substate                { return d.substate }
func (d *ItemDrop) Enchantments() []types.Enchantment { return slices.Clone(d.enchantments) }
func (d *ItemDrop) DisplayName() string               { return d.displayName }
func (d *ItemDrop) Lore() []string                    { return slices.Clone(d.lore) }
func (d *ItemDrop) IsDefault() bool                   { return d.passThrough }
func (d *ItemDrop) Warnings() []error                 { return slices.Clone(d.warnings) }

// String is the canonical drop text.
func (d *ItemDrop) String() string {
	if d.passThrough {
		return defaultKind
	}
	var sb strings.Builder
	sb.WriteString(d.material.Name)
	switch {
	case d.substate.derive:
		sb.WriteString("@THIS")
	case d.substate.value != nil:
		if t := d.substate.value.Text(); t != "" {
			sb.WriteString("@" + t)
		}
	}
	for i, e := range d.enchantments {
		if i == 0 {
			sb.WriteByte('!')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(e.Name + "#" + strconv.Itoa(e.Level))
	}
	if d.displayName != "" || len(d.lore) > 0 {
		sb.WriteString("~" + d.displayName)
		for _, l := range d.lore {
			sb.WriteString("~" + l)
		}
	}
	return sb.String()
}

// Item builds one stack carrying a freshly rolled quantity and returns the
// stack and the quantity. Templates are not expanded here.
func (d *ItemDrop) Item(ctx Context, rng Rand) (types.ItemStack, int) {
	n := d.quantity.Roll(rng)
	it := types.ItemStack{
		Kind:         d.material.Name,
		ID:           d.material.ID,
		Amount:       n,
		Enchantments: slices.Clone(d.enchantments),
	}
	sub := d.substate.value
	if d.substate.derive {
		sub = d.derive(ctx.Target)
	}
	// A value that does not fit an item, such as chest contents, is dropped.
	_ = data.ApplyToItem(sub, &it)
	return it, n
}

// derive reads the sub-state off the trigger's canonical text, ignoring a
// SHEARED tag. Spawn eggs take the creature id instead.
func (d *ItemDrop) derive(target subject.Subject) data.Data {
	if target == nil {
		return nil
	}
	kind, sub, _ := strings.Cut(target.String(), "@")
	if d.material.IsSpawnEgg() {
		if c, ok := material.MatchCreature(kind); ok {
			return data.Simple{Value: c.ID}
		}
		return nil
	}
	parts := slices.DeleteFunc(strings.Split(sub, "/"), func(s string) bool {
		return s == "" || s == "SHEARED"
	})
	if len(parts) == 0 {
		return nil
	}
	v, _ := subject.ResolveSubstate(d.material, strings.Join(parts, "/"))
	return v
}

// Perform rolls the drop once. A pass-through or zero-max drop contributes
// nothing. Dropping AIR produces nothing but always overrides. With
// ctx.Flags.Spread the rolled quantity is emitted as that many single stacks.
func (d *ItemDrop) Perform(ctx Context, rng Rand) Result {
	if d.passThrough || d.material.IsZero() || d.quantity.Max == 0 {
		return Result{}
	}
	if d.material.IsNothing() {
		return Result{Override: true}
	}
	it, n := d.Item(ctx, rng)
	res := Result{Override: d.override}
	if n <= 0 {
		return res
	}
	if ctx.Flags.Spread {
		it.Amount = 1
		for range n {
			res.Add(cloneStack(it))
		}
	} else {
		res.Add(it)
	}

	if d.displayName == "" && len(d.lore) == 0 {
		return res
	}
	vars := d.vars(ctx, it, n)
	for i := range res.Items {
		res.Items[i].DisplayName = vars.Expand(d.displayName)
		if len(d.lore) > 0 {
			lore := make([]string, len(d.lore))
			for j, l := range d.lore {
				lore[j] = vars.Expand(l)
			}
			res.Items[i].Lore = lore
		}
	}
	return res
}

func (d *ItemDrop) vars(ctx Context, it types.ItemStack, n int) Vars {
	v := Vars{
		Recipient: ctx.Flags.RecipientName,
		Victim:    ctx.Flags.VictimName,
		Tool:      ctx.Flags.ToolName,
		Drop:      it.Kind,
		Quantity:  n,
	}
	if it.Data != 0 {
		v.Drop += "@" + strconv.Itoa(it.Data)
	}
	if v.Victim == "" && ctx.Target != nil && ctx.Target.Variant() == subject.VariantCreature {
		v.Victim = ctx.Target.ReadableName()
	}
	if v.Tool == "" && ctx.Tool != nil {
		v.Tool = ctx.Tool.ReadableName()
	}
	return v
}

func cloneStack(it types.ItemStack) types.ItemStack {
	it.Enchantments = slices.Clone(it.Enchantments)
	it.Lore = slices.Clone(it.Lore)
	return it
}
