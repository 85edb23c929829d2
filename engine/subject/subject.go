// Package subject models the things a rule can name as its target or tool:
// blocks, items, creatures, vehicles, projectiles and named groups of them.
package subject

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

var (
	// ErrUnknownKind is returned when a kind token resolves to nothing.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrUnsupported is returned by operations a variant does not implement.
	ErrUnsupported = errors.New("unsupported operation")
)

// Variant discriminates the closed set of subject types.
type Variant int

const (
	VariantBlock Variant = iota
	VariantItem
	VariantCreature
	VariantVehicle
	VariantProjectile
	VariantGroup
)

func (v Variant) String() string {
	return [...]string{"block", "item", "creature", "vehicle", "projectile", "group"}[v]
}

// Subject is one trigger target or tool.
type Subject interface {
	Variant() Variant
	// Identity is the canonical kind name. Two subjects can only match when
	// their variants and identities are equal.
	Identity() string
	// Data is the sub-state, nil for "any".
	Data() data.Data
	// Matches reports whether other satisfies s.
	Matches(other Subject) bool
	// CanMatch expands a group into its concrete members. Concrete subjects
	// return themselves.
	CanMatch() []Subject
	// String is the canonical text accepted by ParseTarget or ParseTool.
	String() string
	// ReadableName is a display name, e.g. "Red Wool".
	ReadableName() string
	// ApplyTo replaces the live object at s's location with replacement.
	ApplyTo(w *world.World, replacement Subject) error
	// Location is set only on subjects derived from live objects.
	Location() (types.Location, bool)
}

type base struct {
	d   data.Data
	loc *types.Location
}

func (b base) Data() data.Data { return b.d }

func (b base) Location() (types.Location, bool) {
	if b.loc == nil {
		return types.Location{}, false
	}
	return *b.loc, true
}

func unsupported(s Subject, op string) error {
	return fmt.Errorf("%s %s: %s: %w", s.Variant(), s.Identity(), op, ErrUnsupported)
}

func text(id string, d data.Data) string {
	if d == nil {
		return id
	}
	if t := d.Text(); t != "" {
		return id + "@" + t
	}
	return id
}

func same(s, other Subject) bool {
	return other != nil && s.Variant() == other.Variant() && s.Identity() == other.Identity()
}

var titler = cases.Title(language.English)

// Readable turns a canonical name into title case words: "DIAMOND_ORE" ->
// "Diamond Ore".
func Readable(name string) string {
	return titler.String(strings.ToLower(strings.ReplaceAll(name, "_", " ")))
}

// Block is a placed block kind.
type Block struct {
	base
	Material material.Material
}

// NewBlock returns a block subject with optional data.
func NewBlock(m material.Material, d data.Data) Block { return Block{base: base{d: d}, Material: m} }

func (Block) Variant() Variant      { return VariantBlock }
func (s Block) Identity() string    { return s.Material.Name }
func (s Block) CanMatch() []Subject { return []Subject{s} }
func (s Block) String() string      { return text(s.Identity(), s.d) }

func (s Block) Matches(other Subject) bool {
	return same(s, other) && data.Matches(s.d, other.Data())
}

func (s Block) ReadableName() string { return readableWithData(s.Material, s.d) }

// ApplyTo turns the block at s's location into replacement, which must be a
// block. Without a location there is nothing to change.
func (s Block) ApplyTo(w *world.World, replacement Subject) error {
	r, ok := replacement.(Block)
	if !ok {
		return fmt.Errorf("replace %s with %s: %w", s.Identity(), replacement, ErrUnsupported)
	}
	loc, ok := s.Location()
	if !ok {
		return fmt.Errorf("replace %s: no location: %w", s.Identity(), ErrUnsupported)
	}
	if r.Material.IsNothing() {
		w.RemoveBlock(loc)
		return nil
	}
	return data.ApplyToBlock(r.d, w.SetBlock(loc, r.Material))
}

func readableWithData(m material.Material, d data.Data) string {
	name := Readable(m.Name)
	if v, ok := d.(data.Simple); ok {
		if sub, ok := material.SubstateName(m, v.Value); ok && sub != m.Name {
			return Readable(sub) + " " + name
		}
	}
	return name
}

// Item is a held or produced item kind, typically a tool.
type Item struct {
	base
	Material     material.Material
	Enchantments []types.Enchantment
}

// NewItem returns an item subject.
func NewItem(m material.Material, d data.Data, ench ...types.Enchantment) Item {
	return Item{base: base{d: d}, Material: m, Enchantments: ench}
}

func (Item) Variant() Variant       { return VariantItem }
func (s Item) Identity() string     { return s.Material.Name }
func (s Item) CanMatch() []Subject  { return []Subject{s} }
func (s Item) ReadableName() string { return readableWithData(s.Material, s.d) }

// Matches also requires every enchantment on s to be present on other at
// least at the same level.
func (s Item) Matches(other Subject) bool {
	if !same(s, other) || !data.Matches(s.d, other.Data()) {
		return false
	}
	o := other.(Item)
	for _, want := range s.Enchantments {
		if !slices.ContainsFunc(o.Enchantments, func(e types.Enchantment) bool {
			return e.Name == want.Name && e.Level >= want.Level
		}) {
			return false
		}
	}
	return true
}

func (s Item) String() string {
	out := text(s.Identity(), s.d)
	if len(s.Enchantments) == 0 {
		return out
	}
	parts := make([]string, len(s.Enchantments))
	for i, e := range s.Enchantments {
		parts[i] = e.Name + "#" + strconv.Itoa(e.Level)
	}
	return out + "!" + strings.Join(parts, ",")
}

func (s Item) ApplyTo(*world.World, Subject) error { return unsupported(s, "apply") }

// Creature is a living entity kind.
type Creature struct {
	base
	Type material.Creature
	ID   int // live entity id, 0 when parsed from text
}

// NewCreature returns a creature subject.
func NewCreature(c material.Creature, d data.Data) Creature {
	return Creature{base: base{d: d}, Type: c}
}

func (Creature) Variant() Variant       { return VariantCreature }
func (s Creature) Identity() string     { return s.Type.Name }
func (s Creature) CanMatch() []Subject  { return []Subject{s} }
func (s Creature) String() string       { return text(s.Identity(), s.d) }
func (s Creature) ReadableName() string { return Readable(s.Type.Name) }

func (s Creature) Matches(other Subject) bool {
	return same(s, other) && data.Matches(s.d, other.Data())
}

func (s Creature) ApplyTo(*world.World, Subject) error { return unsupported(s, "apply") }

// Vehicle is a boat, minecart or painting.
type Vehicle struct {
	base
	Material material.Material
}

func (Vehicle) Variant() Variant             { return VariantVehicle }
func (s Vehicle) Identity() string           { return s.Material.Name }
func (s Vehicle) CanMatch() []Subject        { return []Subject{s} }
func (s Vehicle) String() string             { return s.Identity() }
func (s Vehicle) ReadableName() string       { return Readable(s.Material.Name) }
func (s Vehicle) Matches(other Subject) bool { return same(s, other) }

func (s Vehicle) ApplyTo(*world.World, Subject) error { return unsupported(s, "apply") }

// Projectile is a thrown or shot item acting as the tool of a hit.
type Projectile struct {
	base
	Material material.Material
}

func (Projectile) Variant() Variant             { return VariantProjectile }
func (s Projectile) Identity() string           { return s.Material.Name }
func (s Projectile) CanMatch() []Subject        { return []Subject{s} }
func (s Projectile) String() string             { return projectilePrefix + s.Identity() }
func (s Projectile) ReadableName() string       { return Readable(s.Material.Name) }
func (s Projectile) Matches(other Subject) bool { return same(s, other) }

func (s Projectile) ApplyTo(*world.World, Subject) error { return unsupported(s, "apply") }

// Group stands for every member of a material or creature group.
type Group struct {
	base
	Group material.Group
}

func (Group) Variant() Variant       { return VariantGroup }
func (s Group) Identity() string     { return s.Group.Name }
func (s Group) String() string       { return text(s.Identity(), s.d) }
func (s Group) ReadableName() string { return Readable(strings.TrimPrefix(s.Group.Name, "ANY_")) }

// Matches only compares groups by name. Expand with CanMatch to test members.
func (s Group) Matches(other Subject) bool { return same(s, other) }

// CanMatch lists each member carrying the group's data. Block members stay
// blocks; non-block materials become items.
func (s Group) CanMatch() []Subject {
	out := make([]Subject, 0, len(s.Group.Materials)+len(s.Group.Creatures))
	for _, m := range s.Group.Materials {
		if m.Block {
			out = append(out, NewBlock(m, s.d))
		} else {
			out = append(out, NewItem(m, s.d))
		}
	}
	for _, c := range s.Group.Creatures {
		out = append(out, NewCreature(c, s.d))
	}
	return out
}

func (s Group) ApplyTo(*world.World, Subject) error { return unsupported(s, "apply") }

// MatchesAny reports whether any concrete expansion of pattern matches actual.
func MatchesAny(pattern, actual Subject) bool {
	for _, p := range pattern.CanMatch() {
		if p.Matches(actual) {
			return true
		}
	}
	return false
}
