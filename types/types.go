// Package types defines the shared data structures for the dropcore engine.
// This package contains only type definitions, no logic.
package types

// Location is a point in a named world.
type Location struct {
	World string
	X     float64
	Y     float64
	Z     float64
}

// Enchantment is a resolved enchantment and its level.
type Enchantment struct {
	Name  string
	Level int
}

// ItemStack is a concrete produced item, ready to be materialized by the host.
type ItemStack struct {
	Kind         string // canonical material name
	ID           int    // numeric material id
	Data         int    // durability / sub-state value
	Amount       int
	Enchantments []Enchantment
	DisplayName  string
	Lore         []string
	Tint         string // dyeable armor color, "" when unset
}

// Slot is a creature equipment slot.
type Slot string

const (
	SlotHead  Slot = "HEAD"
	SlotHands Slot = "HANDS"
	SlotChest Slot = "CHEST"
	SlotLegs  Slot = "LEGS"
	SlotFeet  Slot = "FEET"
)

// Slots lists equipment slots in canonical order.
var Slots = []Slot{SlotHead, SlotHands, SlotChest, SlotLegs, SlotFeet}

// Equipment is an item worn in one slot and the fraction of the time it is
// dropped when the wearer dies.
type Equipment struct {
	Item       ItemStack
	DropChance float64 // 0..1
}

// Flags carries per-occurrence options that shape how a drop is produced.
type Flags struct {
	Spread        bool   // emit N single-count stacks instead of one stack of N
	Naturally     bool   // host should scatter the items as natural drops
	RecipientName string // %p
	VictimName    string // %v
	ToolName      string // %t
}

// Intent is a parsed simulator command.
type Intent struct {
	Verb   string // raw action name
	Object string // target subject text
	Tool   string // optional tool subject text
	At     string // optional "x,y,z" location text
}

// RuleStep is one rule's outcome in a traced resolution.
type RuleStep struct {
	RuleID  string
	Matched bool
	Fired   bool
	Draw    float64
	Items   int    // stacks contributed
	Err     string // recovered failure, "" when none
}

// Result is the outcome of one simulator step.
type Result struct {
	Output   []string
	Action   string      // resolved action, "" for simulator-only verbs
	Dropped  []ItemStack // produced by rules, in rule order
	Override bool
	Steps    []RuleStep
}
