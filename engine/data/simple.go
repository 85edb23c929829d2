package data

import (
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/types"
)

// Simple is a single scalar sub-state such as a wool color or wood species.
type Simple struct{ Value int }

func (Simple) isData() {}

func (d Simple) Matches(other Data) bool {
	o, ok := other.(Simple)
	return ok && o.Value == d.Value
}

func (d Simple) Text() string { return strconv.Itoa(d.Value) }

// ParseSimple accepts an integer or a name from m's named sub-states.
// Leaf values keep only the species bits.
func ParseSimple(m material.Material, s string) (Simple, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		var ok bool
		if v, ok = material.SubstateValue(m, s); !ok {
			return Simple{}, invalid("%s: unknown sub-state %q", m.Name, s)
		}
	}
	if m.Name == "LEAVES" {
		v &= 0x3
	}
	return Simple{Value: v}, nil
}

// Item is a tool or armor sub-state: durability, or a tint for dyeable armor.
type Item struct {
	Durability int
	Tint       string // "#RRGGBB"
}

func (Item) isData() {}

func (d Item) Matches(other Data) bool {
	o, ok := other.(Item)
	return ok && o.Durability == d.Durability && o.Tint == d.Tint
}

func (d Item) Text() string {
	if d.Tint != "" {
		return d.Tint
	}
	return strconv.Itoa(d.Durability)
}

// ParseItem reads a durability integer, or a color for dyeable armor.
func ParseItem(m material.Material, s string) (Item, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Item{Durability: n}, nil
	}
	if m.Dyeable {
		hex, err := material.ParseColor(s)
		if err != nil {
			return Item{}, invalid("%s: %v", m.Name, err)
		}
		return Item{Tint: hex}, nil
	}
	return Item{}, invalid("%s: bad durability %q", m.Name, s)
}

// itemText renders a stack as kind[@sub] for nested specs.
func itemText(it types.ItemStack) string {
	switch {
	case it.Tint != "":
		return it.Kind + "@" + it.Tint
	case it.Data != 0:
		return it.Kind + "@" + strconv.Itoa(it.Data)
	default:
		return it.Kind
	}
}

// parseItemSpec reads kind[@sub] into a single stack.
func parseItemSpec(s string) (types.ItemStack, error) {
	kind, sub, hasSub := strings.Cut(strings.TrimSpace(s), "@")
	m, ok := material.Match(kind)
	if !ok {
		return types.ItemStack{}, invalid("unknown item %q", kind)
	}
	it := types.ItemStack{Kind: m.Name, ID: m.ID, Amount: 1}
	if !hasSub {
		return it, nil
	}
	d, err := Parse(m, sub)
	if err != nil {
		return types.ItemStack{}, err
	}
	if err := ApplyToItem(d, &it); err != nil {
		return types.ItemStack{}, err
	}
	return it, nil
}

func sameItem(a, b types.ItemStack) bool {
	return a.ID == b.ID && a.Data == b.Data && a.Tint == b.Tint
}
