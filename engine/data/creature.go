package data

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/types"
)

// Creature is a creature's max health, free-form tags (SHEARED, BABY, a
// color...) and worn equipment. Zero fields are unconstrained when matching.
type Creature struct {
	MaxHealth int
	Tags      []string // canonical, sorted
	Equipment map[types.Slot]types.Equipment
}

func (Creature) isData() {}

// Matches reports whether other has at least what d asks for.
func (d Creature) Matches(other Data) bool {
	o, ok := other.(Creature)
	if !ok {
		return false
	}
	if d.MaxHealth > 0 && o.MaxHealth != d.MaxHealth {
		return false
	}
	for _, tag := range d.Tags {
		if !slices.Contains(o.Tags, tag) {
			return false
		}
	}
	for slot, eq := range d.Equipment {
		got, ok := o.Equipment[slot]
		if !ok || !sameItem(eq.Item, got.Item) {
			return false
		}
	}
	return true
}

// HasTag reports whether tag is set.
func (d Creature) HasTag(tag string) bool { return slices.Contains(d.Tags, canon(tag)) }

func (d Creature) Text() string {
	var parts []string
	if d.MaxHealth > 0 {
		parts = append(parts, strconv.Itoa(d.MaxHealth)+"hp")
	}
	parts = append(parts, d.Tags...)
	for _, slot := range types.Slots {
		eq, ok := d.Equipment[slot]
		if !ok {
			continue
		}
		p := "eq:" + string(slot) + ":" + itemText(eq.Item)
		if eq.DropChance != 1 {
			p += "%" + percent(eq.DropChance)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "/")
}

// percent renders a 0..1 chance as a percentage rounded to four places,
// so 0.07 prints as "7" and not "7.000000000000001".
func percent(chance float64) string {
	return strconv.FormatFloat(math.Round(chance*100*1e4)/1e4, 'f', -1, 64)
}

var slotAliases = map[string]types.Slot{
	"HEAD": types.SlotHead, "HELMET": types.SlotHead,
	"HANDS": types.SlotHands, "HOLDING": types.SlotHands,
	"CHEST": types.SlotChest, "CHESTPLATE": types.SlotChest,
	"LEGS": types.SlotLegs, "LEGGINGS": types.SlotLegs, "LEGPLATE": types.SlotLegs,
	"FEET": types.SlotFeet, "BOOTS": types.SlotFeet,
}

// ParseSlot resolves an equipment slot name or alias.
func ParseSlot(s string) (types.Slot, bool) {
	slot, ok := slotAliases[canon(s)]
	return slot, ok
}

// ParseCreature reads "/"-separated parts: "<n>hp", "eq:<slot>:<item>[%chance]"
// or a free tag.
func ParseCreature(s string) (Creature, error) {
	var c Creature
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		switch {
		case strings.HasPrefix(lower, "eq:"):
			slot, eq, err := parseEquipment(part[3:])
			if err != nil {
				return Creature{}, err
			}
			if c.Equipment == nil {
				c.Equipment = map[types.Slot]types.Equipment{}
			}
			c.Equipment[slot] = eq
		case strings.HasSuffix(lower, "hp"):
			n, err := strconv.Atoi(part[:len(part)-2])
			if err != nil || n <= 0 {
				return Creature{}, invalid("creature: bad health %q", part)
			}
			c.MaxHealth = n
		default:
			tag := canon(part)
			if !slices.Contains(c.Tags, tag) {
				c.Tags = append(c.Tags, tag)
			}
		}
	}
	slices.Sort(c.Tags)
	return c, nil
}

func parseEquipment(s string) (types.Slot, types.Equipment, error) {
	slotName, rest, ok := strings.Cut(s, ":")
	if !ok {
		return "", types.Equipment{}, invalid("equipment %q: want <slot>:<item>", s)
	}
	slot, ok := ParseSlot(slotName)
	if !ok {
		return "", types.Equipment{}, invalid("equipment: unknown slot %q", slotName)
	}
	spec, pct, hasPct := strings.Cut(rest, "%")
	chance := 100.0
	if hasPct {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil || f < 0 || f > 100 {
			return "", types.Equipment{}, invalid("equipment %q: chance must be 0..100", s)
		}
		chance = f
	}
	it, err := parseItemSpec(spec)
	if err != nil {
		return "", types.Equipment{}, err
	}
	return slot, types.Equipment{Item: it, DropChance: chance / 100}, nil
}
