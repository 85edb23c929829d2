package subject

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/types"
)

const projectilePrefix = "PROJECTILE_"

// ErrFallback marks a sub-state that could not be parsed as written and was
// read as a bare number or dropped instead.
var ErrFallback = errors.New("sub-state fallback")

// Parts is a spec string split into its sections:
//
//	<kind>[@<substate>|:<substate>][!<ench>,...][~<name>[~<lore>...]]
type Parts struct {
	Kind        string
	Substate    string
	HasSubstate bool
	Enchants    []string
	DisplayName string
	Lore        []string
	HasName     bool
}

// Split tokenizes raw. The "~" section comes off first, then the sub-state
// at the first "@" or ":", then the "!" enchantment list.
func Split(raw string) Parts {
	s := strings.TrimSpace(raw)
	var p Parts
	if head, tail, ok := strings.Cut(s, "~"); ok {
		segs := strings.Split(tail, "~")
		s, p.DisplayName, p.Lore, p.HasName = head, segs[0], segs[1:], true
	}
	if i := strings.IndexAny(s, "@:"); i >= 0 {
		p.Kind, p.Substate, p.HasSubstate = s[:i], s[i+1:], true
		if sub, ench, ok := strings.Cut(p.Substate, "!"); ok {
			p.Substate, p.Enchants = sub, splitList(ench)
		}
	} else if kind, ench, ok := strings.Cut(s, "!"); ok {
		p.Kind, p.Enchants = kind, splitList(ench)
	} else {
		p.Kind = s
	}
	p.Kind = strings.TrimSpace(p.Kind)
	p.Substate = strings.TrimSpace(p.Substate)
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveSubstate parses sub for m. When that fails it falls back to the
// leading integer of sub, then to no sub-state; both fallbacks return a
// non-nil warning wrapping ErrFallback alongside the usable result.
func ResolveSubstate(m material.Material, sub string) (data.Data, error) {
	d, err := data.Parse(m, sub)
	if err == nil {
		return d, nil
	}
	if n, ok := leadingInt(sub); ok {
		if nd, nerr := data.Parse(m, strconv.Itoa(n)); nerr == nil {
			return nd, fmt.Errorf("%s@%s: using %d: %w", m.Name, sub, n, ErrFallback)
		}
		return data.Simple{Value: n}, fmt.Errorf("%s@%s: using %d: %w", m.Name, sub, n, ErrFallback)
	}
	return nil, fmt.Errorf("%s@%s: %v; ignoring sub-state: %w", m.Name, sub, err, ErrFallback)
}

func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func creatureData(c material.Creature, sub string, warn func(error)) data.Data {
	d, err := data.ParseCreature(sub)
	if err != nil {
		emit(warn, fmt.Errorf("%s@%s: %v; ignoring sub-state: %w", c.Name, sub, err, ErrFallback))
		return nil
	}
	return d
}

func emit(warn func(error), err error) {
	if warn != nil && err != nil {
		warn(err)
	}
}

func creaturePrefixed(kind string) bool {
	k := strings.ToUpper(kind)
	return strings.HasPrefix(k, "CREATURE") || strings.HasPrefix(k, "ENTITY")
}

// ParseTarget reads a rule target. Kinds resolve as a group, a projectile,
// a material (vehicle, block or item) and finally a creature. Sub-state
// problems are reported to warn and tolerated; an unknown kind is an error.
func ParseTarget(raw string, warn func(error)) (Subject, error) {
	p := Split(raw)
	if p.Kind == "" {
		return nil, fmt.Errorf("empty target: %w", ErrUnknownKind)
	}
	return parseKind(p, warn)
}

// ParseTool reads a rule tool. "", ANY and ALL mean no constraint and return
// nil; NOTHING, AIR and HAND mean an empty hand.
func ParseTool(raw string, warn func(error)) (Subject, error) {
	p := Split(raw)
	switch strings.ToUpper(p.Kind) {
	case "", "ANY", "ALL":
		return nil, nil
	case "NOTHING", "AIR", "HAND", "HANDS":
		air, _ := material.Match("AIR")
		return NewItem(air, nil), nil
	}
	s, err := parseKind(p, warn)
	if err != nil {
		return nil, err
	}
	if b, ok := s.(Block); ok {
		return NewItem(b.Material, b.d, enchantments(p.Enchants, warn)...), nil
	}
	return s, nil
}

func parseKind(p Parts, warn func(error)) (Subject, error) {
	if g, ok := material.LookupGroup(p.Kind); ok {
		return Group{base: base{d: groupData(g, p, warn)}, Group: g}, nil
	}
	if rest, ok := cutPrefixFold(p.Kind, projectilePrefix); ok {
		m, ok := material.Match(rest)
		if !ok {
			return nil, fmt.Errorf("projectile %q: %w", rest, ErrUnknownKind)
		}
		return Projectile{Material: m}, nil
	}
	if !creaturePrefixed(p.Kind) {
		if m, ok := material.Match(p.Kind); ok {
			var d data.Data
			if p.HasSubstate && p.Substate != "" {
				var err error
				d, err = ResolveSubstate(m, p.Substate)
				emit(warn, err)
			}
			switch {
			case m.IsVehicle():
				return Vehicle{Material: m}, nil
			case m.Block:
				return NewBlock(m, d), nil
			default:
				return NewItem(m, d, enchantments(p.Enchants, warn)...), nil
			}
		}
	}
	if c, ok := material.MatchCreature(p.Kind); ok {
		var d data.Data
		if p.HasSubstate && p.Substate != "" {
			d = creatureData(c, p.Substate, warn)
		}
		return NewCreature(c, d), nil
	}
	return nil, fmt.Errorf("%q: %w", p.Kind, ErrUnknownKind)
}

// groupData reads a group's sub-state against its first member.
func groupData(g material.Group, p Parts, warn func(error)) data.Data {
	if !p.HasSubstate || p.Substate == "" {
		return nil
	}
	if len(g.Creatures) > 0 {
		return creatureData(g.Creatures[0], p.Substate, warn)
	}
	if len(g.Materials) == 0 {
		return nil
	}
	d, err := ResolveSubstate(g.Materials[0], p.Substate)
	emit(warn, err)
	return d
}

func enchantments(raw []string, warn func(error)) []types.Enchantment {
	var out []types.Enchantment
	for _, r := range raw {
		e, lvl, err := material.ParseEnchantment(r)
		if err != nil {
			emit(warn, err)
			continue
		}
		out = append(out, types.Enchantment{Name: e.Name, Level: lvl})
	}
	return out
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
