package material

import (
	"slices"
	"strings"
)

// Group is a named set of materials or creatures a rule can target as one.
type Group struct {
	Name      string
	Materials []Material
	Creatures []Creature
}

func (g Group) IsZero() bool { return g.Name == "" }

// ContainsMaterial reports whether m is a member of g.
func (g Group) ContainsMaterial(m Material) bool {
	return slices.ContainsFunc(g.Materials, func(x Material) bool { return x.ID == m.ID })
}

// ContainsCreature reports whether c is a member of g.
func (g Group) ContainsCreature(c Creature) bool {
	return slices.ContainsFunc(g.Creatures, func(x Creature) bool { return x.ID == c.ID })
}

var groups map[string]Group

func buildGroups() {
	suffix := func(s string) []Material {
		var out []Material
		for _, m := range all {
			if strings.HasSuffix(m.Name, s) {
				out = append(out, m)
			}
		}
		return out
	}
	named := func(names ...string) []Material {
		out := make([]Material, 0, len(names))
		for _, n := range names {
			m, ok := byName[normalize(n)]
			if !ok {
				panic("group member " + n + " is not a material")
			}
			out = append(out, m)
		}
		return out
	}

	var living []Creature
	for _, c := range creatureDefs {
		if c.Name != "PLAYER" {
			living = append(living, c)
		}
	}

	groups = map[string]Group{}
	add := func(g Group) { groups[normalize(g.Name)] = g }
	add(Group{Name: "ANY_BLOCK", Materials: Blocks()})
	add(Group{Name: "ANY_CREATURE", Creatures: living})
	add(Group{Name: "ANY_ORE", Materials: suffix("_ORE")})
	add(Group{Name: "ANY_LEAVES", Materials: named("LEAVES")})
	add(Group{Name: "ANY_WOOL", Materials: named("WOOL")})
	add(Group{Name: "ANY_LOG", Materials: named("LOG")})
	add(Group{Name: "ANY_PICKAXE", Materials: suffix("_PICKAXE")})
	add(Group{Name: "ANY_SWORD", Materials: suffix("_SWORD")})
	add(Group{Name: "ANY_AXE", Materials: suffix("_AXE")})
	add(Group{Name: "ANY_SPADE", Materials: suffix("_SPADE")})
	add(Group{Name: "ANY_HELMET", Materials: suffix("_HELMET")})
	add(Group{Name: "ANY_RECORD", Materials: append(named("GOLD_RECORD", "GREEN_RECORD"), prefixed("RECORD_")...)})
}

func prefixed(p string) []Material {
	var out []Material
	for _, m := range all {
		if strings.HasPrefix(m.Name, p) {
			out = append(out, m)
		}
	}
	return out
}

// LookupGroup resolves a group name such as "ANY_ORE".
func LookupGroup(name string) (Group, bool) {
	g, ok := groups[normalize(name)]
	return g, ok
}

// Groups returns the group names in sorted order.
func Groups() []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Name)
	}
	slices.Sort(out)
	return out
}
