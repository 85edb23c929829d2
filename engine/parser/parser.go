// Package parser converts simulator command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/types"
)

var verbAliases = map[string]string{
	// Break
	"dig":     "break",
	"mine":    "break",
	"chop":    "break",
	"destroy": "break",
	"smash":   "break",

	// Clicks
	"click":      "left_click",
	"punch":      "left_click",
	"leftclick":  "left_click",
	"use":        "right_click",
	"rightclick": "right_click",
	"activate":   "right_click",

	// Leaves
	"decay": "leaf_decay",
	"wilt":  "leaf_decay",

	// Fishing
	"fish":  "fish_caught",
	"catch": "fish_caught",
	"reel":  "fish_caught",
	"miss":  "fish_failed",

	// Creatures
	"spawn":  "mob_spawn",
	"summon": "mob_spawn",
	"attack": "hit",
	"strike": "hit",
	"kill":   "hit",

	// Redstone
	"power":   "power_up",
	"unpower": "power_down",

	// Players
	"join":    "player_join",
	"login":   "player_join",
	"respawn": "player_respawn",

	// Simulator
	"set":      "place",
	"put":      "place",
	"equip":    "hold",
	"wield":    "hold",
	"l":        "look",
	"inv":      "drops",
	"items":    "drops",
	"tp":       "goto",
	"teleport": "goto",
	"guard":    "protect",
	"clear":    "clean",
	"pickup":   "clean",
}

var toolPrepositions = map[string]bool{
	"with": true, "using": true, "by": true,
}

var placePrepositions = map[string]bool{
	"at": true, "on": true, "in": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "some": true,
}

// Parse converts a raw command string into an Intent. The verb is
// lowercased; object and tool text keep their case so display names in
// specs survive.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(input)
	words[0] = strings.ToLower(words[0])

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])
	object, tool, at := splitOnPrepositions(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Tool:   tool,
		At:     at,
	}
}

// expandMultiWordVerbs handles "left click", "power up", "pick up" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	second := strings.ToLower(words[1])

	switch words[0] {
	case "left", "right":
		if second == "click" {
			return append([]string{words[0] + "_click"}, words[2:]...)
		}
	case "power":
		if second == "up" {
			return append([]string{"power_up"}, words[2:]...)
		}
		if second == "down" {
			return append([]string{"power_down"}, words[2:]...)
		}
	case "leaf", "leaves":
		if second == "decay" {
			return append([]string{"leaf_decay"}, words[2:]...)
		}
	case "pick":
		if second == "up" {
			return append([]string{"clean"}, words[2:]...)
		}
	case "fail", "lose":
		if second == "fish" || second == "catch" {
			return append([]string{"fish_failed"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[strings.ToLower(w)] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPrepositions splits "<object> [with <tool>] [at <where>]". The two
// clauses may come in either order.
func splitOnPrepositions(words []string) (object, tool, at string) {
	var obj, tl, loc []string
	cur := &obj
	for _, w := range words {
		lw := strings.ToLower(w)
		switch {
		case toolPrepositions[lw] && cur != &tl:
			cur = &tl
		case placePrepositions[lw] && cur != &loc:
			cur = &loc
		default:
			*cur = append(*cur, w)
		}
	}
	return strings.Join(obj, " "), strings.Join(tl, " "), strings.Join(loc, " ")
}

// ParseLocation reads "x,y,z", "x y z" or either followed by a world name.
// A missing world is filled from def.
func ParseLocation(s string, def types.Location) (types.Location, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 3 && len(fields) != 4 {
		return types.Location{}, fmt.Errorf("location %q: want x,y,z[,world]", s)
	}
	var xyz [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return types.Location{}, fmt.Errorf("location %q: %q is not a number", s, fields[i])
		}
		xyz[i] = v
	}
	loc := types.Location{World: def.World, X: xyz[0], Y: xyz[1], Z: xyz[2]}
	if len(fields) == 4 {
		loc.World = fields[3]
	}
	return loc, nil
}
