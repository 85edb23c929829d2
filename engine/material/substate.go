package material

import (
	"fmt"
	"strings"
)

// Colors in wool order; a wool sub-state is the index into this list.
var colors = []struct {
	name string
	hex  string
}{
	{"WHITE", "#F0F0F0"}, {"ORANGE", "#EB8844"}, {"MAGENTA", "#C354CD"}, {"LIGHT_BLUE", "#6689D3"},
	{"YELLOW", "#DECF2A"}, {"LIME", "#41CD34"}, {"PINK", "#D88198"}, {"GRAY", "#434343"},
	{"SILVER", "#ABABAB"}, {"CYAN", "#287697"}, {"PURPLE", "#7B2FBE"}, {"BLUE", "#253192"},
	{"BROWN", "#51301A"}, {"GREEN", "#3B511A"}, {"RED", "#B3312C"}, {"BLACK", "#1E1B1B"},
}

var species = []string{"OAK", "SPRUCE", "BIRCH", "JUNGLE"}

// substates maps a material name to its named sub-state values.
var substates map[string]map[string]int

func buildSubstates() {
	wool := map[string]int{}
	dye := map[string]int{}
	for i, c := range colors {
		wool[normalize(c.name)] = i
		dye[normalize(c.name)] = 15 - i
	}
	wool["LIGHTGRAY"] = 8
	dye["LIGHTGRAY"] = 7
	dye["BONEMEAL"] = 15
	dye["COCOA"] = 3
	dye["LAPIS"] = 4

	wood := map[string]int{}
	for i, s := range species {
		wood[s] = i
	}
	wood["REDWOOD"] = 1
	wood["GENERIC"] = 0

	substates = map[string]map[string]int{
		"WOOL":       wool,
		"INK_SACK":   dye,
		"LOG":        wood,
		"LEAVES":     wood,
		"SAPLING":    wood,
		"WOOD":       wood,
		"LONG_GRASS": {"DEADBUSH": 0, "GRASS": 1, "TALLGRASS": 1, "FERN": 2},
		"COAL":       {"COAL": 0, "CHARCOAL": 1},
	}
}

// SubstateValue resolves a named sub-state for m, e.g. WOOL "RED" -> 14.
func SubstateValue(m Material, name string) (int, bool) {
	tbl, ok := substates[m.Name]
	if !ok {
		return 0, false
	}
	v, ok := tbl[normalize(name)]
	return v, ok
}

// SubstateName renders a sub-state value back to its canonical name.
func SubstateName(m Material, v int) (string, bool) {
	switch m.Name {
	case "WOOL":
		if v >= 0 && v < len(colors) {
			return colors[v].name, true
		}
	case "INK_SACK":
		if v >= 0 && v < len(colors) {
			return colors[15-v].name, true
		}
	case "LOG", "LEAVES", "SAPLING", "WOOD":
		if v >= 0 && v < len(species) {
			return species[v], true
		}
	}
	tbl, ok := substates[m.Name]
	if !ok {
		return "", false
	}
	best := ""
	for name, x := range tbl {
		if x == v && (best == "" || name < best) {
			best = name
		}
	}
	return best, best != ""
}

// ColorHex returns the "#RRGGBB" form of a named color.
func ColorHex(name string) (string, bool) {
	key := normalize(name)
	if key == "LIGHTGRAY" {
		key = "SILVER"
	}
	for _, c := range colors {
		if normalize(c.name) == key {
			return c.hex, true
		}
	}
	return "", false
}

// ParseColor accepts a color name or "#RRGGBB" and returns the hex form.
func ParseColor(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "#") {
		if len(raw) != 7 {
			return "", fmt.Errorf("color %q: want #RRGGBB", raw)
		}
		for _, r := range raw[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return "", fmt.Errorf("color %q: not hex", raw)
			}
		}
		return strings.ToUpper(raw), nil
	}
	if hex, ok := ColorHex(raw); ok {
		return hex, nil
	}
	return "", fmt.Errorf("unknown color %q", raw)
}
