package material

import (
	"fmt"
	"strconv"
	"strings"
)

// EnchantmentKind is an enchantment type with its level ceiling.
type EnchantmentKind struct {
	ID       int
	Name     string
	MaxLevel int
}

func (e EnchantmentKind) IsZero() bool { return e.Name == "" }

var enchantDefs = []EnchantmentKind{
	{0, "PROTECTION_ENVIRONMENTAL", 4}, {1, "PROTECTION_FIRE", 4}, {2, "PROTECTION_FALL", 4},
	{3, "PROTECTION_EXPLOSIONS", 4}, {4, "PROTECTION_PROJECTILE", 4}, {5, "OXYGEN", 3},
	{6, "WATER_WORKER", 1}, {16, "DAMAGE_ALL", 5}, {17, "DAMAGE_UNDEAD", 5},
	{18, "DAMAGE_ARTHROPODS", 5}, {19, "KNOCKBACK", 2}, {20, "FIRE_ASPECT", 2},
	{21, "LOOT_BONUS_MOBS", 3}, {32, "DIG_SPEED", 5}, {33, "SILK_TOUCH", 1},
	{34, "DURABILITY", 3}, {35, "LOOT_BONUS_BLOCKS", 3}, {48, "ARROW_DAMAGE", 5},
	{49, "ARROW_KNOCKBACK", 2}, {50, "ARROW_FIRE", 1}, {51, "ARROW_INFINITE", 1},
}

var enchantAliases = map[string]string{
	"PROTECTION":      "PROTECTION_ENVIRONMENTAL",
	"FIREPROTECTION":  "PROTECTION_FIRE",
	"FEATHERFALLING":  "PROTECTION_FALL",
	"BLASTPROTECTION": "PROTECTION_EXPLOSIONS",
	"RESPIRATION":     "OXYGEN",
	"AQUAAFFINITY":    "WATER_WORKER",
	"SHARPNESS":       "DAMAGE_ALL",
	"SMITE":           "DAMAGE_UNDEAD",
	"BANE":            "DAMAGE_ARTHROPODS",
	"LOOTING":         "LOOT_BONUS_MOBS",
	"EFFICIENCY":      "DIG_SPEED",
	"UNBREAKING":      "DURABILITY",
	"FORTUNE":         "LOOT_BONUS_BLOCKS",
	"POWER":           "ARROW_DAMAGE",
	"PUNCH":           "ARROW_KNOCKBACK",
	"FLAME":           "ARROW_FIRE",
	"INFINITY":        "ARROW_INFINITE",
}

var enchantByName map[string]EnchantmentKind

func buildEnchantments() {
	enchantByName = make(map[string]EnchantmentKind, len(enchantDefs)+len(enchantAliases))
	for _, e := range enchantDefs {
		enchantByName[normalize(e.Name)] = e
	}
	for alias, target := range enchantAliases {
		e, ok := enchantByName[normalize(target)]
		if !ok {
			panic(fmt.Sprintf("enchantment alias %s points to unknown %s", alias, target))
		}
		enchantByName[normalize(alias)] = e
	}
}

// MatchEnchantment resolves an enchantment name or alias.
func MatchEnchantment(name string) (EnchantmentKind, bool) {
	e, ok := enchantByName[normalize(name)]
	return e, ok
}

// ParseEnchantment parses "NAME[#level]". A missing level means 1; levels
// are clamped to [1, MaxLevel].
func ParseEnchantment(raw string) (EnchantmentKind, int, error) {
	name, lvl, hasLevel := strings.Cut(strings.TrimSpace(raw), "#")
	e, ok := MatchEnchantment(name)
	if !ok {
		return EnchantmentKind{}, 0, fmt.Errorf("unknown enchantment %q", name)
	}
	level := 1
	if hasLevel {
		n, err := strconv.Atoi(strings.TrimSpace(lvl))
		if err != nil {
			return EnchantmentKind{}, 0, fmt.Errorf("enchantment %s: bad level %q", e.Name, lvl)
		}
		level = n
	}
	level = max(1, min(level, e.MaxLevel))
	return e, level, nil
}
