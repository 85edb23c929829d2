// Package material holds the static kind tables: block and item materials,
// creature types, groups, enchantments and named sub-state values.
// Tables are built once at init and are read-only afterwards.
package material

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Material is a block or item kind.
type Material struct {
	ID            int
	Name          string
	Block         bool
	Dyeable       bool // leather armor accepts a tint
	MaxDurability int
}

// IsZero reports whether m is the "no material" value. AIR is a real
// material and is not zero.
func (m Material) IsZero() bool { return m.Name == "" }

func (m Material) String() string { return m.Name }

// IsNothing reports whether dropping m means "drop nothing".
func (m Material) IsNothing() bool { return m.Name == "AIR" }

// IsSpawnEgg reports whether m is the creature spawn egg item.
func (m Material) IsSpawnEgg() bool { return m.Name == "MONSTER_EGG" }

// IsVehicle reports whether m is one of the few non-block kinds that can be
// a target because it exists in the world as a vehicle or hanging entity.
func (m Material) IsVehicle() bool {
	switch m.Name {
	case "PAINTING", "BOAT", "MINECART", "POWERED_MINECART", "STORAGE_MINECART":
		return true
	}
	return false
}

type def struct {
	id    int
	name  string
	block bool
	dura  int
}

func blk(id int, name string) def        { return def{id: id, name: name, block: true} }
func itm(id int, name string) def        { return def{id: id, name: name} }
func dur(id int, name string, d int) def { return def{id: id, name: name, dura: d} }

var defs = []def{
	blk(0, "AIR"), blk(1, "STONE"), blk(2, "GRASS"), blk(3, "DIRT"), blk(4, "COBBLESTONE"),
	blk(5, "WOOD"), blk(6, "SAPLING"), blk(7, "BEDROCK"), blk(8, "WATER"), blk(10, "LAVA"),
	blk(12, "SAND"), blk(13, "GRAVEL"), blk(14, "GOLD_ORE"), blk(15, "IRON_ORE"), blk(16, "COAL_ORE"),
	blk(17, "LOG"), blk(18, "LEAVES"), blk(20, "GLASS"), blk(21, "LAPIS_ORE"), blk(23, "DISPENSER"),
	blk(25, "NOTE_BLOCK"), blk(31, "LONG_GRASS"), blk(35, "WOOL"), blk(37, "YELLOW_FLOWER"),
	blk(38, "RED_ROSE"), blk(39, "BROWN_MUSHROOM"), blk(40, "RED_MUSHROOM"), blk(46, "TNT"),
	blk(47, "BOOKSHELF"), blk(48, "MOSSY_COBBLESTONE"), blk(49, "OBSIDIAN"), blk(50, "TORCH"),
	blk(51, "FIRE"), blk(52, "MOB_SPAWNER"), blk(54, "CHEST"), blk(55, "REDSTONE_WIRE"),
	blk(56, "DIAMOND_ORE"), blk(58, "WORKBENCH"), blk(59, "CROPS"), blk(61, "FURNACE"),
	blk(62, "BURNING_FURNACE"), blk(73, "REDSTONE_ORE"), blk(78, "SNOW"), blk(79, "ICE"),
	blk(81, "CACTUS"), blk(82, "CLAY"), blk(83, "SUGAR_CANE_BLOCK"), blk(84, "JUKEBOX"),
	blk(86, "PUMPKIN"), blk(87, "NETHERRACK"), blk(88, "SOUL_SAND"), blk(89, "GLOWSTONE"),
	blk(103, "MELON_BLOCK"), blk(106, "VINE"), blk(110, "MYCEL"), blk(129, "EMERALD_ORE"),
	dur(256, "IRON_SPADE", 250), dur(257, "IRON_PICKAXE", 250), dur(258, "IRON_AXE", 250),
	dur(259, "FLINT_AND_STEEL", 64), itm(260, "APPLE"), dur(261, "BOW", 384), itm(262, "ARROW"),
	itm(263, "COAL"), itm(264, "DIAMOND"), itm(265, "IRON_INGOT"), itm(266, "GOLD_INGOT"),
	dur(267, "IRON_SWORD", 250), dur(268, "WOOD_SWORD", 59), dur(269, "WOOD_SPADE", 59),
	dur(270, "WOOD_PICKAXE", 59), dur(271, "WOOD_AXE", 59), dur(272, "STONE_SWORD", 131),
	dur(273, "STONE_SPADE", 131), dur(274, "STONE_PICKAXE", 131), dur(275, "STONE_AXE", 131),
	dur(276, "DIAMOND_SWORD", 1561), dur(277, "DIAMOND_SPADE", 1561), dur(278, "DIAMOND_PICKAXE", 1561),
	dur(279, "DIAMOND_AXE", 1561), itm(280, "STICK"), itm(287, "STRING"), itm(288, "FEATHER"),
	itm(289, "SULPHUR"), itm(295, "SEEDS"), itm(296, "WHEAT"), itm(297, "BREAD"),
	dur(298, "LEATHER_HELMET", 55), dur(299, "LEATHER_CHESTPLATE", 80), dur(300, "LEATHER_LEGGINGS", 75),
	dur(301, "LEATHER_BOOTS", 65), dur(306, "IRON_HELMET", 165), dur(307, "IRON_CHESTPLATE", 240),
	dur(308, "IRON_LEGGINGS", 225), dur(309, "IRON_BOOTS", 195), dur(310, "DIAMOND_HELMET", 363),
	dur(311, "DIAMOND_CHESTPLATE", 528), dur(312, "DIAMOND_LEGGINGS", 495), dur(313, "DIAMOND_BOOTS", 429),
	itm(318, "FLINT"), itm(319, "PORK"), itm(320, "GRILLED_PORK"), itm(321, "PAINTING"),
	itm(322, "GOLDEN_APPLE"), itm(328, "MINECART"), itm(331, "REDSTONE"), itm(332, "SNOW_BALL"),
	itm(333, "BOAT"), itm(334, "LEATHER"), itm(336, "CLAY_BRICK"), itm(337, "CLAY_BALL"),
	itm(338, "SUGAR_CANE"), itm(339, "PAPER"), itm(340, "BOOK"), itm(341, "SLIME_BALL"),
	itm(342, "STORAGE_MINECART"), itm(343, "POWERED_MINECART"), itm(344, "EGG"),
	dur(346, "FISHING_ROD", 64), itm(348, "GLOWSTONE_DUST"), itm(349, "RAW_FISH"),
	itm(350, "COOKED_FISH"), itm(351, "INK_SACK"), itm(352, "BONE"), itm(353, "SUGAR"),
	dur(359, "SHEARS", 238), itm(360, "MELON"), itm(363, "RAW_BEEF"), itm(365, "RAW_CHICKEN"),
	itm(367, "ROTTEN_FLESH"), itm(368, "ENDER_PEARL"), itm(369, "BLAZE_ROD"), itm(375, "SPIDER_EYE"),
	itm(383, "MONSTER_EGG"), itm(388, "EMERALD"),
	itm(2256, "GOLD_RECORD"), itm(2257, "GREEN_RECORD"), itm(2258, "RECORD_3"), itm(2259, "RECORD_4"),
	itm(2260, "RECORD_5"), itm(2261, "RECORD_6"), itm(2262, "RECORD_7"), itm(2263, "RECORD_8"),
	itm(2264, "RECORD_9"), itm(2265, "RECORD_10"), itm(2266, "RECORD_11"), itm(2267, "RECORD_12"),
}

// materialAliases maps normalized alternative spellings onto canonical names.
var materialAliases = map[string]string{
	"NOTHING":       "AIR",
	"PLANKS":        "WOOD",
	"TREE":          "LOG",
	"LEAF":          "LEAVES",
	"SPAWNER":       "MOB_SPAWNER",
	"DYE":           "INK_SACK",
	"SPAWNEGG":      "MONSTER_EGG",
	"GUNPOWDER":     "SULPHUR",
	"SNOWBALL":      "SNOW_BALL",
	"CRAFTINGTABLE": "WORKBENCH",
	"MYCELIUM":      "MYCEL",
	"RAWPORKCHOP":   "PORK",
}

var (
	byID   map[int]Material
	byName map[string]Material // normalized name -> material
	all    []Material
)

func init() {
	buildMaterials()
	buildCreatures()
	buildGroups()
	buildEnchantments()
	buildSubstates()
}

func buildMaterials() {
	byID = make(map[int]Material, len(defs))
	byName = make(map[string]Material, len(defs))
	for _, d := range defs {
		m := mustDefine(d)
		byID[m.ID] = m
		byName[normalize(m.Name)] = m
		all = append(all, m)
	}
	for alias, target := range materialAliases {
		m, ok := byName[normalize(target)]
		if !ok {
			panic(fmt.Sprintf("material alias %s points to unknown %s", alias, target))
		}
		byName[normalize(alias)] = m
	}
	sort.Slice(all, func(a, b int) bool { return all[a].ID < all[b].ID })
}

func mustDefine(d def) Material {
	if d.name == "" {
		panic(fmt.Sprintf("material %d: empty name", d.id))
	}
	if _, dup := byID[d.id]; dup {
		panic(fmt.Sprintf("material %d: duplicate id", d.id))
	}
	return Material{
		ID:            d.id,
		Name:          d.name,
		Block:         d.block,
		Dyeable:       strings.HasPrefix(d.name, "LEATHER_") && d.dura > 0,
		MaxDurability: d.dura,
	}
}

// normalize uppercases s and drops separators so "Diamond ore", "diamond-ore"
// and "DIAMOND_ORE" compare equal.
func normalize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '-', '_':
			continue
		}
		sb.WriteRune(r)
	}
	return strings.ToUpper(sb.String())
}

// ByID returns the material with the given numeric id.
func ByID(id int) (Material, bool) {
	m, ok := byID[id]
	return m, ok
}

// Match resolves a kind token: integer id first, then a case and spacing
// insensitive name lookup including aliases.
func Match(token string) (Material, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Material{}, false
	}
	if n, err := strconv.Atoi(token); err == nil {
		return ByID(n)
	}
	m, ok := byName[normalize(token)]
	return m, ok
}

// All returns every material ordered by id.
func All() []Material {
	out := make([]Material, len(all))
	copy(out, all)
	return out
}

// Blocks returns every block material ordered by id.
func Blocks() []Material {
	var out []Material
	for _, m := range all {
		if m.Block {
			out = append(out, m)
		}
	}
	return out
}
