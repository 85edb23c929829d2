package material

import (
	"fmt"
	"strconv"
	"strings"
)

// Creature is a living entity type.
type Creature struct {
	ID      int
	Name    string
	Hostile bool
}

func (c Creature) IsZero() bool   { return c.Name == "" }
func (c Creature) String() string { return c.Name }

var creatureDefs = []Creature{
	{50, "CREEPER", true}, {51, "SKELETON", true}, {52, "SPIDER", true},
	{53, "GIANT", true}, {54, "ZOMBIE", true}, {55, "SLIME", true},
	{56, "GHAST", true}, {57, "PIG_ZOMBIE", true}, {58, "ENDERMAN", true},
	{59, "CAVE_SPIDER", true}, {60, "SILVERFISH", true}, {61, "BLAZE", true},
	{62, "MAGMA_CUBE", true}, {63, "ENDER_DRAGON", true},
	{90, "PIG", false}, {91, "SHEEP", false}, {92, "COW", false},
	{93, "CHICKEN", false}, {94, "SQUID", false}, {95, "WOLF", false},
	{96, "MUSHROOM_COW", false}, {97, "SNOWMAN", false}, {98, "OCELOT", false},
	{99, "IRON_GOLEM", false}, {120, "VILLAGER", false},
	{1000, "PLAYER", false},
}

// creatureAliases are exact-token alternative names.
var creatureAliases = map[string]string{
	"ZOMBIEPIGMAN":  "PIG_ZOMBIE",
	"PIGMAN":        "PIG_ZOMBIE",
	"MOOSHROOM":     "MUSHROOM_COW",
	"MUSHROOMCOW":   "MUSHROOM_COW",
	"LAVASLIME":     "MAGMA_CUBE",
	"MAGMASLIME":    "MAGMA_CUBE",
	"OCELOTCAT":     "OCELOT",
	"CAT":           "OCELOT",
	"SNOWGOLEM":     "SNOWMAN",
	"VILLAGERGOLEM": "IRON_GOLEM",
	"DOG":           "WOLF",
	"DRAGON":        "ENDER_DRAGON",
	"ENDERDRAGON":   "ENDER_DRAGON",
}

var (
	creatureByID   map[int]Creature
	creatureByName map[string]Creature
)

func buildCreatures() {
	creatureByID = make(map[int]Creature, len(creatureDefs))
	creatureByName = make(map[string]Creature, len(creatureDefs))
	for _, c := range creatureDefs {
		if _, dup := creatureByID[c.ID]; dup {
			panic(fmt.Sprintf("creature %d: duplicate id", c.ID))
		}
		creatureByID[c.ID] = c
		creatureByName[normalize(c.Name)] = c
	}
	for alias, target := range creatureAliases {
		c, ok := creatureByName[normalize(target)]
		if !ok {
			panic(fmt.Sprintf("creature alias %s points to unknown %s", alias, target))
		}
		creatureByName[normalize(alias)] = c
	}
}

// CreatureByID returns the creature with the given entity id.
func CreatureByID(id int) (Creature, bool) {
	c, ok := creatureByID[id]
	return c, ok
}

// MatchCreature resolves a creature token. A leading "CREATURE_" or
// "ENTITY_" prefix is stripped; numeric ids are accepted.
func MatchCreature(token string) (Creature, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Creature{}, false
	}
	if n, err := strconv.Atoi(token); err == nil {
		return CreatureByID(n)
	}
	key := normalize(token)
	for _, prefix := range []string{"CREATURE", "ENTITY"} {
		if rest, ok := strings.CutPrefix(key, prefix); ok && rest != "" {
			key = rest
			break
		}
	}
	c, ok := creatureByName[key]
	return c, ok
}

// Creatures returns every creature in table order.
func Creatures() []Creature {
	out := make([]Creature, len(creatureDefs))
	copy(out, creatureDefs)
	return out
}
