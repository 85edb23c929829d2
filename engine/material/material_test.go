package material

import (
	"slices"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"STONE", "STONE", true},
		{"stone", "STONE", true},
		{"1", "STONE", true},
		{"0", "AIR", true},
		{"diamond ore", "DIAMOND_ORE", true},
		{"Diamond-Pickaxe", "DIAMOND_PICKAXE", true},
		{"nothing", "AIR", true},
		{"spawner", "MOB_SPAWNER", true},
		{"383", "MONSTER_EGG", true},
		{"9999", "", false},
		{"unobtainium", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m, ok := Match(tt.token)
			if ok != tt.ok || m.Name != tt.want {
				t.Errorf("Match(%q) = %v, %v; want %s, %v", tt.token, m, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMaterialProperties(t *testing.T) {
	air, _ := Match("AIR")
	if air.IsZero() || !air.IsNothing() || !air.Block {
		t.Errorf("AIR = %+v", air)
	}
	helm, _ := Match("LEATHER_HELMET")
	if !helm.Dyeable || helm.MaxDurability == 0 || helm.Block {
		t.Errorf("LEATHER_HELMET = %+v", helm)
	}
	iron, _ := Match("IRON_HELMET")
	if iron.Dyeable {
		t.Error("IRON_HELMET should not be dyeable")
	}
	boat, _ := Match("BOAT")
	if !boat.IsVehicle() {
		t.Error("BOAT should be a vehicle")
	}
	egg, _ := Match("MONSTER_EGG")
	if !egg.IsSpawnEgg() {
		t.Error("MONSTER_EGG should be a spawn egg")
	}
}

func TestMatchCreature(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"ZOMBIE", "ZOMBIE", true},
		{"zombie", "ZOMBIE", true},
		{"CREATURE_ZOMBIE", "ZOMBIE", true},
		{"entity_zombie", "ZOMBIE", true},
		{"54", "ZOMBIE", true},
		{"zombie pigman", "PIG_ZOMBIE", true},
		{"mooshroom", "MUSHROOM_COW", true},
		{"lava slime", "MAGMA_CUBE", true},
		{"cat", "OCELOT", true},
		{"creature", "", false},
		{"dragonfly", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c, ok := MatchCreature(tt.token)
			if ok != tt.ok || c.Name != tt.want {
				t.Errorf("MatchCreature(%q) = %v, %v; want %s, %v", tt.token, c, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGroups(t *testing.T) {
	stone, _ := Match("STONE")
	diamond, _ := Match("DIAMOND")
	ore, _ := Match("DIAMOND_ORE")
	pick, _ := Match("IRON_PICKAXE")
	axe, _ := Match("IRON_AXE")
	zombie, _ := MatchCreature("ZOMBIE")
	player, _ := MatchCreature("PLAYER")

	anyBlock, ok := LookupGroup("any_block")
	if !ok {
		t.Fatal("ANY_BLOCK missing")
	}
	if !anyBlock.ContainsMaterial(stone) || anyBlock.ContainsMaterial(diamond) {
		t.Error("ANY_BLOCK membership wrong")
	}

	anyOre, _ := LookupGroup("ANY_ORE")
	if !anyOre.ContainsMaterial(ore) || anyOre.ContainsMaterial(stone) {
		t.Error("ANY_ORE membership wrong")
	}

	anyAxe, _ := LookupGroup("ANY_AXE")
	if !anyAxe.ContainsMaterial(axe) || anyAxe.ContainsMaterial(pick) {
		t.Error("ANY_AXE should not contain pickaxes")
	}

	anyCreature, _ := LookupGroup("ANY_CREATURE")
	if !anyCreature.ContainsCreature(zombie) || anyCreature.ContainsCreature(player) {
		t.Error("ANY_CREATURE membership wrong")
	}

	if _, ok := LookupGroup("ANY_THING"); ok {
		t.Error("unknown group resolved")
	}
	if !slices.Contains(Groups(), "ANY_PICKAXE") {
		t.Errorf("Groups() = %v", Groups())
	}
}

func TestParseEnchantment(t *testing.T) {
	tests := []struct {
		raw     string
		name    string
		level   int
		wantErr bool
	}{
		{"DAMAGE_ALL", "DAMAGE_ALL", 1, false},
		{"sharpness#3", "DAMAGE_ALL", 3, false},
		{"fortune#9", "LOOT_BONUS_BLOCKS", 3, false},
		{"silk touch#0", "SILK_TOUCH", 1, false},
		{"unbreaking#x", "", 0, true},
		{"glowing", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			e, lvl, err := ParseEnchantment(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (e.Name != tt.name || lvl != tt.level) {
				t.Errorf("got %s#%d, want %s#%d", e.Name, lvl, tt.name, tt.level)
			}
		})
	}
}

func TestSubstates(t *testing.T) {
	wool, _ := Match("WOOL")
	dye, _ := Match("INK_SACK")
	leaves, _ := Match("LEAVES")
	stone, _ := Match("STONE")

	if v, ok := SubstateValue(wool, "red"); !ok || v != 14 {
		t.Errorf("WOOL red = %d, %v", v, ok)
	}
	if v, ok := SubstateValue(wool, "light blue"); !ok || v != 3 {
		t.Errorf("WOOL light blue = %d, %v", v, ok)
	}
	if v, ok := SubstateValue(dye, "RED"); !ok || v != 1 {
		t.Errorf("INK_SACK RED = %d, %v", v, ok)
	}
	if v, ok := SubstateValue(leaves, "birch"); !ok || v != 2 {
		t.Errorf("LEAVES birch = %d, %v", v, ok)
	}
	if _, ok := SubstateValue(stone, "red"); ok {
		t.Error("STONE has no named sub-states")
	}
	if n, ok := SubstateName(wool, 14); !ok || n != "RED" {
		t.Errorf("SubstateName(WOOL, 14) = %q", n)
	}
	if n, ok := SubstateName(dye, 0); !ok || n != "BLACK" {
		t.Errorf("SubstateName(INK_SACK, 0) = %q", n)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"RED", "#B3312C", false},
		{"light gray", "#ABABAB", false},
		{"#a0b1c2", "#A0B1C2", false},
		{"#12345", "", true},
		{"#GGGGGG", "", true},
		{"mauve", "", true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.raw)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColor(%q) = %q, %v", tt.raw, got, err)
		}
	}
}
