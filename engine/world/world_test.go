package world

import (
	"sync"
	"testing"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/types"
)

func at(x, y, z float64) types.Location {
	return types.Location{World: "world", X: x, Y: y, Z: z}
}

func mustMaterial(t *testing.T, name string) material.Material {
	t.Helper()
	m, ok := material.Match(name)
	if !ok {
		t.Fatalf("unknown material %q", name)
	}
	return m
}

func TestBlocks(t *testing.T) {
	w := New()
	stone := mustMaterial(t, "STONE")
	dirt := mustMaterial(t, "DIRT")

	w.SetBlock(at(2, 0, 0), stone)
	w.SetBlock(at(1, 5, 0), dirt)
	w.SetBlock(at(1, 0, 3), stone)

	// Fractional coordinates land in the same block.
	b, ok := w.BlockAt(at(1.7, 5.2, 0.9))
	if !ok || b.Material.Name != "DIRT" {
		t.Fatalf("BlockAt = %+v, %v", b, ok)
	}

	got := w.Blocks()
	want := []types.Location{at(1, 0, 3), at(1, 5, 0), at(2, 0, 0)}
	if len(got) != len(want) {
		t.Fatalf("Blocks returned %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Loc != want[i] {
			t.Errorf("Blocks[%d] at %+v, want %+v", i, got[i].Loc, want[i])
		}
	}

	w.SetBlock(at(2, 0, 0), dirt)
	if b, _ := w.BlockAt(at(2, 0, 0)); b.Material.Name != "DIRT" {
		t.Error("SetBlock should replace")
	}

	w.RemoveBlock(at(2, 0, 0))
	if _, ok := w.BlockAt(at(2, 0, 0)); ok {
		t.Error("expected removed block to be absent")
	}
}

func TestCreatures(t *testing.T) {
	w := New()
	zombie, _ := material.MatchCreature("ZOMBIE")
	sheep, _ := material.MatchCreature("SHEEP")

	a := w.Spawn(zombie, at(0, 0, 0))
	b := w.Spawn(sheep, at(1, 0, 0))
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}
	if a.Equipment == nil {
		t.Error("equipment map should be ready to use")
	}

	w.Kill(a.ID)
	if _, ok := w.Creature(a.ID); ok {
		t.Error("killed creature still present")
	}
	c := w.Spawn(zombie, at(0, 0, 0))
	if c.ID != 3 {
		t.Errorf("ids must not be reused, got %d", c.ID)
	}

	all := w.Creatures()
	if len(all) != 2 || all[0].ID != 2 || all[1].ID != 3 {
		t.Errorf("Creatures = %+v", all)
	}
}

func TestPlayersNear(t *testing.T) {
	w := New()
	w.Join("alice", at(0, 64, 0))
	w.Join("bob", at(5, 64, 5))
	w.Join("carol", at(5, 80, 0))
	w.Join("dave", types.Location{World: "nether", Y: 64})

	tests := []struct {
		name   string
		loc    types.Location
		radius float64
		want   []string
	}{
		{"zero radius", at(0, 64, 0), 0, []string{"alice"}},
		{"box includes corner", at(0, 64, 0), 5, []string{"alice", "bob"}},
		{"every axis must be in range", at(5, 64, 0), 5, []string{"alice", "bob"}},
		{"above the others", at(5, 80, 0), 8, []string{"carol"}},
		{"other world", types.Location{World: "nether", Y: 64}, 100, []string{"dave"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.PlayersNear(tt.loc, tt.radius)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d players, want %v", len(got), tt.want)
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("player %d = %s, want %s", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestJoinMoves(t *testing.T) {
	w := New()
	p := w.Join("alice", at(0, 0, 0))
	p.Hand = types.ItemStack{Kind: "STICK", Amount: 1}

	again := w.Join("alice", at(9, 9, 9))
	if again != p || again.Loc != at(9, 9, 9) || again.Hand.Kind != "STICK" {
		t.Errorf("rejoin should move the same player, got %+v", again)
	}
}

func TestAllowed(t *testing.T) {
	w := New()
	w.Protect(Region{
		Name: "spawn",
		Min:  at(10, 0, 10),
		Max:  at(-10, 100, -10),
		Deny: []action.Action{action.Break},
	})

	tests := []struct {
		name string
		act  action.Action
		loc  types.Location
		want bool
	}{
		{"denied inside", action.Break, at(0, 50, 0), false},
		{"edges are inside", action.Break, at(10, 100, -10), false},
		{"other action allowed", action.LeftClick, at(0, 50, 0), true},
		{"outside", action.Break, at(11, 50, 0), true},
		{"other world", action.Break, types.Location{World: "nether", Y: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Allowed(tt.act, tt.loc); got != tt.want {
				t.Errorf("Allowed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDropped(t *testing.T) {
	w := New()
	w.Drop(at(0, 0, 0), types.ItemStack{Kind: "DIRT", Amount: 1}, true)
	w.Drop(at(0, 0, 0), types.ItemStack{Kind: "FLINT", Amount: 2}, false)

	got := w.Dropped()
	if len(got) != 2 || got[1].Item.Kind != "FLINT" || !got[0].Naturally {
		t.Fatalf("Dropped = %+v", got)
	}
	got[0].Item.Kind = "CHANGED"
	if w.Dropped()[0].Item.Kind != "DIRT" {
		t.Error("Dropped should return a copy")
	}

	if n := w.ClearDropped(); n != 2 {
		t.Errorf("ClearDropped = %d, want 2", n)
	}
	if len(w.Dropped()) != 0 {
		t.Error("expected nothing dropped after clear")
	}
}

func TestReset(t *testing.T) {
	w := New()
	zombie, _ := material.MatchCreature("ZOMBIE")
	w.SetBlock(at(0, 0, 0), mustMaterial(t, "STONE"))
	w.Spawn(zombie, at(1, 0, 0))
	w.Join("steve", at(0, 0, 0))
	w.Drop(at(0, 0, 0), types.ItemStack{Kind: "DIRT", Amount: 1}, true)
	w.Protect(Region{Name: "spawn", Min: at(-1, -1, -1), Max: at(1, 1, 1), Deny: []action.Action{action.Break}})

	w.Reset()

	if len(w.Blocks()) != 0 || len(w.Creatures()) != 0 || len(w.Dropped()) != 0 {
		t.Errorf("world not empty after reset")
	}
	if _, ok := w.Player("steve"); ok {
		t.Error("player survived reset")
	}
	if !w.Allowed(action.Break, at(0, 0, 0)) {
		t.Error("region survived reset")
	}
	if c := w.Spawn(zombie, at(0, 0, 0)); c.ID != 1 {
		t.Errorf("first id after reset = %d, want 1", c.ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	w := New()
	stone := mustMaterial(t, "STONE")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				loc := at(float64(i), float64(j), 0)
				w.SetBlock(loc, stone)
				w.BlockAt(loc)
				w.Drop(loc, types.ItemStack{Kind: "STONE", Amount: 1}, true)
				w.Allowed(action.Break, loc)
			}
		}(i)
	}
	wg.Wait()

	if len(w.Blocks()) != 400 || len(w.Dropped()) != 400 {
		t.Errorf("blocks %d dropped %d, want 400 each", len(w.Blocks()), len(w.Dropped()))
	}
}
