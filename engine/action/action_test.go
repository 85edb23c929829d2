package action

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestBuiltinOrder(t *testing.T) {
	r := NewRegistry()
	want := []string{
		"BREAK", "LEFT_CLICK", "RIGHT_CLICK", "LEAF_DECAY", "FISH_CAUGHT", "FISH_FAILED",
		"MOB_SPAWN", "HIT", "POWER_UP", "POWER_DOWN", "PLAYER_JOIN", "PLAYER_RESPAWN",
	}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for i, a := range r.Values() {
		if a.Ordinal() != i {
			t.Errorf("%s ordinal = %d, want %d", a, a.Ordinal(), i)
		}
		if a.Owner() != Core {
			t.Errorf("%s owner = %q, want %q", a, a.Owner(), Core)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		raw  string
		want Action
		ok   bool
	}{
		{"BREAK", Break, true},
		{"break", Break, true},
		{"left click", LeftClick, true},
		{"left-click", LeftClick, true},
		{"LEFT_CLICK", LeftClick, true},
		{"BLOCK_BREAK", Break, true},
		{"blockdamaged", LeftClick, true},
		{"spawn_mob", MobSpawn, true},
		{"player_respawn", PlayerRespawn, true},
		{"explode", Action{}, false},
		{"", Action{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := r.Resolve(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Resolve(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("tnt", "EXPLODE"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		raw  string
		want Action
		ok   bool
	}{
		{"BLOCKBREAK", Break, true},
		{"power-up", PowerUp, true},
		{"SPAWNMOB", MobSpawn, true},
		{"EXPLODE", Action{}, false},
	}
	for _, tt := range tests {
		got, ok := Builtin(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Builtin(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	a, err := r.Register("myplugin", "harvest")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.Name() != "HARVEST" || a.Owner() != "myplugin" || a.Ordinal() != 12 {
		t.Errorf("got %+v", a)
	}
	if got, ok := r.Resolve("Harvest"); !ok || got != a {
		t.Errorf("Resolve after register = %v, %v", got, ok)
	}

	again, err := r.Register("myplugin", "HARVEST")
	if err != nil || again != a {
		t.Errorf("re-register by owner = %v, %v; want existing action", again, err)
	}

	conflicts := []struct {
		name  string
		owner Owner
		tag   string
	}{
		{"foreign owner", "other", "harvest"},
		{"core owner", Core, "smelt"},
		{"empty owner", "", "smelt"},
		{"empty tag", "myplugin", "  "},
		{"builtin name", "myplugin", "break"},
		{"alias name", "myplugin", "SPAWN_MOB"},
	}
	for _, tt := range conflicts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Register(tt.owner, tt.tag)
			if !errors.Is(err, ErrRegistryConflict) {
				t.Errorf("Register(%q, %q) err = %v, want ErrRegistryConflict", tt.owner, tt.tag, err)
			}
		})
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Register("a", "harvest"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := r.Unregister("b", "harvest"); !errors.Is(err, ErrRegistryConflict) {
		t.Errorf("non-owner unregister err = %v, want conflict", err)
	}
	if _, ok := r.Resolve("harvest"); !ok {
		t.Error("harvest should still be registered after a rejected unregister")
	}

	if err := r.Unregister(Core, "break"); !errors.Is(err, ErrRegistryConflict) {
		t.Errorf("builtin unregister err = %v, want conflict", err)
	}
	if err := r.Unregister("a", "never"); !errors.Is(err, ErrRegistryConflict) {
		t.Errorf("unknown unregister err = %v, want conflict", err)
	}

	if err := r.Unregister("a", "HARVEST"); err != nil {
		t.Fatalf("owner unregister: %v", err)
	}
	if _, ok := r.Resolve("harvest"); ok {
		t.Error("harvest still resolves after unregister")
	}
	if len(r.Values()) != 12 {
		t.Errorf("Values() len = %d, want 12", len(r.Values()))
	}
}

func TestParseList(t *testing.T) {
	r := NewRegistry()

	got, warns := r.ParseList([]string{"break", "bogus", "hit"}, nil)
	if !slices.Equal(got, []Action{Break, Hit}) {
		t.Errorf("got %v", got)
	}
	if len(warns) != 1 || !errors.Is(warns[0], ErrUnknownAction) {
		t.Errorf("warnings = %v", warns)
	}

	got, _ = r.ParseList(nil, nil)
	if !slices.Equal(got, []Action{Break}) {
		t.Errorf("empty list default = %v, want [BREAK]", got)
	}

	got, warns = r.ParseList([]string{"nope"}, []Action{MobSpawn})
	if !slices.Equal(got, []Action{MobSpawn}) || len(warns) != 1 {
		t.Errorf("fallback = %v, %v", got, warns)
	}
}

func TestFromInteractionKind(t *testing.T) {
	tests := []struct {
		kind InteractionKind
		want Action
		ok   bool
	}{
		{LeftClickAir, LeftClick, true},
		{LeftClickBlock, LeftClick, true},
		{RightClickAir, RightClick, true},
		{RightClickBlock, RightClick, true},
		{InteractPhysical, Action{}, false},
	}
	for _, tt := range tests {
		got, ok := FromInteractionKind(tt.kind)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FromInteractionKind(%d) = %v, %v", tt.kind, got, ok)
		}
	}
}

func TestConcurrentResolve(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Register(Owner("p"), "custom")
		}()
		go func() {
			defer wg.Done()
			if _, ok := r.Resolve("break"); !ok {
				t.Error("BREAK missing during concurrent register")
			}
		}()
	}
	wg.Wait()
	if _, ok := r.Resolve("custom"); !ok {
		t.Error("custom not registered")
	}
}
