package drop

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/types"
)

// scripted returns its ints and floats in order, then zeros.
type scripted struct {
	ints   []int
	floats []float64
}

func (s *scripted) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func target(t *testing.T, raw string) subject.Subject {
	t.Helper()
	s, err := subject.ParseTarget(raw, nil)
	if err != nil {
		t.Fatalf("ParseTarget(%q): %v", raw, err)
	}
	return s
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		raw     string
		want    Range
		wantErr bool
	}{
		{"2", Range{2, 2}, false},
		{"1-3", Range{1, 3}, false},
		{" 0 - 4 ", Range{0, 4}, false},
		{"0", Range{0, 0}, false},
		{"3-1", Range{}, true},
		{"-1", Range{}, true},
		{"a-b", Range{}, true},
		{"", Range{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRange(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBadRange) {
				t.Errorf("err = %v, want ErrBadRange", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRollInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, r := range []Range{{0, 0}, {1, 1}, {1, 3}, {0, 10}, {5, 6}, {64, 64}} {
		seen := map[int]bool{}
		for range 500 {
			n := r.Roll(rng)
			if n < r.Min || n > r.Max {
				t.Fatalf("%v rolled %d", r, n)
			}
			seen[n] = true
		}
		if r.Min == r.Max && len(seen) != 1 {
			t.Errorf("%v should be constant, saw %v", r, seen)
		}
		if r.Max-r.Min <= 2 && len(seen) != r.Max-r.Min+1 {
			t.Errorf("%v never hit every value in 500 rolls: %v", r, seen)
		}
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("35@3~RedWool", Explicit(nil), One, 100)
	if err != nil {
		t.Fatal(err)
	}
	if d.Material().Name != "WOOL" {
		t.Errorf("material = %s", d.Material())
	}
	if v, ok := d.Substate().Value().(data.Simple); !ok || v.Value != 3 {
		t.Errorf("substate = %#v", d.Substate())
	}
	if d.DisplayName() != "RedWool" {
		t.Errorf("display name = %q", d.DisplayName())
	}

	tests := []struct {
		raw    string
		text   string
		derive bool
		warns  int
	}{
		{"STONE", "STONE", false, 0},
		{"wool:red", "WOOL@14", false, 0},
		{"WOOL@THIS", "WOOL@THIS", true, 0},
		{"WOOL@-1", "WOOL@THIS", true, 0},
		{"WOOL@7abc", "WOOL@7", false, 1},
		{"WOOL@plaid", "WOOL", false, 1},
		{"DIAMOND_SWORD@10!sharpness#2,fire aspect~Blade~Owned by %p", "DIAMOND_SWORD@10!DAMAGE_ALL#2,FIRE_ASPECT#1~Blade~Owned by %p", false, 0},
		{"IRON_PICKAXE!bogus", "IRON_PICKAXE", false, 1},
		{"LEATHER_HELMET@RED", "LEATHER_HELMET@#B3312C", false, 0},
		{"default", "DEFAULT", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := Parse(tt.raw, Explicit(nil), One, 100)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if d.String() != tt.text {
				t.Errorf("String() = %q, want %q", d.String(), tt.text)
			}
			if d.Substate().Derive() != tt.derive {
				t.Errorf("derive = %v", d.Substate().Derive())
			}
			if len(d.Warnings()) != tt.warns {
				t.Errorf("warnings = %v, want %d", d.Warnings(), tt.warns)
			}
		})
	}

	if _, err := Parse("kryptonite", Explicit(nil), One, 100); !errors.Is(err, subject.ErrUnknownKind) {
		t.Errorf("unknown kind err = %v", err)
	}
}

func TestParseChance(t *testing.T) {
	tests := []struct {
		chance float64
		want   float64
	}{
		{50, 50},
		{250, 100},
		{-5, 0},
		{math.Inf(1), 100},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		d, err := Parse("STONE", Explicit(nil), One, tt.chance)
		if err != nil {
			t.Fatalf("Parse(chance %v): %v", tt.chance, err)
		}
		if d.Chance() != tt.want {
			t.Errorf("chance %v clamped to %v, want %v", tt.chance, d.Chance(), tt.want)
		}
	}

	if _, err := Parse("STONE", Explicit(nil), One, math.NaN()); !errors.Is(err, ErrBadChance) {
		t.Errorf("NaN chance err = %v, want ErrBadChance", err)
	}
}

func TestParseDefaultSubstate(t *testing.T) {
	d, err := Parse("WOOL", DeriveFromContext, One, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Substate().Derive() {
		t.Error("default substate not applied")
	}
	d, _ = Parse("WOOL@2", DeriveFromContext, One, 100)
	if d.Substate().Derive() {
		t.Error("explicit substate should win over the default")
	}
}

func TestPerformNothingOverrides(t *testing.T) {
	d, err := Parse("0", Explicit(nil), One, 100)
	if err != nil {
		t.Fatal(err)
	}
	res := d.Perform(Context{Target: target(t, "STONE")}, &scripted{})
	if !res.Override || len(res.Items) != 0 {
		t.Errorf("AIR drop = %+v, want override with no items", res)
	}

	// Even with override turned off on the drop.
	res = d.WithOverride(false).Perform(Context{}, &scripted{})
	if !res.Override {
		t.Error("AIR drop must always override")
	}
}

func TestPerformNoop(t *testing.T) {
	tests := []struct {
		name string
		drop *ItemDrop
	}{
		{"default", MustParse("DEFAULT", One, 100)},
		{"zero max", MustParse("DIAMOND", Exactly(0), 100)},
		{"air zero max", MustParse("AIR", Exactly(0), 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := tt.drop.Perform(Context{}, &scripted{}); !res.Empty() {
				t.Errorf("Perform = %+v, want empty", res)
			}
		})
	}
	if MustParse("DEFAULT", One, 100).WithOverride(true).Override() {
		t.Error("DEFAULT must never override")
	}
}

func TestSpread(t *testing.T) {
	d := MustParse("DIAMOND", Exactly(3), 100)

	res := d.Perform(Context{Flags: types.Flags{Spread: true}}, &scripted{})
	if len(res.Items) != 3 {
		t.Fatalf("spread produced %d stacks, want 3", len(res.Items))
	}
	for _, it := range res.Items {
		if it.Amount != 1 {
			t.Errorf("spread stack amount = %d", it.Amount)
		}
	}

	res = d.Perform(Context{}, &scripted{})
	if len(res.Items) != 1 || res.Items[0].Amount != 3 {
		t.Errorf("non-spread = %+v, want one stack of 3", res.Items)
	}
}

func TestSpreadUsesSingleRoll(t *testing.T) {
	d := MustParse("DIAMOND", Range{1, 5}, 100)
	rng := &scripted{ints: []int{3, 0, 0, 0}}
	res := d.Perform(Context{Flags: types.Flags{Spread: true}}, rng)
	if len(res.Items) != 4 {
		t.Errorf("got %d stacks, want 4 from one roll of 1+3", len(res.Items))
	}
	if len(rng.ints) != 3 {
		t.Errorf("consumed %d draws, want 1", 4-len(rng.ints))
	}
}

func TestItemFreshRoll(t *testing.T) {
	d := MustParse("COAL", Range{1, 3}, 100)
	rng := &scripted{ints: []int{0, 2, 1}}
	var got []int
	for range 3 {
		_, n := d.Item(Context{}, rng)
		got = append(got, n)
	}
	if got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Errorf("rolls = %v, want [1 3 2]", got)
	}
	if d.Quantity() != (Range{1, 3}) {
		t.Errorf("quantity mutated to %v", d.Quantity())
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		drop   string
		target string
		want   int
	}{
		{"WOOL@THIS", "WOOL@14", 14},
		{"WOOL@THIS", "SHEEP@RED/SHEARED", 14},
		{"WOOL@THIS", "SHEEP@SHEARED", 0},
		{"LOG@THIS", "LOG@2", 2},
		{"SAPLING@THIS", "LEAVES@birch", 2},
		{"MONSTER_EGG@THIS", "ZOMBIE", 54},
		{"MONSTER_EGG@THIS", "PIG_ZOMBIE@BABY", 57},
		{"WOOL@THIS", "STONE", 0},
	}
	for _, tt := range tests {
		t.Run(tt.drop+"<-"+tt.target, func(t *testing.T) {
			d := MustParse(tt.drop, One, 100)
			it, _ := d.Item(Context{Target: target(t, tt.target)}, &scripted{})
			if it.Data != tt.want {
				t.Errorf("derived data = %d, want %d", it.Data, tt.want)
			}
		})
	}

	d := MustParse("WOOL@THIS", One, 100)
	if it, _ := d.Item(Context{}, &scripted{}); it.Data != 0 {
		t.Errorf("no target derived %d", it.Data)
	}
}

func TestTemplates(t *testing.T) {
	d := MustParse("WOOL@14!unbreaking~%p's %d~from %v~with %t~x%q", Exactly(2), 100)
	ctx := Context{
		Target: target(t, "SHEEP"),
		Tool:   target(t, "SHEARS"),
		Flags:  types.Flags{RecipientName: "alex", Spread: true},
	}
	res := d.Perform(ctx, &scripted{})
	if len(res.Items) != 2 {
		t.Fatalf("items = %+v", res.Items)
	}
	for _, it := range res.Items {
		if it.DisplayName != "alex's WOOL@14" {
			t.Errorf("display = %q", it.DisplayName)
		}
		want := []string{"from Sheep", "with Shears", "x2"}
		for i := range want {
			if i >= len(it.Lore) || it.Lore[i] != want[i] {
				t.Errorf("lore = %q, want %q", it.Lore, want)
				break
			}
		}
		if len(it.Enchantments) != 1 || it.Enchantments[0].Name != "DURABILITY" {
			t.Errorf("enchantments = %v", it.Enchantments)
		}
	}
	res.Items[0].Lore[0] = "changed"
	if res.Items[1].Lore[0] == "changed" {
		t.Error("spread stacks share lore slices")
	}
	if d.Lore()[0] != "from %v" {
		t.Error("templates on the drop were modified")
	}
}

func TestResultMerge(t *testing.T) {
	var r Result
	r.Merge(Result{Items: []types.ItemStack{{Kind: "STONE", Amount: 1}}, Override: true})
	r.Merge(Result{Items: []types.ItemStack{{Kind: "DIRT", Amount: 2}}})
	r.Add(types.ItemStack{Kind: "SAND", Amount: 3})
	if !r.Override {
		t.Error("override must stay on once set")
	}
	if len(r.Items) != 3 || r.Items[0].Kind != "STONE" || r.Items[2].Kind != "SAND" {
		t.Errorf("items = %+v", r.Items)
	}
	if r.Count() != 6 {
		t.Errorf("Count() = %d", r.Count())
	}
}
