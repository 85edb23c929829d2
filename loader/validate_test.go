package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/subject"
)

func target(t *testing.T, raw string) subject.Subject {
	t.Helper()
	s, err := subject.ParseTarget(raw, nil)
	if err != nil {
		t.Fatalf("ParseTarget(%q): %v", raw, err)
	}
	return s
}

func TestFits(t *testing.T) {
	reg := action.NewRegistry()
	custom, err := reg.Register("tnt", "EXPLODE")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		act    action.Action
		target string
		want   bool
	}{
		{action.Break, "STONE", true},
		{action.Break, "ANY_LEAVES", true},
		{action.Break, "ZOMBIE", false},
		{action.LeafDecay, "LEAVES", true},
		{action.LeafDecay, "STONE", false},
		{action.FishCaught, "WATER", true},
		{action.FishCaught, "DIRT", false},
		{action.MobSpawn, "ZOMBIE", true},
		{action.MobSpawn, "STONE", false},
		{action.Hit, "SHEEP", true},
		{action.Hit, "GRASS", false},
		{action.PlayerJoin, "PLAYER", true},
		{action.PlayerJoin, "ZOMBIE", false},
		{action.PowerUp, "STONE", true},
		{custom, "ZOMBIE", true},
	}
	for _, tt := range tests {
		t.Run(tt.act.Name()+"/"+tt.target, func(t *testing.T) {
			if got := fits(tt.act, target(t, tt.target)); got != tt.want {
				t.Errorf("fits(%s, %s) = %v, want %v", tt.act.Name(), tt.target, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	set := rules.NewSet([]rules.Rule{
		{ID: "ok", Actions: []action.Action{action.Break}, Targets: []subject.Subject{target(t, "STONE")},
			Drop: drop.MustParse("COBBLESTONE", drop.One, 100)},
		{ID: "never", Actions: []action.Action{action.Break}, Targets: []subject.Subject{target(t, "STONE")},
			Drop: drop.MustParse("FLINT", drop.One, 0)},
		{ID: "mismatch", Actions: []action.Action{action.MobSpawn}, Targets: []subject.Subject{target(t, "DIRT")},
			Drop: drop.MustParse("FLINT", drop.One, 100)},
	})

	report := &Report{}
	validate(set, report)

	if len(report.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", report.Warnings)
	}
	msg := report.Err().Error()
	for _, want := range []string{"rule never: chance is 0", "rule mismatch: MOB_SPAWN never happens to DIRT"} {
		if !strings.Contains(msg, want) {
			t.Errorf("warnings %q missing %q", msg, want)
		}
	}
	if set.Len() != 3 {
		t.Error("validate must not remove rules")
	}
}

func TestReport(t *testing.T) {
	var nilReport *Report
	if nilReport.Err() != nil {
		t.Error("nil report should have no error")
	}

	r := &Report{Files: []string{"a.yml"}, Rules: 3, Skipped: 1}
	r.warn(nil, errors.New("one"), nil)
	if len(r.Warnings) != 1 {
		t.Errorf("nil warnings should be ignored, got %v", r.Warnings)
	}
	if got := r.Summary(); got != "3 rules from 1 files (1 skipped, 1 warnings)" {
		t.Errorf("Summary = %q", got)
	}
}
