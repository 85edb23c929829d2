package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/dropcore/engine"
	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/loader"
)

// newTestEngine compiles the rules in dir into a seeded engine.
func newTestEngine(t *testing.T, dir string) *engine.Engine {
	t.Helper()
	reg := action.NewRegistry()
	set, _, err := loader.Load(dir, reg)
	if err != nil {
		t.Fatalf("loading %s: %v", dir, err)
	}
	eng := engine.New(set, engine.WithRegistry(reg), engine.WithSeed(5))
	eng.RulesName = filepath.Base(dir)
	return eng
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := New(newTestEngine(t, "testdata/rules"), "testdata/rules", t.TempDir())
	c.In = strings.NewReader(input)
	c.Out = &out
	return c, &out
}

func TestCLI_StartsWithLook(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "steve is at 0,0,0.") {
		t.Error("expected the player's position in output")
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye on quit")
	}
}

func TestCLI_BreakWithTool(t *testing.T) {
	c, out := newTestCLI(t, "break STONE with IRON_PICKAXE\nbreak STONE with nothing\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Dropped 1 x Cobblestone.") {
		t.Errorf("expected the rule to replace the drop, got:\n%s", output)
	}
	if !strings.Contains(output, "Dropped 1 x Stone.") {
		t.Errorf("expected the default drop without a pickaxe, got:\n%s", output)
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/reload", "/rules", "/quit"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	// Play a bit and save.
	var out bytes.Buffer
	c := New(newTestEngine(t, "testdata/rules"), "testdata/rules", dir)
	c.In = strings.NewReader("break STONE with IRON_PICKAXE at 1,2,3\n/save test\n/quit\n")
	c.Out = &out
	c.Run()

	if !strings.Contains(out.String(), "Session saved to test.") {
		t.Error("expected save confirmation")
	}

	// Start fresh and load.
	var out2 bytes.Buffer
	c2 := New(newTestEngine(t, "testdata/rules"), "testdata/rules", dir)
	c2.In = strings.NewReader("/load test\n/quit\n")
	c2.Out = &out2
	c2.Run()

	loadOutput := out2.String()
	if !strings.Contains(loadOutput, "Session loaded from test") {
		t.Errorf("expected load confirmation, got:\n%s", loadOutput)
	}
	if strings.Contains(loadOutput, "Warning") {
		t.Errorf("replay against the same rules should not diverge:\n%s", loadOutput)
	}
	dropped := c2.Engine.World.Dropped()
	if len(dropped) != 1 || dropped[0].Item.Kind != "COBBLESTONE" {
		t.Errorf("expected the replay to reproduce the drop, got %+v", dropped)
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nbreak STONE with IRON_PICKAXE\n/trace\nbreak STONE\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") || !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace toggle messages")
	}
	if !strings.Contains(output, "[trace] BREAK: 1 candidate rules, 1 stacks, override true") {
		t.Errorf("expected a trace summary, got:\n%s", output)
	}
	if !strings.Contains(output, "stone.yml:STONE#1 fired") {
		t.Errorf("expected the fired rule in the trace, got:\n%s", output)
	}
	if strings.Count(output, "[trace] BREAK") != 1 {
		t.Error("expected no trace after disabling")
	}
}

func TestCLI_RulesAndActions(t *testing.T) {
	c, out := newTestCLI(t, "/rules\n/rules break\n/rules LEAF_DECAY\n/rules WIGGLE\n/actions\n/quit\n")
	c.Run()

	output := out.String()
	tests := []string{
		"[1 of 1 rules:]",
		"stone.yml:STONE#1: BREAK STONE -> COBBLESTONE (100%)",
		"[No rules.]",
		`[Unknown action "WIGGLE".]`,
		"LEAF_DECAY",
	}
	for _, want := range tests {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yml")
	if err := os.WriteFile(path, []byte("otherdrops:\n  STONE:\n    drop: FLINT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(newTestEngine(t, dir), dir, t.TempDir())
	if err := os.WriteFile(path, []byte("otherdrops:\n  STONE:\n    - drop: FLINT\n    - drop: NOT_A_THING\n  DIRT:\n    drop: SEEDS\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	output, quit := c.Meta("/reload")
	if quit {
		t.Fatal("reload should not quit")
	}
	if len(output) < 2 || output[0] != "Reloaded: 2 rules from 1 files (1 skipped, 1 warnings) (was 1 rules)." {
		t.Fatalf("unexpected reload output %v", output)
	}
	if !strings.HasPrefix(output[1], "Warning: ") {
		t.Errorf("expected the skipped drop as a warning, got %q", output[1])
	}
	if c.Engine.Rules().Len() != 2 {
		t.Errorf("expected the new set to be active, got %d rules", c.Engine.Rules().Len())
	}

	// A failed reload keeps the active set.
	os.Remove(path)
	output, _ = c.Meta("/reload")
	if !strings.HasPrefix(output[0], "Reload failed") || c.Engine.Rules().Len() != 2 {
		t.Errorf("failed reload should keep the old set: %v", output)
	}
}

func TestCLI_StateAndSeed(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/seed\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"[Turn: 1]", "[Player: steve in world]", "[Rules: rules (1)]", "[Seed 5, 0 draws so far.]"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n/quit\n")
	c.Run()

	// Empty and comment lines are skipped silently.
	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, again := range []string{"again", "g"} {
		t.Run(again, func(t *testing.T) {
			c, out := newTestCLI(t, "drops\n"+again+"\n/quit\n")
			c.Run()

			if n := strings.Count(out.String(), "Nothing has dropped."); n != 2 {
				t.Errorf("expected the command twice, got %d", n)
			}
		})
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "look\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> look\n") {
		t.Error("expected echoed input after the prompt")
	}
}
