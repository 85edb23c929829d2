package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/engine"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/save"
	"github.com/nathoo/dropcore/loader"
	"github.com/nathoo/dropcore/types"
)

// Commands runs the slash commands shared by the plain CLI and the TUI.
type Commands struct {
	Engine   *engine.Engine
	RulesDir string
	SaveDir  string
	Trace    bool
}

// Meta dispatches one meta-command. It returns the output lines and whether
// the session should end.
func (m *Commands) Meta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, false
	}
	cmd := strings.ToLower(parts[0])
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/reload":
		return m.cmdReload(), false

	case "/rules":
		return m.cmdRules(arg), false

	case "/actions":
		return []string{"Actions: " + strings.Join(m.Engine.Registry.Names(), ", ")}, false

	case "/seed":
		return []string{fmt.Sprintf("Seed %d, %d draws so far.", m.Engine.RNG.Seed(), m.Engine.RNG.Position())}, false

	case "/state":
		return m.cmdState(), false

	case "/help":
		return Help(), false

	case "/trace":
		m.Trace = !m.Trace
		if m.Trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", parts[0])}, false
	}
}

func (m *Commands) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Save(m.Engine.Snapshot())
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	if err := os.MkdirAll(m.SaveDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	path := filepath.Join(m.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}

	return []string{fmt.Sprintf("Session saved to %s.", name)}
}

func (m *Commands) cmdLoad(name string) []string {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	sd, err := save.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	var output []string
	if sd.Rules != "" && sd.Rules != m.Engine.RulesName {
		output = append(output, fmt.Sprintf("Saved against rules %q, replaying against %q.", sd.Rules, m.Engine.RulesName))
	}
	if err := m.Engine.Restore(sd); err != nil {
		if !errors.Is(err, engine.ErrDiverged) {
			return append(output, fmt.Sprintf("Load failed: %v", err))
		}
		output = append(output, fmt.Sprintf("Warning: %v. Drops may differ from the saved session.", err))
	}
	output = append(output, fmt.Sprintf("Session loaded from %s (turn %d).", name, sd.Turn))
	return append(output, m.Engine.Step("look").Output...)
}

// cmdReload recompiles the rules directory and swaps the result in.
// Resolutions in flight finish against the old set.
func (m *Commands) cmdReload() []string {
	if m.RulesDir == "" {
		return []string{"No rules directory to reload."}
	}
	set, report, err := loader.Load(m.RulesDir, m.Engine.Registry)
	if err != nil {
		return []string{fmt.Sprintf("Reload failed: %v", err)}
	}
	old := m.Engine.Swap(set)
	output := []string{fmt.Sprintf("Reloaded: %s (was %d rules).", report.Summary(), old.Len())}
	for _, w := range report.Warnings {
		output = append(output, "Warning: "+w.Error())
	}
	return output
}

// cmdRules lists the active rules, optionally only those for one action.
func (m *Commands) cmdRules(filter string) []string {
	set := m.Engine.Rules()
	list := set.Rules()
	if filter != "" {
		a, ok := m.Engine.Registry.Resolve(filter)
		if !ok {
			return []string{fmt.Sprintf("Unknown action %q.", filter)}
		}
		list = set.For(a)
	}
	if len(list) == 0 {
		return []string{"No rules."}
	}
	output := make([]string, 0, len(list)+1)
	output = append(output, fmt.Sprintf("%d of %d rules:", len(list), set.Len()))
	for _, r := range list {
		output = append(output, "  "+describeRule(r))
	}
	return output
}

func describeRule(r rules.Rule) string {
	acts := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		acts[i] = a.Name()
	}
	targets := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		targets[i] = t.String()
	}
	drop := "nothing"
	if r.Drop != nil {
		drop = r.Drop.String()
	}
	return fmt.Sprintf("%s: %s %s -> %s (%s%%)", r.ID, strings.Join(acts, "/"), strings.Join(targets, "/"),
		drop, strconv.FormatFloat(r.Chance(), 'f', -1, 64))
}

func (m *Commands) cmdState() []string {
	e := m.Engine
	return []string{
		fmt.Sprintf("Turn: %d", e.Turn),
		fmt.Sprintf("Player: %s in %s", e.Player, e.WorldName),
		fmt.Sprintf("Rules: %s (%d)", e.RulesName, e.Rules().Len()),
		fmt.Sprintf("Dropped: %d stacks", len(e.World.Dropped())),
		fmt.Sprintf("RNG: seed %d, position %d", e.RNG.Seed(), e.RNG.Position()),
	}
}

// Help lists the meta-commands and simulator commands.
func Help() []string {
	return []string{
		"System:",
		"  /save [name]     Save the session (default: quicksave)",
		"  /load [name]     Replay a saved session (default: quicksave)",
		"  /reload          Recompile the rules directory",
		"  /rules [action]  List active rules",
		"  /actions         List known actions",
		"  /seed            Show the random seed and draw count",
		"  /state           Debug: dump session state",
		"  /trace           Toggle per-rule trace output",
		"  /help            Show this help",
		"  /quit            Exit",
		"",
		"World:",
		"  look (l)                    Describe the world",
		"  place <block> [at x,y,z]    Set a block",
		"  hold <item>                 Put an item in hand (hold nothing)",
		"  goto x,y,z[,world]          Move the player",
		"  protect <action>            Deny an action around you",
		"  drops / clean               List or clear dropped items",
		"",
		"Actions:",
		"  break <block|vehicle> [with <tool>] [at x,y,z]",
		"  left click / right click <block>",
		"  leaf decay <leaves>",
		"  power up / power down <block>",
		"  spawn <creature>, hit <creature|vehicle> [with <tool>]",
		"  hit <creature> with projectile_<item>   Shoot instead of swing",
		"  fish, fail fish, join, respawn",
		"  any registered custom action, e.g. explode TNT",
		"  again (g)                   Repeat your last command",
	}
}

// FormatTrace renders the per-rule steps of a result.
func FormatTrace(result types.Result) []string {
	if result.Action == "" {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] %s: %d candidate rules, %d stacks, override %v",
		result.Action, len(result.Steps), len(result.Dropped), result.Override)}
	for _, s := range result.Steps {
		var status string
		switch {
		case s.Err != "":
			status = "failed: " + s.Err
		case !s.Matched:
			status = "no match"
		case s.Fired:
			status = fmt.Sprintf("fired (draw %.2f), %d stacks", s.Draw, s.Items)
		default:
			status = fmt.Sprintf("missed (draw %.2f)", s.Draw)
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s %s", s.RuleID, status))
	}
	return lines
}
