// Package loader reads rule files into a generic node tree and compiles the
// tree into a rule set. Lua files run once in a sandboxed VM that is
// discarded after loading; YAML files are decoded with yaml.v3. Nothing in
// a rule file can stop the rest from loading: malformed pieces are skipped
// and reported.
package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/subject"
)

// Key aliases, tried in order.
var (
	keyTargets    = []string{"otherdrops", "targets", "blocks"}
	keyDefaults   = []string{"defaults", "default"}
	keyRegister   = []string{"register", "actionsregister", "customactions"}
	keyAction     = []string{"action", "actions"}
	keyTool       = []string{"tool", "tools"}
	keyToolExcept = []string{"toolexcept", "toolsexcept", "toolexception", "toolexceptions"}
	keyWorld      = []string{"world", "worlds"}
	keyDrop       = []string{"drop", "drops"}
	keyChance     = []string{"chance", "percent"}
	keyQuantity   = []string{"quantity", "amount"}
	keySpread     = []string{"spread", "dropspread"}
	keyProtected  = []string{"protected", "protect"}
	keyOverride   = []string{"override", "replacedefault", "overridedefault"}
)

// defaults are the per-file fallbacks for keys a rule leaves out.
type defaults struct {
	actions []action.Action
	worlds  []string
	tools   []string
}

type compiler struct {
	reg    *action.Registry
	report *Report
	rules  []rules.Rule
	order  int
}

func newCompiler(reg *action.Registry, report *Report) *compiler {
	return &compiler{reg: reg, report: report}
}

// file compiles one decoded rule file: registrations first, then defaults,
// then every target section in source order.
func (c *compiler) file(root *Node) {
	c.register(root.Get(keyRegister...))

	var def defaults
	if d := root.Get(keyDefaults...); d != nil {
		def = c.defaults(d)
	}

	targets := root.Get(keyTargets...)
	if targets == nil {
		return
	}
	if targets.Kind != MapNode {
		c.report.warn(fmt.Errorf("%w: %s: target section must be a mapping", ErrConfigParse, targets.Pos()))
		return
	}
	for _, key := range targets.Keys() {
		c.target(key, targets.Get(key), def)
	}
}

func (c *compiler) register(n *Node) {
	if n == nil {
		return
	}
	for _, owner := range n.Keys() {
		for _, tag := range n.Strings(owner) {
			if _, err := c.reg.Register(action.Owner(owner), tag); err != nil {
				c.report.warn(fmt.Errorf("%s: %w", n.Pos(), err))
			}
		}
	}
}

func (c *compiler) defaults(n *Node) defaults {
	var def defaults
	if names := n.Strings(keyAction...); len(names) > 0 {
		acts, warnings := c.reg.ParseList(names, nil)
		c.report.warn(warnings...)
		def.actions = acts
	}
	def.worlds = n.Strings(keyWorld...)
	def.tools = n.Strings(keyTool...)
	return def
}

// target compiles every rule listed under one target key.
func (c *compiler) target(key string, body *Node, def defaults) {
	var entries []*Node
	switch body.Kind {
	case ListNode:
		entries = body.Items
	case MapNode:
		entries = []*Node{body}
	default:
		c.report.warn(fmt.Errorf("%w: %s: target %q has no rules", ErrConfigParse, body.Pos(), key))
		return
	}

	var warns []error
	tgt, err := subject.ParseTarget(key, func(err error) { warns = append(warns, err) })
	for _, w := range warns {
		c.report.warn(fmt.Errorf("%s: target %q: %w", body.Pos(), key, w))
	}
	if err != nil {
		c.report.warn(fmt.Errorf("%w: %s: target %q: %v", ErrConfigParse, body.Pos(), key, err))
		c.report.Skipped += len(entries)
		return
	}

	for i, n := range entries {
		if n.Kind != MapNode {
			c.report.warn(fmt.Errorf("%w: %s: rule %d under %q is not a mapping", ErrConfigParse, n.Pos(), i+1, key))
			c.report.Skipped++
			continue
		}
		c.rule(fmt.Sprintf("%s:%s#%d", body.Source, key, i+1), tgt, n, def)
	}
}

// rule compiles one rule node. Each entry of a drop list becomes its own
// rule sharing the same filters, so each rolls its own chance.
func (c *compiler) rule(id string, tgt subject.Subject, n *Node, def defaults) {
	skip := func(format string, args ...any) {
		c.report.warn(fmt.Errorf("%w: %s: rule %s: %s", ErrConfigParse, n.Pos(), id, fmt.Sprintf(format, args...)))
		c.report.Skipped++
	}

	// Actions.
	actions := def.actions
	if names := n.Strings(keyAction...); len(names) > 0 {
		acts, warnings := c.reg.ParseList(names, nil)
		for _, w := range warnings {
			c.report.warn(fmt.Errorf("%s: rule %s: %w", n.Pos(), id, w))
		}
		if len(warnings) == len(names) {
			c.report.Skipped++
			return
		}
		actions = acts
	}
	if len(actions) == 0 {
		actions = []action.Action{action.Break}
	}

	// Tools.
	toolNames := n.Strings(keyTool...)
	if toolNames == nil {
		toolNames = def.tools
	}
	tools, err := c.tools(toolNames)
	if err != nil {
		skip("tool: %v", err)
		return
	}
	except, err := c.tools(n.Strings(keyToolExcept...))
	if err != nil {
		skip("toolexcept: %v", err)
		return
	}

	// Flags.
	spread, err := n.Bool(false, keySpread...)
	if err != nil {
		skip("%v", err)
		return
	}
	protected, err := n.Bool(containsAction(actions, action.LeafDecay), keyProtected...)
	if err != nil {
		skip("%v", err)
		return
	}
	override, err := n.Bool(true, keyOverride...)
	if err != nil {
		skip("%v", err)
		return
	}

	worlds := n.Strings(keyWorld...)
	if worlds == nil {
		worlds = def.worlds
	}

	// Rule-level chance and quantity; drop entries may override both.
	chance, err := parseChance(n)
	if err != nil {
		skip("%v", err)
		return
	}
	quantity, err := parseQuantity(n)
	if err != nil {
		skip("%v", err)
		return
	}

	dropNode := n.Get(keyDrop...)
	if dropNode == nil {
		skip("no drop")
		return
	}
	entries := []*Node{dropNode}
	if dropNode.Kind == ListNode {
		entries = dropNode.Items
	}

	for i, e := range entries {
		spec, q, ch := "", quantity, chance
		switch e.Kind {
		case ScalarNode:
			spec = e.Value
		case MapNode:
			spec, _ = e.String(keyDrop...)
			if q, err = parseQuantityOr(e, quantity); err != nil {
				skip("drop %d: %v", i+1, err)
				continue
			}
			if ch, err = parseChanceOr(e, chance); err != nil {
				skip("drop %d: %v", i+1, err)
				continue
			}
		}
		if spec == "" {
			skip("drop %d is empty", i+1)
			continue
		}
		d, err := drop.Parse(spec, drop.Explicit(nil), q, ch)
		if err != nil {
			skip("drop %q: %v", spec, err)
			continue
		}
		for _, w := range d.Warnings() {
			c.report.warn(fmt.Errorf("%s: rule %s: %w", n.Pos(), id, w))
		}
		if !override {
			d = d.WithOverride(false)
		}

		ruleID := id
		if len(entries) > 1 {
			ruleID = fmt.Sprintf("%s.%d", id, i+1)
		}
		c.order++
		c.rules = append(c.rules, rules.Rule{
			ID:             ruleID,
			Actions:        actions,
			Targets:        []subject.Subject{tgt},
			Tools:          tools,
			ToolExceptions: except,
			Worlds:         worlds,
			Drop:           d,
			Spread:         spread,
			Protected:      protected,
			SourceOrder:    c.order,
		})
		c.report.Rules++
	}
}

// tools parses a tool list. Any ANY/ALL entry lifts the constraint.
func (c *compiler) tools(names []string) ([]subject.Subject, error) {
	var out []subject.Subject
	for _, name := range names {
		s, err := subject.ParseTool(name, func(err error) { c.report.warn(err) })
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, nil
		}
		out = append(out, s)
	}
	return out, nil
}

func parseChance(n *Node) (float64, error) { return parseChanceOr(n, 100) }

// parseChanceOr reads "50", "50%" or "12.5%". NaN and infinities are
// rejected.
func parseChanceOr(n *Node, def float64) (float64, error) {
	s, ok := n.String(keyChance...)
	if !ok || strings.TrimSpace(s) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("chance %q is not a number", s)
	}
	return v, nil
}

func parseQuantity(n *Node) (drop.Range, error) { return parseQuantityOr(n, drop.One) }

func parseQuantityOr(n *Node, def drop.Range) (drop.Range, error) {
	s, ok := n.String(keyQuantity...)
	if !ok || strings.TrimSpace(s) == "" {
		return def, nil
	}
	return drop.ParseRange(strings.TrimSpace(s))
}

func containsAction(list []action.Action, a action.Action) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
