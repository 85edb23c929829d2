package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/effects"
	"github.com/nathoo/dropcore/engine/events"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/parser"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/save"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// ErrDiverged is returned when a replayed session ends at a different RNG
// position than was saved, usually because the rules changed.
var ErrDiverged = errors.New("replay diverged")

// protectRadius is the half-width of regions made by "protect".
const protectRadius = 8

// Step processes one simulator command and returns the result.
func (e *Engine) Step(input string) types.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 3. Empty input.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	p := e.player()
	loc := p.Loc
	if intent.At != "" {
		var err error
		if loc, err = parser.ParseLocation(intent.At, p.Loc); err != nil {
			result.Output = append(result.Output, err.Error())
			e.Turn++
			return result
		}
	}

	// 4. Simulator verbs, then anything the registry knows.
	switch intent.Verb {
	case "look":
		result.Output = e.look(p, loc)
	case "place":
		_, result.Output = e.place(intent.Object, loc)
	case "hold":
		result.Output, _ = e.hold(p, intent.Object)
	case "goto":
		result.Output = e.move(p, intent.Object)
	case "drops":
		result.Output = e.listDropped()
	case "clean":
		result.Output = []string{fmt.Sprintf("Cleared %d dropped stacks.", e.World.ClearDropped())}
	case "protect":
		result.Output = e.protect(intent.Object, loc)
	default:
		result = e.act(intent, p, loc)
	}

	// 5. Increment turn count.
	e.Turn++

	return result
}

// act resolves an action verb: derive the occurrence from the world, run
// the rules, and apply the result.
func (e *Engine) act(intent types.Intent, p *world.Player, loc types.Location) types.Result {
	var result types.Result

	a, ok := e.Registry.Resolve(intent.Verb)
	if !ok {
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q.", intent.Verb))
		return result
	}
	result.Action = a.Name()

	// A projectile is shot, not held.
	var shot material.Material
	if intent.Tool != "" {
		if m, ok := projectileNamed(intent.Tool); ok {
			shot = m
		} else if out, ok := e.hold(p, intent.Tool); !ok {
			result.Output = append(result.Output, out...)
			return result
		}
	}

	occ, out := e.occurrence(a, intent.Object, p, loc, shot)
	result.Output = append(result.Output, out...)
	if occ.Target == nil {
		return result
	}

	res, steps := e.ResolveTrace(occ)
	result.Dropped = res.Items
	result.Override = res.Override
	for _, s := range steps {
		result.Steps = append(result.Steps, ruleStep(s))
	}

	out = effects.Apply(e.World, occ, res)
	if len(out) == 0 {
		out = []string{"Nothing happens."}
	}
	result.Output = append(result.Output, out...)
	return result
}

// occurrence builds the trigger for a. A nil Target means the world could
// not supply one and the output says why. A non-zero shot is the projectile
// of a hit.
func (e *Engine) occurrence(a action.Action, object string, p *world.Player, loc types.Location, shot material.Material) (Occurrence, []string) {
	if !shot.IsZero() && a != action.Hit {
		return Occurrence{}, []string{"You can only hit things with a projectile."}
	}

	switch a {
	case action.Break, action.LeftClick, action.RightClick, action.LeafDecay, action.PowerUp, action.PowerDown:
		if m, ok := vehicleNamed(object); ok {
			if a != action.Break {
				return Occurrence{}, []string{fmt.Sprintf("You can't %s a vehicle.", strings.ToLower(a.Name()))}
			}
			return events.VehicleBreak(m, loc, p), nil
		}
		b, out := e.blockFor(object, loc)
		if b == nil {
			return Occurrence{}, out
		}
		switch a {
		case action.Break:
			return events.BlockBreak(b, p), out
		case action.LeftClick:
			occ, _ := events.Interact(action.LeftClickBlock, b, p)
			return occ, out
		case action.RightClick:
			occ, _ := events.Interact(action.RightClickBlock, b, p)
			return occ, out
		case action.LeafDecay:
			return events.LeavesDecay(b), out
		default:
			return events.Power(b, a == action.PowerUp), out
		}

	case action.FishCaught, action.FishFailed:
		return events.Fish(p, a == action.FishCaught), nil

	case action.MobSpawn:
		c, out := e.spawn(object, loc)
		if c == nil {
			return Occurrence{}, out
		}
		return events.CreatureSpawn(c), out

	case action.Hit:
		if m, ok := vehicleNamed(object); ok {
			occ := events.VehicleHit(m, loc, p)
			if !shot.IsZero() {
				occ.Tool = subject.FromProjectile(shot)
			}
			return occ, nil
		}
		c, out := e.creatureFor(object, loc)
		if c == nil {
			return Occurrence{}, out
		}
		if !shot.IsZero() {
			return events.HitWith(c, p, shot), out
		}
		return events.Hit(c, p), out

	case action.PlayerJoin:
		return events.PlayerJoin(p), nil

	case action.PlayerRespawn:
		return events.PlayerRespawn(p), nil
	}

	// Custom actions target whatever was named, or the block underfoot.
	if object == "" {
		if b, ok := e.World.BlockAt(loc); ok {
			return events.Custom(a.Name(), subject.FromBlock(b), p, loc), nil
		}
		return Occurrence{}, []string{a.Name() + " what?"}
	}
	var out []string
	target, err := subject.ParseTarget(object, e.warn(&out))
	if err != nil {
		return Occurrence{}, append(out, err.Error())
	}
	return events.Custom(a.Name(), target, p, loc), out
}

// vehicleNamed reports whether object names a vehicle kind. Vehicles are
// not kept in the world; naming one is enough to act on it.
func vehicleNamed(object string) (material.Material, bool) {
	if object == "" {
		return material.Material{}, false
	}
	s, err := subject.ParseTarget(object, nil)
	if err != nil {
		return material.Material{}, false
	}
	v, ok := s.(subject.Vehicle)
	return v.Material, ok
}

// projectileNamed reports whether tool names a projectile, e.g.
// "projectile_arrow".
func projectileNamed(tool string) (material.Material, bool) {
	s, err := subject.ParseTool(tool, nil)
	if err != nil {
		return material.Material{}, false
	}
	pr, ok := s.(subject.Projectile)
	return pr.Material, ok
}

// blockFor places object at loc when named, else uses the block already there.
func (e *Engine) blockFor(object string, loc types.Location) (*world.Block, []string) {
	if object != "" {
		b, out := e.place(object, loc)
		if b != nil {
			out = out[:len(out)-1]
		}
		return b, out
	}
	if b, ok := e.World.BlockAt(loc); ok {
		return b, nil
	}
	return nil, []string{"There is no block there."}
}

func (e *Engine) place(object string, loc types.Location) (*world.Block, []string) {
	if object == "" {
		return nil, []string{"Place what?"}
	}
	var out []string
	s, err := subject.ParseTarget(object, e.warn(&out))
	if err != nil {
		return nil, append(out, err.Error())
	}
	blk, ok := s.(subject.Block)
	if !ok {
		return nil, append(out, fmt.Sprintf("%s is not a block.", s.ReadableName()))
	}
	b := e.World.SetBlock(loc, blk.Material)
	if d := blk.Data(); d != nil {
		if err := data.ApplyToBlock(d, b); err != nil {
			out = append(out, err.Error())
		}
	}
	return b, append(out, fmt.Sprintf("Placed %s at %s.", subject.FromBlock(b).ReadableName(), formatLoc(loc)))
}

func (e *Engine) spawn(object string, loc types.Location) (*world.Creature, []string) {
	if object == "" {
		return nil, []string{"Spawn what?"}
	}
	var out []string
	s, err := subject.ParseTarget(object, e.warn(&out))
	if err != nil {
		return nil, append(out, err.Error())
	}
	cr, ok := s.(subject.Creature)
	if !ok {
		return nil, append(out, fmt.Sprintf("%s is not a creature.", s.ReadableName()))
	}
	c := e.World.Spawn(cr.Type, loc)
	if d := cr.Data(); d != nil {
		if err := data.ApplyToCreature(d, c); err != nil {
			out = append(out, err.Error())
		}
	}
	return c, out
}

// creatureFor finds a creature of the named kind at loc, spawning one when
// there is none.
func (e *Engine) creatureFor(object string, loc types.Location) (*world.Creature, []string) {
	if object == "" {
		return nil, []string{"Hit what?"}
	}
	if s, err := subject.ParseTarget(object, nil); err == nil {
		if cr, ok := s.(subject.Creature); ok && cr.Data() == nil {
			for _, c := range e.World.Creatures() {
				if c.Type == cr.Type && c.Loc == loc {
					return c, nil
				}
			}
		}
	}
	return e.spawn(object, loc)
}

// hold puts object in the player's hand. NOTHING empties it.
func (e *Engine) hold(p *world.Player, object string) ([]string, bool) {
	switch strings.ToUpper(object) {
	case "", "NOTHING", "AIR", "HAND", "HANDS":
		p.Hand = types.ItemStack{}
		return []string{"Your hand is empty."}, true
	}
	d, err := drop.Parse(object, drop.Explicit(nil), drop.One, 100)
	if err != nil {
		return []string{err.Error()}, false
	}
	if d.IsDefault() || d.Material().IsNothing() {
		return []string{"You can't hold that."}, false
	}
	it, _ := d.Item(drop.Context{}, e.RNG)
	it.DisplayName = d.DisplayName()
	it.Lore = d.Lore()
	p.Hand = it
	return []string{"You hold " + effects.Describe(it) + "."}, true
}

func (e *Engine) move(p *world.Player, where string) []string {
	if where == "" {
		return []string{"Go where?"}
	}
	loc, err := parser.ParseLocation(where, p.Loc)
	if err != nil {
		return []string{err.Error()}
	}
	e.World.Join(p.Name, loc)
	return []string{"You are now at " + formatLoc(loc) + "."}
}

func (e *Engine) protect(name string, loc types.Location) []string {
	a, ok := e.Registry.Resolve(name)
	if !ok {
		return []string{fmt.Sprintf("Unknown action %q.", name)}
	}
	lo, hi := loc, loc
	lo.X, lo.Y, lo.Z = loc.X-protectRadius, loc.Y-protectRadius, loc.Z-protectRadius
	hi.X, hi.Y, hi.Z = loc.X+protectRadius, loc.Y+protectRadius, loc.Z+protectRadius
	e.World.Protect(world.Region{Name: fmt.Sprintf("region-%d", e.Turn), Min: lo, Max: hi, Deny: []action.Action{a}})
	return []string{fmt.Sprintf("%s is now denied within %d blocks of %s.", a.Name(), protectRadius, formatLoc(loc))}
}

func (e *Engine) look(p *world.Player, loc types.Location) []string {
	var output []string
	output = append(output, fmt.Sprintf("%s is at %s.", p.Name, formatLoc(p.Loc)))
	if p.Hand.Kind != "" {
		output = append(output, "Holding "+effects.Describe(p.Hand)+".")
	} else {
		output = append(output, "Holding nothing.")
	}
	if b, ok := e.World.BlockAt(loc); ok {
		output = append(output, "Here: "+subject.FromBlock(b).String()+".")
	}

	blocks := e.World.Blocks()
	if len(blocks) > 0 {
		names := make([]string, len(blocks))
		for i, b := range blocks {
			names[i] = subject.FromBlock(b).ReadableName() + " at " + formatLoc(b.Loc)
		}
		output = append(output, "Blocks: "+strings.Join(names, ", ")+".")
	}
	creatures := e.World.Creatures()
	if len(creatures) > 0 {
		names := make([]string, len(creatures))
		for i, c := range creatures {
			names[i] = fmt.Sprintf("%s #%d", subject.Readable(c.Type.Name), c.ID)
		}
		output = append(output, "Creatures: "+strings.Join(names, ", ")+".")
	}
	return output
}

func (e *Engine) listDropped() []string {
	dropped := e.World.Dropped()
	if len(dropped) == 0 {
		return []string{"Nothing has dropped."}
	}
	output := make([]string, len(dropped))
	for i, d := range dropped {
		output[i] = fmt.Sprintf("%s at %s", effects.Describe(d.Item), formatLoc(d.Loc))
	}
	return output
}

// player returns the simulated player, joining them if needed.
func (e *Engine) player() *world.Player {
	if p, ok := e.World.Player(e.Player); ok {
		return p
	}
	return e.World.Join(e.Player, types.Location{World: e.WorldName})
}

// warn collects tolerant parse warnings into out and the log.
func (e *Engine) warn(out *[]string) func(error) {
	return func(err error) {
		e.Logger.Printf("warning: %v", err)
		*out = append(*out, "Warning: "+err.Error())
	}
}

// Snapshot returns the session as save data.
func (e *Engine) Snapshot() save.SaveData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return save.SaveData{
		Rules:       e.RulesName,
		World:       e.WorldName,
		Player:      e.Player,
		Turn:        e.Turn,
		RNGSeed:     e.RNG.Seed(),
		RNGPosition: e.RNG.Position(),
		CommandLog:  append([]string(nil), e.CommandLog...),
	}
}

// Restore resets the world and replays a saved session against the active
// rules. ErrDiverged means the replay produced a different random stream;
// the RNG is then realigned to the saved position so later draws follow
// the saved session.
func (e *Engine) Restore(sd *save.SaveData) error {
	e.mu.Lock()
	e.World.Reset()
	e.RNG.Reset(sd.RNGSeed, 0)
	if sd.Player != "" {
		e.Player = sd.Player
	}
	if sd.World != "" {
		e.WorldName = sd.World
	}
	e.CommandLog = nil
	e.Turn = 0
	e.World.Join(e.Player, types.Location{World: e.WorldName})
	e.mu.Unlock()

	for _, cmd := range sd.CommandLog {
		e.Step(cmd)
	}
	if got := e.RNG.Position(); got != sd.RNGPosition {
		e.RNG.Reset(sd.RNGSeed, sd.RNGPosition)
		return fmt.Errorf("%w: rng at %d, saved at %d", ErrDiverged, got, sd.RNGPosition)
	}
	return nil
}

func ruleStep(s rules.Step) types.RuleStep {
	rs := types.RuleStep{
		RuleID:  s.RuleID,
		Matched: s.Matched,
		Fired:   s.Fired,
		Draw:    s.Draw,
		Items:   len(s.Result.Items),
	}
	if s.Err != nil {
		rs.Err = s.Err.Error()
	}
	return rs
}

func formatLoc(loc types.Location) string {
	return fmt.Sprintf("%g,%g,%g", loc.X, loc.Y, loc.Z)
}
