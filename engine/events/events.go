// Package events derives occurrences from host happenings. Each adapter
// captures the live objects involved as short-lived subjects; nothing here
// consults the rule set.
package events

import (
	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/subject"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// BlockBreak is a player breaking a block.
func BlockBreak(b *world.Block, p *world.Player) rules.Occurrence {
	return rules.Occurrence{
		Action:   action.Break.Name(),
		Target:   subject.FromBlock(b),
		Tool:     held(p),
		Location: b.Loc,
		Flags:    playerFlags(p, true),
	}
}

// Interact is a player clicking a block. Physical interactions (pressure
// plates, tripwires) have no action and report false.
func Interact(kind action.InteractionKind, b *world.Block, p *world.Player) (rules.Occurrence, bool) {
	a, ok := action.FromInteractionKind(kind)
	if !ok {
		return rules.Occurrence{}, false
	}
	return rules.Occurrence{
		Action:   a.Name(),
		Target:   subject.FromBlock(b),
		Tool:     held(p),
		Location: b.Loc,
		Flags:    playerFlags(p, true),
	}, true
}

// LeavesDecay is a leaf block decaying on its own.
func LeavesDecay(b *world.Block) rules.Occurrence {
	return rules.Occurrence{
		Action:   action.LeafDecay.Name(),
		Target:   subject.FromBlock(b),
		Location: b.Loc,
		Flags:    types.Flags{Naturally: true},
	}
}

// CreatureSpawn is a creature about to enter the world.
func CreatureSpawn(c *world.Creature) rules.Occurrence {
	return rules.Occurrence{
		Action:   action.MobSpawn.Name(),
		Target:   subject.FromCreature(c),
		Location: c.Loc,
		Flags:    types.Flags{Naturally: true},
	}
}

// Fish is a player reeling in. The target is the water at the hook, which
// is taken to be the player's own location.
func Fish(p *world.Player, caught bool) rules.Occurrence {
	a := action.FishFailed
	if caught {
		a = action.FishCaught
	}
	water, _ := material.Match("WATER")
	b := &world.Block{Loc: p.Loc, Material: water}
	return rules.Occurrence{
		Action:   a.Name(),
		Target:   subject.FromBlock(b),
		Tool:     held(p),
		Location: p.Loc,
		Flags:    playerFlags(p, false),
	}
}

// Hit is a player striking a creature.
func Hit(c *world.Creature, p *world.Player) rules.Occurrence {
	target := subject.FromCreature(c)
	f := playerFlags(p, true)
	f.VictimName = target.ReadableName()
	return rules.Occurrence{
		Action:   action.Hit.Name(),
		Target:   target,
		Tool:     held(p),
		Location: c.Loc,
		Flags:    f,
	}
}

// HitWith is a player striking a creature with a shot or thrown
// projectile. The projectile, not the hand, is the tool.
func HitWith(c *world.Creature, p *world.Player, projectile material.Material) rules.Occurrence {
	occ := Hit(c, p)
	occ.Tool = subject.FromProjectile(projectile)
	return occ
}

// VehicleBreak is a player destroying a vehicle or hanging entity.
func VehicleBreak(m material.Material, loc types.Location, p *world.Player) rules.Occurrence {
	return rules.Occurrence{
		Action:   action.Break.Name(),
		Target:   subject.FromVehicle(m, loc),
		Tool:     held(p),
		Location: loc,
		Flags:    playerFlags(p, true),
	}
}

// VehicleHit is a player striking a vehicle without destroying it.
func VehicleHit(m material.Material, loc types.Location, p *world.Player) rules.Occurrence {
	target := subject.FromVehicle(m, loc)
	f := playerFlags(p, true)
	f.VictimName = target.ReadableName()
	return rules.Occurrence{
		Action:   action.Hit.Name(),
		Target:   target,
		Tool:     held(p),
		Location: loc,
		Flags:    f,
	}
}

// Power is a block gaining or losing redstone power.
func Power(b *world.Block, up bool) rules.Occurrence {
	a := action.PowerDown
	if up {
		a = action.PowerUp
	}
	return rules.Occurrence{
		Action:   a.Name(),
		Target:   subject.FromBlock(b),
		Location: b.Loc,
		Flags:    types.Flags{Naturally: true},
	}
}

// PlayerJoin is a player logging in.
func PlayerJoin(p *world.Player) rules.Occurrence {
	return playerOccurrence(action.PlayerJoin, p)
}

// PlayerRespawn is a player coming back after death.
func PlayerRespawn(p *world.Player) rules.Occurrence {
	return playerOccurrence(action.PlayerRespawn, p)
}

// Custom builds an occurrence for an action registered at runtime.
func Custom(name string, target subject.Subject, p *world.Player, loc types.Location) rules.Occurrence {
	return rules.Occurrence{
		Action:   name,
		Target:   target,
		Tool:     held(p),
		Location: loc,
		Flags:    playerFlags(p, true),
	}
}

func playerOccurrence(a action.Action, p *world.Player) rules.Occurrence {
	kind, _ := material.MatchCreature("PLAYER")
	c := &world.Creature{Type: kind, Loc: p.Loc}
	return rules.Occurrence{
		Action:   a.Name(),
		Target:   subject.FromCreature(c),
		Location: p.Loc,
		Flags:    playerFlags(p, false),
	}
}

// held returns the player's hand as a tool subject. An empty hand is AIR,
// which only matches rules that name NOTHING.
func held(p *world.Player) subject.Subject {
	if p == nil {
		return nil
	}
	if p.Hand.Kind == "" && p.Hand.ID == 0 {
		air, _ := material.Match("AIR")
		return subject.NewItem(air, nil)
	}
	return subject.FromItem(p.Hand)
}

func playerFlags(p *world.Player, naturally bool) types.Flags {
	f := types.Flags{Naturally: naturally}
	if p == nil {
		return f
	}
	f.RecipientName = p.Name
	if p.Hand.DisplayName != "" {
		f.ToolName = p.Hand.DisplayName
	}
	return f
}
