package subject

import (
	"github.com/nathoo/dropcore/engine/data"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// FromBlock derives a short-lived subject from a placed block.
func FromBlock(b *world.Block) Subject {
	loc := b.Loc
	if b.Material.IsVehicle() {
		return Vehicle{base: base{loc: &loc}, Material: b.Material}
	}
	return Block{base: base{d: data.FromBlock(b), loc: &loc}, Material: b.Material}
}

// FromCreature derives a subject from a living creature.
func FromCreature(c *world.Creature) Creature {
	loc := c.Loc
	return Creature{base: base{d: data.FromCreature(c), loc: &loc}, Type: c.Type, ID: c.ID}
}

// FromItem derives a subject from a held stack. Unknown ids resolve by name.
func FromItem(it types.ItemStack) Item {
	m, ok := material.ByID(it.ID)
	if !ok {
		m, _ = material.Match(it.Kind)
	}
	return Item{base: base{d: data.FromItem(it)}, Material: m, Enchantments: it.Enchantments}
}

// FromVehicle derives a subject for a vehicle entity at loc.
func FromVehicle(m material.Material, loc types.Location) Vehicle {
	return Vehicle{base: base{loc: &loc}, Material: m}
}

// FromProjectile derives a subject for a projectile.
func FromProjectile(m material.Material) Projectile {
	return Projectile{Material: m}
}
