package data

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// ApplyToBlock sets b's live sub-state to d. A nil d leaves b unchanged.
func ApplyToBlock(d Data, b *world.Block) error {
	switch v := d.(type) {
	case nil:
		return nil
	case Simple:
		b.Value = v.Value
	case Container:
		if KindOf(b.Material) != KindContainer {
			return mismatch(d, b.Material.Name)
		}
		b.Contents = slices.Clone(v.Items)
	case Spawner:
		if KindOf(b.Material) != KindSpawner {
			return mismatch(d, b.Material.Name)
		}
		b.Spawns = v.Creature
	case Note:
		if KindOf(b.Material) != KindNote {
			return mismatch(d, b.Material.Name)
		}
		b.Instrument, b.Pitch = v.Instrument, v.Pitch
	case Record:
		if KindOf(b.Material) != KindRecord {
			return mismatch(d, b.Material.Name)
		}
		b.Disc = v.Disc
	default:
		return mismatch(d, b.Material.Name)
	}
	return nil
}

// ApplyToCreature merges d into c: health is replaced, tags are added and
// listed slots are re-equipped.
func ApplyToCreature(d Data, c *world.Creature) error {
	switch v := d.(type) {
	case nil:
		return nil
	case Creature:
		if v.MaxHealth > 0 {
			c.MaxHealth = v.MaxHealth
		}
		for _, tag := range v.Tags {
			if !slices.Contains(c.Tags, tag) {
				c.Tags = append(c.Tags, tag)
			}
		}
		slices.Sort(c.Tags)
		if c.Equipment == nil {
			c.Equipment = map[types.Slot]types.Equipment{}
		}
		maps.Copy(c.Equipment, v.Equipment)
		return nil
	default:
		return mismatch(d, c.Type.Name)
	}
}

// ApplyToItem sets the sub-state of a stack.
func ApplyToItem(d Data, it *types.ItemStack) error {
	switch v := d.(type) {
	case nil:
		return nil
	case Simple:
		it.Data = v.Value
	case Item:
		it.Data = v.Durability
		it.Tint = v.Tint
	default:
		return mismatch(d, it.Kind)
	}
	return nil
}

func mismatch(d Data, kind string) error {
	return fmt.Errorf("%T on %s: %w", d, kind, ErrMismatch)
}

// FromBlock snapshots b's live sub-state.
func FromBlock(b *world.Block) Data {
	switch KindOf(b.Material) {
	case KindContainer:
		return Container{Items: slices.Clone(b.Contents)}
	case KindSpawner:
		return Spawner{Creature: b.Spawns}
	case KindNote:
		return Note{Instrument: b.Instrument, Pitch: b.Pitch}
	case KindRecord:
		return Record{Disc: b.Disc}
	default:
		v := b.Value
		if b.Material.Name == "LEAVES" {
			v &= 0x3
		}
		return Simple{Value: v}
	}
}

// FromCreature snapshots c.
func FromCreature(c *world.Creature) Data {
	return Creature{
		MaxHealth: c.MaxHealth,
		Tags:      slices.Sorted(slices.Values(c.Tags)),
		Equipment: maps.Clone(c.Equipment),
	}
}

// FromItem snapshots a stack's sub-state.
func FromItem(it types.ItemStack) Data {
	m, ok := material.ByID(it.ID)
	if ok && KindOf(m) == KindItem {
		return Item{Durability: it.Data, Tint: it.Tint}
	}
	return Simple{Value: it.Data}
}
