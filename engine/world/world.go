// Package world is an in-memory host world: placed blocks, living creatures,
// online players and the items dropped into it. It is the live-object side
// of a resolution: occurrences are derived from it and results are applied
// back to it.
package world

import (
	"math"
	"sort"
	"sync"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/types"
)

// Block is a placed block and its live sub-state.
type Block struct {
	Loc        types.Location
	Material   material.Material
	Value      int               // simple sub-state
	Contents   []types.ItemStack // chests, furnaces, dispensers
	Spawns     material.Creature // mob spawners
	Instrument int               // note blocks
	Pitch      int
	Disc       material.Material // jukeboxes; zero when empty
	Powered    bool
}

// Creature is a living entity.
type Creature struct {
	ID        int
	Type      material.Creature
	Loc       types.Location
	MaxHealth int
	Tags      []string
	Equipment map[types.Slot]types.Equipment
}

// Player is an online player.
type Player struct {
	Name string
	Loc  types.Location
	Hand types.ItemStack
}

// Dropped is an item materialized in the world.
type Dropped struct {
	Loc       types.Location
	Item      types.ItemStack
	Naturally bool
}

// Region is a protected box. Actions listed in Deny are refused inside it.
type Region struct {
	Name string
	Min  types.Location
	Max  types.Location
	Deny []action.Action
}

type blockKey struct {
	world   string
	x, y, z int
}

func keyOf(loc types.Location) blockKey {
	return blockKey{
		world: loc.World,
		x:     int(math.Floor(loc.X)),
		y:     int(math.Floor(loc.Y)),
		z:     int(math.Floor(loc.Z)),
	}
}

// World holds everything. Safe for concurrent use.
type World struct {
	mu        sync.RWMutex
	blocks    map[blockKey]*Block
	creatures map[int]*Creature
	players   map[string]*Player
	dropped   []Dropped
	regions   []Region
	nextID    int
}

// New returns an empty world.
func New() *World {
	return &World{
		blocks:    map[blockKey]*Block{},
		creatures: map[int]*Creature{},
		players:   map[string]*Player{},
		nextID:    1,
	}
}

// Reset empties w in place. Creature ids start over.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blocks = map[blockKey]*Block{}
	w.creatures = map[int]*Creature{}
	w.players = map[string]*Player{}
	w.dropped = nil
	w.regions = nil
	w.nextID = 1
}

// SetBlock places m at loc, replacing whatever was there.
func (w *World) SetBlock(loc types.Location, m material.Material) *Block {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := &Block{Loc: loc, Material: m}
	w.blocks[keyOf(loc)] = b
	return b
}

// BlockAt returns the block at loc. Unset positions are absent, not AIR.
func (w *World) BlockAt(loc types.Location) (*Block, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.blocks[keyOf(loc)]
	return b, ok
}

// RemoveBlock clears loc.
func (w *World) RemoveBlock(loc types.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.blocks, keyOf(loc))
}

// Blocks returns all placed blocks sorted by position.
func (w *World) Blocks() []*Block {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Block, 0, len(w.blocks))
	for _, b := range w.blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := keyOf(out[i].Loc), keyOf(out[j].Loc)
		if a.world != b.world {
			return a.world < b.world
		}
		if a.x != b.x {
			return a.x < b.x
		}
		if a.y != b.y {
			return a.y < b.y
		}
		return a.z < b.z
	})
	return out
}

// Spawn adds a creature of type c at loc.
func (w *World) Spawn(c material.Creature, loc types.Location) *Creature {
	w.mu.Lock()
	defer w.mu.Unlock()
	cr := &Creature{
		ID:        w.nextID,
		Type:      c,
		Loc:       loc,
		Equipment: map[types.Slot]types.Equipment{},
	}
	w.nextID++
	w.creatures[cr.ID] = cr
	return cr
}

// Creature looks up a creature by id.
func (w *World) Creature(id int) (*Creature, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.creatures[id]
	return c, ok
}

// Kill removes a creature.
func (w *World) Kill(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.creatures, id)
}

// Creatures returns living creatures ordered by id.
func (w *World) Creatures() []*Creature {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Creature, 0, len(w.creatures))
	for _, c := range w.creatures {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Join adds or moves a player.
func (w *World) Join(name string, loc types.Location) *Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.players[name]; ok {
		p.Loc = loc
		return p
	}
	p := &Player{Name: name, Loc: loc}
	w.players[name] = p
	return p
}

// Player looks up an online player.
func (w *World) Player(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[name]
	return p, ok
}

// PlayersNear returns players inside the axis-aligned box of half-width
// radius around loc, in the same world. All three axes must be in range.
func (w *World) PlayersNear(loc types.Location, radius float64) []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []*Player
	for _, p := range w.players {
		if p.Loc.World != loc.World {
			continue
		}
		if math.Abs(p.Loc.X-loc.X) <= radius &&
			math.Abs(p.Loc.Y-loc.Y) <= radius &&
			math.Abs(p.Loc.Z-loc.Z) <= radius {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Drop materializes an item at loc.
func (w *World) Drop(loc types.Location, item types.ItemStack, naturally bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dropped = append(w.dropped, Dropped{Loc: loc, Item: item, Naturally: naturally})
}

// Dropped returns a copy of everything dropped so far.
func (w *World) Dropped() []Dropped {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Dropped, len(w.dropped))
	copy(out, w.dropped)
	return out
}

// ClearDropped empties the dropped item list and returns how many were removed.
func (w *World) ClearDropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.dropped)
	w.dropped = nil
	return n
}

// Protect adds a region.
func (w *World) Protect(r Region) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.regions = append(w.regions, r)
}

// Allowed reports whether a performs at loc. It is false when loc lies in
// any region that denies a.
func (w *World) Allowed(a action.Action, loc types.Location) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, r := range w.regions {
		if !r.contains(loc) {
			continue
		}
		for _, d := range r.Deny {
			if d == a {
				return false
			}
		}
	}
	return true
}

func (r Region) contains(loc types.Location) bool {
	if loc.World != r.Min.World {
		return false
	}
	return between(loc.X, r.Min.X, r.Max.X) &&
		between(loc.Y, r.Min.Y, r.Max.Y) &&
		between(loc.Z, r.Min.Z, r.Max.Z)
}

func between(v, a, b float64) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a && v <= b
}
