// Package action implements the registry of trigger kinds a drop rule can
// react to. Built-in actions are seeded at construction; extensions may add
// and remove their own tags at runtime.
package action

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Owner identifies the extension that registered an action.
type Owner string

// Core owns every built-in action. Extensions must use their own handle.
const Core Owner = "dropcore"

var (
	// ErrRegistryConflict is returned when a register/unregister request
	// would violate ownership or collide with a reserved tag.
	ErrRegistryConflict = errors.New("action registry conflict")

	// ErrUnknownAction marks a rule that references a tag nobody registered.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is an immutable trigger kind.
type Action struct {
	name    string
	ordinal int
	owner   Owner
}

// Name returns the display name, e.g. "LEFT_CLICK".
func (a Action) Name() string { return a.name }

// Ordinal returns the creation order. Used for display only.
func (a Action) Ordinal() int { return a.ordinal }

// Owner returns the registrant.
func (a Action) Owner() Owner { return a.owner }

// IsZero reports whether a is the "no action" value.
func (a Action) IsZero() bool { return a.name == "" }

func (a Action) String() string { return a.name }

// Built-in actions, in catalog order.
var (
	Break         = Action{"BREAK", 0, Core}
	LeftClick     = Action{"LEFT_CLICK", 1, Core}
	RightClick    = Action{"RIGHT_CLICK", 2, Core}
	LeafDecay     = Action{"LEAF_DECAY", 3, Core}
	FishCaught    = Action{"FISH_CAUGHT", 4, Core}
	FishFailed    = Action{"FISH_FAILED", 5, Core}
	MobSpawn      = Action{"MOB_SPAWN", 6, Core}
	Hit           = Action{"HIT", 7, Core}
	PowerUp       = Action{"POWER_UP", 8, Core}
	PowerDown     = Action{"POWER_DOWN", 9, Core}
	PlayerJoin    = Action{"PLAYER_JOIN", 10, Core}
	PlayerRespawn = Action{"PLAYER_RESPAWN", 11, Core}
)

var builtins = []Action{
	Break, LeftClick, RightClick, LeafDecay, FishCaught, FishFailed,
	MobSpawn, Hit, PowerUp, PowerDown, PlayerJoin, PlayerRespawn,
}

// aliases maps normalized legacy names onto normalized catalog keys.
var aliases = map[string]string{
	"BLOCKBREAK":   "BREAK",
	"BLOCKDAMAGED": "LEFTCLICK",
	"SPAWNMOB":     "MOBSPAWN",
}

// Normalize strips whitespace, dashes and underscores and uppercases.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// table is an immutable registry snapshot.
type table struct {
	byKey map[string]Action
	order []Action
}

func (t *table) clone() *table {
	c := &table{
		byKey: make(map[string]Action, len(t.byKey)+1),
		order: make([]Action, 0, len(t.order)+1),
	}
	for k, v := range t.byKey {
		c.byKey[k] = v
	}
	c.order = append(c.order, t.order...)
	return c
}

// Registry is the catalog of recognized actions. Writes are serialized by a
// mutex; reads go through an atomically swapped snapshot and never block.
type Registry struct {
	mu          sync.Mutex
	snap        atomic.Pointer[table]
	nextOrdinal int
}

// NewRegistry creates a registry holding only the built-in actions.
func NewRegistry() *Registry {
	t := &table{byKey: map[string]Action{}}
	for _, a := range builtins {
		t.byKey[Normalize(a.name)] = a
		t.order = append(t.order, a)
	}
	r := &Registry{nextOrdinal: len(builtins)}
	r.snap.Store(t)
	return r
}

// Builtin resolves raw against the built-in actions and their legacy
// aliases only. Runtime tags never match.
func Builtin(raw string) (Action, bool) {
	key := Normalize(raw)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, a := range builtins {
		if Normalize(a.name) == key {
			return a, true
		}
	}
	return Action{}, false
}

func isReserved(key string) bool {
	for _, a := range builtins {
		if Normalize(a.name) == key {
			return true
		}
	}
	_, aliased := aliases[key]
	return aliased
}

// Register adds tag to the catalog under owner. The core owner cannot
// register, and nobody can claim a reserved or foreign tag.
func (r *Registry) Register(owner Owner, tag string) (Action, error) {
	key := Normalize(tag)
	if owner == "" || owner == Core {
		return Action{}, fmt.Errorf("register %q: use your own owner handle: %w", tag, ErrRegistryConflict)
	}
	if key == "" {
		return Action{}, fmt.Errorf("register: empty tag: %w", ErrRegistryConflict)
	}
	if isReserved(key) {
		return Action{}, fmt.Errorf("register %q: reserved name: %w", tag, ErrRegistryConflict)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	if existing, ok := cur.byKey[key]; ok {
		if existing.owner == owner {
			return existing, nil
		}
		return Action{}, fmt.Errorf("register %q: owned by %s: %w", tag, existing.owner, ErrRegistryConflict)
	}

	a := Action{name: strings.ToUpper(strings.TrimSpace(tag)), ordinal: r.nextOrdinal, owner: owner}
	r.nextOrdinal++

	next := cur.clone()
	next.byKey[key] = a
	next.order = append(next.order, a)
	r.snap.Store(next)
	return a, nil
}

// Unregister removes tag. Only the registrant may remove it; removing a tag
// that was never registered is a conflict as well.
func (r *Registry) Unregister(owner Owner, tag string) error {
	key := Normalize(tag)

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	existing, ok := cur.byKey[key]
	if !ok {
		return fmt.Errorf("unregister %q: not registered: %w", tag, ErrRegistryConflict)
	}
	if existing.owner == Core {
		return fmt.Errorf("unregister %q: built-in action: %w", tag, ErrRegistryConflict)
	}
	if existing.owner != owner {
		return fmt.Errorf("unregister %q: you didn't register that action: %w", tag, ErrRegistryConflict)
	}

	next := &table{byKey: make(map[string]Action, len(cur.byKey)), order: make([]Action, 0, len(cur.order))}
	for k, v := range cur.byKey {
		if k != key {
			next.byKey[k] = v
		}
	}
	for _, a := range cur.order {
		if a != existing {
			next.order = append(next.order, a)
		}
	}
	r.snap.Store(next)
	return nil
}

// Resolve normalizes raw, applies the alias table and looks it up.
func (r *Registry) Resolve(raw string) (Action, bool) {
	key := Normalize(raw)
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	a, ok := r.snap.Load().byKey[key]
	return a, ok
}

// Values returns every registered action in ordinal order.
func (r *Registry) Values() []Action {
	order := r.snap.Load().order
	out := make([]Action, len(order))
	copy(out, order)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ordinal < out[j].ordinal })
	return out
}

// Names returns the display names of every registered action.
func (r *Registry) Names() []string {
	vals := r.Values()
	names := make([]string, len(vals))
	for i, a := range vals {
		names[i] = a.name
	}
	return names
}

// ParseList resolves the action names configured on one rule. Unknown names
// are dropped and reported as warnings wrapping ErrUnknownAction. When no
// name resolves, def is returned, or [Break] if def is empty.
func (r *Registry) ParseList(names []string, def []Action) ([]Action, []error) {
	var out []Action
	var warnings []error
	for _, n := range names {
		a, ok := r.Resolve(n)
		if !ok {
			warnings = append(warnings, fmt.Errorf("invalid action %q (known actions: %s): %w",
				n, strings.Join(r.Names(), ", "), ErrUnknownAction))
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		if len(def) == 0 {
			return []Action{Break}, warnings
		}
		return def, warnings
	}
	return out, warnings
}

// InteractionKind is the raw click kind reported by the host.
type InteractionKind int

const (
	InteractPhysical InteractionKind = iota
	LeftClickAir
	LeftClickBlock
	RightClickAir
	RightClickBlock
)

// FromInteractionKind maps a host click to LEFT_CLICK or RIGHT_CLICK.
// Any other kind maps to the zero Action and false.
func FromInteractionKind(kind InteractionKind) (Action, bool) {
	switch kind {
	case LeftClickAir, LeftClickBlock:
		return LeftClick, true
	case RightClickAir, RightClickBlock:
		return RightClick, true
	default:
		return Action{}, false
	}
}
