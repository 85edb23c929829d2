// Package engine provides the resolver that wires the action registry, the
// active rule set and the random source together, plus the Step()
// simulator that drives it from typed commands against an in-memory world.
package engine

import (
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/drop"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/world"
	"github.com/nathoo/dropcore/types"
)

// Occurrence is one trigger submitted for resolution.
type Occurrence = rules.Occurrence

// Engine holds the active rule set and the simulator state. Resolve may run
// concurrently with Step, Swap and Restore: the rule set is swapped
// atomically and Restore resets the world and RNG in place. Registry, RNG,
// Logger and World must not be reassigned once the engine is in use.
type Engine struct {
	Registry *action.Registry
	RNG      *RNG
	Logger   *log.Logger
	World    *world.World

	// Simulator state.
	Player     string
	WorldName  string
	RulesName  string
	CommandLog []string
	Turn       int

	rules   atomic.Pointer[rules.Set]
	allowed func(action.Action, types.Location) bool
	trace   func(rules.Step)
	mu      sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.RNG = NewRNG(seed) }
}

// WithRegistry shares a registry with the loader that compiled the rules.
func WithRegistry(r *action.Registry) Option {
	return func(e *Engine) { e.Registry = r }
}

// WithLogger sends warnings to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithPermission replaces the permission predicate consulted for protected
// rules. The default asks the simulator world.
func WithPermission(fn func(action.Action, types.Location) bool) Option {
	return func(e *Engine) { e.allowed = fn }
}

// WithTrace observes every candidate rule of every resolution.
func WithTrace(fn func(rules.Step)) Option {
	return func(e *Engine) { e.trace = fn }
}

// WithPlayer names the simulated player and the world they stand in.
func WithPlayer(name, worldName string) Option {
	return func(e *Engine) {
		e.Player = name
		e.WorldName = worldName
	}
}

// New creates an engine serving set. A nil set resolves nothing.
func New(set *rules.Set, opts ...Option) *Engine {
	e := &Engine{
		Registry:  action.NewRegistry(),
		RNG:       NewRNG(0),
		Logger:    log.New(io.Discard, "", 0),
		World:     world.New(),
		Player:    "steve",
		WorldName: "world",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.allowed == nil {
		e.allowed = func(a action.Action, loc types.Location) bool {
			return e.World.Allowed(a, loc)
		}
	}
	if set == nil {
		set = rules.Empty()
	}
	e.rules.Store(set)
	e.World.Join(e.Player, types.Location{World: e.WorldName})
	return e
}

// Swap atomically replaces the active rule set and returns the old one.
// Resolutions already running finish against the set they started with.
func (e *Engine) Swap(set *rules.Set) *rules.Set {
	if set == nil {
		set = rules.Empty()
	}
	return e.rules.Swap(set)
}

// Rules returns the active rule set.
func (e *Engine) Rules() *rules.Set { return e.rules.Load() }

// Resolve evaluates occ against the active rule set.
func (e *Engine) Resolve(occ Occurrence) drop.Result {
	return rules.Evaluate(e.rules.Load(), occ, e.env(nil))
}

// ResolveTrace is Resolve that also returns every candidate rule's step.
func (e *Engine) ResolveTrace(occ Occurrence) (drop.Result, []rules.Step) {
	var steps []rules.Step
	res := rules.Evaluate(e.rules.Load(), occ, e.env(func(s rules.Step) {
		steps = append(steps, s)
	}))
	return res, steps
}

func (e *Engine) env(collect func(rules.Step)) rules.Env {
	trace := e.trace
	if collect != nil {
		outer := trace
		trace = func(s rules.Step) {
			collect(s)
			if outer != nil {
				outer(s)
			}
		}
	}
	return rules.Env{
		Registry: e.Registry,
		RNG:      e.RNG,
		Allowed:  e.allowed,
		Logf:     e.Logger.Printf,
		Trace:    trace,
	}
}
