// Package engine implements the rules of a falling-block puzzle in which a
// locked piece clears its colour neighbours instead of full rows.
//
// The engine is a set of ECS systems over singleton state. Hosts push
// actions with Apply, advance time with Tick and draw from the returned
// Snapshot. An Engine is not safe for concurrent use.
package engine

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/plus3/ooftn/ecs"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	seed   uint64
	seeded bool
	source PieceSource
	logger *slog.Logger
}

// WithSeed fixes the seed of the default piece source.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithPieceSource replaces the random piece source. It wins over WithSeed.
func WithPieceSource(source PieceSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithLogger sets the logger lifecycle events are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Snapshot is a deep copy of the observable game state.
type Snapshot struct {
	Board        Board
	Active       *Block
	Next         *Block
	Score        int
	CeilingRow   int
	FallInterval time.Duration
	Elapsed      time.Duration
	Phase        Phase
	IsGameOver   bool
	Locks        int
	Clears       int
	LastClear    ClearResult
}

// Engine runs one game.
type Engine struct {
	rules     Ruleset
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	session   *ecs.Singleton[Session]
	pieces    *ecs.Singleton[Pieces]
	playfield *ecs.Singleton[Playfield]
	input     *ecs.Singleton[InputQueue]

	logger *slog.Logger
}

// New validates rules and starts a game with the first block already falling.
// Validation failures are *ConfigError values wrapping ErrConfiguration.
func New(rules Ruleset, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	rules.Palette = append([]string(nil), rules.Palette...)

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.source == nil {
		if !o.seeded {
			o.seed = rand.Uint64()
		}
		o.source = NewRandomSource(o.seed, rules.Colors())
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	e := &Engine{
		rules:   rules,
		storage: storage,
		logger:  o.logger.With("season", rules.Name),
	}

	ecs.NewSingleton[Ruleset](storage, rules)
	e.playfield = ecs.NewSingleton[Playfield](storage, Playfield{Board: NewBoard(rules.Width, rules.Height)})
	e.input = ecs.NewSingleton[InputQueue](storage, InputQueue{})
	e.session = ecs.NewSingleton[Session](storage, Session{
		Phase:        PhaseSpawning,
		FallInterval: FallInterval(rules, 0),
	})

	first := o.source.Next()
	e.pieces = ecs.NewSingleton[Pieces](storage, Pieces{
		Next: SpawnBlock(rules.Width, first.Shape, first.Color, 0),
	})
	spawnNext(e.pieces.Get(), &e.playfield.Get().Board, e.session.Get(), &rules, o.source)

	e.scheduler = ecs.NewScheduler(storage)
	e.scheduler.Register(&ClockSystem{})
	e.scheduler.Register(&InputSystem{})
	e.scheduler.Register(&FallSystem{})
	e.scheduler.Register(&LockSystem{source: o.source, logger: e.logger})

	e.logger.Debug("game started",
		"width", rules.Width,
		"height", rules.Height,
		"colors", rules.Colors())
	return e, nil
}

// Apply queues an action for the next Tick. Unknown actions and actions
// after game over are dropped.
func (e *Engine) Apply(action Action) {
	if !action.Valid() || e.session.Get().Phase == PhaseGameOver {
		return
	}
	queue := e.input.Get()
	queue.Actions = append(queue.Actions, action)
}

// Tick advances the game by dt and returns the resulting state. Negative
// durations are treated as zero. Ticking a finished game changes nothing.
func (e *Engine) Tick(dt time.Duration) Snapshot {
	dt = max(dt, 0)
	e.scheduler.Once(dt.Seconds())
	return e.Snapshot()
}

// Snapshot returns the current state without advancing time.
func (e *Engine) Snapshot() Snapshot {
	session := e.session.Get()
	pieces := e.pieces.Get()

	snap := Snapshot{
		Board:        e.playfield.Get().Board.Clone(),
		Score:        session.Score,
		CeilingRow:   session.Ceiling,
		FallInterval: session.FallInterval,
		Elapsed:      session.Elapsed,
		Phase:        session.Phase,
		IsGameOver:   session.Phase == PhaseGameOver,
		Locks:        session.Locks,
		Clears:       session.Clears,
		LastClear:    session.LastClear,
	}
	snap.LastClear.Cleared = append([]Point(nil), session.LastClear.Cleared...)

	next := pieces.Next.Clone()
	snap.Next = &next
	if !snap.IsGameOver {
		active := pieces.Active.Clone()
		snap.Active = &active
	}
	return snap
}

// Ruleset returns the rules the engine was built with.
func (e *Engine) Ruleset() Ruleset {
	rules := e.rules
	rules.Palette = append([]string(nil), e.rules.Palette...)
	return rules
}

// Stats reports per-system execution timings.
func (e *Engine) Stats() *ecs.SchedulerStats {
	return e.scheduler.GetStats()
}
