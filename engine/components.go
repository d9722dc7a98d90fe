package engine

import "time"

// Playfield is the singleton holding the locked cells.
type Playfield struct {
	Board Board
}

// Pieces is the singleton holding the falling block and its successor.
// Landed is raised by the input and fall systems when the active block
// cannot move down any more; the lock system consumes it within the same
// tick.
type Pieces struct {
	Active Block
	Next   Block
	Landed bool
}

// Session is the singleton holding score, clock and difficulty state.
type Session struct {
	Phase        Phase
	Score        int
	Elapsed      time.Duration
	Delta        time.Duration
	Ceiling      int
	FallInterval time.Duration
	DropCounter  time.Duration
	Locks        int
	Clears       int
	LastClear    ClearResult
}

// InputQueue buffers actions pushed by the host between ticks.
type InputQueue struct {
	Actions []Action
}

// Phase is the state of the engine's lock/spawn cycle.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseResolving
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseResolving:
		return "resolving"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}
