package engine

import (
	"log/slog"
	"math"
	"time"

	"github.com/plus3/ooftn/ecs"
)

// ClockSystem advances the game clock and derives the ceiling row and fall
// interval from it. A falling block caught above a lowered ceiling is pushed
// down to it, or landed when the push is blocked.
type ClockSystem struct {
	Session   ecs.Singleton[Session]
	Rules     ecs.Singleton[Ruleset]
	Pieces    ecs.Singleton[Pieces]
	Playfield ecs.Singleton[Playfield]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Phase == PhaseGameOver {
		return
	}

	session.Delta = time.Duration(math.Round(frame.DeltaTime * float64(time.Second)))
	session.Elapsed += session.Delta

	rules := s.Rules.Get()
	session.Ceiling = max(session.Ceiling, CeilingRow(*rules, session.Elapsed))
	session.FallInterval = FallInterval(*rules, session.Elapsed)

	pieces := s.Pieces.Get()
	board := &s.Playfield.Get().Board
	for !pieces.Landed && pieces.Active.Y < session.Ceiling {
		moved := pieces.Active.Moved(0, 1)
		if moved.Collides(board, 0) {
			pieces.Landed = true
			break
		}
		pieces.Active = moved
	}
}

// InputSystem drains queued actions into the active block. Once an action
// lands the block the rest of the queue is left for the next tick, so every
// action applies to the block it was aimed at or the one after it.
type InputSystem struct {
	Input     ecs.Singleton[InputQueue]
	Pieces    ecs.Singleton[Pieces]
	Playfield ecs.Singleton[Playfield]
	Session   ecs.Singleton[Session]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Input.Get()
	session := s.Session.Get()
	if session.Phase == PhaseGameOver {
		queue.Actions = queue.Actions[:0]
		return
	}

	pieces := s.Pieces.Get()
	board := &s.Playfield.Get().Board

	n := 0
	for n < len(queue.Actions) && !pieces.Landed {
		s.apply(queue.Actions[n], pieces, board, session)
		n++
	}
	queue.Actions = append(queue.Actions[:0], queue.Actions[n:]...)
}

func (s *InputSystem) apply(action Action, pieces *Pieces, board *Board, session *Session) {
	active := &pieces.Active
	switch action {
	case MoveLeft, MoveRight:
		dx := -1
		if action == MoveRight {
			dx = 1
		}
		if moved := active.Moved(dx, 0); !moved.Collides(board, session.Ceiling) {
			*active = moved
		}
	case RotateCW:
		*active, _ = active.Rotated(Clockwise, board, session.Ceiling)
	case RotateCCW:
		*active, _ = active.Rotated(CounterClockwise, board, session.Ceiling)
	case SoftDrop:
		stepDown(pieces, board, session)
	case HardDrop:
		*active = active.Landing(board, session.Ceiling)
		pieces.Landed = true
	}
}

// stepDown moves the active block one row down, or marks it landed when the
// row below is blocked. Either way the drop counter restarts.
func stepDown(pieces *Pieces, board *Board, session *Session) {
	session.DropCounter = 0
	moved := pieces.Active.Moved(0, 1)
	if moved.Collides(board, session.Ceiling) {
		pieces.Landed = true
		return
	}
	pieces.Active = moved
}

// FallSystem applies gravity to the active block once the drop counter
// exceeds the current fall interval.
type FallSystem struct {
	Pieces    ecs.Singleton[Pieces]
	Playfield ecs.Singleton[Playfield]
	Session   ecs.Singleton[Session]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	pieces := s.Pieces.Get()
	if session.Phase == PhaseGameOver || pieces.Landed {
		return
	}

	session.DropCounter += session.Delta
	if session.DropCounter > session.FallInterval {
		stepDown(pieces, &s.Playfield.Get().Board, session)
	}
}

// LockSystem writes a landed block into the board, runs the clear and
// gravity passes and spawns the next block.
type LockSystem struct {
	Pieces    ecs.Singleton[Pieces]
	Playfield ecs.Singleton[Playfield]
	Session   ecs.Singleton[Session]
	Rules     ecs.Singleton[Ruleset]

	source PieceSource
	logger *slog.Logger
}

func (s *LockSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	pieces := s.Pieces.Get()
	if session.Phase == PhaseGameOver || !pieces.Landed {
		return
	}

	board := &s.Playfield.Get().Board
	rules := s.Rules.Get()
	active := pieces.Active

	session.Phase = PhaseLocking
	placed := active.Cells()
	board.Place(placed, active.Color)
	session.Locks++

	session.Phase = PhaseClearing
	result := Clear(board, placed, active.Color, rules.Scoring)
	session.LastClear = result
	if len(result.Cleared) > 0 {
		session.Clears++
		session.Score += result.Score
		s.logger.Debug("cells cleared",
			"cleared", len(result.Cleared),
			"same", result.SameColor,
			"different", result.DifferentColor,
			"all_clear", result.AllClear,
			"score", session.Score)
	}

	session.Phase = PhaseResolving
	if moves := ResolveGravity(board); moves > 0 {
		s.logger.Debug("gravity resolved", "moves", moves)
	}

	pieces.Landed = false
	spawnNext(pieces, board, session, rules, s.source)
	if session.Phase == PhaseGameOver {
		s.logger.Info("game over",
			"score", session.Score,
			"elapsed", session.Elapsed,
			"locks", session.Locks)
	}
}

// spawnNext promotes the queued block to active at the current ceiling and
// draws a new successor. A spawn that collides ends the game.
func spawnNext(pieces *Pieces, board *Board, session *Session, rules *Ruleset, source PieceSource) {
	session.Phase = PhaseSpawning
	session.DropCounter = 0

	pieces.Active = SpawnBlock(rules.Width, pieces.Next.Shape, pieces.Next.Color, session.Ceiling)
	next := source.Next()
	pieces.Next = SpawnBlock(rules.Width, next.Shape, next.Color, session.Ceiling)

	if pieces.Active.Collides(board, session.Ceiling) {
		session.Phase = PhaseGameOver
		return
	}
	session.Phase = PhaseFalling
}
