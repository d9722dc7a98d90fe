package engine

import "math/rand/v2"

// Piece is a shape and colour pair handed out by a PieceSource.
type Piece struct {
	Shape Shape
	Color Cell
}

// PieceSource supplies the sequence of pieces a game spawns.
type PieceSource interface {
	Next() Piece
}

type randomSource struct {
	rng    *rand.Rand
	colors int
}

// NewRandomSource draws shapes and colours uniformly from a PCG generator, so
// equal seeds give equal games.
func NewRandomSource(seed uint64, colors int) PieceSource {
	return &randomSource{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		colors: colors,
	}
}

func (s *randomSource) Next() Piece {
	return Piece{
		Shape: Shapes[s.rng.IntN(len(Shapes))],
		Color: Cell(s.rng.IntN(s.colors) + 1),
	}
}

type sequenceSource struct {
	pieces []Piece
	next   int
}

// NewSequenceSource replays pieces in order, wrapping around at the end.
func NewSequenceSource(pieces ...Piece) PieceSource {
	if len(pieces) == 0 {
		panic("engine: empty piece sequence")
	}
	return &sequenceSource{pieces: pieces}
}

func (s *sequenceSource) Next() Piece {
	p := s.pieces[s.next]
	s.next = (s.next + 1) % len(s.pieces)
	return p
}
