package engine

import "github.com/kamstrup/intmap"

// ClearResult describes what one lock removed from the board. Cleared lists
// the removed cells: the core set first, then the collateral ring, each in
// discovery order.
type ClearResult struct {
	Cleared        []Point
	SameColor      int
	DifferentColor int
	AllClear       bool
	Score          int
}

// cellSet is an insertion-ordered set of board cells keyed by cell index.
type cellSet struct {
	width  int
	index  *intmap.Map[int, int]
	points []Point
}

func newCellSet(width, capacity int) *cellSet {
	return &cellSet{
		width:  width,
		index:  intmap.New[int, int](capacity),
		points: make([]Point, 0, capacity),
	}
}

func (s *cellSet) has(p Point) bool {
	_, ok := s.index.Get(p.Y*s.width + p.X)
	return ok
}

// add inserts p and reports whether it was new.
func (s *cellSet) add(p Point) bool {
	key := p.Y*s.width + p.X
	if _, ok := s.index.Get(key); ok {
		return false
	}
	s.index.Put(key, len(s.points))
	s.points = append(s.points, p)
	return true
}

func (s *cellSet) len() int {
	return len(s.points)
}

// Clear applies the colour-adjacency rule to cells that were just placed with
// the given colour. Nothing happens unless a placed cell touches a cell of the
// same colour that was already on the board. Otherwise the placed cells and
// those touching cells form the core, every occupied cell adjacent to the core
// is swept in once (no cascade), and the whole set is removed and scored.
func Clear(board *Board, placed []Point, color Cell, scoring Scoring) ClearResult {
	placedSet := newCellSet(board.Width, len(placed))
	for _, p := range placed {
		placedSet.add(p)
	}

	core := newCellSet(board.Width, len(placed)*3)
	for _, p := range placed {
		core.add(p)
	}

	triggered := 0
	for _, p := range placed {
		for _, d := range neighbours4 {
			n := p.Add(d[0], d[1])
			if !board.InBounds(n.X, n.Y) || placedSet.has(n) {
				continue
			}
			if board.At(n.X, n.Y) == color && core.add(n) {
				triggered++
			}
		}
	}
	if triggered == 0 {
		return ClearResult{}
	}

	final := newCellSet(board.Width, core.len()*2)
	for _, p := range core.points {
		final.add(p)
	}
	for _, p := range core.points {
		for _, d := range neighbours4 {
			n := p.Add(d[0], d[1])
			if board.InBounds(n.X, n.Y) && board.At(n.X, n.Y) != Empty {
				final.add(n)
			}
		}
	}

	result := ClearResult{Cleared: final.points}
	for _, p := range final.points {
		switch c := board.At(p.X, p.Y); {
		case c == color:
			result.SameColor++
		case c != Empty:
			result.DifferentColor++
		}
	}
	result.Score = result.SameColor*scoring.SameColor + result.DifferentColor*scoring.DifferentColor

	board.Clear(final.points)

	if board.IsEmpty() && scoring.AllClearBonus > 0 {
		result.AllClear = true
		result.Score += scoring.AllClearBonus
	}
	return result
}
