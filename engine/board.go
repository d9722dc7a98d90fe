package engine

import (
	"fmt"
	"iter"
	"strings"
)

// Cell holds either Empty or a colour id in 1..len(palette).
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Point is an absolute board coordinate. Y grows downwards.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// neighbours4 are the 4-adjacency offsets in a fixed order so that every scan
// visits cells deterministically.
var neighbours4 = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Board is a fixed width x height grid of cells stored row-major.
type Board struct {
	Width  int
	Height int
	cells  []Cell
}

// NewBoard creates an empty board. It panics on non-positive dimensions;
// rulesets are validated before a board is ever created.
func NewBoard(width, height int) Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", width, height))
	}
	return Board{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Board) index(x, y int) int {
	return y*b.Width + x
}

func (b *Board) point(index int) Point {
	return Point{X: index % b.Width, Y: index / b.Width}
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[b.index(x, y)]
}

// IsOccupied is the collision lookup: out of bounds counts as blocked.
func (b *Board) IsOccupied(x, y int) bool {
	if !b.InBounds(x, y) {
		return true
	}
	return b.cells[b.index(x, y)] != Empty
}

// Set writes a single cell. Writing outside the grid is a programming error.
func (b *Board) Set(x, y int, c Cell) {
	b.mustContain(x, y)
	b.cells[b.index(x, y)] = c
}

// Place writes color into every listed cell. Callers must have checked the
// block for collisions first.
func (b *Board) Place(cells []Point, color Cell) {
	for _, p := range cells {
		b.mustContain(p.X, p.Y)
	}
	for _, p := range cells {
		b.cells[b.index(p.X, p.Y)] = color
	}
}

// Clear empties every listed cell.
func (b *Board) Clear(cells []Point) {
	for _, p := range cells {
		b.mustContain(p.X, p.Y)
	}
	for _, p := range cells {
		b.cells[b.index(p.X, p.Y)] = Empty
	}
}

func (b *Board) mustContain(x, y int) {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("engine: write to (%d,%d) outside %dx%d board", x, y, b.Width, b.Height))
	}
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.Height {
		return false
	}
	for _, c := range b.cells[y*b.Width : (y+1)*b.Width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, c := range b.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no cell is occupied.
func (b *Board) IsEmpty() bool {
	for _, c := range b.cells {
		if c != Empty {
			return false
		}
	}
	return true
}

// Cells iterates over occupied cells in row-major order.
func (b *Board) Cells() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for i, c := range b.cells {
			if c == Empty {
				continue
			}
			if !yield(b.point(i), c) {
				return
			}
		}
	}
}

// Rows returns a copy of the grid as rows, convenient for renderers.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.Height)
	for y := range rows {
		rows[y] = make([]Cell, b.Width)
		copy(rows[y], b.cells[y*b.Width:(y+1)*b.Width])
	}
	return rows
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{Width: b.Width, Height: b.Height, cells: cells}
}

// String renders the board one row per line, '.' for empty and 'a'+id-1 for
// colours 1 to 26. Larger ids print as '?', which ParseBoard rejects.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			switch c := b.At(x, y); {
			case c == Empty:
				sb.WriteByte('.')
			case c <= 26:
				sb.WriteByte('a' + byte(c) - 1)
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from the String format. Rows must share a width.
func ParseBoard(rows ...string) (Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Board{}, fmt.Errorf("engine: no rows to parse")
	}
	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.Width {
			return Board{}, fmt.Errorf("engine: row %d has width %d, want %d", y, len(row), b.Width)
		}
		for x := 0; x < len(row); x++ {
			switch ch := row[x]; {
			case ch == '.':
			case ch >= 'a' && ch <= 'z':
				b.cells[b.index(x, y)] = Cell(ch-'a') + 1
			default:
				return Board{}, fmt.Errorf("engine: unexpected %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return b, nil
}
