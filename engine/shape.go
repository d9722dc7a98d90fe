package engine

import "strings"

// Shape is a rectangular occupancy matrix, indexed [row][column].
type Shape [][]bool

// Shapes is the fixed piece catalogue in spawn orientation.
var Shapes = []Shape{
	mustShape("####"),       // I
	mustShape("##", "##"),   // O
	mustShape(".##", "##."), // S
	mustShape("##.", ".##"), // Z
	mustShape("#..", "###"), // L
	mustShape("..#", "###"), // J
	mustShape(".#.", "###"), // T
}

// ShapeNames are the conventional letters for Shapes, index aligned.
var ShapeNames = []string{"I", "O", "S", "Z", "L", "J", "T"}

// Rotation directions.
const (
	Clockwise        = 1
	CounterClockwise = -1
)

// ParseShape builds a shape from rows of '#' (occupied) and '.' (free).
func ParseShape(rows ...string) (Shape, bool) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, false
	}
	shape := make(Shape, len(rows))
	for y, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, false
		}
		shape[y] = make([]bool, len(row))
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '#':
				shape[y][x] = true
			case '.':
			default:
				return nil, false
			}
		}
	}
	return shape, true
}

func mustShape(rows ...string) Shape {
	shape, ok := ParseShape(rows...)
	if !ok {
		panic("engine: malformed shape " + strings.Join(rows, "/"))
	}
	return shape
}

// Width is the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height is the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = make([]bool, len(s[y]))
		copy(out[y], s[y])
	}
	return out
}

// Offsets lists the occupied (dx, dy) offsets in row-major order.
func (s Shape) Offsets() []Point {
	var out []Point
	for dy, row := range s {
		for dx, occupied := range row {
			if occupied {
				out = append(out, Point{X: dx, Y: dy})
			}
		}
	}
	return out
}

// Rotate turns the shape by 90 degrees. The matrix is transposed; for
// Clockwise each resulting row is reversed, otherwise the row order is.
func (s Shape) Rotate(dir int) Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for x := 0; x < w; x++ {
		out[x] = make([]bool, h)
		for y := 0; y < h; y++ {
			out[x][y] = s[y][x]
		}
	}

	if dir > 0 {
		for _, row := range out {
			for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
				row[i], row[j] = row[j], row[i]
			}
		}
	} else {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// String renders the shape in ParseShape format, rows joined by '/'.
func (s Shape) String() string {
	rows := make([]string, len(s))
	for y, row := range s {
		var sb strings.Builder
		for _, occupied := range row {
			if occupied {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "/")
}
