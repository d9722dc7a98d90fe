package engine

// Block is a piece on (or about to enter) the board: a shape in its current
// rotation, a colour and the absolute position of the shape's top-left corner.
type Block struct {
	Shape Shape
	Color Cell
	X, Y  int
}

// SpawnBlock positions a shape horizontally centred on the ceiling row.
func SpawnBlock(width int, shape Shape, color Cell, ceiling int) Block {
	return Block{
		Shape: shape.Clone(),
		Color: color,
		X:     width/2 - shape.Width()/2,
		Y:     ceiling,
	}
}

// Cells returns the absolute coordinates covered by the block.
func (b Block) Cells() []Point {
	offsets := b.Shape.Offsets()
	for i := range offsets {
		offsets[i] = offsets[i].Add(b.X, b.Y)
	}
	return offsets
}

// Collides reports whether any covered cell is outside the side walls, at or
// below the floor, above the ceiling row, or already occupied.
func (b Block) Collides(board *Board, ceiling int) bool {
	for dy, row := range b.Shape {
		for dx, occupied := range row {
			if !occupied {
				continue
			}
			x, y := b.X+dx, b.Y+dy
			if x < 0 || x >= board.Width || y >= board.Height {
				return true
			}
			if y < ceiling || y < 0 {
				return true
			}
			if board.IsOccupied(x, y) {
				return true
			}
		}
	}
	return false
}

// Moved returns a copy translated by (dx, dy). The shape is shared.
func (b Block) Moved(dx, dy int) Block {
	b.X += dx
	b.Y += dy
	return b
}

// Clone returns a copy that does not share the shape matrix.
func (b Block) Clone() Block {
	b.Shape = b.Shape.Clone()
	return b
}

// Rotated turns the block and searches for a free column by kicking it
// sideways by +1, -2, +3, -4, ... while the step stays within the rotated
// width plus two. It returns the original block and false when no position
// fits, so the result never collides unless the input already did.
func (b Block) Rotated(dir int, board *Board, ceiling int) (Block, bool) {
	rotated := b
	rotated.Shape = b.Shape.Rotate(dir)

	limit := rotated.Shape.Width() + 2
	step := 1
	for rotated.Collides(board, ceiling) {
		if abs(step) > limit {
			return b, false
		}
		rotated.X += step
		if step > 0 {
			step = -(step + 1)
		} else {
			step = -step + 1
		}
	}
	return rotated, true
}

// Landing returns the block dropped straight down as far as it goes.
func (b Block) Landing(board *Board, ceiling int) Block {
	for {
		next := b.Moved(0, 1)
		if next.Collides(board, ceiling) {
			return b
		}
		b = next
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
