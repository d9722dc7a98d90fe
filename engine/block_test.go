package engine_test

import (
	"testing"

	"github.com/plus3/colorfall/engine"
	"github.com/stretchr/testify/assert"
)

func TestSpawnBlockCentres(t *testing.T) {
	tests := []struct {
		name    string
		shape   engine.Shape
		width   int
		ceiling int
		wantX   int
	}{
		{"I on classic field", mustShape(t, "####"), 13, 0, 4},
		{"O on classic field", mustShape(t, "##", "##"), 13, 0, 5},
		{"T under lowered ceiling", mustShape(t, ".#.", "###"), 13, 3, 5},
		{"I on even field", mustShape(t, "####"), 10, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := engine.SpawnBlock(tt.width, tt.shape, 1, tt.ceiling)
			assert.Equal(t, tt.wantX, block.X)
			assert.Equal(t, tt.ceiling, block.Y)
		})
	}
}

func TestBlockCollides(t *testing.T) {
	board := mustBoard(t,
		".....",
		".....",
		"..a..",
	)
	domino := mustShape(t, "##")

	tests := []struct {
		name    string
		x, y    int
		ceiling int
		want    bool
	}{
		{"free", 0, 0, 0, false},
		{"left wall", -1, 0, 0, true},
		{"right wall", 4, 0, 0, true},
		{"floor", 0, 3, 0, true},
		{"occupied", 1, 2, 0, true},
		{"beside occupied", 3, 2, 0, false},
		{"above ceiling", 0, 0, 1, true},
		{"on ceiling", 0, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := engine.Block{Shape: domino, Color: 1, X: tt.x, Y: tt.y}
			assert.Equal(t, tt.want, block.Collides(&board, tt.ceiling))
		})
	}
}

func TestBlockRotatedKicksOffWall(t *testing.T) {
	board := engine.NewBoard(5, 6)
	block := engine.Block{Shape: mustShape(t, "#", "#", "#", "#"), Color: 1, X: 4, Y: 0}

	rotated, ok := block.Rotated(engine.Clockwise, &board, 0)

	assert.True(t, ok)
	assert.Equal(t, "####", rotated.Shape.String())
	assert.Equal(t, 1, rotated.X)
	assert.False(t, rotated.Collides(&board, 0))
}

func TestBlockRotatedGivesUpInNarrowWell(t *testing.T) {
	board := engine.NewBoard(3, 6)
	block := engine.Block{Shape: mustShape(t, "#", "#", "#", "#"), Color: 1, X: 1, Y: 0}

	rotated, ok := block.Rotated(engine.Clockwise, &board, 0)

	assert.False(t, ok)
	assert.Equal(t, block, rotated)
}

func TestBlockRotatedKickLimit(t *testing.T) {
	// A vertical I is one column wide, so kicks stop after the +3 step:
	// columns x+1, x-1 and x+2 are tried, x-2 never is.
	tests := []struct {
		name   string
		row    string
		startX int
		wantOK bool
		wantX  int
	}{
		{"last step fits", "aaa.aaa", 1, true, 3},
		{"one step beyond", "a.aaaaa", 3, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, ".......", tt.row, tt.row, tt.row, ".......")
			block := engine.Block{Shape: mustShape(t, "####"), Color: 2, X: tt.startX, Y: 0}

			rotated, ok := block.Rotated(engine.Clockwise, &board, 0)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantX, rotated.X)
			if tt.wantOK {
				assert.False(t, rotated.Collides(&board, 0))
			}
		})
	}
}

func TestBlockRotatedNeverCollides(t *testing.T) {
	board := mustBoard(t,
		".......",
		".......",
		".......",
		"...a...",
		"a.....b",
		"ab..cab",
	)

	for i, shape := range engine.Shapes {
		for x := -1; x < board.Width; x++ {
			for y := 0; y < board.Height; y++ {
				block := engine.Block{Shape: shape, Color: 1, X: x, Y: y}
				if block.Collides(&board, 0) {
					continue
				}
				for _, dir := range []int{engine.Clockwise, engine.CounterClockwise} {
					rotated, _ := block.Rotated(dir, &board, 0)
					assert.False(t, rotated.Collides(&board, 0), "%s at (%d,%d) dir %d", engine.ShapeNames[i], x, y, dir)
				}
			}
		}
	}
}

func TestBlockLanding(t *testing.T) {
	board := mustBoard(t,
		"....",
		"....",
		"....",
		".a..",
	)
	block := engine.Block{Shape: mustShape(t, "##"), Color: 2, X: 0, Y: 0}

	landed := block.Landing(&board, 0)
	assert.Equal(t, 2, landed.Y)

	block.X = 2
	assert.Equal(t, 3, block.Landing(&board, 0).Y)
}
