package engine_test

import (
	"testing"

	"github.com/plus3/colorfall/engine"
	"github.com/stretchr/testify/assert"
)

func TestResolveGravity(t *testing.T) {
	tests := []struct {
		name      string
		board     []string
		want      []string
		wantMoves int
	}{
		{
			name: "settled board",
			board: []string{
				"...",
				".a.",
				"bab",
			},
			want: []string{
				"...",
				".a.",
				"bab",
			},
		},
		{
			name: "group keeps shape and colours",
			board: []string{
				".a.",
				".ab",
				"...",
				"...",
				"ccc",
			},
			want: []string{
				"...",
				"...",
				".a.",
				".ab",
				"ccc",
			},
			wantMoves: 1,
		},
		{
			name: "lower group lands first",
			board: []string{
				"a.",
				"..",
				"b.",
				"..",
				"..",
			},
			want: []string{
				"..",
				"..",
				"..",
				"a.",
				"b.",
			},
			wantMoves: 2,
		},
		{
			name: "resting on own arm is not support",
			board: []string{
				"a..",
				"aa.",
				"...",
			},
			want: []string{
				"...",
				"a..",
				"aa.",
			},
			wantMoves: 1,
		},
		{
			name: "multicolour group moves as one",
			board: []string{
				"abc",
				"...",
				"..d",
			},
			want: []string{
				"...",
				"abc",
				"..d",
			},
			wantMoves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.board...)

			moves := engine.ResolveGravity(&board)

			assert.Equal(t, tt.wantMoves, moves)
			assert.Equal(t, tt.want, rows(board))
			assert.Empty(t, engine.FloatingGroups(&board))
		})
	}
}

func TestResolveGravityIsIdempotent(t *testing.T) {
	board := mustBoard(t,
		"a.b.",
		"a...",
		"..cc",
		"....",
		"d...",
	)

	engine.ResolveGravity(&board)
	settled := rows(board)

	assert.Equal(t, 0, engine.ResolveGravity(&board))
	assert.Equal(t, settled, rows(board))
}

func TestGravityAfterMiddleRowClear(t *testing.T) {
	board := mustBoard(t,
		".bb..",
		".b...",
		"ca...",
		"dd...",
	)
	placed := []engine.Point{{X: 2, Y: 2}, {X: 3, Y: 2}}
	board.Place(placed, 1)

	result := engine.Clear(&board, placed, 1, classicScoring)
	assert.NotEmpty(t, result.Cleared)

	// The core at (1,2) sweeps its 'b', 'c' and 'd' neighbours, leaving the
	// top pair hanging over three emptied rows.
	assert.Equal(t, 3, result.SameColor)
	assert.Equal(t, 3, result.DifferentColor)
	assert.Equal(t, []string{".bb..", ".....", ".....", "d...."}, rows(board))

	moves := engine.ResolveGravity(&board)
	assert.Equal(t, 1, moves)
	assert.Equal(t, []string{".....", ".....", ".....", "dbb.."}, rows(board))
}
