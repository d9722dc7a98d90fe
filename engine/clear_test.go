package engine_test

import (
	"testing"

	"github.com/plus3/colorfall/engine"
	"github.com/stretchr/testify/assert"
)

var classicScoring = engine.Scoring{SameColor: 3, DifferentColor: 1}

func TestClearWithoutSameColourNeighbourDoesNothing(t *testing.T) {
	board := mustBoard(t,
		"......",
		"bbcc..",
	)
	placed := []engine.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	board.Place(placed, 1)
	before := board.Clone()

	result := engine.Clear(&board, placed, 1, classicScoring)

	assert.Equal(t, engine.ClearResult{}, result)
	assert.Equal(t, rows(before), rows(board))
}

func TestClearCoreAndCollateral(t *testing.T) {
	board := mustBoard(t,
		"......",
		"baaabc",
	)
	placed := []engine.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	board.Place(placed, 1)

	result := engine.Clear(&board, placed, 1, classicScoring)

	// Six 'a' cells in the core, both 'b' cells as collateral. The 'c' only
	// touches collateral and survives.
	assert.Equal(t, 6, result.SameColor)
	assert.Equal(t, 2, result.DifferentColor)
	assert.Equal(t, 6*3+2*1, result.Score)
	assert.False(t, result.AllClear)
	assert.ElementsMatch(t, []engine.Point{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1},
		{X: 0, Y: 1}, {X: 4, Y: 1},
	}, result.Cleared)
	assert.Equal(t, placed, result.Cleared[:3], "placed cells come first")
	assert.Equal(t, []string{"......", ".....c"}, rows(board))
}

func TestClearTriggersOnlyDirectNeighbours(t *testing.T) {
	board := mustBoard(t,
		".....",
		"ab...",
		"aab..",
	)
	placed := []engine.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	board.Place(placed, 1)

	result := engine.Clear(&board, placed, 1, classicScoring)

	// Core is the placed pair plus (0,1). The sweep takes (1,1) and (0,2) but
	// stops there, so (1,2) and (2,2) stay even though (1,2) is the same colour.
	assert.Equal(t, 4, result.SameColor)
	assert.Equal(t, 1, result.DifferentColor)
	assert.Equal(t, 13, result.Score)
	assert.Equal(t, []string{".....", ".....", ".ab.."}, rows(board))
}

func TestClearAllClearBonus(t *testing.T) {
	tests := []struct {
		name      string
		bonus     int
		wantScore int
		wantAll   bool
	}{
		{"no bonus configured", 0, 20, false},
		{"bonus configured", 100, 120, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t,
				"......",
				"baaab.",
			)
			placed := []engine.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
			board.Place(placed, 1)

			scoring := classicScoring
			scoring.AllClearBonus = tt.bonus
			result := engine.Clear(&board, placed, 1, scoring)

			assert.True(t, board.IsEmpty())
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantAll, result.AllClear)
		})
	}
}

func TestClearUsesRulesetWeights(t *testing.T) {
	board := mustBoard(t,
		"...",
		"ab.",
	)
	placed := []engine.Point{{X: 0, Y: 0}}
	board.Place(placed, 1)

	result := engine.Clear(&board, placed, 1, engine.Scoring{SameColor: 10, DifferentColor: 7})

	assert.Equal(t, 2*10+1*7, result.Score)
}
