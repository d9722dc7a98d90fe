package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/colorfall/engine"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows ...string) engine.Board {
	t.Helper()
	board, err := engine.ParseBoard(rows...)
	require.NoError(t, err)
	return board
}

func mustShape(t *testing.T, rows ...string) engine.Shape {
	t.Helper()
	shape, ok := engine.ParseShape(rows...)
	require.True(t, ok, "malformed shape %v", rows)
	return shape
}

func rows(board engine.Board) []string {
	return strings.Split(strings.TrimSuffix(board.String(), "\n"), "\n")
}

// tinyRules is a 4x2 field where two horizontal I pieces fill the board.
func tinyRules() engine.Ruleset {
	rules := engine.Classic()
	rules.Name = "tiny"
	rules.Width = 4
	rules.Height = 2
	rules.Ceiling = engine.CeilingRule{Step: time.Minute, Cap: 1}
	return rules
}

func iPiece(t *testing.T, color engine.Cell) engine.Piece {
	t.Helper()
	return engine.Piece{Shape: mustShape(t, "####"), Color: color}
}
