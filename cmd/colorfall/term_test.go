package main

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/colorfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTermGame(t *testing.T) *termGame {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	game, err := newTermGame(context.Background(), screen, engine.Classic())
	require.NoError(t, err)
	return game
}

func TestTermHandleInput(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		wantCont bool
	}{
		{"quit rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"move", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), true},
		{"restart while playing", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := newTestTermGame(t)

			cont, err := game.handleInput(tt.ev)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCont, cont)
		})
	}
}

func TestTermMoveReachesEngine(t *testing.T) {
	game := newTestTermGame(t)
	startX := game.snap.Active.X

	_, err := game.handleInput(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	require.NoError(t, err)
	snap := game.eng.Tick(0)

	assert.Equal(t, startX-1, snap.Active.X)
}

func TestTermRestartErrorStopsLoop(t *testing.T) {
	game := newTestTermGame(t)
	game.snap.IsGameOver = true
	game.rules.Width = 0

	cont, err := game.handleInput(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))

	assert.False(t, cont)
	assert.ErrorIs(t, err, engine.ErrConfiguration)
}
