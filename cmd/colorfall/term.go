package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/colorfall/engine"
	"github.com/spf13/cobra"
)

const termFrame = 16 * time.Millisecond

var termKeys = map[tcell.Key]engine.Action{
	tcell.KeyLeft:  engine.MoveLeft,
	tcell.KeyRight: engine.MoveRight,
	tcell.KeyDown:  engine.SoftDrop,
	tcell.KeyUp:    engine.HardDrop,
}

var termRunes = map[rune]engine.Action{
	'h': engine.MoveLeft,
	'l': engine.MoveRight,
	'j': engine.SoftDrop,
	' ': engine.HardDrop,
	'x': engine.RotateCW,
	'z': engine.RotateCCW,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, rules, err := selectedRuleset(ctx)
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		game, err := newTermGame(ctx, screen, rules)
		if err != nil {
			return err
		}
		return game.run()
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}

type termGame struct {
	ctx    context.Context
	screen tcell.Screen
	rules  engine.Ruleset
	styles []tcell.Style

	eng  *engine.Engine
	snap engine.Snapshot
}

func newTermGame(ctx context.Context, screen tcell.Screen, rules engine.Ruleset) (*termGame, error) {
	colors, err := paletteColors(rules)
	if err != nil {
		return nil, err
	}

	styles := make([]tcell.Style, len(colors))
	for i, c := range colors {
		r, g, b := c.RGB255()
		styles[i] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	game := &termGame{ctx: ctx, screen: screen, rules: rules, styles: styles}
	return game, game.restart()
}

func (g *termGame) restart() error {
	eng, err := engine.New(g.rules, engineOptions(g.ctx)...)
	if err != nil {
		return err
	}
	g.eng = eng
	g.snap = eng.Snapshot()
	return nil
}

// handleInput queues engine actions and reports false when the player quits.
func (g *termGame) handleInput(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false, nil
		}
		if action, ok := termKeys[ev.Key()]; ok {
			g.eng.Apply(action)
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return true, nil
		}
		switch ev.Rune() {
		case 'q':
			return false, nil
		case 'r':
			if g.snap.IsGameOver {
				if err := g.restart(); err != nil {
					return false, err
				}
			}
		default:
			if action, ok := termRunes[ev.Rune()]; ok {
				g.eng.Apply(action)
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true, nil
}

// run drives the game until the player quits or ctx is cancelled.
func (g *termGame) run() error {
	ticker := time.NewTicker(termFrame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case <-g.ctx.Done():
			return nil
		case ev := <-eventChan:
			cont, err := g.handleInput(ev)
			if err != nil || !cont {
				return err
			}
		case now := <-ticker.C:
			g.snap = g.eng.Tick(now.Sub(last))
			last = now
			g.draw()
		}
	}
}

// setCell paints one board cell two columns wide so cells look square.
func (g *termGame) setCell(x, y int, style tcell.Style) {
	g.screen.SetContent(2*x+1, y+1, ' ', nil, style)
	g.screen.SetContent(2*x+2, y+1, ' ', nil, style)
}

func (g *termGame) drawText(x, y int, text string) {
	for i, r := range text {
		g.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func (g *termGame) draw() {
	g.screen.Clear()
	board := g.snap.Board
	empty := tcell.StyleDefault.Background(tcell.ColorBlack)
	ceiling := tcell.StyleDefault.Background(tcell.ColorGray)

	for y := 0; y < board.Height; y++ {
		g.screen.SetContent(0, y+1, '|', nil, tcell.StyleDefault)
		g.screen.SetContent(2*board.Width+1, y+1, '|', nil, tcell.StyleDefault)
		for x := 0; x < board.Width; x++ {
			switch c := board.At(x, y); {
			case c != engine.Empty:
				g.setCell(x, y, g.styles[c-1])
			case y < g.snap.CeilingRow:
				g.setCell(x, y, ceiling)
			default:
				g.setCell(x, y, empty)
			}
		}
	}
	if g.snap.Active != nil {
		for _, p := range g.snap.Active.Cells() {
			g.setCell(p.X, p.Y, g.styles[g.snap.Active.Color-1])
		}
	}

	sideX := 2*board.Width + 4
	g.drawText(sideX, 1, "NEXT")
	if g.snap.Next != nil {
		for _, p := range g.snap.Next.Shape.Offsets() {
			g.screen.SetContent(sideX+2*p.X, p.Y+3, ' ', nil, g.styles[g.snap.Next.Color-1])
			g.screen.SetContent(sideX+2*p.X+1, p.Y+3, ' ', nil, g.styles[g.snap.Next.Color-1])
		}
	}
	g.drawText(sideX, 7, fmt.Sprintf("SCORE  %d", g.snap.Score))
	g.drawText(sideX, 8, fmt.Sprintf("TIME   %s", g.snap.Elapsed.Truncate(time.Second)))
	g.drawText(sideX, 9, fmt.Sprintf("CLEARS %d", g.snap.Clears))
	if g.snap.IsGameOver {
		g.drawText(sideX, 11, "GAME OVER")
		g.drawText(sideX, 12, "r: restart  q: quit")
	}

	g.screen.Show()
}
