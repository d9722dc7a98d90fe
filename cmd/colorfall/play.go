package main

import (
	"cmp"
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/colorfall/ctxlog"
	"github.com/plus3/colorfall/engine"
	"github.com/plus3/colorfall/ranking"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	sidebarWidth = 160
	defaultCell  = 30

	// Held movement keys repeat after repeatDelay ticks, every repeatRate ticks.
	repeatDelay = 12
	repeatRate  = 3
)

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	gridColor       = color.RGBA{36, 36, 42, 255}
	ceilingColor    = color.RGBA{70, 70, 70, 255}
)

var repeatKeys = map[ebiten.Key]engine.Action{
	ebiten.KeyArrowLeft:  engine.MoveLeft,
	ebiten.KeyArrowRight: engine.MoveRight,
	ebiten.KeyArrowDown:  engine.SoftDrop,
}

var pressKeys = map[ebiten.Key]engine.Action{
	ebiten.KeyArrowUp: engine.HardDrop,
	ebiten.KeySpace:   engine.HardDrop,
	ebiten.KeyX:       engine.RotateCW,
	ebiten.KeyZ:       engine.RotateCCW,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, rules, err := selectedRuleset(ctx)
		if err != nil {
			return err
		}

		game, err := newPlayGame(ctx, rules, ranking.NewLeaderboard(nil), ranking.Metadata{
			PlayerID: viper.GetString("player-id"),
			Name:     viper.GetString("name"),
			Season:   s.Name,
			Palette:  cmp.Or(viper.GetString("palette"), s.PaletteNames()[0]),
		})
		if err != nil {
			return err
		}

		ebiten.SetWindowSize(game.Layout(0, 0))
		ebiten.SetWindowTitle(fmt.Sprintf("colorfall - %s", s.Title))
		if err := ebiten.RunGame(game); err != nil {
			return err
		}

		printRankings(cmd.OutOrStdout(), game.leaderboard.Rankings(s.Name))
		return nil
	},
}

func init() {
	playCmd.Flags().String("name", "", "name submitted to the leaderboard")
	playCmd.Flags().String("player-id", "local", "identity the leaderboard keeps one entry for")
	if err := viper.BindPFlags(playCmd.Flags()); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(playCmd)
}

// playGame adapts the engine to ebiten's fixed-rate Update/Draw loop.
type playGame struct {
	ctx         context.Context
	rules       engine.Ruleset
	colors      []colorful.Color
	leaderboard *ranking.Leaderboard
	meta        ranking.Metadata

	eng       *engine.Engine
	snap      engine.Snapshot
	submitted bool
}

func newPlayGame(ctx context.Context, rules engine.Ruleset, leaderboard *ranking.Leaderboard, meta ranking.Metadata) (*playGame, error) {
	colors, err := paletteColors(rules)
	if err != nil {
		return nil, err
	}
	g := &playGame{
		ctx:         ctx,
		rules:       rules,
		colors:      colors,
		leaderboard: leaderboard,
		meta:        meta,
	}
	return g, g.restart()
}

func (g *playGame) restart() error {
	eng, err := engine.New(g.rules, engineOptions(g.ctx)...)
	if err != nil {
		return err
	}
	g.eng = eng
	g.snap = eng.Snapshot()
	g.submitted = false
	return nil
}

func (g *playGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.snap.IsGameOver {
		if !g.submitted {
			g.submitted = true
			g.submit()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return g.restart()
		}
		return nil
	}

	for key, action := range repeatKeys {
		if d := inpututil.KeyPressDuration(key); d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatRate == 0) {
			g.eng.Apply(action)
		}
	}
	for key, action := range pressKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.eng.Apply(action)
		}
	}

	g.snap = g.eng.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *playGame) submit() {
	logger := ctxlog.FromContext(g.ctx)
	if !g.leaderboard.Qualifies(g.meta.Season, g.snap.Score) {
		logger.Info("score did not reach the rankings", "score", g.snap.Score)
		return
	}
	if err := g.leaderboard.SubmitScore(g.ctx, g.snap.Score, g.meta); err != nil {
		logger.Error("score submission failed", "error", err)
	}
}

func (g *playGame) cellSize() float32 {
	if g.rules.CellSize > 0 {
		return float32(g.rules.CellSize)
	}
	return defaultCell
}

func (g *playGame) drawCell(screen *ebiten.Image, x, y int, c engine.Cell, originX float32) {
	size := g.cellSize()
	var clr color.Color = gridColor
	if c != engine.Empty {
		clr = g.colors[c-1]
	}
	vector.DrawFilledRect(screen, originX+float32(x)*size, float32(y)*size, size-1, size-1, clr, false)
}

func (g *playGame) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	size := g.cellSize()
	board := g.snap.Board

	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			g.drawCell(screen, x, y, board.At(x, y), 0)
		}
	}
	if g.snap.CeilingRow > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(board.Width)*size, float32(g.snap.CeilingRow)*size, ceilingColor, false)
	}
	if g.snap.Active != nil {
		for _, p := range g.snap.Active.Cells() {
			g.drawCell(screen, p.X, p.Y, g.snap.Active.Color, 0)
		}
	}

	sideX := float32(board.Width)*size + 10
	if g.snap.Next != nil {
		for _, p := range g.snap.Next.Shape.Offsets() {
			g.drawCell(screen, p.X, p.Y+2, g.snap.Next.Color, sideX)
		}
	}

	elapsed := g.snap.Elapsed.Truncate(time.Second)
	status := fmt.Sprintf("NEXT\n\n\n\n\n\nSCORE %d\nTIME  %s\nCLEARS %d", g.snap.Score, elapsed, g.snap.Clears)
	if g.snap.IsGameOver {
		status += "\n\nGAME OVER\nR: restart\nEsc: quit"
	}
	ebitenutil.DebugPrintAt(screen, status, int(sideX), 4)
}

func (g *playGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := int(g.cellSize())
	return g.rules.Width*size + sidebarWidth, g.rules.Height * size
}
