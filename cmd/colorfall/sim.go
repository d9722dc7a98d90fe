package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/colorfall/ctxlog"
	"github.com/plus3/colorfall/engine"
	"github.com/plus3/ooftn/ecs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// simConfig drives a batch of bot games.
type simConfig struct {
	Games       int
	Parallel    int
	MaxDuration time.Duration
	Step        time.Duration
	ActionRate  float64
	Seed        uint64
}

// gameResult is the outcome of one bot game. Elapsed is simulated time;
// WallTime is how long the game took to run.
type gameResult struct {
	Game     int
	Seed     uint64
	Score    int
	Locks    int
	Clears   int
	Elapsed  time.Duration
	Ticks    int64
	WallTime time.Duration
	GameOver bool
	Stats    *ecs.SchedulerStats
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run seeded bot games headlessly and report on them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := ctxlog.FromContext(ctx)

		s, rules, err := selectedRuleset(ctx)
		if err != nil {
			return err
		}

		cfg := simConfig{
			Games:       viper.GetInt("games"),
			Parallel:    viper.GetInt("parallel"),
			MaxDuration: viper.GetDuration("max-duration"),
			Step:        viper.GetDuration("step"),
			ActionRate:  viper.GetFloat64("action-rate"),
			Seed:        rand.Uint64(),
		}
		if viper.IsSet("seed") {
			cfg.Seed = viper.GetUint64("seed")
		}
		if cfg.Games <= 0 || cfg.Parallel <= 0 || cfg.Step <= 0 || cfg.MaxDuration <= 0 {
			return fmt.Errorf("games, parallel, step and max-duration must be positive")
		}

		report := &Report{
			Season:         s.Name,
			Games:          cfg.Games,
			Parallel:       cfg.Parallel,
			MaxDuration:    cfg.MaxDuration,
			Step:           cfg.Step,
			Seed:           cfg.Seed,
			GCPauseMetrics: viper.GetBool("gc-pause-metrics"),
		}
		runtime.ReadMemStats(&report.MemStatsStart)

		logger.Info("Starting simulation.", "season", s.Name, "games", cfg.Games, "parallel", cfg.Parallel, "seed", cfg.Seed)
		start := time.Now()
		results, err := runSim(ctx, rules, cfg)
		if err != nil {
			return err
		}
		report.TotalTime = time.Since(start)
		runtime.ReadMemStats(&report.MemStatsEnd)
		report.Finalize(results)
		logger.Info("Simulation finished.", "elapsed", report.TotalTime)

		w := cmd.OutOrStdout()
		if err := report.Generate(w); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		printGames(w, results)
		fmt.Fprintln(w)
		printSystems(w, report.Systems)
		return nil
	},
}

func init() {
	flags := simCmd.Flags()
	flags.Int("games", 8, "number of games to play")
	flags.Int("parallel", runtime.NumCPU(), "games played at once")
	flags.Duration("max-duration", 30*time.Minute, "simulated time after which a game is stopped")
	flags.Duration("step", 16*time.Millisecond, "simulated time per tick")
	flags.Float64("action-rate", 0.2, "probability that the bot acts on a tick")
	flags.Bool("gc-pause-metrics", false, "include GC pause totals in the report")
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(simCmd)
}

// runSim plays cfg.Games games, at most cfg.Parallel at a time. Game i uses
// seed cfg.Seed+i, so a batch is reproducible from its seed.
func runSim(ctx context.Context, rules engine.Ruleset, cfg simConfig) ([]gameResult, error) {
	results := make([]gameResult, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := range cfg.Games {
		g.Go(func() error {
			result, err := playBot(ctx, rules, cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// playBot plays one game with random inputs until it ends or reaches
// cfg.MaxDuration of simulated time.
func playBot(ctx context.Context, rules engine.Ruleset, cfg simConfig, game int) (gameResult, error) {
	seed := cfg.Seed + uint64(game)
	logger := ctxlog.FromContext(ctx).With("game", game)

	eng, err := engine.New(rules, engine.WithSeed(seed), engine.WithLogger(logger))
	if err != nil {
		return gameResult{}, err
	}
	bot := rand.New(rand.NewPCG(seed, uint64(game)))

	result := gameResult{Game: game, Seed: seed}
	start := time.Now()
	snap := eng.Snapshot()
	for !snap.IsGameOver && snap.Elapsed < cfg.MaxDuration {
		if result.Ticks%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return gameResult{}, err
			}
		}
		if bot.Float64() < cfg.ActionRate {
			eng.Apply(engine.Actions[bot.IntN(len(engine.Actions))])
		}
		snap = eng.Tick(cfg.Step)
		result.Ticks++
	}

	result.WallTime = time.Since(start)
	result.Score = snap.Score
	result.Locks = snap.Locks
	result.Clears = snap.Clears
	result.Elapsed = snap.Elapsed
	result.GameOver = snap.IsGameOver
	result.Stats = eng.Stats()

	logger.Debug("game finished", "score", result.Score, "elapsed", result.Elapsed, "game_over", result.GameOver)
	return result, nil
}
