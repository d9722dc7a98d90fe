package main

import (
	"context"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/colorfall/ctxlog"
	"github.com/plus3/colorfall/engine"
	"github.com/plus3/colorfall/season"
	"github.com/spf13/viper"
)

// loadCatalogue returns the built-in seasons, or the --seasons-file ones.
func loadCatalogue(ctx context.Context) (*season.Catalogue, error) {
	if path := viper.GetString("seasons-file"); path != "" {
		return season.Load(ctx, path)
	}
	return season.Default(ctx)
}

// selectedRuleset resolves --season and --palette against the catalogue.
func selectedRuleset(ctx context.Context) (season.Season, engine.Ruleset, error) {
	catalogue, err := loadCatalogue(ctx)
	if err != nil {
		return season.Season{}, engine.Ruleset{}, err
	}

	s, err := catalogue.Lookup(viper.GetString("season"))
	if err != nil {
		return season.Season{}, engine.Ruleset{}, err
	}
	rules, err := s.Ruleset(viper.GetString("palette"))
	if err != nil {
		return season.Season{}, engine.Ruleset{}, err
	}
	return s, rules, nil
}

// engineOptions wires the context logger and, when given, the seed.
func engineOptions(ctx context.Context) []engine.Option {
	opts := []engine.Option{engine.WithLogger(ctxlog.FromContext(ctx))}
	if viper.IsSet("seed") {
		opts = append(opts, engine.WithSeed(viper.GetUint64("seed")))
	}
	return opts
}

// paletteColors parses the ruleset's "#rrggbb" strings. Index i holds the
// colour of cell id i+1.
func paletteColors(rules engine.Ruleset) ([]colorful.Color, error) {
	colors := make([]colorful.Color, len(rules.Palette))
	for i, hex := range rules.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette colour %d %q: %w", i+1, hex, err)
		}
		colors[i] = c
	}
	return colors, nil
}
