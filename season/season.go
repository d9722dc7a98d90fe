// Package season loads the catalogue of rulesets ("seasons") from HCL.
//
// A seasons file holds one or more season blocks:
//
//	season "classic" {
//	  width  = 13
//	  height = 18
//	  scoring { ... }
//	  ceiling { step = minute  cap = 9 }
//	  fall    { curve = "halving"  base = 700  period = 5 * minute  min = 50 }
//	  palette "normal" { colors = ["#9D8478", ...] }
//	}
//
// Durations are written in milliseconds; the variables second and minute are
// predefined. The built-in catalogue is embedded in the binary.
package season

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/plus3/colorfall/ctxlog"
	"github.com/plus3/colorfall/engine"
	"github.com/zclconf/go-cty/cty"
)

//go:embed seasons.hcl
var builtin []byte

const builtinName = "seasons.hcl"

// ErrNotFound is returned for unknown season or palette names.
var ErrNotFound = errors.New("not found")

var evalContext = &hcl.EvalContext{
	Variables: map[string]cty.Value{
		"second": cty.NumberIntVal(int64(time.Second / time.Millisecond)),
		"minute": cty.NumberIntVal(int64(time.Minute / time.Millisecond)),
	},
}

type fileConfig struct {
	Seasons []*seasonConfig `hcl:"season,block"`
}

type seasonConfig struct {
	Name     string           `hcl:"name,label"`
	Title    string           `hcl:"title,optional"`
	Aliases  []string         `hcl:"aliases,optional"`
	Width    int              `hcl:"width"`
	Height   int              `hcl:"height"`
	CellSize int              `hcl:"cell_size,optional"`
	Scoring  scoringConfig    `hcl:"scoring,block"`
	Ceiling  ceilingConfig    `hcl:"ceiling,block"`
	Fall     fallConfig       `hcl:"fall,block"`
	Palettes []*paletteConfig `hcl:"palette,block"`
}

type scoringConfig struct {
	SameColor      int `hcl:"same_color"`
	DifferentColor int `hcl:"different_color"`
	AllClearBonus  int `hcl:"all_clear_bonus,optional"`
}

type ceilingConfig struct {
	Step int64 `hcl:"step"`
	Cap  int   `hcl:"cap"`
}

type fallConfig struct {
	Curve  string `hcl:"curve"`
	Base   int64  `hcl:"base"`
	Period int64  `hcl:"period"`
	Step   int64  `hcl:"step,optional"`
	Min    int64  `hcl:"min"`
}

type paletteConfig struct {
	Name   string   `hcl:"name,label"`
	Colors []string `hcl:"colors"`
}

// Palette is a named list of "#rrggbb" colours.
type Palette struct {
	Name   string
	Colors []string
}

// Season is a named ruleset offered in one or more palettes.
type Season struct {
	Name     string
	Title    string
	Aliases  []string
	Palettes []Palette

	rules engine.Ruleset
}

// Ruleset returns the season's rules with the named palette applied. An
// empty name selects the first palette.
func (s Season) Ruleset(palette string) (engine.Ruleset, error) {
	if len(s.Palettes) == 0 {
		return engine.Ruleset{}, fmt.Errorf("season %q has no palettes: %w", s.Name, ErrNotFound)
	}
	p := s.Palettes[0]
	if palette != "" {
		i := slices.IndexFunc(s.Palettes, func(p Palette) bool { return p.Name == palette })
		if i < 0 {
			return engine.Ruleset{}, fmt.Errorf("season %q palette %q: %w", s.Name, palette, ErrNotFound)
		}
		p = s.Palettes[i]
	}

	rules := s.rules
	rules.Palette = slices.Clone(p.Colors)
	return rules, nil
}

// PaletteNames lists the palettes in declaration order.
func (s Season) PaletteNames() []string {
	names := make([]string, len(s.Palettes))
	for i, p := range s.Palettes {
		names[i] = p.Name
	}
	return names
}

// Catalogue is an ordered set of seasons addressable by name or alias.
type Catalogue struct {
	seasons []Season
	index   map[string]int
}

// Seasons returns the seasons in declaration order.
func (c *Catalogue) Seasons() []Season {
	return slices.Clone(c.seasons)
}

// Lookup finds a season by name or alias.
func (c *Catalogue) Lookup(name string) (Season, error) {
	i, ok := c.index[name]
	if !ok {
		return Season{}, fmt.Errorf("season %q: %w", name, ErrNotFound)
	}
	return c.seasons[i], nil
}

// Ruleset is Lookup followed by Season.Ruleset.
func (c *Catalogue) Ruleset(name, palette string) (engine.Ruleset, error) {
	s, err := c.Lookup(name)
	if err != nil {
		return engine.Ruleset{}, err
	}
	return s.Ruleset(palette)
}

// Default decodes the embedded catalogue.
func Default(ctx context.Context) (*Catalogue, error) {
	return Parse(ctx, builtin, builtinName)
}

// Load decodes the seasons file at path.
func Load(ctx context.Context, path string) (*Catalogue, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seasons file %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// Parse decodes HCL source; filename is only used in diagnostics. Every
// season and palette combination must form a valid engine.Ruleset.
func Parse(ctx context.Context, src []byte, filename string) (*Catalogue, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding seasons file.", "path", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
	}

	var config fileConfig
	diags = gohcl.DecodeBody(file.Body, evalContext, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filename, diags.Error())
	}

	catalogue, err := build(config)
	if err != nil {
		return nil, fmt.Errorf("invalid seasons file %s: %w", filename, err)
	}

	logger.Debug("Successfully decoded seasons file.", "path", filename, "seasons_found", len(catalogue.seasons))
	return catalogue, nil
}

func build(config fileConfig) (*Catalogue, error) {
	if len(config.Seasons) == 0 {
		return nil, errors.New("no seasons declared")
	}

	c := &Catalogue{index: make(map[string]int)}
	for _, sc := range config.Seasons {
		s, err := buildSeason(sc)
		if err != nil {
			return nil, fmt.Errorf("season %q: %w", sc.Name, err)
		}

		for _, key := range append([]string{s.Name}, s.Aliases...) {
			if _, dup := c.index[key]; dup {
				return nil, fmt.Errorf("season %q: name %q already in use", s.Name, key)
			}
			c.index[key] = len(c.seasons)
		}
		c.seasons = append(c.seasons, s)
	}
	return c, nil
}

func buildSeason(sc *seasonConfig) (Season, error) {
	curve, err := engine.ParseCurve(sc.Fall.Curve)
	if err != nil {
		return Season{}, err
	}

	s := Season{
		Name:    sc.Name,
		Title:   sc.Title,
		Aliases: sc.Aliases,
		rules: engine.Ruleset{
			Name:     sc.Name,
			Width:    sc.Width,
			Height:   sc.Height,
			CellSize: sc.CellSize,
			Scoring: engine.Scoring{
				SameColor:      sc.Scoring.SameColor,
				DifferentColor: sc.Scoring.DifferentColor,
				AllClearBonus:  sc.Scoring.AllClearBonus,
			},
			Ceiling: engine.CeilingRule{
				Step: millis(sc.Ceiling.Step),
				Cap:  sc.Ceiling.Cap,
			},
			Fall: engine.FallRule{
				Curve:  curve,
				Base:   millis(sc.Fall.Base),
				Period: millis(sc.Fall.Period),
				Step:   millis(sc.Fall.Step),
				Min:    millis(sc.Fall.Min),
			},
		},
	}
	if s.Title == "" {
		s.Title = s.Name
	}

	if len(sc.Palettes) == 0 {
		return Season{}, errors.New("at least one palette block is required")
	}
	for _, pc := range sc.Palettes {
		if slices.Contains(s.PaletteNames(), pc.Name) {
			return Season{}, fmt.Errorf("palette %q declared twice", pc.Name)
		}
		s.Palettes = append(s.Palettes, Palette{Name: pc.Name, Colors: pc.Colors})

		rules, _ := s.Ruleset(pc.Name)
		if err := rules.Validate(); err != nil {
			return Season{}, fmt.Errorf("palette %q: %w", pc.Name, err)
		}
	}
	return s, nil
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
