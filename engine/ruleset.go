package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfiguration is the sentinel every ruleset validation error wraps.
var ErrConfiguration = errors.New("invalid ruleset")

// ConfigError describes the offending ruleset field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Curve selects how the fall interval shrinks over time.
type Curve int

const (
	// CurveHalving halves the base interval every period.
	CurveHalving Curve = iota
	// CurveLinear subtracts Step every period.
	CurveLinear
)

func (c Curve) String() string {
	switch c {
	case CurveHalving:
		return "halving"
	case CurveLinear:
		return "linear"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// ParseCurve maps "halving" and "linear" to their Curve.
func ParseCurve(s string) (Curve, error) {
	switch s {
	case "halving":
		return CurveHalving, nil
	case "linear":
		return CurveLinear, nil
	}
	return 0, &ConfigError{Field: "fall.curve", Reason: fmt.Sprintf("unknown curve %q", s)}
}

// Scoring weights the cells removed by a clear. AllClearBonus is added when a
// clear leaves the board empty; zero disables it.
type Scoring struct {
	SameColor      int
	DifferentColor int
	AllClearBonus  int
}

// CeilingRule lowers the ceiling one row every Step, up to Cap rows.
type CeilingRule struct {
	Step time.Duration
	Cap  int
}

// FallRule drives the gravity interval of the active block. Step is only
// used by CurveLinear.
type FallRule struct {
	Curve  Curve
	Base   time.Duration
	Period time.Duration
	Step   time.Duration
	Min    time.Duration
}

// Ruleset is the immutable configuration of one game ("season"). Palette
// holds the display colours; colour id n maps to Palette[n-1].
type Ruleset struct {
	Name     string
	Width    int
	Height   int
	CellSize int
	Palette  []string
	Scoring  Scoring
	Ceiling  CeilingRule
	Fall     FallRule
}

// Colors is the number of colour ids pieces can take.
func (r Ruleset) Colors() int {
	return len(r.Palette)
}

// Validate rejects rulesets no game can be built from.
func (r Ruleset) Validate() error {
	switch {
	case r.Width <= 0:
		return &ConfigError{Field: "width", Reason: "must be positive"}
	case r.Height <= 0:
		return &ConfigError{Field: "height", Reason: "must be positive"}
	case len(r.Palette) == 0:
		return &ConfigError{Field: "palette", Reason: "must not be empty"}
	case len(r.Palette) > 255:
		return &ConfigError{Field: "palette", Reason: "must hold at most 255 colours"}
	case r.Scoring.SameColor < 0 || r.Scoring.DifferentColor < 0 || r.Scoring.AllClearBonus < 0:
		return &ConfigError{Field: "scoring", Reason: "weights must not be negative"}
	case r.Ceiling.Step <= 0:
		return &ConfigError{Field: "ceiling.step", Reason: "must be positive"}
	case r.Ceiling.Cap < 0 || r.Ceiling.Cap >= r.Height:
		return &ConfigError{Field: "ceiling.cap", Reason: fmt.Sprintf("must lie in [0,%d)", r.Height)}
	case r.Fall.Curve != CurveHalving && r.Fall.Curve != CurveLinear:
		return &ConfigError{Field: "fall.curve", Reason: "unknown curve"}
	case r.Fall.Base <= 0:
		return &ConfigError{Field: "fall.base", Reason: "must be positive"}
	case r.Fall.Period <= 0:
		return &ConfigError{Field: "fall.period", Reason: "must be positive"}
	case r.Fall.Min <= 0 || r.Fall.Min > r.Fall.Base:
		return &ConfigError{Field: "fall.min", Reason: "must lie in (0, base]"}
	case r.Fall.Curve == CurveLinear && r.Fall.Step <= 0:
		return &ConfigError{Field: "fall.step", Reason: "must be positive for a linear curve"}
	}
	return nil
}

// NormalPalette and SupportPalette are the two palettes the game ships with.
var (
	NormalPalette = []string{
		"#9D8478", "#7E8B78", "#9182A7", "#738FA8",
		"#A0916C", "#B0C18B", "#D7B9C4", "#B8C5C8",
	}
	SupportPalette = []string{
		"#e74c3c", "#2ecc71", "#3498db", "#f1c40f",
		"#9b59b6", "#e67e22", "#1abc9c", "#ecf0f1",
	}
)

// Classic is season 0: a 13x18 field whose ceiling drops a row a minute (at
// most nine) while the fall interval halves every five minutes.
func Classic() Ruleset {
	return Ruleset{
		Name:     "classic",
		Width:    13,
		Height:   18,
		CellSize: 30,
		Palette:  append([]string(nil), NormalPalette...),
		Scoring:  Scoring{SameColor: 3, DifferentColor: 1},
		Ceiling:  CeilingRule{Step: time.Minute, Cap: 9},
		Fall: FallRule{
			Curve:  CurveHalving,
			Base:   700 * time.Millisecond,
			Period: 5 * time.Minute,
			Min:    50 * time.Millisecond,
		},
	}
}
