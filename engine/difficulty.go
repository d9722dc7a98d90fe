package engine

import "time"

// CeilingRow is the topmost playable row after elapsed play time.
func CeilingRow(rules Ruleset, elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return min(int(elapsed/rules.Ceiling.Step), rules.Ceiling.Cap)
}

// FallInterval is the gravity period of the active block after elapsed play
// time, never below the ruleset minimum.
func FallInterval(rules Ruleset, elapsed time.Duration) time.Duration {
	fall := rules.Fall
	steps := int64(0)
	if elapsed > 0 {
		steps = int64(elapsed / fall.Period)
	}

	interval := fall.Base
	switch fall.Curve {
	case CurveHalving:
		// Past 62 halvings any base has reached zero.
		if steps > 62 {
			interval = 0
		} else {
			interval = fall.Base >> steps
		}
	case CurveLinear:
		interval = fall.Base - time.Duration(steps)*fall.Step
	}
	return max(interval, fall.Min)
}
