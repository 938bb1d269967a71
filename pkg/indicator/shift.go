package indicator

import "github.com/c9s/bbands/pkg/types"

// Shift moves the series forward in time by offset steps (backward when negative).
// The result has the same length; vacated positions are undefined and
// elements pushed past either end are dropped.
func Shift(s types.Series, offset int) types.Series {
	n := len(s)
	out := types.NewNullSeries(n)

	switch {
	case offset == 0:
		copy(out, s)
	case offset >= n || offset <= -n:
		// everything shifted out
	case offset > 0:
		copy(out[offset:], s[:n-offset])
	default:
		copy(out[:n+offset], s[-offset:])
	}

	return out
}
