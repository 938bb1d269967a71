package indicator

import "github.com/c9s/bbands/pkg/types"

// Envelope derives the upper and lower bands from the basis and deviation series.
// k is not validated: zero collapses both bands onto basis, a negative k swaps them.
func Envelope(basis, dev types.Series, k float64) (upper, lower types.Series) {
	upper = types.NewNullSeries(len(basis))
	lower = types.NewNullSeries(len(basis))

	for i, mid := range basis {
		if i >= len(dev) || !mid.Valid || !dev[i].Valid {
			continue
		}

		band := k * dev[i].Float64
		upper[i] = types.Some(mid.Float64 + band)
		lower[i] = types.Some(mid.Float64 - band)
	}

	return upper, lower
}
