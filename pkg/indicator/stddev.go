package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/c9s/bbands/pkg/types"
)

// PopStdDev calculates the population standard deviation (divided by length, not length-1)
// of the trailing window ending at each index. Positions where sma is undefined stay undefined.
func PopStdDev(values []float64, length int, sma types.Series) types.Series {
	out := types.NewNullSeries(len(values))
	if length <= 0 {
		return out
	}

	for i := range values {
		if i >= len(sma) || !sma[i].Valid || i < length-1 {
			continue
		}

		window := values[i-length+1 : i+1]
		variance := stat.PopVariance(window, nil)
		out[i] = types.Some(math.Sqrt(math.Max(variance, 0)))
	}

	return out
}
