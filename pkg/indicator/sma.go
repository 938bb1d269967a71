package indicator

import (
	"github.com/c9s/bbands/pkg/types"
)

// SMA calculates the trailing simple moving average of values.
// Element i is undefined until a full window of length values is available.
func SMA(values []float64, length int) types.Series {
	out := types.NewNullSeries(len(values))
	if length <= 0 || length > len(values) {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= length {
			sum -= values[i-length]
		}

		if i >= length-1 {
			out[i] = types.Some(sum / float64(length))
		}
	}

	return out
}
