package cmdutil

import (
	"github.com/spf13/pflag"

	"github.com/c9s/bbands/pkg/indicator"
	"github.com/c9s/bbands/pkg/types"
)

// BOLLFlags defines the flags for the bollinger inputs.
// pflag rejects non-integer values for length and offset.
func BOLLFlags(flags *pflag.FlagSet) {
	flags.Int("length", 20, "window length of the moving average and the deviation")
	flags.Float64("stddev", 2.0, "standard deviation multiplier")
	flags.Int("offset", 0, "shift the bands forward (positive) or backward (negative) by bars")
	flags.String("source", string(types.SourceClose), "price source: close, open, high, low, hl2, hlc3, ohlc4")
}

// ApplyBOLLFlags overrides params with the flags that are explicitly set.
func ApplyBOLLFlags(flags *pflag.FlagSet, params indicator.BOLLParams) (indicator.BOLLParams, error) {
	if flags.Changed("length") {
		length, err := flags.GetInt("length")
		if err != nil {
			return params, err
		}
		params.Length = length
	}

	if flags.Changed("stddev") {
		k, err := flags.GetFloat64("stddev")
		if err != nil {
			return params, err
		}
		params.K = k
	}

	if flags.Changed("offset") {
		offset, err := flags.GetInt("offset")
		if err != nil {
			return params, err
		}
		params.Offset = offset
	}

	if flags.Changed("source") {
		s, err := flags.GetString("source")
		if err != nil {
			return params, err
		}

		source, err := types.ParseSourceType(s)
		if err != nil {
			return params, err
		}
		params.Source = source
	}

	return params, params.Validate()
}
