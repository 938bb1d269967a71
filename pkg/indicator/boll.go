package indicator

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/bbands/pkg/types"
)

/*
boll implements the bollinger indicator:

The Basics of Bollinger Bands
- https://www.investopedia.com/articles/technical/102201.asp

Bollinger Bands
- https://www.investopedia.com/terms/b/bollingerbands.asp

the data flow:

	bars -> source values
	     -> SMA                       (basis)
	     -> population stdDev          (stdDev, never shifted)
	     -> basis +/- K * stdDev       (upper, lower)
	     -> shift basis, upper, lower by Offset
*/

const MATypeSMA = "SMA"

var ErrInvalidParameter = errors.New("invalid parameter")

// BOLLParams are the inputs of the bollinger bands.
type BOLLParams struct {
	// Length is the window size of the moving average and the deviation
	Length int `json:"length" yaml:"length"`

	// K is the deviation multiplier, generally it's 2
	K float64 `json:"stdDev" yaml:"stdDev"`

	// Offset shifts basis, upper and lower forward (positive) or backward (negative) in time
	Offset int `json:"offset" yaml:"offset"`

	Source types.SourceType `json:"source,omitempty" yaml:"source,omitempty"`

	// MAType only supports SMA
	MAType string `json:"maType,omitempty" yaml:"maType,omitempty"`
}

// Validate reports every invalid field, each matching ErrInvalidParameter.
func (p BOLLParams) Validate() (err error) {
	if p.Length < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidParameter, "length must be a positive integer, got %d", p.Length))
	}

	if math.IsNaN(p.K) || math.IsInf(p.K, 0) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidParameter, "stdDev multiplier must be finite, got %v", p.K))
	}

	if p.MAType != "" && !strings.EqualFold(p.MAType, MATypeSMA) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidParameter, "unsupported maType %q", p.MAType))
	}

	if _, sourceErr := types.ParseSourceType(string(p.Source)); sourceErr != nil {
		err = multierr.Append(err, errors.Wrap(ErrInvalidParameter, sourceErr.Error()))
	}

	return err
}

// BOLLResult holds the index-aligned output series.
// StdDev is aligned to the unshifted basis.
type BOLLResult struct {
	Basis  types.Series `json:"basis"`
	Upper  types.Series `json:"upper"`
	Lower  types.Series `json:"lower"`
	StdDev types.Series `json:"stdDev"`
}

func (r *BOLLResult) Len() int {
	return len(r.Basis)
}

// ComputeBOLL calculates the bollinger bands of the bars.
// The bars are expected to be sorted by time already.
func ComputeBOLL(bars []types.Bar, params BOLLParams) (*BOLLResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return computeBOLL(types.BarSlice(bars).Values(params.Source), params), nil
}

// ComputeBOLLValues calculates the bollinger bands of raw source values.
func ComputeBOLLValues(values []float64, params BOLLParams) (*BOLLResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return computeBOLL(values, params), nil
}

func computeBOLL(values []float64, params BOLLParams) *BOLLResult {
	basis := SMA(values, params.Length)
	stdDev := PopStdDev(values, params.Length, basis)
	upper, lower := Envelope(basis, stdDev, params.K)

	return &BOLLResult{
		Basis:  Shift(basis, params.Offset),
		Upper:  Shift(upper, params.Offset),
		Lower:  Shift(lower, params.Offset),
		StdDev: stdDev,
	}
}
