package indicator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/c9s/bbands/pkg/types"
)

// BOLLStream is the incremental form of ComputeBOLL.
// It keeps a running mean and sum of squared deviations over a ring buffer, so every Push is O(1).
// Results agree with ComputeBOLLValues up to floating point summation error.
//
// the data flow:
//
//	Push(v) -> window mean, sum of squared deviations
//	        -> basis, stdDev -> upBand, downBand -> update callbacks
//
// A BOLLStream must not be pushed from multiple goroutines.
type BOLLStream struct {
	window int
	k      float64

	ring  []float64
	head  int
	count int

	// running mean and sum of squared deviations of the window
	mean, m2 float64

	basis, upper, lower, stdDev types.Series

	updateCallbacks []func(basis, upper, lower, stdDev types.NullFloat64)
}

func NewBOLLStream(window int, k float64) (*BOLLStream, error) {
	params := BOLLParams{Length: window, K: k}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &BOLLStream{
		window: window,
		k:      k,
		ring:   make([]float64, window),
	}, nil
}

func (s *BOLLStream) OnUpdate(cb func(basis, upper, lower, stdDev types.NullFloat64)) {
	s.updateCallbacks = append(s.updateCallbacks, cb)
}

func (s *BOLLStream) EmitUpdate(basis, upper, lower, stdDev types.NullFloat64) {
	for _, cb := range s.updateCallbacks {
		cb(basis, upper, lower, stdDev)
	}
}

// Push appends one source value and calculates the bands at its position.
func (s *BOLLStream) Push(v float64) {
	if s.count == s.window {
		// slide: replace the oldest value in one step
		old := s.ring[s.head]
		mean := s.mean + (v-old)/float64(s.window)
		s.m2 += (v - old) * (v - mean + old - s.mean)
		s.mean = mean
	} else {
		s.count++
		delta := v - s.mean
		s.mean += delta / float64(s.count)
		s.m2 += delta * (v - s.mean)
	}

	s.ring[s.head] = v
	s.head = (s.head + 1) % s.window

	// resync once per full turn of the ring to bound the drift of the running values
	if s.head == 0 && s.count == s.window {
		mean, variance := stat.PopMeanVariance(s.ring, nil)
		s.mean, s.m2 = mean, variance*float64(s.window)
	}

	if s.count < s.window {
		s.append(types.Null(), types.Null(), types.Null(), types.Null())
		return
	}

	dev := math.Sqrt(math.Max(s.m2/float64(s.window), 0))
	band := s.k * dev

	s.append(types.Some(s.mean), types.Some(s.mean+band), types.Some(s.mean-band), types.Some(dev))
}

// PushBar pushes the value selected by source.
func (s *BOLLStream) PushBar(b types.Bar, source types.SourceType) {
	s.Push(source.Value(b))
}

func (s *BOLLStream) append(basis, upper, lower, stdDev types.NullFloat64) {
	s.basis = append(s.basis, basis)
	s.upper = append(s.upper, upper)
	s.lower = append(s.lower, lower)
	s.stdDev = append(s.stdDev, stdDev)
	s.EmitUpdate(basis, upper, lower, stdDev)
}

// Length returns the number of values pushed so far.
func (s *BOLLStream) Length() int {
	return len(s.basis)
}

// Last returns the unshifted values at the most recent position.
func (s *BOLLStream) Last() (basis, upper, lower, stdDev types.NullFloat64) {
	return s.basis.Last(), s.upper.Last(), s.lower.Last(), s.stdDev.Last()
}

// Result copies the accumulated series, shifting basis, upper and lower by offset.
func (s *BOLLStream) Result(offset int) *BOLLResult {
	return &BOLLResult{
		Basis:  Shift(s.basis, offset),
		Upper:  Shift(s.upper, offset),
		Lower:  Shift(s.lower, offset),
		StdDev: s.stdDev.Copy(),
	}
}

// ComputeBOLLIncremental feeds the bars through a BOLLStream.
// It produces the same result shape as ComputeBOLL.
func ComputeBOLLIncremental(bars []types.Bar, params BOLLParams) (*BOLLResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	stream, err := NewBOLLStream(params.Length, params.K)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create bollinger stream")
	}

	for _, b := range bars {
		stream.PushBar(b, params.Source)
	}

	return stream.Result(params.Offset), nil
}
