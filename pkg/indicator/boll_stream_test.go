package indicator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bbands/pkg/types"
)

func assertSeriesInDelta(t *testing.T, want, got types.Series, delta float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Valid, got[i].Valid, "index %d", i)
		if want[i].Valid {
			assert.InDelta(t, want[i].Float64, got[i].Float64, delta, "index %d", i)
		}
	}
}

func TestBOLLStream_MatchesBatch(t *testing.T) {
	prices := testPrices(500)
	bars := buildBars(prices)

	for _, length := range []int{1, 2, 20, 100} {
		for _, offset := range []int{-3, 0, 4} {
			params := BOLLParams{Length: length, K: 2, Offset: offset}

			batch, err := ComputeBOLL(bars, params)
			require.NoError(t, err)

			incremental, err := ComputeBOLLIncremental(bars, params)
			require.NoError(t, err)

			assertSeriesInDelta(t, batch.Basis, incremental.Basis, 1e-6)
			assertSeriesInDelta(t, batch.Upper, incremental.Upper, 1e-6)
			assertSeriesInDelta(t, batch.Lower, incremental.Lower, 1e-6)
			assertSeriesInDelta(t, batch.StdDev, incremental.StdDev, 1e-6)
		}
	}
}

func TestBOLLStream_ConstantWindow(t *testing.T) {
	stream, err := NewBOLLStream(3, 2)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		stream.Push(42.1)
	}

	basis, upper, lower, dev := stream.Last()
	assert.True(t, dev.Valid)
	assert.InDelta(t, 0, dev.Float64, 1e-9)
	assert.InDelta(t, 42.1, basis.Float64, 1e-12)
	assert.InDelta(t, basis.Float64, upper.Float64, 1e-8)
	assert.InDelta(t, basis.Float64, lower.Float64, 1e-8)
}

func TestBOLLStream_OnUpdate(t *testing.T) {
	stream, err := NewBOLLStream(3, 2)
	require.NoError(t, err)

	var basisValues types.Series
	stream.OnUpdate(func(basis, upper, lower, stdDev types.NullFloat64) {
		basisValues = append(basisValues, basis)
		if basis.Valid {
			assert.InDelta(t, upper.Float64-basis.Float64, basis.Float64-lower.Float64, 1e-12)
		}
	})

	for _, v := range []float64{1, 2, 3, 4, 5} {
		stream.Push(v)
	}

	assert.Equal(t, 5, stream.Length())
	assert.Len(t, basisValues, 5)
	assert.False(t, basisValues[1].Valid)
	assert.InDelta(t, 2.0, basisValues[2].Float64, 1e-12)
	assert.InDelta(t, 4.0, basisValues[4].Float64, 1e-12)

	_, upper, lower, _ := stream.Last()
	assert.InDelta(t, 4+2*0.8165, upper.Float64, 1e-3)
	assert.InDelta(t, 4-2*0.8165, lower.Float64, 1e-3)
}

func TestBOLLStream_ResultIsCopy(t *testing.T) {
	stream, err := NewBOLLStream(2, 1)
	require.NoError(t, err)
	stream.Push(1)
	stream.Push(2)

	r := stream.Result(0)
	r.StdDev[1] = types.Null()
	r.Basis[1] = types.Null()

	again := stream.Result(0)
	assert.True(t, again.StdDev[1].Valid)
	assert.True(t, again.Basis[1].Valid)
}

func TestNewBOLLStream_InvalidParameter(t *testing.T) {
	_, err := NewBOLLStream(0, 2)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = ComputeBOLLIncremental(nil, BOLLParams{Length: -1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
