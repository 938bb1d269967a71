package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/bbands/pkg/types"
)

/*
python:

import pandas as pd
import pandas_ta as ta

data = pd.Series([0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9])
size = 5

result = ta.sma(data, size)
print(result)
*/
func Test_SMA(t *testing.T) {
	Delta := 0.001
	input := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	sma := SMA(input, 5)
	assert.Len(t, sma, len(input))
	assert.Equal(t, 26, sma.Defined())
	assert.InDelta(t, 7.0, sma[len(sma)-1].Float64, Delta)
	assert.InDelta(t, 6.0, sma[len(sma)-2].Float64, Delta)
	assert.InDelta(t, 5.0, sma[10].Float64, Delta)
	assert.InDelta(t, 2.0, sma[4].Float64, Delta)
}

func TestSMA_WarmUp(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	n := len(values)

	for length := 1; length <= n; length++ {
		sma := SMA(values, length)
		assert.Len(t, sma, n)

		for i := 0; i < length-1; i++ {
			assert.False(t, sma[i].Valid, "length %d index %d should be undefined", length, i)
		}
		assert.Equal(t, n-(length-1), sma.Defined(), "length %d", length)
	}
}

func TestSMA_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		length int
		want   types.Series
	}{
		{
			name:   "empty",
			values: nil,
			length: 3,
			want:   types.Series{},
		},
		{
			name:   "length greater than input",
			values: []float64{1, 2, 3, 4},
			length: 5,
			want:   types.Series{types.Null(), types.Null(), types.Null(), types.Null()},
		},
		{
			name:   "length one is the input",
			values: []float64{1, 2, 3},
			length: 1,
			want:   types.Series{types.Some(1), types.Some(2), types.Some(3)},
		},
		{
			name:   "non positive length",
			values: []float64{1, 2},
			length: 0,
			want:   types.Series{types.Null(), types.Null()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SMA(tt.values, tt.length))
		})
	}
}
