package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/bbands/pkg/types"
)

func TestShift(t *testing.T) {
	b := types.Series{types.Some(0), types.Some(1), types.Some(2), types.Some(3), types.Some(4)}
	u := types.Null()

	tests := []struct {
		name   string
		offset int
		want   types.Series
	}{
		{name: "zero", offset: 0, want: b},
		{name: "forward one", offset: 1, want: types.Series{u, b[0], b[1], b[2], b[3]}},
		{name: "backward one", offset: -1, want: types.Series{b[1], b[2], b[3], b[4], u}},
		{name: "forward three", offset: 3, want: types.Series{u, u, u, b[0], b[1]}},
		{name: "backward four", offset: -4, want: types.Series{b[4], u, u, u, u}},
		{name: "forward by length", offset: 5, want: types.Series{u, u, u, u, u}},
		{name: "backward past length", offset: -9, want: types.Series{u, u, u, u, u}},
		{name: "max int", offset: math.MaxInt, want: types.Series{u, u, u, u, u}},
		{name: "min int", offset: math.MinInt, want: types.Series{u, u, u, u, u}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shift(b, tt.offset)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(b))
		})
	}
}

func TestShift_ReturnsFreshSeries(t *testing.T) {
	b := types.Series{types.Some(1), types.Some(2)}
	got := Shift(b, 0)
	got[0] = types.Null()
	assert.True(t, b[0].Valid)

	assert.Equal(t, types.Series{}, Shift(types.Series{}, 3))
}

func TestShift_RoundTrip(t *testing.T) {
	n := 8
	s := make(types.Series, n)
	for i := range s {
		s[i] = types.Some(float64(i * 10))
	}

	for o := -n - 1; o <= n+1; o++ {
		got := Shift(Shift(s, o), -o)

		// forward then backward keeps the head, backward then forward keeps the tail
		lo := 0
		if o < 0 {
			lo = -o
		}
		hi := n
		if o > 0 {
			hi = n - o
		}

		for i := 0; i < n; i++ {
			if i >= lo && i < hi {
				assert.Equal(t, s[i], got[i], "offset %d index %d", o, i)
			} else {
				assert.False(t, got[i].Valid, "offset %d index %d", o, i)
			}
		}
	}
}
