package types

// Series is an index-aligned sequence of optional values.
type Series []NullFloat64

// NewNullSeries returns a series of length n with every element undefined.
func NewNullSeries(n int) Series {
	if n < 0 {
		n = 0
	}
	return make(Series, n)
}

func (s Series) Len() int {
	return len(s)
}

// Defined returns the number of defined elements.
func (s Series) Defined() (c int) {
	for _, v := range s {
		if v.Valid {
			c++
		}
	}
	return c
}

// Last returns the last element, or an undefined value for an empty series.
func (s Series) Last() NullFloat64 {
	if len(s) == 0 {
		return Null()
	}
	return s[len(s)-1]
}

// Floats converts the series into a float slice, using fill for undefined elements.
func (s Series) Floats(fill float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Or(fill)
	}
	return out
}

// Copy returns a new series with the same elements.
func (s Series) Copy() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}
