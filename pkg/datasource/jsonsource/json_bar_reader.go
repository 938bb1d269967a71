package jsonsource

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"

	"github.com/c9s/bbands/pkg/types"
)

// ErrInvalidBarFormat is returned when an element of the bar array can not be decoded.
var ErrInvalidBarFormat = errors.New("invalid bar format")

// ParseBars decodes an OHLCV array:
//
//	[{"timestamp": 1609459200000, "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 10, "turnover": 15}, ...]
//
// Numbers may also be encoded as strings. The bars are sorted by timestamp.
func ParseBars(data []byte) ([]types.Bar, error) {
	var parser fastjson.Parser
	v, err := parser.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidBarFormat, err.Error())
	}

	arr, err := v.Array()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidBarFormat, "top level value must be an array")
	}

	bars := make([]types.Bar, 0, len(arr))
	for i, o := range arr {
		b, err := parseBar(o)
		if err != nil {
			return nil, errors.Wrapf(err, "bar #%d", i)
		}
		bars = append(bars, b)
	}

	sort.Stable(types.BarSlice(bars))
	return bars, nil
}

// ReadBars reads and parses all bars from r.
func ReadBars(r io.Reader) ([]types.Bar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return ParseBars(data)
}

// ReadBarsFromFile reads the OHLCV array stored in path.
func ReadBarsFromFile(path string) ([]types.Bar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bars, err := ParseBars(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}

	return bars, nil
}

func parseBar(o *fastjson.Value) (b types.Bar, err error) {
	if o.Type() != fastjson.TypeObject {
		return b, errors.Wrap(ErrInvalidBarFormat, "bar must be an object")
	}

	ts, err := parseNumber(o, "timestamp")
	if err != nil {
		return b, err
	}
	b.Time = time.UnixMilli(int64(ts)).UTC()

	if b.Open, err = parseNumber(o, "open"); err != nil {
		return b, err
	}
	if b.High, err = parseNumber(o, "high"); err != nil {
		return b, err
	}
	if b.Low, err = parseNumber(o, "low"); err != nil {
		return b, err
	}
	if b.Close, err = parseNumber(o, "close"); err != nil {
		return b, err
	}

	// volume and turnover are optional
	if o.Exists("volume") {
		if b.Volume, err = parseNumber(o, "volume"); err != nil {
			return b, err
		}
	}
	if o.Exists("turnover") {
		if b.Turnover, err = parseNumber(o, "turnover"); err != nil {
			return b, err
		}
	}

	return b, nil
}

func parseNumber(o *fastjson.Value, key string) (float64, error) {
	v := o.Get(key)
	if v == nil {
		return 0, errors.Wrapf(ErrInvalidBarFormat, "missing field %q", key)
	}

	switch v.Type() {
	case fastjson.TypeNumber:
		return v.Float64()

	case fastjson.TypeString:
		d, err := decimal.NewFromString(string(v.GetStringBytes()))
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidBarFormat, "field %q: %s", key, err.Error())
		}
		f, _ := d.Float64()
		return f, nil
	}

	return 0, errors.Wrapf(ErrInvalidBarFormat, "field %q must be a number, got %s", key, v.Type())
}
