package csvsource

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/c9s/bbands/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time unix milli format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")
)

// CSVBarDecoder is an extension point for CSVBarReader to support custom file formats.
type CSVBarDecoder func(record []string) (types.Bar, error)

// BinanceCSVBarDecoder decodes a CSV record from Binance or Bybit into a Bar.
// Layout: open time in unix milliseconds, open, high, low, close[, volume[, close time, quote volume...]]
func BinanceCSVBarDecoder(record []string) (types.Bar, error) {
	var empty types.Bar

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	b, err := decodeOHLCV(record[1:])
	if err != nil {
		return empty, err
	}

	b.Time = time.UnixMilli(msec).UTC()

	// binance kline exports carry the quote asset volume at column 7
	if len(record) > 7 {
		if turnover, err := parseDecimal(record[7]); err == nil {
			b.Turnover = turnover
		}
	}

	return b, nil
}

// MetaTraderCSVBarDecoder decodes a CSV record from MetaTrader into a Bar.
// Layout: date;time;open;high;low;close[;volume]
func MetaTraderCSVBarDecoder(record []string) (types.Bar, error) {
	var empty types.Bar

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	tStr := fmt.Sprintf("%s %s", record[0], record[1])
	t, err := time.Parse(MetaTraderTimeFormat, tStr)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	b, err := decodeOHLCV(record[2:])
	if err != nil {
		return empty, err
	}

	b.Time = t
	return b, nil
}

// decodeOHLCV decodes open, high, low, close and the optional volume column.
func decodeOHLCV(cols []string) (b types.Bar, err error) {
	prices := make([]float64, 4)
	for i := range prices {
		prices[i], err = parseDecimal(cols[i])
		if err != nil {
			return b, ErrInvalidPriceFormat
		}
	}

	b.Open, b.High, b.Low, b.Close = prices[0], prices[1], prices[2], prices[3]

	if len(cols) > 4 {
		b.Volume, err = parseDecimal(cols[4])
		if err != nil {
			return b, ErrInvalidVolumeFormat
		}
	}

	return b, nil
}

func parseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	f, _ := d.Float64()
	return f, nil
}
