package csvsource

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/c9s/bbands/pkg/types"
)

// BarReader is an interface for reading bars.
type BarReader interface {
	Read() (types.Bar, error)
	ReadAll() ([]types.Bar, error)
}

var _ BarReader = (*CSVBarReader)(nil)

// CSVBarReader is a BarReader that reads from a CSV file.
type CSVBarReader struct {
	csv     *csv.Reader
	decoder CSVBarDecoder
}

// MakeCSVBarReader is a factory method type that creates a new CSVBarReader.
type MakeCSVBarReader func(csv *csv.Reader) *CSVBarReader

// NewCSVBarReader creates a new CSVBarReader with the default Binance decoder.
func NewCSVBarReader(csv *csv.Reader) *CSVBarReader {
	return NewCSVBarReaderWithDecoder(csv, BinanceCSVBarDecoder)
}

// NewCSVBarReaderWithDecoder creates a new CSVBarReader with the given decoder.
func NewCSVBarReaderWithDecoder(csv *csv.Reader, decoder CSVBarDecoder) *CSVBarReader {
	csv.FieldsPerRecord = -1
	csv.TrimLeadingSpace = true
	return &CSVBarReader{
		csv:     csv,
		decoder: decoder,
	}
}

// NewBinanceCSVBarReader creates a new CSVBarReader for Binance CSV files.
func NewBinanceCSVBarReader(csv *csv.Reader) *CSVBarReader {
	return NewCSVBarReaderWithDecoder(csv, BinanceCSVBarDecoder)
}

// NewMetaTraderCSVBarReader creates a new CSVBarReader for MetaTrader CSV files.
func NewMetaTraderCSVBarReader(csv *csv.Reader) *CSVBarReader {
	csv.Comma = ';'
	return NewCSVBarReaderWithDecoder(csv, MetaTraderCSVBarDecoder)
}

// Read reads the next Bar from the underlying CSV data.
func (r *CSVBarReader) Read() (types.Bar, error) {
	rec, err := r.csv.Read()
	if err != nil {
		return types.Bar{}, err
	}

	return r.decoder(rec)
}

// ReadAll reads all the bars from the underlying CSV data.
// A header row is skipped.
func (r *CSVBarReader) ReadAll() ([]types.Bar, error) {
	var bars []types.Bar
	for line := 0; ; line++ {
		rec, err := r.csv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if line == 0 && isHeader(rec) {
			continue
		}

		b, err := r.decoder(rec)
		if err != nil {
			return nil, err
		}

		bars = append(bars, b)
	}

	return bars, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(rec[0])) {
	case "timestamp", "time", "open_time", "date":
		return true
	}
	return false
}
