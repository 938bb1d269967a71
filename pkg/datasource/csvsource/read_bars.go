package csvsource

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/bbands/pkg/types"
)

// MetaTraderFileSuffix marks a MetaTrader export, everything else ending in .csv is read as a Binance export.
const MetaTraderFileSuffix = ".mt.csv"

// ReadBarsFromCSV reads all the .csv files in a given directory or a single file into a slice of bars
// sorted by time. The reader is picked per file: MetaTrader for .mt.csv files, Binance otherwise.
func ReadBarsFromCSV(path string) ([]types.Bar, error) {
	return readBars(path, ReaderMakerForFile)
}

// ReadBarsFromCSVWithDecoder permits using a custom CSVBarReader for every file.
func ReadBarsFromCSVWithDecoder(path string, maker MakeCSVBarReader) ([]types.Bar, error) {
	return readBars(path, func(string) MakeCSVBarReader { return maker })
}

// ReaderMakerForFile returns the reader factory matching the file name.
func ReaderMakerForFile(file string) MakeCSVBarReader {
	if strings.HasSuffix(strings.ToLower(file), MetaTraderFileSuffix) {
		return NewMetaTraderCSVBarReader
	}
	return NewBinanceCSVBarReader
}

func readBars(path string, makerFor func(file string) MakeCSVBarReader) ([]types.Bar, error) {
	var bars []types.Bar

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".csv" {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		//nolint:errcheck // Read ops only so safe to ignore err return
		defer file.Close()
		reader := makerFor(path)(csv.NewReader(file))
		newBars, err := reader.ReadAll()
		if err != nil {
			return errors.Wrapf(err, "unable to read %s", path)
		}
		bars = append(bars, newBars...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Stable(types.BarSlice(bars))
	return bars, nil
}
