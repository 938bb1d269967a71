package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/bbands/pkg/datasource/csvsource"
	"github.com/c9s/bbands/pkg/datasource/jsonsource"
	"github.com/c9s/bbands/pkg/types"
)

//go:generate mockgen -destination=mocks/mock_bar_loader.go -package=mocks . BarLoader

var log = logrus.WithField("component", "datasource")

var ErrUnsupportedFormat = errors.New("unsupported bar file format")

// BarLoader supplies bars sorted by time.
type BarLoader interface {
	LoadBars(ctx context.Context) ([]types.Bar, error)
}

// FileLoader loads bars from a local file or a directory of csv files.
// The file is read on every call.
type FileLoader struct {
	Path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (l *FileLoader) LoadBars(ctx context.Context) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return LoadBars(l.Path)
}

// LoadBars picks a reader by the file extension:
// .json is an OHLCV array, .csv is a Binance kline export and .mt.csv is a MetaTrader export.
// A directory may mix both csv formats.
func LoadBars(path string) ([]types.Bar, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load bars from %s", path)
	}

	var bars []types.Bar
	lower := strings.ToLower(path)
	switch {
	case info.IsDir(), filepath.Ext(lower) == ".csv":
		// the csv reader is picked per file, see csvsource.ReaderMakerForFile
		bars, err = csvsource.ReadBarsFromCSV(path)
	case filepath.Ext(lower) == ".json":
		bars, err = jsonsource.ReadBarsFromFile(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to load bars from %s", path)
	}

	log.Debugf("loaded %d bars from %s", len(bars), path)
	return bars, nil
}
