package csvsource

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBarsFromCSV(t *testing.T) {
	bars, err := ReadBarsFromCSV("./testdata/BTCUSDT-1h-sample.csv")
	require.NoError(t, err)
	assert.Len(t, bars, 48)
	assert.Equal(t, int64(1609459200), bars[0].Time.Unix(), "Time")
	assert.Equal(t, 28975.0, bars[0].Open, "Open")
	assert.Equal(t, 29060.5, bars[0].High, "High")
	assert.Equal(t, 28919.75, bars[0].Low, "Low")
	assert.Equal(t, 29000.0, bars[0].Close, "Close")
	assert.Equal(t, 1500.0, bars[0].Volume, "Volume")

	for i := 1; i < len(bars); i++ {
		assert.Equal(t, time.Hour, bars[i].Time.Sub(bars[i-1].Time))
	}
}

func TestReadBarsFromCSV_SortsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("1609466400000,3,3,3,3\n1609462800000,2,2,2,2\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("1609470000000,4,4,4,4\n1609459200000,1,1,1,1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	bars, err := ReadBarsFromCSV(dir)
	require.NoError(t, err)
	require.Len(t, bars, 4)
	for i, b := range bars {
		assert.Equal(t, float64(i+1), b.Close)
	}
}

func TestReadBarsFromCSV_Errors(t *testing.T) {
	_, err := ReadBarsFromCSV("./testdata/missing.csv")
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("1609459200000,x,1,1,1\n"), 0644))
	_, err = ReadBarsFromCSV(dir)
	assert.ErrorIs(t, err, ErrInvalidPriceFormat)
}

func TestReadBarsFromCSV_MixedFormats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BTCUSDT.csv"), []byte("1609459200000,1,1,1,1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EURUSD.mt.csv"), []byte("01/01/2021;01:00;2;2;2;2;5\n01/01/2021;02:00;3;3;3;3;7\n"), 0644))

	bars, err := ReadBarsFromCSV(dir)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	for i, b := range bars {
		assert.Equal(t, float64(i+1), b.Close)
	}
	assert.Equal(t, 7.0, bars[2].Volume)
}

func TestReaderMakerForFile(t *testing.T) {
	r := ReaderMakerForFile("data/EURUSD.MT.CSV")(csv.NewReader(strings.NewReader("01/01/2021;01:00;2;2;2;2\n")))
	bars, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 2.0, bars[0].Close)

	r = ReaderMakerForFile("data/BTCUSDT.csv")(csv.NewReader(strings.NewReader("1609459200000,1,1,1,4\n")))
	bars, err = r.ReadAll()
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 4.0, bars[0].Close)
}
