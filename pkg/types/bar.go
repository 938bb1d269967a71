package types

import (
	"fmt"
	"time"
)

// Bar is one time-ordered price record.
type Bar struct {
	Time     time.Time `json:"time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
	Turnover float64   `json:"turnover"`
}

func (b Bar) String() string {
	return fmt.Sprintf("Bar %s O:%f H:%f L:%f C:%f V:%f",
		b.Time.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close, b.Volume)
}

// BarSlice is a list of bars sorted by time.
type BarSlice []Bar

func (s BarSlice) Len() int           { return len(s) }
func (s BarSlice) Less(i, j int) bool { return s[i].Time.Before(s[j].Time) }
func (s BarSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// Values maps each bar to the scalar selected by the source type.
func (s BarSlice) Values(source SourceType) []float64 {
	values := make([]float64, len(s))
	for i, b := range s {
		values[i] = source.Value(b)
	}
	return values
}

// Closes is a shortcut of Values(SourceClose).
func (s BarSlice) Closes() []float64 {
	return s.Values(SourceClose)
}
