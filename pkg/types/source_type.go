package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// SourceType selects the scalar of a bar that feeds an indicator.
type SourceType string

const (
	SourceClose SourceType = "close"
	SourceOpen  SourceType = "open"
	SourceHigh  SourceType = "high"
	SourceLow   SourceType = "low"
	SourceHL2   SourceType = "hl2"
	SourceHLC3  SourceType = "hlc3"
	SourceOHLC4 SourceType = "ohlc4"
)

var ErrInvalidSourceType = errors.New("invalid source type")

// ParseSourceType parses a source name case-insensitively. An empty name means close.
func ParseSourceType(s string) (SourceType, error) {
	p := SourceType(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return SourceClose, nil
	case SourceClose, SourceOpen, SourceHigh, SourceLow, SourceHL2, SourceHLC3, SourceOHLC4:
		return p, nil
	}
	return p, errors.Wrapf(ErrInvalidSourceType, "%q", s)
}

func (p *SourceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	t, err := ParseSourceType(s)
	if err != nil {
		return err
	}

	*p = t
	return nil
}

func (p *SourceType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	t, err := ParseSourceType(s)
	if err != nil {
		return err
	}

	*p = t
	return nil
}

// Value returns the scalar of the bar. Names match case-insensitively,
// unknown source types fall back to close.
func (p SourceType) Value(b Bar) float64 {
	switch SourceType(strings.ToLower(strings.TrimSpace(string(p)))) {
	case SourceOpen:
		return b.Open
	case SourceHigh:
		return b.High
	case SourceLow:
		return b.Low
	case SourceHL2:
		return (b.High + b.Low) / 2.0
	case SourceHLC3:
		return (b.High + b.Low + b.Close) / 3.0
	case SourceOHLC4:
		return (b.Open + b.High + b.Low + b.Close) / 4.0
	}
	return b.Close
}
