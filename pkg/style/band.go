package style

import (
	"regexp"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDashed LineStyle = "dashed"
)

const (
	DefaultBasisColor = "#FF6D00"
	DefaultBandColor  = "#2962FF"
)

var ErrInvalidStyle = errors.New("invalid style")

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// LineOptions is how a chart draws one band line.
type LineOptions struct {
	Visible   bool      `json:"visibility" yaml:"visibility"`
	Color     string    `json:"color" yaml:"color"`
	LineWidth int       `json:"lineWidth" yaml:"lineWidth"`
	LineStyle LineStyle `json:"lineStyle" yaml:"lineStyle"`
}

// BackgroundOptions is the fill between the upper and lower bands.
type BackgroundOptions struct {
	Visible bool    `json:"visibility" yaml:"visibility"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// BandsStyle is a plain presentation record handed to the chart renderer.
// The band calculation never reads it.
type BandsStyle struct {
	Basis      LineOptions       `json:"basis" yaml:"basis"`
	Upper      LineOptions       `json:"upper" yaml:"upper"`
	Lower      LineOptions       `json:"lower" yaml:"lower"`
	Background BackgroundOptions `json:"background" yaml:"background"`
}

func DefaultBandsStyle() BandsStyle {
	return BandsStyle{
		Basis: LineOptions{Visible: true, Color: DefaultBasisColor, LineWidth: 2, LineStyle: LineStyleSolid},
		Upper: LineOptions{Visible: true, Color: DefaultBandColor, LineWidth: 2, LineStyle: LineStyleSolid},
		Lower: LineOptions{Visible: true, Color: DefaultBandColor, LineWidth: 2, LineStyle: LineStyleSolid},
		Background: BackgroundOptions{
			Visible: true,
			Opacity: 0.1,
		},
	}
}

func (o LineOptions) Validate(name string) (err error) {
	if !hexColorPattern.MatchString(o.Color) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidStyle, "%s: color %q is not #RRGGBB", name, o.Color))
	}

	if o.LineWidth < 1 || o.LineWidth > 10 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidStyle, "%s: line width %d out of range 1..10", name, o.LineWidth))
	}

	switch o.LineStyle {
	case LineStyleSolid, LineStyleDashed:
	default:
		err = multierr.Append(err, errors.Wrapf(ErrInvalidStyle, "%s: unknown line style %q", name, o.LineStyle))
	}

	return err
}

func (s BandsStyle) Validate() error {
	err := multierr.Combine(
		s.Basis.Validate("basis"),
		s.Upper.Validate("upper"),
		s.Lower.Validate("lower"),
	)

	if s.Background.Opacity < 0 || s.Background.Opacity > 1 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidStyle, "background: opacity %v out of range 0..1", s.Background.Opacity))
	}

	return err
}
