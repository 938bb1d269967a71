package style

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewSeriesTableStyle returns the rounded box style used to print band series.
// Without color the rows stay plain so the output can be piped into files.
func NewSeriesTableStyle(withColor bool) *table.Style {
	style := table.Style{
		Name:    "BandsRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsDefault,
	}
	style.Format.Header = text.FormatUpper

	if withColor {
		style.Color = table.ColorOptionsYellowWhiteOnBlack
		style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
		style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	}

	return &style
}

// UndefinedCell is printed in place of an undefined value.
const UndefinedCell = "-"
