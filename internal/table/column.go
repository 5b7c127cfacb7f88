// Package table renders record sets as paginated tables on top of the
// layout engine.
//
// A table is a column schema plus rows. Paginated keeps the header glued to
// the first row and repeats it at the top of every page the remaining rows
// continue onto.
package table

import (
	"fmt"

	"github.com/salmonumbrella/chitbook/internal/fieldpath"
	"github.com/salmonumbrella/chitbook/internal/layout"
)

// Row tags placed on layout rows.
const (
	TagTitle  = "title"
	TagHeader = "header"
	TagRow    = "row"
	TagEmpty  = "empty"
)

// EmptyText is the content of the placeholder row of a table without rows.
const EmptyText = "No records found"

// Column describes one table column over records of type R.
type Column[R any] struct {
	Header string
	// Accessor is a dotted path into the record; it is used only when Render
	// is nil.
	Accessor string
	Render   func(R) string
	// Style applies to every cell of the column, header included.
	Style layout.Style
	// StyleOverride returns a partial style layered over Style for one row.
	StyleOverride func(R) layout.Style
}

// Table is the input of Paginated.
type Table[R any] struct {
	Title   string
	Columns []Column[R]
	Rows    []R
}

var (
	headerStyle = layout.Style{
		FontSize:    8,
		Weight:      layout.WeightBold,
		Align:       layout.AlignCenter,
		Color:       "#ffffff",
		Background:  "#1e3a5f",
		Border:      layout.BorderRight | layout.BorderBottom,
		BorderColor: "#dcdcdc",
	}
	cellStyle = layout.Style{
		FontSize:    8,
		Weight:      layout.WeightNormal,
		Color:       "#2c3e50",
		Background:  "#ffffff",
		Border:      layout.BorderRight | layout.BorderBottom,
		BorderColor: "#dcdcdc",
	}
	titleStyle = layout.Style{
		FontSize: 11,
		Weight:   layout.WeightBold,
		Color:    "#1e3a5f",
	}

	stripeBackground layout.Color = "#f1f5f9"
)

// content resolves the text of one cell: Render, else Accessor, else empty.
func (c Column[R]) content(row R) string {
	if c.Render != nil {
		return c.Render(row)
	}
	if c.Accessor == "" {
		return ""
	}
	v, ok := fieldpath.Lookup(row, c.Accessor)
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
