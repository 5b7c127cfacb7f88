package table

import "github.com/salmonumbrella/chitbook/internal/layout"

// HeaderRow renders the column headers of cols.
func HeaderRow[R any](cols []Column[R]) *layout.Row {
	cells := make([]layout.Cell, len(cols))
	for i, col := range cols {
		style := headerStyle.Merge(col.Style)
		if i == len(cols)-1 {
			style.Border = style.Border.Without(layout.BorderRight)
		}
		cells[i] = layout.Cell{Content: col.Header, Style: style}
	}
	return &layout.Row{Cells: cells, Tag: TagHeader}
}

// DataRow renders record row at logical position index. last marks the row
// that closes the table.
func DataRow[R any](cols []Column[R], row R, index int, last bool) *layout.Row {
	base := cellStyle
	if index%2 == 1 {
		base.Background = stripeBackground
	}

	cells := make([]layout.Cell, len(cols))
	for i, col := range cols {
		style := base.Merge(col.Style)
		if col.StyleOverride != nil {
			style = style.Merge(col.StyleOverride(row))
		}
		if i == len(cols)-1 {
			style.Border = style.Border.Without(layout.BorderRight)
		}
		if last {
			style.RoundBottom = true
		}
		cells[i] = layout.Cell{Content: col.content(row), Style: style}
	}
	return &layout.Row{Cells: cells, Tag: TagRow, Index: index}
}

func placeholderRow() *layout.Row {
	style := cellStyle
	style.Align = layout.AlignCenter
	style.Color = "#7f8c8d"
	style.Border = layout.BorderNone
	style.RoundBottom = true
	return &layout.Row{Cells: []layout.Cell{{Content: EmptyText, Style: style}}, Tag: TagEmpty}
}

func titleText(title string) *layout.Text {
	return &layout.Text{Content: title, Style: titleStyle, Tag: TagTitle}
}
