package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmonumbrella/chitbook/internal/layout"
)

type payout struct {
	Month  time.Month `json:"month"`
	Winner *person    `json:"winner"`
	Status string     `json:"status"`
}

type person struct {
	FullName string `yaml:"full_name"`
}

func TestColumnContent(t *testing.T) {
	row := payout{Month: time.March, Winner: &person{FullName: "Lakshmi"}, Status: "paid"}

	tests := []struct {
		name string
		col  Column[payout]
		want string
	}{
		{"render wins over accessor", Column[payout]{Accessor: "status", Render: func(p payout) string { return "PAID" }}, "PAID"},
		{"accessor", Column[payout]{Accessor: "status"}, "paid"},
		{"nested accessor through pointer", Column[payout]{Accessor: "winner.full_name"}, "Lakshmi"},
		{"stringer", Column[payout]{Accessor: "month"}, "March"},
		{"missing field", Column[payout]{Accessor: "winner.phone"}, ""},
		{"neither", Column[payout]{Header: "Notes"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.content(row))
		})
	}

	assert.Equal(t, "", Column[payout]{Accessor: "winner.full_name"}.content(payout{}))
}

func TestHeaderRow(t *testing.T) {
	cols := []Column[payout]{
		{Header: "Month", Style: layout.Style{Width: 0.2}},
		{Header: "Winner"},
		{Header: "Status", Style: layout.Style{Align: layout.AlignRight}},
	}

	row := HeaderRow(cols)
	assert.Equal(t, TagHeader, row.Tag)
	require.Len(t, row.Cells, 3)

	assert.Equal(t, "Month", row.Cells[0].Content)
	assert.InDelta(t, 0.2, row.Cells[0].Style.Width, 1e-9)
	assert.Equal(t, layout.WeightBold, row.Cells[1].Style.Weight)
	assert.Equal(t, layout.AlignCenter, row.Cells[1].Style.Align)
	assert.Equal(t, layout.AlignRight, row.Cells[2].Style.Align)

	assert.True(t, row.Cells[0].Style.Border.Has(layout.BorderRight))
	assert.True(t, row.Cells[1].Style.Border.Has(layout.BorderRight))
	assert.False(t, row.Cells[2].Style.Border.Has(layout.BorderRight))
	assert.True(t, row.Cells[2].Style.Border.Has(layout.BorderBottom))
}

func TestDataRow(t *testing.T) {
	statusColor := func(p payout) layout.Style {
		if p.Status == "pending" {
			return layout.Style{Color: "#c0392b", Weight: layout.WeightBold}
		}
		return layout.Style{}
	}
	cols := []Column[payout]{
		{Header: "Month", Accessor: "month", Style: layout.Style{Color: "#000000"}},
		{Header: "Status", Accessor: "status", Style: layout.Style{Color: "#000000"}, StyleOverride: statusColor},
	}

	paid := DataRow(cols, payout{Month: time.May, Status: "paid"}, 0, false)
	assert.Equal(t, TagRow, paid.Tag)
	assert.Equal(t, 0, paid.Index)
	assert.Equal(t, []string{"May", "paid"}, []string{paid.Cells[0].Content, paid.Cells[1].Content})
	assert.Equal(t, layout.Color("#000000"), paid.Cells[1].Style.Color)
	assert.Equal(t, layout.WeightNormal, paid.Cells[1].Style.Weight)
	assert.Equal(t, cellStyle.Background, paid.Cells[0].Style.Background)

	pending := DataRow(cols, payout{Month: time.June, Status: "pending"}, 1, false)
	assert.Equal(t, layout.Color("#c0392b"), pending.Cells[1].Style.Color)
	assert.Equal(t, layout.WeightBold, pending.Cells[1].Style.Weight)
	assert.Equal(t, layout.Color("#000000"), pending.Cells[0].Style.Color)
	assert.Equal(t, stripeBackground, pending.Cells[0].Style.Background)
	assert.Equal(t, stripeBackground, pending.Cells[1].Style.Background)

	for _, r := range []*layout.Row{paid, pending} {
		assert.True(t, r.Cells[0].Style.Border.Has(layout.BorderRight))
		assert.False(t, r.Cells[1].Style.Border.Has(layout.BorderRight))
		for _, c := range r.Cells {
			assert.False(t, c.Style.RoundBottom)
		}
	}

	last := DataRow(cols, payout{Status: "paid"}, 2, true)
	for _, c := range last.Cells {
		assert.True(t, c.Style.RoundBottom)
	}
}

func TestDataRow_OverrideCannotRestoreLastBorder(t *testing.T) {
	cols := []Column[payout]{
		{Header: "Status", StyleOverride: func(payout) layout.Style {
			return layout.Style{Border: layout.BorderAll}
		}},
	}
	row := DataRow(cols, payout{}, 0, true)
	assert.False(t, row.Cells[0].Style.Border.Has(layout.BorderRight))
	assert.True(t, row.Cells[0].Style.Border.Has(layout.BorderLeft))
}

func TestPlaceholderRow(t *testing.T) {
	row := placeholderRow()
	require.Len(t, row.Cells, 1)
	assert.Equal(t, EmptyText, row.Cells[0].Content)
	assert.Equal(t, layout.AlignCenter, row.Cells[0].Style.Align)
	assert.Equal(t, layout.BorderNone, row.Cells[0].Style.Border)
	assert.True(t, row.Cells[0].Style.RoundBottom)
}
