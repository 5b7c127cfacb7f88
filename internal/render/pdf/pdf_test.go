package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/render"
	"github.com/salmonumbrella/chitbook/internal/table"
)

func TestNew(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Equal(t, layout.PageSize{Width: 210, Height: 297}, r.PageSize())
	assert.Equal(t, "pdf", r.Name())

	r, err = New(WithPageSize("Letter"), WithOrientation("landscape"))
	require.NoError(t, err)
	assert.Equal(t, layout.PageSize{Width: 279.4, Height: 215.9}, r.PageSize())

	_, err = New(WithPageSize("b5"))
	require.ErrorIs(t, err, ErrUnknownPageSize)
	assert.Contains(t, err.Error(), "a4")
}

func TestMeasure(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	m := r.Measurer()

	style := layout.Style{FontSize: 8}
	one, h1 := m.Measure("Collections", style, 100)
	require.Len(t, one, 1)
	assert.Greater(t, h1, 2*cellPad)

	long := strings.Repeat("monthly instalment ", 12)
	wrapped, h2 := m.Measure(long, style, 40)
	assert.Greater(t, len(wrapped), 1)
	assert.InDelta(t, float64(len(wrapped))*(h1-2*cellPad)+2*cellPad, h2, 1e-9)

	empty, h3 := m.Measure("", style, 40)
	assert.Equal(t, []string{""}, empty)
	assert.InDelta(t, h1, h3, 1e-9)

	_, big := m.Measure("Collections", layout.Style{FontSize: 16}, 100)
	assert.Greater(t, big, h1)

	_, padded := m.Measure("Collections", layout.Style{FontSize: 8, Padding: 2}, 100)
	assert.InDelta(t, h1+4, padded, 1e-9)
}

func TestMeasureNonLatin(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	m := r.Measurer()
	style := layout.Style{FontSize: 8}

	lines, _ := m.Measure("Deepam · generated", style, 100)
	assert.Equal(t, []string{"Deepam \xb7 generated"}, lines)

	// Runes outside cp1252 degrade to a dot.
	lines, _ = m.Measure("₹ 5,000", style, 100)
	assert.Equal(t, []string{". 5,000"}, lines)

	wrapped, _ := m.Measure(strings.Repeat("செல்வி · ₹ ", 20), style, 30)
	assert.Greater(t, len(wrapped), 1)
	for _, l := range wrapped {
		assert.NotContains(t, l, "\ufffd")
	}
}

type line struct {
	Month  string
	Amount string
}

func TestRender(t *testing.T) {
	r, err := New(WithLogger(zap.NewNop()))
	require.NoError(t, err)

	rows := make([]line, 120)
	for i := range rows {
		rows[i] = line{Month: time.Month(i%12 + 1).String(), Amount: "5000.00"}
	}
	tbl := table.Table[line]{
		Title: "Collections",
		Columns: []table.Column[line]{
			{Header: "Month", Accessor: "month"},
			{Header: "Amount", Accessor: "amount", Style: layout.Style{Align: layout.AlignRight}},
		},
		Rows: rows,
	}

	res, err := r.Engine(zap.NewNop()).Compose(layout.Document{Body: table.Paginated(tbl)})
	require.NoError(t, err)
	require.Greater(t, len(res.Pages), 1)
	assert.Empty(t, res.Overflows)

	meta := render.Meta{
		ID:      "7d0c2f4e-5b1a-4c3e-9f64-1c2b3a4d5e6f",
		Title:   "Collections",
		Created: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	doc := r.paint(res, meta)
	require.NoError(t, doc.Error())
	assert.Equal(t, len(res.Pages), doc.PageCount())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res, meta))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "report-id:"+meta.ID)
}

func TestRenderNonLatinNames(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	tbl := table.Table[line]{
		Title: "Members · Deepam",
		Columns: []table.Column[line]{
			{Header: "Name", Accessor: "month"},
			{Header: "Amount", Accessor: "amount"},
		},
		Rows: []line{
			{Month: "தமிழ் செல்வி", Amount: "₹ 5,000"},
			{Month: "Zoë Müller", Amount: "€ 12"},
		},
	}
	res, err := r.Engine(zap.NewNop()).Compose(layout.Document{Body: table.Paginated(tbl)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res, render.Meta{ID: "r-1", Title: "Members · Deepam"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestCorners(t *testing.T) {
	row := layout.Item{Kind: layout.ItemRow, X: 10, W: 90}
	round := layout.Style{RoundBottom: true}

	assert.Equal(t, "4", corners(row, layout.Item{X: 10, W: 30, Style: round}))
	assert.Equal(t, "", corners(row, layout.Item{X: 40, W: 30, Style: round}))
	assert.Equal(t, "3", corners(row, layout.Item{X: 70, W: 30, Style: round}))
	assert.Equal(t, "43", corners(row, layout.Item{X: 10, W: 90, Style: round}))
	assert.Equal(t, "", corners(row, layout.Item{X: 10, W: 90}))
}
