// Package text renders layout results as monospace page previews. Engine
// units are character columns horizontally and lines vertically.
package text

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/render"
)

const (
	defaultWidth  = 96
	defaultHeight = 60
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPageSize sets the page size in columns and lines.
func WithPageSize(cols, lines int) Option {
	return func(r *Renderer) {
		if cols > 0 {
			r.width = cols
		}
		if lines > 0 {
			r.height = lines
		}
	}
}

// WithStyled enables terminal styling of bold text.
func WithStyled(styled bool) Option {
	return func(r *Renderer) {
		r.styled = styled
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer is the text backend.
type Renderer struct {
	width  int
	height int
	styled bool
	logger *zap.Logger
}

var _ render.Backend = (*Renderer)(nil)

// New returns a renderer for 96x60 pages.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements render.Backend.
func (r *Renderer) Name() string { return "text" }

// Spacing implements render.Backend.
func (r *Renderer) Spacing() float64 { return 1 }

// FooterHeight implements render.Backend.
func (r *Renderer) FooterHeight() float64 { return 1 }

// Engine implements render.Backend.
func (r *Renderer) Engine(logger *zap.Logger, opts ...layout.Option) *layout.Engine {
	base := []layout.Option{
		layout.WithPageSize(float64(r.width), float64(r.height)),
		layout.WithMargins(layout.Margins{}),
		layout.WithLogger(logger),
	}
	return layout.NewEngine(Measurer{}, append(base, opts...)...)
}

// Render implements render.Backend.
func (r *Renderer) Render(w io.Writer, res *layout.Result, meta render.Meta) error {
	bold := lipgloss.NewStyle().Bold(true)
	rule := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	if meta.Title != "" {
		b.WriteString(r.paint(bold, meta.Title, true))
		b.WriteByte('\n')
	}
	for _, page := range res.Pages {
		b.WriteString(r.paint(rule, fmt.Sprintf("--- page %d ---", page.Number), true))
		b.WriteByte('\n')
		g := r.grid(page)
		for i, line := range g.lines() {
			b.WriteString(r.paint(bold, line, g.bold[i]))
			b.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("text: write: %w", err)
	}
	r.logger.Debug("text rendered", zap.String("id", meta.ID), zap.Int("pages", len(res.Pages)))
	return nil
}

func (r *Renderer) paint(style lipgloss.Style, s string, on bool) string {
	if !r.styled || !on || s == "" {
		return s
	}
	return style.Render(s)
}

// grid is one page as a matrix of display cells. A wide rune occupies its
// cell plus empty continuation cells.
type grid struct {
	cells [][]string
	bold  []bool
}

// grid sizes the page to its lowest item so forced overflow stays visible.
func (r *Renderer) grid(page layout.Page) *grid {
	height := r.height
	for _, it := range page.Items {
		height = max(height, int(math.Ceil(it.Y+it.H)))
	}
	g := &grid{cells: make([][]string, height), bold: make([]bool, height)}
	for i := range g.cells {
		g.cells[i] = make([]string, r.width)
		for j := range g.cells[i] {
			g.cells[i][j] = " "
		}
	}

	for _, it := range page.Items {
		if it.Kind == layout.ItemRow {
			continue
		}
		g.place(it)
	}
	return g
}

func (g *grid) place(it layout.Item) {
	start := int(math.Round(it.X))
	end := int(math.Round(it.X + it.W))
	top := int(math.Round(it.Y))
	pad := 1 + int(it.Style.Padding)
	inner := end - start - 2*pad
	if inner < 1 {
		inner = 1
	}

	for i, line := range it.Lines {
		y := top + int(it.Style.Padding) + i
		sw := runewidth.StringWidth(line)
		x := start + pad
		switch it.Style.Align {
		case layout.AlignRight:
			x += max(inner-sw, 0)
		case layout.AlignCenter:
			x += max(inner-sw, 0) / 2
		}
		g.write(y, x, line)
		if it.Style.Weight == layout.WeightBold && y >= 0 && y < len(g.bold) {
			g.bold[y] = true
		}
	}

	if it.Style.Border.Has(layout.BorderRight) {
		h := max(int(math.Round(it.H)), 1)
		for y := top; y < top+h; y++ {
			g.write(y, end-1, "|")
		}
	}
}

func (g *grid) write(y, x int, s string) {
	if y < 0 || y >= len(g.cells) {
		return
	}
	row := g.cells[y]
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x < 0 || x+w > len(row) {
			return
		}
		row[x] = string(r)
		for k := 1; k < w; k++ {
			row[x+k] = ""
		}
		x += w
	}
}

func (g *grid) lines() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	// Drop the blank tail of the page.
	n := len(out)
	for n > 0 && out[n-1] == "" {
		n--
	}
	return out[:n]
}
