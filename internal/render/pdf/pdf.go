// Package pdf paints layout results with go-pdf/fpdf.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/render"
)

const (
	// cellPad is the inner padding of every painted box, in millimetres.
	cellPad = 1.5

	// lineFactor turns a font size into a line height.
	lineFactor = 1.25

	cornerRadius    = 1.5
	defaultFamily   = "Helvetica"
	defaultFontSize = 9
	footerHeight    = 8
	spacing         = 4
)

// ErrUnknownPageSize is returned by New for a page size it has no
// dimensions for.
var ErrUnknownPageSize = errors.New("pdf: unknown page size")

var pageSizes = map[string]layout.PageSize{
	"a3":     {Width: 297, Height: 420},
	"a4":     {Width: 210, Height: 297},
	"a5":     {Width: 148, Height: 210},
	"letter": {Width: 215.9, Height: 279.4},
	"legal":  {Width: 215.9, Height: 355.6},
}

// PageSizes lists the page size names New accepts.
func PageSizes() []string {
	return []string{"a3", "a4", "a5", "letter", "legal"}
}

// KnownPageSize reports whether New accepts name as a page size.
func KnownPageSize(name string) bool {
	_, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

type config struct {
	pageSize   string
	landscape  bool
	fontFamily string
	fontSize   float64
	margins    layout.Margins
	logger     *zap.Logger
}

// Option configures a Renderer.
type Option func(*config)

// WithPageSize selects a named page size such as "a4" or "letter".
func WithPageSize(name string) Option {
	return func(c *config) {
		if name != "" {
			c.pageSize = strings.ToLower(name)
		}
	}
}

// WithOrientation selects "portrait" or "landscape".
func WithOrientation(o string) Option {
	return func(c *config) {
		c.landscape = strings.EqualFold(o, "landscape") || strings.EqualFold(o, "l")
	}
}

// WithFontFamily selects one of the core PDF fonts.
func WithFontFamily(family string) Option {
	return func(c *config) {
		if family != "" {
			c.fontFamily = family
		}
	}
}

// WithFontSize sets the size, in points, of text whose style has none.
func WithFontSize(pt float64) Option {
	return func(c *config) {
		if pt > 0 {
			c.fontSize = pt
		}
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Renderer is a PDF backend. It is not safe for concurrent use.
type Renderer struct {
	cfg  config
	size layout.PageSize
	m    *measurer
}

var _ render.Backend = (*Renderer)(nil)

// New returns a renderer for A4 portrait pages with 15mm margins unless
// options say otherwise.
func New(opts ...Option) (*Renderer, error) {
	cfg := config{
		pageSize:   "a4",
		fontFamily: defaultFamily,
		fontSize:   defaultFontSize,
		margins:    layout.Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	size, ok := pageSizes[cfg.pageSize]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPageSize, cfg.pageSize, strings.Join(PageSizes(), ", "))
	}
	if cfg.landscape {
		size.Width, size.Height = size.Height, size.Width
	}

	r := &Renderer{cfg: cfg, size: size}
	r.m = &measurer{r: r, pdf: r.newDocument()}
	if err := r.m.pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: init: %w", err)
	}
	return r, nil
}

// Name implements render.Backend.
func (r *Renderer) Name() string { return "pdf" }

// PageSize returns the page size in millimetres, orientation applied.
func (r *Renderer) PageSize() layout.PageSize { return r.size }

// Spacing implements render.Backend.
func (r *Renderer) Spacing() float64 { return spacing }

// FooterHeight implements render.Backend.
func (r *Renderer) FooterHeight() float64 { return footerHeight }

// Measurer returns a measurer using the renderer's font metrics.
func (r *Renderer) Measurer() layout.Measurer { return r.m }

// Engine implements render.Backend.
func (r *Renderer) Engine(logger *zap.Logger, opts ...layout.Option) *layout.Engine {
	base := []layout.Option{
		layout.WithPageSize(r.size.Width, r.size.Height),
		layout.WithMargins(r.cfg.margins),
		layout.WithLogger(logger),
	}
	return layout.NewEngine(r.m, append(base, opts...)...)
}

func (r *Renderer) newDocument() *fpdf.Fpdf {
	orientation := "P"
	if r.cfg.landscape {
		orientation = "L"
	}
	w, h := r.size.Width, r.size.Height
	if r.cfg.landscape {
		w, h = h, w
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(r.cfg.margins.Left, r.cfg.margins.Top, r.cfg.margins.Right)
	pdf.SetAutoPageBreak(false, r.cfg.margins.Bottom)
	pdf.SetCellMargin(0)
	pdf.SetFont(r.cfg.fontFamily, "", r.cfg.fontSize)
	return pdf
}

func (r *Renderer) setFont(pdf *fpdf.Fpdf, s layout.Style) {
	style := ""
	if s.Weight == layout.WeightBold {
		style = "B"
	}
	size := s.FontSize
	if size <= 0 {
		size = r.cfg.fontSize
	}
	pdf.SetFont(r.cfg.fontFamily, style, size)
}

func lineHeight(pdf *fpdf.Fpdf) float64 {
	_, unit := pdf.GetFontSize()
	return unit * lineFactor
}

type measurer struct {
	r   *Renderer
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Measure implements layout.Measurer.
func (m *measurer) Measure(text string, style layout.Style, width float64) ([]string, float64) {
	if m.tr == nil {
		m.tr = m.pdf.UnicodeTranslatorFromDescriptor("")
	}
	m.r.setFont(m.pdf, style)
	pad := cellPad + style.Padding

	var lines []string
	if text != "" {
		lines = splitText(m.pdf, m.tr(text), math.Max(width-2*pad, 1))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, float64(len(lines))*lineHeight(m.pdf) + 2*pad
}

// splitText wraps text that is already in the font's code page.
// fpdf.SplitText walks runes and indexes the 256-entry width table with
// them, so each byte goes in as a rune below 256 and each line comes back
// as bytes.
func splitText(pdf *fpdf.Fpdf, text string, width float64) []string {
	rs := make([]rune, 0, len(text))
	for i := 0; i < len(text); i++ {
		rs = append(rs, rune(text[i]))
	}
	lines := pdf.SplitText(string(rs), width)
	for i, line := range lines {
		b := make([]byte, 0, len(line))
		for _, r := range line {
			b = append(b, byte(r))
		}
		lines[i] = string(b)
	}
	return lines
}

// Render implements render.Backend.
func (r *Renderer) Render(w io.Writer, res *layout.Result, meta render.Meta) error {
	pdf := r.paint(res, meta)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	r.cfg.logger.Debug("pdf rendered",
		zap.String("id", meta.ID),
		zap.Int("pages", pdf.PageCount()))
	return nil
}

func (r *Renderer) paint(res *layout.Result, meta render.Meta) *fpdf.Fpdf {
	pdf := r.newDocument()
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator("chitbook", false)
	pdf.SetKeywords("report-id:"+meta.ID, false)
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
		pdf.SetModificationDate(meta.Created)
	}

	for _, page := range res.Pages {
		pdf.AddPage()
		var row layout.Item
		for _, it := range page.Items {
			switch it.Kind {
			case layout.ItemRow:
				row = it
				r.fill(pdf, it, "")
			case layout.ItemCell:
				r.fill(pdf, it, corners(row, it))
				r.borders(pdf, it)
				r.text(pdf, it)
			case layout.ItemText:
				r.fill(pdf, it, "")
				r.borders(pdf, it)
				r.text(pdf, it)
			}
		}
	}
	return pdf
}

// corners returns the fpdf corner set to round for a cell of a closing row:
// bottom-left on the first cell, bottom-right on the last.
func corners(row, cell layout.Item) string {
	if !cell.Style.RoundBottom {
		return ""
	}
	var c string
	if math.Abs(cell.X-row.X) < 1e-6 {
		c += "4"
	}
	if math.Abs(cell.X+cell.W-(row.X+row.W)) < 1e-6 {
		c += "3"
	}
	return c
}

func (r *Renderer) fill(pdf *fpdf.Fpdf, it layout.Item, round string) {
	red, green, blue, ok := it.Style.Background.RGB()
	if !ok {
		return
	}
	pdf.SetFillColor(red, green, blue)
	if round != "" {
		pdf.RoundedRect(it.X, it.Y, it.W, it.H, cornerRadius, round, "F")
		return
	}
	pdf.Rect(it.X, it.Y, it.W, it.H, "F")
}

func (r *Renderer) borders(pdf *fpdf.Fpdf, it layout.Item) {
	b := it.Style.Border
	if b == 0 || b == layout.BorderNone {
		return
	}
	red, green, blue, ok := it.Style.BorderColor.RGB()
	if !ok {
		red, green, blue = 0, 0, 0
	}
	pdf.SetDrawColor(red, green, blue)
	pdf.SetLineWidth(0.2)

	x0, y0, x1, y1 := it.X, it.Y, it.X+it.W, it.Y+it.H
	if b.Has(layout.BorderTop) {
		pdf.Line(x0, y0, x1, y0)
	}
	if b.Has(layout.BorderRight) {
		pdf.Line(x1, y0, x1, y1)
	}
	if b.Has(layout.BorderBottom) {
		pdf.Line(x0, y1, x1, y1)
	}
	if b.Has(layout.BorderLeft) {
		pdf.Line(x0, y0, x0, y1)
	}
}

// text paints the lines of it. The measurer has already translated them to
// the font's code page.
func (r *Renderer) text(pdf *fpdf.Fpdf, it layout.Item) {
	r.setFont(pdf, it.Style)
	red, green, blue, ok := it.Style.Color.RGB()
	if !ok {
		red, green, blue = 0, 0, 0
	}
	pdf.SetTextColor(red, green, blue)

	align := "L"
	switch it.Style.Align {
	case layout.AlignCenter:
		align = "C"
	case layout.AlignRight:
		align = "R"
	}

	pad := cellPad + it.Style.Padding
	lh := lineHeight(pdf)
	for i, line := range it.Lines {
		pdf.SetXY(it.X+pad, it.Y+pad+float64(i)*lh)
		pdf.CellFormat(it.W-2*pad, lh, line, "", 0, align, false, 0, "")
	}
}
