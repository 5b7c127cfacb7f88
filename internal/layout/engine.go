// Package layout is a small flow-layout engine for fixed-size pages.
//
// A document is a tree of nodes placed top to bottom. Content that does not
// fit on the current page moves to the next one; rows, texts and
// unbreakable blocks are never split. The engine has no "which page is this
// node on" query. Instead it offers two callback nodes: Probe, called with
// the page number where it is placed, and Repeat, called once for every
// page its enclosing block touches, whose result is placed at the top of
// that page.
//
// Compose runs the whole tree through several passes (the first to learn
// the page count, later ones to paint with it) and returns the last one.
// Components are expanded afresh on every pass, so any state they allocate
// is scoped to a single pass.
package layout

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

const epsilon = 1e-6

// PageSize is the size of every page in engine units.
type PageSize struct {
	Width  float64
	Height float64
}

// Margins surround the content area of every page.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Document is the input of Compose.
type Document struct {
	Body Node
	// Footer, when set, is placed in a band of FooterHeight at the bottom of
	// every page. total is the page count of the previous pass and 0 during
	// the first one.
	Footer       func(page, total int) Node
	FooterHeight float64
}

var (
	// ErrNoBody is returned by Compose for a document without a body.
	ErrNoBody = errors.New("layout: document has no body")
	// ErrNoMeasurer is returned by Compose when the engine has no measurer.
	ErrNoMeasurer = errors.New("layout: engine has no measurer")
)

// Option configures an Engine.
type Option func(*Engine)

// WithPageSize sets the page size.
func WithPageSize(width, height float64) Option {
	return func(e *Engine) {
		e.size = PageSize{Width: width, Height: height}
	}
}

// WithMargins sets the page margins.
func WithMargins(m Margins) Option {
	return func(e *Engine) {
		e.margins = m
	}
}

// WithLogger sets the logger used for pass statistics and overflow warnings.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPasses bounds the number of layout passes. Compose always runs at
// least minPasses passes and keeps going while the page count changes, up to
// maxPasses.
func WithPasses(minPasses, maxPasses int) Option {
	return func(e *Engine) {
		if minPasses < 1 {
			minPasses = 1
		}
		if maxPasses < minPasses {
			maxPasses = minPasses
		}
		e.minPasses = minPasses
		e.maxPasses = maxPasses
	}
}

// Engine lays documents out into pages.
type Engine struct {
	size      PageSize
	margins   Margins
	measurer  Measurer
	logger    *zap.Logger
	minPasses int
	maxPasses int
}

// NewEngine returns an engine for A4-sized pages in millimetres with 15mm
// margins, two to four passes, and a no-op logger.
func NewEngine(m Measurer, opts ...Option) *Engine {
	e := &Engine{
		size:      PageSize{Width: 210, Height: 297},
		margins:   Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
		measurer:  m,
		logger:    zap.NewNop(),
		minPasses: 2,
		maxPasses: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContentWidth is the width between the left and right margins.
func (e *Engine) ContentWidth() float64 {
	return e.size.Width - e.margins.Left - e.margins.Right
}

// Compose lays doc out and returns the pages of the final pass.
func (e *Engine) Compose(doc Document) (*Result, error) {
	if doc.Body == nil {
		return nil, ErrNoBody
	}
	if e.measurer == nil {
		return nil, ErrNoMeasurer
	}
	top := e.margins.Top
	limit := e.size.Height - e.margins.Bottom - doc.FooterHeight
	if limit-top <= 0 || e.ContentWidth() <= 0 {
		return nil, fmt.Errorf("layout: page %gx%g leaves no room for content", e.size.Width, e.size.Height)
	}

	total := 0
	for pass := 1; ; pass++ {
		c := &composer{e: e, doc: doc, pass: pass, total: total, top: top, limit: limit}
		c.run()

		e.logger.Debug("layout pass complete",
			zap.Int("pass", pass),
			zap.Int("pages", len(c.pages)),
			zap.Int("overflows", len(c.overflows)))

		stable := len(c.pages) == total
		if pass >= e.maxPasses || (pass >= e.minPasses && stable) {
			for _, o := range c.overflows {
				e.logger.Warn("content taller than a page was forced onto it",
					zap.Int("page", o.Page),
					zap.String("tag", o.Tag),
					zap.Float64("height", o.Height),
					zap.Float64("available", o.Available))
			}
			return &Result{Pages: c.pages, Passes: pass, Overflows: c.overflows}, nil
		}
		total = len(c.pages)
	}
}

// frame is an open breakable block that carries Repeat nodes.
type frame struct {
	repeats []*Repeat
	x       float64
	width   float64
}

// composer holds the state of one layout pass.
type composer struct {
	e     *Engine
	doc   Document
	pass  int
	total int

	pages []Page
	top   float64
	limit float64
	y     float64

	// fresh is true while nothing but repeated content sits on the page.
	fresh   bool
	noBreak int
	frames  []*frame

	overflows []Overflow
}

func (c *composer) run() {
	c.newPage()
	c.place(c.doc.Body, c.e.margins.Left, c.e.ContentWidth())
	c.placeFooters()
}

func (c *composer) current() *Page {
	return &c.pages[len(c.pages)-1]
}

func (c *composer) newPage() {
	c.pages = append(c.pages, Page{Number: len(c.pages) + 1})
	c.y = c.top
	c.fresh = true
}

func (c *composer) add(it Item) {
	p := c.current()
	p.Items = append(p.Items, it)
}

func (c *composer) place(n Node, x, w float64) {
	switch n := n.(type) {
	case Component:
		if n != nil {
			c.place(n(), x, w)
		}
	case *Probe:
		if n != nil && n.Func != nil {
			n.Func(c.current().Number)
		}
	case *Text:
		c.placeText(n, x, w)
	case *Row:
		c.placeRow(n, x, w)
	case *Block:
		if n == nil {
			return
		}
		if n.Unbreakable {
			c.placeKeep(n, x, w)
		} else {
			c.placeStack(n, x, w)
		}
	}
}

// reserve makes room for a box of height h, breaking the page when needed.
// A box that does not fit even a fresh page is placed anyway and recorded.
func (c *composer) reserve(h float64, tag string) {
	if c.noBreak > 0 || c.y+h <= c.limit+epsilon {
		return
	}
	if !c.fresh {
		c.breakPage()
		if c.y+h <= c.limit+epsilon {
			return
		}
	}
	c.overflows = append(c.overflows, Overflow{
		Page:      c.current().Number,
		Tag:       tag,
		Height:    h,
		Available: c.limit - c.y,
	})
}

func (c *composer) breakPage() {
	c.newPage()
	c.e.logger.Debug("page break", zap.Int("pass", c.pass), zap.Int("page", c.current().Number))
	for _, f := range c.frames {
		c.runRepeats(f)
	}
}

// runRepeats invokes the repeat nodes of f for the current page and places
// what they return at the cursor.
func (c *composer) runRepeats(f *frame) {
	page := c.current().Number
	fresh := c.fresh
	c.noBreak++
	for _, r := range f.repeats {
		if n := r.Render(page); n != nil {
			c.place(n, f.x, f.width)
		}
	}
	c.noBreak--
	c.fresh = fresh
}

func (c *composer) placeText(t *Text, x, w float64) {
	if t == nil {
		return
	}
	lines, h := c.e.measurer.Measure(t.Content, t.Style, w)
	h = math.Max(h, t.Style.MinHeight)
	c.reserve(t.Style.MarginTop+h+t.Style.MarginBottom, t.Tag)
	c.y += t.Style.MarginTop
	c.add(Item{Kind: ItemText, X: x, Y: c.y, W: w, H: h, Lines: lines, Style: t.Style, Tag: t.Tag})
	c.y += h + t.Style.MarginBottom
	c.fresh = false
}

type rowBox struct {
	widths []float64
	lines  [][]string
	height float64
}

func (c *composer) measureRow(r *Row, w float64) rowBox {
	box := rowBox{widths: columnWidths(r.Cells, w), lines: make([][]string, len(r.Cells))}
	for i, cell := range r.Cells {
		lines, h := c.e.measurer.Measure(cell.Content, cell.Style, box.widths[i])
		box.lines[i] = lines
		box.height = max(box.height, h, cell.Style.MinHeight)
	}
	box.height = max(box.height, r.Style.MinHeight)
	return box
}

func (c *composer) placeRow(r *Row, x, w float64) {
	if r == nil {
		return
	}
	box := c.measureRow(r, w)
	c.reserve(r.Style.MarginTop+box.height+r.Style.MarginBottom, r.Tag)
	c.y += r.Style.MarginTop
	c.add(Item{Kind: ItemRow, X: x, Y: c.y, W: w, H: box.height, Style: r.Style, Tag: r.Tag, Index: r.Index})
	cx := x
	for i, cell := range r.Cells {
		c.add(Item{
			Kind:  ItemCell,
			X:     cx,
			Y:     c.y,
			W:     box.widths[i],
			H:     box.height,
			Lines: box.lines[i],
			Style: cell.Style,
			Tag:   r.Tag,
			Index: r.Index,
		})
		cx += box.widths[i]
	}
	c.y += box.height + r.Style.MarginBottom
	c.fresh = false
}

// placeKeep places an unbreakable block. Components inside it are expanded
// first so the block can be measured as a whole before anything in it,
// probes included, is placed.
func (c *composer) placeKeep(b *Block, x, w float64) {
	resolved, _ := resolve(b).(*Block)
	if resolved == nil {
		return
	}
	c.reserve(c.measure(resolved, w), firstTag(resolved))
	c.noBreak++
	c.placeStack(&Block{Children: resolved.Children, Style: resolved.Style}, x, w)
	c.noBreak--
}

func (c *composer) placeStack(b *Block, x, w float64) {
	c.y += b.Style.MarginTop

	f := &frame{x: x, width: w}
	for _, child := range b.Children {
		if r, ok := child.(*Repeat); ok && r != nil && r.Render != nil {
			f.repeats = append(f.repeats, r)
		}
	}
	if len(f.repeats) > 0 {
		c.frames = append(c.frames, f)
		c.runRepeats(f)
	}

	for _, child := range b.Children {
		if _, ok := child.(*Repeat); ok {
			continue
		}
		c.place(child, x, w)
	}

	if len(f.repeats) > 0 {
		c.frames = c.frames[:len(c.frames)-1]
	}
	c.y += b.Style.MarginBottom
}

// measure returns the height of a resolved subtree. Probes and repeats take
// no space.
func (c *composer) measure(n Node, w float64) float64 {
	switch n := n.(type) {
	case *Text:
		if n == nil {
			return 0
		}
		_, h := c.e.measurer.Measure(n.Content, n.Style, w)
		return n.Style.MarginTop + math.Max(h, n.Style.MinHeight) + n.Style.MarginBottom
	case *Row:
		if n == nil {
			return 0
		}
		return n.Style.MarginTop + c.measureRow(n, w).height + n.Style.MarginBottom
	case *Block:
		if n == nil {
			return 0
		}
		h := n.Style.MarginTop + n.Style.MarginBottom
		for _, child := range n.Children {
			h += c.measure(child, w)
		}
		return h
	}
	return 0
}

func (c *composer) placeFooters() {
	if c.doc.Footer == nil {
		return
	}
	top := c.e.size.Height - c.e.margins.Bottom - c.doc.FooterHeight
	for i := range c.pages {
		n := c.doc.Footer(c.pages[i].Number, c.total)
		if n == nil {
			continue
		}
		sub := &composer{
			e:       c.e,
			doc:     c.doc,
			pass:    c.pass,
			total:   c.total,
			pages:   []Page{{Number: c.pages[i].Number}},
			top:     top,
			limit:   c.e.size.Height - c.e.margins.Bottom,
			y:       top,
			noBreak: 1,
		}
		sub.place(n, c.e.margins.Left, c.e.ContentWidth())
		c.pages[i].Items = append(c.pages[i].Items, sub.pages[0].Items...)
	}
}

// resolve expands every Component in the subtree rooted at n.
func resolve(n Node) Node {
	switch n := n.(type) {
	case Component:
		if n == nil {
			return nil
		}
		return resolve(n())
	case *Block:
		if n == nil {
			return nil
		}
		out := &Block{Style: n.Style, Unbreakable: n.Unbreakable, Children: make([]Node, 0, len(n.Children))}
		for _, child := range n.Children {
			if r := resolve(child); r != nil {
				out.Children = append(out.Children, r)
			}
		}
		return out
	default:
		return n
	}
}

func firstTag(b *Block) string {
	for _, child := range b.Children {
		switch n := child.(type) {
		case *Text:
			if n != nil && n.Tag != "" {
				return n.Tag
			}
		case *Row:
			if n != nil && n.Tag != "" {
				return n.Tag
			}
		case *Block:
			if n != nil {
				if tag := firstTag(n); tag != "" {
					return tag
				}
			}
		}
	}
	return ""
}

func columnWidths(cells []Cell, total float64) []float64 {
	widths := make([]float64, len(cells))
	used := 0.0
	auto := 0
	for i, cell := range cells {
		switch w := cell.Style.Width; {
		case w > 1:
			widths[i] = w
		case w > 0:
			widths[i] = w * total
		default:
			auto++
			continue
		}
		used += widths[i]
	}
	if auto > 0 {
		share := math.Max(total-used, 0) / float64(auto)
		for i, cell := range cells {
			if cell.Style.Width <= 0 {
				widths[i] = share
			}
		}
	}
	return widths
}
