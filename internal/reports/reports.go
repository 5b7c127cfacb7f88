// Package reports turns a chit-fund book into printable documents. Every
// report is a title section, optional summary, and one or more paginated
// tables, with a "Page X of Y" footer.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/layout"
)

// Report kinds.
const (
	KindChit        = "chit"
	KindMember      = "member"
	KindCollections = "collections"
	KindPayouts     = "payouts"
	KindPayments    = "payments"
	KindDirectory   = "directory"
)

// Kinds lists every report kind Build accepts.
func Kinds() []string {
	return []string{KindChit, KindMember, KindCollections, KindPayouts, KindPayments, KindDirectory}
}

// Params selects and sizes a report. ChitID and MemberID filter the ledger
// reports and pick the subject of the chit and member reports. Spacing and
// FooterHeight are in the units of the engine the report is composed with.
type Params struct {
	ChitID       string
	MemberID     string
	Generated    time.Time
	Spacing      float64
	FooterHeight float64
}

func (p Params) withDefaults() Params {
	if p.Spacing <= 0 {
		p.Spacing = 1
	}
	if p.FooterHeight <= 0 {
		p.FooterHeight = 1
	}
	return p
}

// Report is a built document ready to be composed.
type Report struct {
	Kind     string
	Title    string
	Subject  string
	Document layout.Document
}

// Build assembles the report of the given kind.
func Build(kind string, b *book.Book, p Params) (*Report, error) {
	if b == nil {
		return nil, book.ValidationError{Message: "no book loaded"}
	}
	p = p.withDefaults()
	if p.ChitID != "" {
		if _, err := b.Chit(p.ChitID); err != nil {
			return nil, err
		}
	}
	if p.MemberID != "" {
		if _, err := b.Member(p.MemberID); err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindChit:
		return chitReport(b, p)
	case KindMember:
		return memberReport(b, p)
	case KindCollections:
		return collectionsReport(b, p), nil
	case KindPayouts:
		return payoutsReport(b, p), nil
	case KindPayments:
		return paymentsReport(b, p), nil
	case KindDirectory:
		return directoryReport(b, p), nil
	default:
		return nil, book.ValidationError{
			Message: fmt.Sprintf("unknown report %q (expected %s)", kind, strings.Join(Kinds(), "|")),
		}
	}
}

// Tags of the non-table nodes reports place.
const (
	TagHeading = "heading"
	TagSummary = "summary"
	TagFooter  = "footer"
)

var (
	navy  layout.Color = "#1e3a5f"
	muted layout.Color = "#7f8c8d"

	headingStyle = layout.Style{FontSize: 14, Weight: layout.WeightBold, Color: navy}
	subStyle     = layout.Style{FontSize: 9, Color: muted}
	footerStyle  = layout.Style{FontSize: 7, Align: layout.AlignRight, Color: muted}
	labelStyle   = layout.Style{Width: 0.3, FontSize: 8, Weight: layout.WeightBold, Color: muted, Border: layout.BorderNone}
	valueStyle   = layout.Style{FontSize: 8, Color: "#2c3e50", Border: layout.BorderNone}
)

type field struct {
	label string
	value string
}

// document wraps sections in the common report frame.
func document(p Params, title, sub string, sections ...layout.Node) layout.Document {
	children := []layout.Node{&layout.Text{Content: title, Style: headingStyle, Tag: TagHeading}}
	if sub != "" {
		children = append(children, &layout.Text{Content: sub, Style: subStyle, Tag: TagHeading})
	}
	for _, s := range sections {
		if s == nil {
			continue
		}
		children = append(children, &layout.Block{
			Children: []layout.Node{s},
			Style:    layout.Style{MarginTop: p.Spacing},
		})
	}
	return layout.Document{
		Body:         layout.Stack(children...),
		Footer:       footer,
		FooterHeight: p.FooterHeight,
	}
}

func footer(page, total int) layout.Node {
	text := fmt.Sprintf("Page %d", page)
	if total > 0 {
		text = fmt.Sprintf("Page %d of %d", page, total)
	}
	return &layout.Text{Content: text, Style: footerStyle, Tag: TagFooter}
}

// summary lays fields out as label/value rows kept together.
func summary(fields ...field) layout.Node {
	rows := make([]layout.Node, 0, len(fields))
	for i, f := range fields {
		rows = append(rows, &layout.Row{
			Cells: []layout.Cell{
				{Content: f.label, Style: labelStyle},
				{Content: f.value, Style: valueStyle},
			},
			Tag:   TagSummary,
			Index: i,
		})
	}
	return layout.Keep(rows...)
}

func subtitle(b *book.Book, p Params, parts ...string) string {
	var out []string
	if b.Name != "" {
		out = append(out, b.Name)
	}
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	if !p.Generated.IsZero() {
		out = append(out, "generated "+p.Generated.Format("02 Jan 2006 15:04"))
	}
	return strings.Join(out, " · ")
}
