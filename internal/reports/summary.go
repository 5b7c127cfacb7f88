package reports

import (
	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/table"
)

// PageStats counts the table rows on one page.
type PageStats struct {
	Page    int `json:"page" yaml:"page"`
	Headers int `json:"headers" yaml:"headers"`
	Rows    int `json:"rows" yaml:"rows"`
}

// Stats describes a composed report.
type Stats struct {
	Pages     int         `json:"pages" yaml:"pages"`
	Passes    int         `json:"passes" yaml:"passes"`
	Overflows int         `json:"overflows" yaml:"overflows"`
	PerPage   []PageStats `json:"per_page" yaml:"per_page"`
}

// Summarize counts header and data rows per page of res.
func Summarize(res *layout.Result) Stats {
	s := Stats{Pages: len(res.Pages), Passes: res.Passes, Overflows: len(res.Overflows)}
	for _, page := range res.Pages {
		ps := PageStats{Page: page.Number}
		for _, it := range page.Rows("") {
			switch it.Tag {
			case table.TagHeader:
				ps.Headers++
			case table.TagRow:
				ps.Rows++
			}
		}
		s.PerPage = append(s.PerPage, ps)
	}
	return s
}
