package reports

import (
	"strconv"
	"strings"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/table"
)

// pair is one printed directory row: two members side by side. Right is nil
// on the closing row of an odd-sized directory.
type pair struct {
	Left  book.Member
	Right *book.Member
}

func pairUp(members []book.Member) []pair {
	out := make([]pair, 0, (len(members)+1)/2)
	for i := 0; i < len(members); i += 2 {
		p := pair{Left: members[i]}
		if i+1 < len(members) {
			right := members[i+1]
			p.Right = &right
		}
		out = append(out, p)
	}
	return out
}

// contact is the directory line for a member.
func contact(b *book.Book, m book.Member) string {
	var chits []string
	for _, c := range b.MemberChits(m.ID) {
		chits = append(chits, c.Name)
	}
	lines := []string{dash(m.Phone)}
	if len(chits) > 0 {
		lines = append(lines, strings.Join(chits, ", "))
	}
	return strings.Join(lines, "\n")
}

// absent blanks the right half of a row whose pair is missing.
func absent(p pair) layout.Style {
	if p.Right != nil {
		return layout.Style{}
	}
	return layout.Style{Border: layout.BorderNone, Background: "#ffffff"}
}

func directoryReport(b *book.Book, p Params) *Report {
	members := b.SortedMembers()
	if p.ChitID != "" {
		members = b.ChitMembers(p.ChitID)
	}

	half := layout.Style{Width: 0.25}
	cols := []table.Column[pair]{
		{Header: "Name", Accessor: "left.name", Style: half},
		{Header: "Contact", Render: func(row pair) string { return contact(b, row.Left) }, Style: half},
		{Header: "Name", Accessor: "right.name", Style: half, StyleOverride: absent},
		{
			Header: "Contact",
			Render: func(row pair) string {
				if row.Right == nil {
					return ""
				}
				return contact(b, *row.Right)
			},
			Style:         half,
			StyleOverride: absent,
		},
	}

	info := summary(field{"Members", strconv.Itoa(len(members))})
	list := table.Paginated(table.Table[pair]{
		Title:   "Members",
		Columns: cols,
		Rows:    pairUp(members),
	})

	label := "all members"
	if p.ChitID != "" {
		label = b.ChitName(p.ChitID)
	}
	title := "Member directory"
	return &Report{
		Kind:     KindDirectory,
		Title:    title,
		Subject:  label,
		Document: document(p, title, subtitle(b, p, label), info, list),
	}
}
