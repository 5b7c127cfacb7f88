package reports

import (
	"fmt"
	"strconv"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/table"
)

// ticket is one member's position in a chit.
type ticket struct {
	No        int
	Member    book.Member
	Collected string
	WonMonth  string
}

func chitReport(b *book.Book, p Params) (*Report, error) {
	if p.ChitID == "" {
		return nil, book.ValidationError{Message: "chit report needs a chit id"}
	}
	c, err := b.Chit(p.ChitID)
	if err != nil {
		return nil, err
	}
	amount := money(b)
	only := book.Filter{ChitID: c.ID}

	won := make(map[string]int)
	for _, po := range b.PayoutsFor(only) {
		won[po.MemberID] = po.Month
	}
	var tickets []ticket
	for i, m := range b.ChitMembers(c.ID) {
		t := ticket{
			No:        i + 1,
			Member:    m,
			Collected: amount(b.CollectedTotal(book.Filter{ChitID: c.ID, MemberID: m.ID})),
			WonMonth:  "-",
		}
		if mo, ok := won[m.ID]; ok {
			t.WonMonth = strconv.Itoa(mo)
		}
		tickets = append(tickets, t)
	}

	status := c.Status
	if status == "" {
		status = book.ChitActive
	}
	info := summary(
		field{"Chit value", amount(c.Value)},
		field{"Instalment", fmt.Sprintf("%s x %d months", amount(c.Installment), c.Months)},
		field{"Started", c.StartDate.String()},
		field{"Status", status},
		field{"Members", fmt.Sprintf("%d of %d", len(c.MemberIDs), c.Months)},
		field{"Collected", amount(b.CollectedTotal(only))},
		field{"Paid out", amount(b.PaidOutTotal(only))},
		field{"Outstanding", amount(b.Outstanding(only))},
	)

	members := table.Paginated(table.Table[ticket]{
		Title: "Members",
		Columns: []table.Column[ticket]{
			{Header: "No.", Accessor: "no", Style: width(0.08, center)},
			{Header: "Name", Accessor: "member.name"},
			{Header: "Phone", Accessor: "member.phone", Style: width(0.2, layout.Style{})},
			{Header: "Collected", Accessor: "collected", Style: width(0.2, right)},
			{Header: "Won in month", Accessor: "won_month", Style: width(0.14, center)},
		},
		Rows: tickets,
	})
	collections := table.Paginated(table.Table[book.Collection]{
		Title:   "Collections",
		Columns: collectionColumns(b, false, true),
		Rows:    b.CollectionsFor(only),
	})
	payouts := table.Paginated(table.Table[book.Payout]{
		Title:   "Payouts",
		Columns: payoutColumns(b, false, true),
		Rows:    b.PayoutsFor(only),
	})

	title := "Chit statement: " + c.Name
	return &Report{
		Kind:     KindChit,
		Title:    title,
		Subject:  c.ID,
		Document: document(p, title, subtitle(b, p, c.ID), info, members, collections, payouts),
	}, nil
}

func memberReport(b *book.Book, p Params) (*Report, error) {
	if p.MemberID == "" {
		return nil, book.ValidationError{Message: "member report needs a member id"}
	}
	m, err := b.Member(p.MemberID)
	if err != nil {
		return nil, err
	}
	amount := money(b)
	only := book.Filter{MemberID: m.ID}
	chits := b.MemberChits(m.ID)

	info := summary(
		field{"Phone", dash(m.Phone)},
		field{"Address", dash(m.Address)},
		field{"Joined", m.JoinedOn.String()},
		field{"Chits", strconv.Itoa(len(chits))},
		field{"Collected", amount(b.CollectedTotal(only))},
		field{"Received", amount(b.PaidOutTotal(only))},
		field{"Outstanding", amount(b.Outstanding(only))},
	)

	chitTable := table.Paginated(table.Table[book.Chit]{
		Title: "Chits",
		Columns: []table.Column[book.Chit]{
			{Header: "Chit", Accessor: "name"},
			{Header: "Value", Render: func(c book.Chit) string { return amount(c.Value) }, Style: width(0.18, right)},
			{Header: "Instalment", Render: func(c book.Chit) string { return amount(c.Installment) }, Style: width(0.18, right)},
			{Header: "Months", Accessor: "months", Style: width(0.1, center)},
			{Header: "Started", Render: func(c book.Chit) string { return c.StartDate.String() }, Style: width(0.14, center)},
			{Header: "Status", Accessor: "status", Style: width(0.1, center)},
		},
		Rows: chits,
	})
	collections := table.Paginated(table.Table[book.Collection]{
		Title:   "Collections",
		Columns: collectionColumns(b, true, false),
		Rows:    b.CollectionsFor(only),
	})
	payouts := table.Paginated(table.Table[book.Payout]{
		Title:   "Payouts",
		Columns: payoutColumns(b, true, false),
		Rows:    b.PayoutsFor(only),
	})

	title := "Member statement: " + m.Name
	return &Report{
		Kind:     KindMember,
		Title:    title,
		Subject:  m.ID,
		Document: document(p, title, subtitle(b, p, m.ID), info, chitTable, collections, payouts),
	}, nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
