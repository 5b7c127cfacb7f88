package reports

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/table"
)

var (
	right  = layout.Style{Align: layout.AlignRight}
	center = layout.Style{Align: layout.AlignCenter}
)

func width(w float64, base layout.Style) layout.Style {
	base.Width = w
	return base
}

func money(b *book.Book) func(decimal.Decimal) string {
	return func(d decimal.Decimal) string { return book.FormatAmount(d, b.Currency) }
}

func month(m int) string {
	return strconv.Itoa(m)
}

var statusStyles = map[string]layout.Style{
	book.PayoutPaid:    {Color: "#27ae60"},
	book.PayoutPartial: {Color: "#d68910", Weight: layout.WeightBold},
	book.PayoutPending: {Color: "#c0392b", Weight: layout.WeightBold},
}

// payoutStatus colours a payout status cell.
func payoutStatus(p book.Payout) layout.Style {
	return statusStyles[p.Status]
}

func collectionColumns(b *book.Book, withChit, withMember bool) []table.Column[book.Collection] {
	amount := money(b)
	cols := []table.Column[book.Collection]{
		{Header: "Date", Render: func(c book.Collection) string { return c.CollectedOn.String() }, Style: width(0.16, layout.Style{})},
	}
	if withChit {
		cols = append(cols, table.Column[book.Collection]{
			Header: "Chit",
			Render: func(c book.Collection) string { return b.ChitName(c.ChitID) },
		})
	}
	if withMember {
		cols = append(cols, table.Column[book.Collection]{
			Header: "Member",
			Render: func(c book.Collection) string { return b.MemberName(c.MemberID) },
		})
	}
	return append(cols,
		table.Column[book.Collection]{Header: "Month", Accessor: "month", Style: width(0.1, center)},
		table.Column[book.Collection]{Header: "Mode", Accessor: "mode", Style: width(0.12, center)},
		table.Column[book.Collection]{Header: "Amount", Render: func(c book.Collection) string { return amount(c.Amount) }, Style: width(0.2, right)},
	)
}

func payoutColumns(b *book.Book, withChit, withMember bool) []table.Column[book.Payout] {
	amount := money(b)
	cols := []table.Column[book.Payout]{
		{Header: "Month", Accessor: "month", Style: width(0.08, center)},
	}
	if withChit {
		cols = append(cols, table.Column[book.Payout]{
			Header: "Chit",
			Render: func(p book.Payout) string { return b.ChitName(p.ChitID) },
		})
	}
	if withMember {
		cols = append(cols, table.Column[book.Payout]{
			Header: "Winner",
			Render: func(p book.Payout) string { return b.MemberName(p.MemberID) },
		})
	}
	return append(cols,
		table.Column[book.Payout]{Header: "Bid", Render: func(p book.Payout) string { return amount(p.Bid) }, Style: width(0.14, right)},
		table.Column[book.Payout]{Header: "Amount", Render: func(p book.Payout) string { return amount(p.Amount) }, Style: width(0.16, right)},
		table.Column[book.Payout]{Header: "Balance", Render: func(p book.Payout) string { return amount(b.PayoutBalance(p.ID)) }, Style: width(0.14, right)},
		table.Column[book.Payout]{Header: "Paid on", Render: func(p book.Payout) string { return p.PaidOn.String() }, Style: width(0.13, center)},
		table.Column[book.Payout]{
			Header:        "Status",
			Accessor:      "status",
			Style:         width(0.1, center),
			StyleOverride: payoutStatus,
		},
	)
}

func paymentColumns(b *book.Book) []table.Column[book.Payment] {
	amount := money(b)
	payout := func(p book.Payment) book.Payout {
		po, _ := b.Payout(p.PayoutID)
		return po
	}
	return []table.Column[book.Payment]{
		{Header: "Date", Render: func(p book.Payment) string { return p.PaidOn.String() }, Style: width(0.14, layout.Style{})},
		{Header: "Chit", Render: func(p book.Payment) string { return b.ChitName(payout(p).ChitID) }},
		{Header: "Month", Render: func(p book.Payment) string { return month(payout(p).Month) }, Style: width(0.08, center)},
		{Header: "Member", Render: func(p book.Payment) string { return b.MemberName(payout(p).MemberID) }},
		{Header: "Mode", Accessor: "mode", Style: width(0.1, center)},
		{Header: "Reference", Accessor: "reference", Style: width(0.14, layout.Style{})},
		{Header: "Amount", Render: func(p book.Payment) string { return amount(p.Amount) }, Style: width(0.16, right)},
	}
}
