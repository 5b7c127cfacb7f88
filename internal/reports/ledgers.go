package reports

import (
	"strconv"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/table"
)

func filterLabel(b *book.Book, p Params) string {
	switch {
	case p.ChitID != "" && p.MemberID != "":
		return b.ChitName(p.ChitID) + ", " + b.MemberName(p.MemberID)
	case p.ChitID != "":
		return b.ChitName(p.ChitID)
	case p.MemberID != "":
		return b.MemberName(p.MemberID)
	}
	return "all chits"
}

func collectionsReport(b *book.Book, p Params) *Report {
	f := book.Filter{ChitID: p.ChitID, MemberID: p.MemberID}
	rows := b.CollectionsFor(f)
	amount := money(b)

	info := summary(
		field{"Entries", strconv.Itoa(len(rows))},
		field{"Total collected", amount(b.CollectedTotal(f))},
	)
	ledger := table.Paginated(table.Table[book.Collection]{
		Title:   "Collections",
		Columns: collectionColumns(b, p.ChitID == "", p.MemberID == ""),
		Rows:    rows,
	})

	title := "Collection ledger"
	return &Report{
		Kind:     KindCollections,
		Title:    title,
		Subject:  filterLabel(b, p),
		Document: document(p, title, subtitle(b, p, filterLabel(b, p)), info, ledger),
	}
}

func payoutsReport(b *book.Book, p Params) *Report {
	f := book.Filter{ChitID: p.ChitID, MemberID: p.MemberID}
	rows := b.PayoutsFor(f)
	amount := money(b)

	pending := 0
	for _, po := range rows {
		if po.Status != book.PayoutPaid {
			pending++
		}
	}
	info := summary(
		field{"Payouts", strconv.Itoa(len(rows))},
		field{"Not fully paid", strconv.Itoa(pending)},
		field{"Total paid", amount(b.PaidOutTotal(f))},
	)
	ledger := table.Paginated(table.Table[book.Payout]{
		Title:   "Payouts",
		Columns: payoutColumns(b, p.ChitID == "", p.MemberID == ""),
		Rows:    rows,
	})

	title := "Payout ledger"
	return &Report{
		Kind:     KindPayouts,
		Title:    title,
		Subject:  filterLabel(b, p),
		Document: document(p, title, subtitle(b, p, filterLabel(b, p)), info, ledger),
	}
}

func paymentsReport(b *book.Book, p Params) *Report {
	f := book.Filter{ChitID: p.ChitID, MemberID: p.MemberID}
	rows := b.PaymentsFor(f)

	info := summary(
		field{"Payments", strconv.Itoa(len(rows))},
		field{"Total", money(b)(b.PaidOutTotal(f))},
	)
	ledger := table.Paginated(table.Table[book.Payment]{
		Title:   "Payments",
		Columns: paymentColumns(b),
		Rows:    rows,
	})

	title := "Payment register"
	return &Report{
		Kind:     KindPayments,
		Title:    title,
		Subject:  filterLabel(b, p),
		Document: document(p, title, subtitle(b, p, filterLabel(b, p)), info, ledger),
	}
}
