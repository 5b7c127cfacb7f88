package book

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Chit returns the chit with the given id.
func (b *Book) Chit(id string) (Chit, error) {
	for _, c := range b.Chits {
		if c.ID == id {
			return c, nil
		}
	}
	return Chit{}, NotFoundError{Kind: "chit", ID: id}
}

// Member returns the member with the given id.
func (b *Book) Member(id string) (Member, error) {
	for _, m := range b.Members {
		if m.ID == id {
			return m, nil
		}
	}
	return Member{}, NotFoundError{Kind: "member", ID: id}
}

// Payout returns the payout with the given id.
func (b *Book) Payout(id string) (Payout, error) {
	for _, p := range b.Payouts {
		if p.ID == id {
			return p, nil
		}
	}
	return Payout{}, NotFoundError{Kind: "payout", ID: id}
}

// MemberName returns the name of member id, or id itself when the book has
// no such member.
func (b *Book) MemberName(id string) string {
	if m, err := b.Member(id); err == nil {
		return m.Name
	}
	return id
}

// ChitName returns the name of chit id, or id itself.
func (b *Book) ChitName(id string) string {
	if c, err := b.Chit(id); err == nil {
		return c.Name
	}
	return id
}

// ChitMembers returns the members of a chit in ticket order.
func (b *Book) ChitMembers(chitID string) []Member {
	c, err := b.Chit(chitID)
	if err != nil {
		return nil
	}
	out := make([]Member, 0, len(c.MemberIDs))
	for _, id := range c.MemberIDs {
		if m, err := b.Member(id); err == nil {
			out = append(out, m)
		}
	}
	return out
}

// MemberChits returns the chits member id holds a ticket in.
func (b *Book) MemberChits(memberID string) []Chit {
	var out []Chit
	for _, c := range b.Chits {
		if slices.Contains(c.MemberIDs, memberID) {
			out = append(out, c)
		}
	}
	return out
}

// SortedMembers returns all members ordered by name, then id.
func (b *Book) SortedMembers() []Member {
	out := slices.Clone(b.Members)
	slices.SortStableFunc(out, func(x, y Member) int {
		if c := strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name)); c != 0 {
			return c
		}
		return strings.Compare(x.ID, y.ID)
	})
	return out
}

// Filter narrows ledger queries. Empty fields match everything.
type Filter struct {
	ChitID   string
	MemberID string
}

func (f Filter) match(chitID, memberID string) bool {
	return (f.ChitID == "" || f.ChitID == chitID) && (f.MemberID == "" || f.MemberID == memberID)
}

// CollectionsFor returns the matching collections by date, then month.
func (b *Book) CollectionsFor(f Filter) []Collection {
	var out []Collection
	for _, c := range b.Collections {
		if f.match(c.ChitID, c.MemberID) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(x, y Collection) int {
		if c := x.CollectedOn.Compare(y.CollectedOn.Time); c != 0 {
			return c
		}
		return x.Month - y.Month
	})
	return out
}

// PayoutsFor returns the matching payouts by chit, then month.
func (b *Book) PayoutsFor(f Filter) []Payout {
	var out []Payout
	for _, p := range b.Payouts {
		if f.match(p.ChitID, p.MemberID) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(x, y Payout) int {
		if c := strings.Compare(x.ChitID, y.ChitID); c != 0 {
			return c
		}
		return x.Month - y.Month
	})
	return out
}

// PaymentsFor returns the payments against payouts that match f, by date.
func (b *Book) PaymentsFor(f Filter) []Payment {
	var out []Payment
	for _, p := range b.Payments {
		po, err := b.Payout(p.PayoutID)
		if err != nil || !f.match(po.ChitID, po.MemberID) {
			continue
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(x, y Payment) int {
		return x.PaidOn.Compare(y.PaidOn.Time)
	})
	return out
}

// CollectedTotal sums the matching collections.
func (b *Book) CollectedTotal(f Filter) decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.CollectionsFor(f) {
		total = total.Add(c.Amount)
	}
	return total
}

// PaidOutTotal sums the payments made against matching payouts.
func (b *Book) PaidOutTotal(f Filter) decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.PaymentsFor(f) {
		total = total.Add(p.Amount)
	}
	return total
}

// PayoutBalance is what remains to be paid on a payout.
func (b *Book) PayoutBalance(payoutID string) decimal.Decimal {
	po, err := b.Payout(payoutID)
	if err != nil {
		return decimal.Zero
	}
	paid := decimal.Zero
	for _, p := range b.Payments {
		if p.PayoutID == payoutID {
			paid = paid.Add(p.Amount)
		}
	}
	return po.Amount.Sub(paid)
}

// Due is what a member owes a chit over its whole term.
func (c Chit) Due() decimal.Decimal {
	return c.Installment.Mul(decimal.NewFromInt(int64(c.Months)))
}

// Outstanding is the instalment money still owed to matching chits: the
// full term of every matching ticket less what has been collected.
func (b *Book) Outstanding(f Filter) decimal.Decimal {
	due := decimal.Zero
	for _, c := range b.Chits {
		if f.ChitID != "" && c.ID != f.ChitID {
			continue
		}
		for _, m := range c.MemberIDs {
			if f.MemberID == "" || f.MemberID == m {
				due = due.Add(c.Due())
			}
		}
	}
	return due.Sub(b.CollectedTotal(f))
}
