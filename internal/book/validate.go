package book

import (
	"fmt"
	"slices"
)

// Validate checks that ids are present and unique per kind, that every
// reference resolves, and that months and amounts are in range.
func (b *Book) Validate() error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	members := make(map[string]bool, len(b.Members))
	for i, m := range b.Members {
		switch {
		case m.ID == "":
			addf("members[%d]: missing id", i)
		case members[m.ID]:
			addf("members[%d]: duplicate id %q", i, m.ID)
		}
		members[m.ID] = true
		if m.Name == "" {
			addf("member %q: missing name", m.ID)
		}
	}

	chits := make(map[string]Chit, len(b.Chits))
	for i, c := range b.Chits {
		switch {
		case c.ID == "":
			addf("chits[%d]: missing id", i)
		case chits[c.ID].ID != "":
			addf("chits[%d]: duplicate id %q", i, c.ID)
		}
		chits[c.ID] = c
		if c.Months <= 0 {
			addf("chit %q: months must be positive", c.ID)
		}
		if !c.Installment.IsPositive() {
			addf("chit %q: installment must be positive", c.ID)
		}
		if c.Months > 0 && len(c.MemberIDs) > c.Months {
			addf("chit %q: %d members for %d months", c.ID, len(c.MemberIDs), c.Months)
		}
		switch c.Status {
		case "", ChitActive, ChitClosed:
		default:
			addf("chit %q: unknown status %q", c.ID, c.Status)
		}
		seen := make(map[string]bool, len(c.MemberIDs))
		for _, id := range c.MemberIDs {
			if !members[id] {
				addf("chit %q: unknown member %q", c.ID, id)
			}
			if seen[id] {
				addf("chit %q: member %q listed twice", c.ID, id)
			}
			seen[id] = true
		}
	}

	// checkTicket validates a chit/member/month reference of a ledger entry.
	checkTicket := func(what, id, chitID, memberID string, month int) {
		c, ok := chits[chitID]
		if !ok {
			addf("%s %q: unknown chit %q", what, id, chitID)
			return
		}
		if !members[memberID] {
			addf("%s %q: unknown member %q", what, id, memberID)
		} else if !slices.Contains(c.MemberIDs, memberID) {
			addf("%s %q: member %q is not in chit %q", what, id, memberID, chitID)
		}
		if month < 1 || month > c.Months {
			addf("%s %q: month %d outside 1..%d", what, id, month, c.Months)
		}
	}

	ids := make(map[string]bool)
	for i, col := range b.Collections {
		if col.ID == "" {
			addf("collections[%d]: missing id", i)
		} else if ids[col.ID] {
			addf("collections[%d]: duplicate id %q", i, col.ID)
		}
		ids[col.ID] = true
		checkTicket("collection", col.ID, col.ChitID, col.MemberID, col.Month)
		if !col.Amount.IsPositive() {
			addf("collection %q: amount must be positive", col.ID)
		}
	}

	payouts := make(map[string]bool, len(b.Payouts))
	months := make(map[string]string)
	for i, p := range b.Payouts {
		if p.ID == "" {
			addf("payouts[%d]: missing id", i)
		} else if payouts[p.ID] {
			addf("payouts[%d]: duplicate id %q", i, p.ID)
		}
		payouts[p.ID] = true
		checkTicket("payout", p.ID, p.ChitID, p.MemberID, p.Month)
		key := fmt.Sprintf("%s/%d", p.ChitID, p.Month)
		if other, ok := months[key]; ok {
			addf("payout %q: chit %q month %d already paid out by %q", p.ID, p.ChitID, p.Month, other)
		} else {
			months[key] = p.ID
		}
		if p.Amount.IsNegative() || p.Bid.IsNegative() {
			addf("payout %q: negative amount", p.ID)
		}
		switch p.Status {
		case "", PayoutPaid, PayoutPartial, PayoutPending:
		default:
			addf("payout %q: unknown status %q", p.ID, p.Status)
		}
	}

	ids = make(map[string]bool)
	for i, p := range b.Payments {
		if p.ID == "" {
			addf("payments[%d]: missing id", i)
		} else if ids[p.ID] {
			addf("payments[%d]: duplicate id %q", i, p.ID)
		}
		ids[p.ID] = true
		if !payouts[p.PayoutID] {
			addf("payment %q: unknown payout %q", p.ID, p.PayoutID)
		}
		if !p.Amount.IsPositive() {
			addf("payment %q: amount must be positive", p.ID)
		}
	}

	if len(problems) > 0 {
		return ValidationError{Message: "invalid book", Problems: problems}
	}
	return nil
}
