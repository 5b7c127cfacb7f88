// Package book models a chit-fund book: the chits a foreman runs, their
// members, the monthly instalments collected, the auction payouts and the
// payments that settle them.
package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Chit statuses.
const (
	ChitActive = "active"
	ChitClosed = "closed"
)

// Payout statuses.
const (
	PayoutPaid    = "paid"
	PayoutPartial = "partial"
	PayoutPending = "pending"
)

// Book is the whole data file.
type Book struct {
	Name        string       `yaml:"name" json:"name"`
	Currency    string       `yaml:"currency,omitempty" json:"currency,omitempty"`
	Chits       []Chit       `yaml:"chits" json:"chits"`
	Members     []Member     `yaml:"members" json:"members"`
	Collections []Collection `yaml:"collections,omitempty" json:"collections,omitempty"`
	Payouts     []Payout     `yaml:"payouts,omitempty" json:"payouts,omitempty"`
	Payments    []Payment    `yaml:"payments,omitempty" json:"payments,omitempty"`
}

// Chit is one fund: Months members each pay Installment every month, and
// every month one member takes the pot at auction.
type Chit struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Value       decimal.Decimal `yaml:"value" json:"value"`
	Installment decimal.Decimal `yaml:"installment" json:"installment"`
	Months      int             `yaml:"months" json:"months"`
	StartDate   Date            `yaml:"start_date" json:"start_date"`
	MemberIDs   []string        `yaml:"members" json:"members"`
	Status      string          `yaml:"status,omitempty" json:"status,omitempty"`
}

// Member is a subscriber. One member may hold tickets in several chits.
type Member struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Address  string `yaml:"address,omitempty" json:"address,omitempty"`
	JoinedOn Date   `yaml:"joined_on,omitempty" json:"joined_on,omitempty"`
}

// Collection is one instalment received from a member.
type Collection struct {
	ID          string          `yaml:"id" json:"id"`
	ChitID      string          `yaml:"chit" json:"chit"`
	MemberID    string          `yaml:"member" json:"member"`
	Month       int             `yaml:"month" json:"month"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	CollectedOn Date            `yaml:"collected_on" json:"collected_on"`
	Mode        string          `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// Payout is the pot a member won for one month of a chit. Bid is the
// discount the winner gave up at auction.
type Payout struct {
	ID       string          `yaml:"id" json:"id"`
	ChitID   string          `yaml:"chit" json:"chit"`
	MemberID string          `yaml:"member" json:"member"`
	Month    int             `yaml:"month" json:"month"`
	Bid      decimal.Decimal `yaml:"bid" json:"bid"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	PaidOn   Date            `yaml:"paid_on,omitempty" json:"paid_on,omitempty"`
	Status   string          `yaml:"status,omitempty" json:"status,omitempty"`
}

// Payment is money handed over against a payout.
type Payment struct {
	ID        string          `yaml:"id" json:"id"`
	PayoutID  string          `yaml:"payout" json:"payout"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	PaidOn    Date            `yaml:"paid_on" json:"paid_on"`
	Mode      string          `yaml:"mode,omitempty" json:"mode,omitempty"`
	Reference string          `yaml:"reference,omitempty" json:"reference,omitempty"`
}

// DateLayout is the format of dates in book files.
const DateLayout = "2006-01-02"

// Date is a calendar day. It reads and writes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// String formats d for reports, or returns "-" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02 Jan 2006")
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", n.Line)
	}
	if n.Value == "" || n.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FormatAmount renders a as a two-decimal figure with thousands separators,
// prefixed by currency when it is set.
func FormatAmount(a decimal.Decimal, currency string) string {
	s := a.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if a.IsNegative() {
		out = "-" + out
	}
	if currency != "" {
		out = currency + " " + out
	}
	return out
}
