package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/output"
)

var (
	listPage    int
	listPerPage int
	listChit    string
	listMember  string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Inspect the book",
	Long: `Inspect the chit fund book without rendering a report.

Lists honour --result-sort-by, --result-desc and --result-limit, and
--page/--per-page page through long ledgers.`,
}

var bookShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show book totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBook(cmd)
		if err != nil {
			return err
		}
		ov := overview(b)
		if structuredOutputRequested() {
			return printStructured(ov)
		}

		w := stdoutFromContext(cmd.Context())
		fmt.Fprintf(w, "Book: %s\n", ov.Name)
		fmt.Fprintf(w, "  chits: %d\n", ov.Chits)
		fmt.Fprintf(w, "  members: %d\n", ov.Members)
		fmt.Fprintf(w, "  collections: %d\n", ov.Collections)
		fmt.Fprintf(w, "  payouts: %d\n", ov.Payouts)
		fmt.Fprintf(w, "  payments: %d\n", ov.Payments)
		fmt.Fprintf(w, "  collected: %s\n", book.FormatAmount(ov.Collected, b.Currency))
		fmt.Fprintf(w, "  paid out: %s\n", book.FormatAmount(ov.PaidOut, b.Currency))
		fmt.Fprintf(w, "  outstanding: %s\n", book.FormatAmount(ov.Outstanding, b.Currency))
		return nil
	},
}

var bookValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the book for errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBook(cmd)
		if err != nil {
			return err
		}
		if structuredOutputRequested() {
			return printStructured(map[string]interface{}{
				"valid": true,
				"name":  b.Name,
			})
		}
		fmt.Fprintf(stdoutFromContext(cmd.Context()), "%s: ok\n", b.Name)
		return nil
	},
}

var bookChitsCmd = &cobra.Command{
	Use:   "chits",
	Short: "List chits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBook(cmd)
		if err != nil {
			return err
		}
		if listChit != "" {
			if _, err := b.Chit(listChit); err != nil {
				return err
			}
		}
		rows := make([]chitRow, 0, len(b.Chits))
		for _, c := range b.Chits {
			if listChit != "" && c.ID != listChit {
				continue
			}
			f := book.Filter{ChitID: c.ID}
			rows = append(rows, chitRow{
				ID:          c.ID,
				Name:        c.Name,
				Status:      dashIfEmpty(c.Status),
				Months:      c.Months,
				Members:     len(c.MemberIDs),
				Installment: c.Installment,
				Collected:   b.CollectedTotal(f),
				Outstanding: b.Outstanding(f),
			})
		}
		return printList(rows, []string{"ID", "NAME", "STATUS", "MONTHS", "MEMBERS", "INSTALMENT", "COLLECTED", "OUTSTANDING"},
			func(r chitRow) []string {
				return []string{
					r.ID, r.Name, r.Status, strconv.Itoa(r.Months), strconv.Itoa(r.Members),
					book.FormatAmount(r.Installment, b.Currency),
					book.FormatAmount(r.Collected, b.Currency),
					book.FormatAmount(r.Outstanding, b.Currency),
				}
			})
	},
}

var bookMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "List members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBook(cmd)
		if err != nil {
			return err
		}
		if listChit != "" {
			if _, err := b.Chit(listChit); err != nil {
				return err
			}
		}
		members := b.SortedMembers()
		if listChit != "" {
			members = b.ChitMembers(listChit)
		}
		rows := make([]memberRow, 0, len(members))
		for _, m := range members {
			var chits []string
			for _, c := range b.MemberChits(m.ID) {
				chits = append(chits, c.ID)
			}
			rows = append(rows, memberRow{
				ID:        m.ID,
				Name:      m.Name,
				Phone:     m.Phone,
				Chits:     chits,
				Collected: b.CollectedTotal(book.Filter{MemberID: m.ID}),
			})
		}
		return printList(rows, []string{"ID", "NAME", "PHONE", "CHITS", "COLLECTED"},
			func(r memberRow) []string {
				return []string{r.ID, r.Name, dashIfEmpty(r.Phone), strings.Join(r.Chits, ","), book.FormatAmount(r.Collected, b.Currency)}
			})
	},
}

var bookCollectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, f, err := loadFiltered(cmd)
		if err != nil {
			return err
		}
		return printList(b.CollectionsFor(f), []string{"ID", "DATE", "CHIT", "MEMBER", "MONTH", "AMOUNT", "MODE"},
			func(c book.Collection) []string {
				return []string{
					c.ID, c.CollectedOn.String(), c.ChitID, b.MemberName(c.MemberID), strconv.Itoa(c.Month),
					book.FormatAmount(c.Amount, b.Currency), dashIfEmpty(c.Mode),
				}
			})
	},
}

var bookPayoutsCmd = &cobra.Command{
	Use:   "payouts",
	Short: "List payouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, f, err := loadFiltered(cmd)
		if err != nil {
			return err
		}
		return printList(b.PayoutsFor(f), []string{"ID", "CHIT", "MONTH", "WINNER", "AMOUNT", "BALANCE", "STATUS"},
			func(p book.Payout) []string {
				return []string{
					p.ID, p.ChitID, strconv.Itoa(p.Month), b.MemberName(p.MemberID),
					book.FormatAmount(p.Amount, b.Currency),
					book.FormatAmount(b.PayoutBalance(p.ID), b.Currency),
					dashIfEmpty(p.Status),
				}
			})
	},
}

var bookPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List payments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, f, err := loadFiltered(cmd)
		if err != nil {
			return err
		}
		return printList(b.PaymentsFor(f), []string{"ID", "DATE", "PAYOUT", "AMOUNT", "MODE", "REFERENCE"},
			func(p book.Payment) []string {
				return []string{
					p.ID, p.PaidOn.String(), p.PayoutID, book.FormatAmount(p.Amount, b.Currency),
					dashIfEmpty(p.Mode), dashIfEmpty(p.Reference),
				}
			})
	},
}

func init() {
	for _, c := range []*cobra.Command{bookChitsCmd, bookMembersCmd, bookCollectionsCmd, bookPayoutsCmd, bookPaymentsCmd} {
		c.Flags().IntVar(&listPage, "page", 1, "Page number")
		c.Flags().IntVar(&listPerPage, "per-page", 0, "Results per page (0 = all)")
		c.Flags().StringVar(&listChit, "chit", "", "Only this chit")
		bookCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{bookCollectionsCmd, bookPayoutsCmd, bookPaymentsCmd} {
		c.Flags().StringVar(&listMember, "member", "", "Only this member")
	}
	bookCmd.AddCommand(bookShowCmd)
	bookCmd.AddCommand(bookValidateCmd)

	rootCmd.AddCommand(bookCmd)
}

type bookOverview struct {
	Name        string          `json:"name" yaml:"name"`
	Currency    string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Chits       int             `json:"chits" yaml:"chits"`
	Members     int             `json:"members" yaml:"members"`
	Collections int             `json:"collections" yaml:"collections"`
	Payouts     int             `json:"payouts" yaml:"payouts"`
	Payments    int             `json:"payments" yaml:"payments"`
	Collected   decimal.Decimal `json:"collected" yaml:"collected"`
	PaidOut     decimal.Decimal `json:"paid_out" yaml:"paid_out"`
	Outstanding decimal.Decimal `json:"outstanding" yaml:"outstanding"`
}

type chitRow struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Status      string          `json:"status" yaml:"status"`
	Months      int             `json:"months" yaml:"months"`
	Members     int             `json:"members" yaml:"members"`
	Installment decimal.Decimal `json:"installment" yaml:"installment"`
	Collected   decimal.Decimal `json:"collected" yaml:"collected"`
	Outstanding decimal.Decimal `json:"outstanding" yaml:"outstanding"`
}

type memberRow struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Phone     string          `json:"phone,omitempty" yaml:"phone,omitempty"`
	Chits     []string        `json:"chits" yaml:"chits"`
	Collected decimal.Decimal `json:"collected" yaml:"collected"`
}

// listResult is the structured shape of every list. The printer sorts and
// limits Results.
type listResult[T any] struct {
	Results []T `json:"results" yaml:"results"`
	Total   int `json:"total" yaml:"total"`
	Page    int `json:"page" yaml:"page"`
}

func overview(b *book.Book) bookOverview {
	all := book.Filter{}
	return bookOverview{
		Name:        b.Name,
		Currency:    b.Currency,
		Chits:       len(b.Chits),
		Members:     len(b.Members),
		Collections: len(b.Collections),
		Payouts:     len(b.Payouts),
		Payments:    len(b.Payments),
		Collected:   b.CollectedTotal(all),
		PaidOut:     b.PaidOutTotal(all),
		Outstanding: b.Outstanding(all),
	}
}

// loadFiltered loads the book and checks the --chit/--member ids.
func loadFiltered(cmd *cobra.Command) (*book.Book, book.Filter, error) {
	b, err := loadBook(cmd)
	if err != nil {
		return nil, book.Filter{}, err
	}
	f := book.Filter{ChitID: listChit, MemberID: listMember}
	if f.ChitID != "" {
		if _, err := b.Chit(f.ChitID); err != nil {
			return nil, f, err
		}
	}
	if f.MemberID != "" {
		if _, err := b.Member(f.MemberID); err != nil {
			return nil, f, err
		}
	}
	return b, f, nil
}

// printList sorts, pages and prints items. Text output is a table built
// from cells.
func printList[T any](items []T, headers []string, cells func(T) []string) error {
	ctx := currentContext()
	if sorted, ok := output.ApplyAgentOptions(ctx, items).([]T); ok {
		items = sorted
	}
	pageItems, total, page := paginate(items, listPage, listPerPage)

	if structuredOutputRequested() {
		return printStructured(listResult[T]{Results: pageItems, Total: total, Page: page})
	}

	tbl := output.Table{Headers: headers}
	for _, it := range pageItems {
		tbl.Rows = append(tbl.Rows, cells(it))
	}
	return output.NewPrinter(stdoutFromContext(ctx), output.FormatTable).Print(ctx, tbl)
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
