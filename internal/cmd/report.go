package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/salmonumbrella/chitbook/internal/layout"
	"github.com/salmonumbrella/chitbook/internal/output"
	"github.com/salmonumbrella/chitbook/internal/render"
	"github.com/salmonumbrella/chitbook/internal/render/pdf"
	"github.com/salmonumbrella/chitbook/internal/render/text"
	"github.com/salmonumbrella/chitbook/internal/reports"
)

const (
	renderPDF  = "pdf"
	renderText = "text"
)

type reportOptions struct {
	chit        string
	member      string
	out         string
	render      string
	pageSize    string
	orientation string
	fontFamily  string
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report <kind>",
	Short: "Render a report from the book",
	Long: `Render one of the book's reports as a PDF or a plain text preview.

Kinds:
  chit         statement of one chit (--chit)
  member       statement of one member (--member)
  collections  collection ledger, optionally filtered by --chit/--member
  payouts      payout ledger, optionally filtered by --chit/--member
  payments     payment register, optionally filtered by --chit/--member
  directory    member directory, optionally limited to --chit

The rendered report goes to --out (or stdout). A summary of the pages
follows on stdout when the report is written to a file.

Page sizes are a3|a4|a5|letter|legal for PDF and COLSxLINES (default
96x60) for text.`,
	Example: `  chitbook report chit --chit c1 --out deepam.pdf
  chitbook report payouts --render text
  chitbook report directory --page-size letter --orientation landscape --out directory.pdf -o json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: reports.Kinds(),
	RunE:      runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportOpts.chit, "chit", "", "Chit id")
	f.StringVar(&reportOpts.member, "member", "", "Member id")
	f.StringVar(&reportOpts.out, "out", "", "Output file (default: stdout)")
	f.StringVar(&reportOpts.render, "render", "", "Renderer (pdf|text)")
	f.StringVar(&reportOpts.pageSize, "page-size", "", "Page size")
	f.StringVar(&reportOpts.orientation, "orientation", "", "Page orientation (portrait|landscape)")
	f.StringVar(&reportOpts.fontFamily, "font", "", "PDF font family (Helvetica|Times|Courier)")

	rootCmd.AddCommand(reportCmd)
}

// reportSummary describes a rendered report.
type reportSummary struct {
	ID      string    `json:"id" yaml:"id"`
	Report  string    `json:"report" yaml:"report"`
	Title   string    `json:"title" yaml:"title"`
	Render  string    `json:"render" yaml:"render"`
	Output  string    `json:"output" yaml:"output"`
	Created time.Time `json:"created" yaml:"created"`

	reports.Stats `yaml:",inline"`
}

func parseRenderKind(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case renderPDF:
		return renderPDF, nil
	case renderText:
		return renderText, nil
	default:
		return "", fmt.Errorf("invalid --render %q (expected pdf|text)", s)
	}
}

func parseOrientation(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "portrait":
		return "portrait", nil
	case "landscape":
		return "landscape", nil
	default:
		return "", fmt.Errorf("invalid --orientation %q (expected portrait|landscape)", s)
	}
}

// parseTextPageSize reads "COLSxLINES". An empty string keeps the defaults.
func parseTextPageSize(s string) (int, int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, nil
	}
	cols, lines, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if ok {
		c, errC := strconv.Atoi(cols)
		l, errL := strconv.Atoi(lines)
		if errC == nil && errL == nil && c > 0 && l > 0 {
			return c, l, nil
		}
	}
	return 0, 0, fmt.Errorf("invalid text page size %q (expected COLSxLINES, e.g. 96x60)", s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// resolveRenderKind picks the renderer: --render > config > pdf for a file,
// text for stdout.
func resolveRenderKind(toStdout bool) (string, error) {
	fallback := renderPDF
	if toStdout {
		fallback = renderText
	}
	return parseRenderKind(firstNonEmpty(reportOpts.render, configValue(activeConfig, "render"), fallback))
}

// pageSizeFits reports whether size names a page size of the renderer kind.
func pageSizeFits(kind, size string) bool {
	if kind == renderText {
		_, _, err := parseTextPageSize(size)
		return err == nil
	}
	return pdf.KnownPageSize(size)
}

// resolvePageSize prefers --page-size. The configured page_size is shared by
// both renderers, so it only applies to the one it names a size for.
func resolvePageSize(kind string, log *zap.Logger) string {
	if size := strings.TrimSpace(reportOpts.pageSize); size != "" {
		return size
	}
	size := configValue(activeConfig, "page_size")
	if size == "" || pageSizeFits(kind, size) {
		return size
	}
	log.Debug("configured page_size does not apply to renderer",
		zap.String("page_size", size), zap.String("render", kind))
	return ""
}

func newBackend(kind string, styled bool, log *zap.Logger) (render.Backend, error) {
	pageSize := resolvePageSize(kind, log)
	orientation, err := parseOrientation(firstNonEmpty(reportOpts.orientation, configValue(activeConfig, "orientation")))
	if err != nil {
		return nil, err
	}

	switch kind {
	case renderText:
		cols, lines, err := parseTextPageSize(pageSize)
		if err != nil {
			return nil, err
		}
		return text.New(
			text.WithPageSize(cols, lines),
			text.WithStyled(styled),
			text.WithLogger(log),
		), nil
	default:
		return pdf.New(
			pdf.WithPageSize(pageSize),
			pdf.WithOrientation(orientation),
			pdf.WithFontFamily(firstNonEmpty(reportOpts.fontFamily, configValue(activeConfig, "font_family"))),
			pdf.WithLogger(log),
		)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := loggerFromContext(ctx)
	stdout := stdoutFromContext(ctx)

	toStdout := reportOpts.out == "" || reportOpts.out == "-"
	kind, err := resolveRenderKind(toStdout)
	if err != nil {
		return err
	}
	if toStdout && kind == renderPDF && isTerminal(stdout) {
		return errors.New("refusing to write a PDF to the terminal; use --out or redirect stdout")
	}

	b, err := loadBook(cmd)
	if err != nil {
		return err
	}

	backend, err := newBackend(kind, toStdout && isTerminal(stdout), log)
	if err != nil {
		return err
	}

	created := now()
	rep, err := reports.Build(args[0], b, reports.Params{
		ChitID:       reportOpts.chit,
		MemberID:     reportOpts.member,
		Generated:    created,
		Spacing:      backend.Spacing(),
		FooterHeight: backend.FooterHeight(),
	})
	if err != nil {
		return err
	}

	id := newReportID()
	log = log.With(zap.String("report_id", id), zap.String("report", rep.Kind), zap.String("render", kind))

	res, err := backend.Engine(log).Compose(rep.Document)
	if err != nil {
		return fmt.Errorf("compose %s report: %w", rep.Kind, err)
	}

	meta := render.Meta{ID: id, Title: rep.Title, Subject: rep.Subject, Created: created}
	dest := "-"
	if toStdout {
		if err := backend.Render(stdout, res, meta); err != nil {
			return err
		}
	} else {
		dest = reportOpts.out
		if err := writeReportFile(dest, backend, res, meta); err != nil {
			return err
		}
	}

	summary := reportSummary{
		ID:      id,
		Report:  rep.Kind,
		Title:   rep.Title,
		Render:  kind,
		Output:  dest,
		Created: created,
		Stats:   reports.Summarize(res),
	}
	log.Info("report rendered",
		zap.String("output", dest),
		zap.Int("pages", summary.Pages),
		zap.Int("passes", summary.Passes),
		zap.Int("overflows", summary.Overflows),
	)

	// The artifact owns stdout.
	if toStdout {
		return nil
	}
	if structuredOutputRequested() {
		return printStructured(summary)
	}
	return printReportSummary(stdout, summary)
}

// writeReportFile renders into path, removing a partial file on failure.
func writeReportFile(path string, backend render.Backend, res *layout.Result, meta render.Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := backend.Render(f, res, meta); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func printReportSummary(w io.Writer, s reportSummary) error {
	if _, err := fmt.Fprintf(w, "Wrote %s report %q to %s\n", s.Report, s.Title, s.Output); err != nil {
		return err
	}
	if output.QuietFromContext(currentContext()) {
		return nil
	}
	fmt.Fprintf(w, "  id: %s\n", s.ID)
	fmt.Fprintf(w, "  render: %s\n", s.Render)
	fmt.Fprintf(w, "  pages: %d (passes: %d, overflows: %d)\n", s.Pages, s.Passes, s.Overflows)
	for _, p := range s.PerPage {
		fmt.Fprintf(w, "  page %d: %d header rows, %d data rows\n", p.Page, p.Headers, p.Rows)
	}
	return nil
}
