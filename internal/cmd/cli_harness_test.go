package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const sampleBook = "../book/testdata/sample.yaml"

type cliRun struct {
	out    *bytes.Buffer
	errBuf *bytes.Buffer
	err    error
}

// runCLI executes the root command with args against an empty config file
// and no environment.
func runCLI(t *testing.T, args ...string) cliRun {
	t.Helper()
	return runCLIWithConfig(t, "", args...)
}

// runCLIWithConfig is runCLI with cfgYAML as the config file contents.
func runCLIWithConfig(t *testing.T, cfgYAML string, args ...string) cliRun {
	t.Helper()
	return runCLIWithInput(t, cfgYAML, "", args...)
}

// runCLIWithInput also feeds stdin to the command.
func runCLIWithInput(t *testing.T, cfgYAML, stdin string, args ...string) cliRun {
	t.Helper()
	restore := snapshotCLIState()
	t.Cleanup(restore)

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := bytes.NewBufferString(stdin)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	rootCmd.SetContext(withIO(context.Background(), in, out, errBuf))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	prevEnvGet := envGet
	envGet = func(key string) string {
		return ""
	}
	prevID := newReportID
	newReportID = func() string { return "rpt-0001" }
	prevNow := now
	now = func() time.Time { return time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		envGet = prevEnvGet
		newReportID = prevID
		now = prevNow
	})

	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := Execute()
	return cliRun{out: out, errBuf: errBuf, err: err}
}

func TestCLIHarnessReportToFileJSON(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "collections.txt")
	run := runCLI(t, "--book", sampleBook, "--output", "json",
		"report", "collections", "--render", "text", "--page-size", "96x20", "--out", dest)
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}

	var summary struct {
		ID      string `json:"id"`
		Report  string `json:"report"`
		Render  string `json:"render"`
		Output  string `json:"output"`
		Pages   int    `json:"pages"`
		Passes  int    `json:"passes"`
		PerPage []struct {
			Page    int `json:"page"`
			Headers int `json:"headers"`
			Rows    int `json:"rows"`
		} `json:"per_page"`
	}
	if err := json.Unmarshal(run.out.Bytes(), &summary); err != nil {
		t.Fatalf("parse output: %v\n%s", err, run.out.String())
	}
	if summary.ID != "rpt-0001" || summary.Report != "collections" || summary.Render != "text" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Output != dest {
		t.Fatalf("expected output %q, got %q", dest, summary.Output)
	}
	if summary.Pages < 1 || len(summary.PerPage) != summary.Pages || summary.Passes < 2 {
		t.Fatalf("unexpected page stats: %+v", summary)
	}
	rows := 0
	for _, p := range summary.PerPage {
		rows += p.Rows
	}
	if rows != 6 {
		t.Fatalf("expected 6 collection rows across pages, got %d", rows)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "Collection ledger\n--- page 1 ---\n") {
		t.Fatalf("unexpected report start: %q", text)
	}
	if !strings.Contains(text, "Page 1 of ") {
		t.Fatalf("expected a page footer in %q", text)
	}
}

func TestCLIHarnessReportPDF(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "chit.pdf")
	run := runCLI(t, "--book", sampleBook, "-o", "yaml",
		"report", "chit", "--chit", "c1", "--page-size", "letter", "--orientation", "landscape", "--out", dest)
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	if !strings.Contains(run.out.String(), "render: pdf") {
		t.Fatalf("expected yaml summary, got %q", run.out.String())
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected a PDF file, got %q", data[:min(len(data), 16)])
	}
	if !bytes.Contains(data, []byte("report-id:rpt-0001")) {
		t.Fatal("expected the report id in the PDF keywords")
	}
}

func TestCLIHarnessReportToStdout(t *testing.T) {
	run := runCLI(t, "--book", sampleBook, "-o", "text", "report", "payouts")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	got := run.out.String()
	if !strings.HasPrefix(got, "Payout ledger\n--- page 1 ---\n") {
		t.Fatalf("expected a text report on stdout, got %q", got)
	}
	if strings.Contains(got, "rpt-0001") {
		t.Fatal("summary must not be mixed into the report")
	}
}

func TestCLIHarnessConfiguredPDFPageSizeSkipsText(t *testing.T) {
	run := runCLIWithConfig(t, "page_size: letter\n", "--book", sampleBook, "-o", "text", "report", "payouts")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	if !strings.HasPrefix(run.out.String(), "Payout ledger\n--- page 1 ---\n") {
		t.Fatalf("expected a text report on stdout, got %q", run.out.String())
	}
}

func TestCLIHarnessConfiguredTextPageSizeSkipsPDF(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "payouts.pdf")
	run := runCLIWithConfig(t, "page_size: 120x40\n", "--book", sampleBook, "-o", "json", "report", "payouts", "--out", dest)
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	if !strings.Contains(run.out.String(), `"render":"pdf"`) && !strings.Contains(run.out.String(), `"render": "pdf"`) {
		t.Fatalf("expected a pdf summary, got %q", run.out.String())
	}
}

func TestCLIHarnessBookFromStdin(t *testing.T) {
	data, err := os.ReadFile(sampleBook)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	run := runCLIWithInput(t, "", string(data), "--book", "-", "-o", "json", "--query", ".chits", "book", "show")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	if strings.TrimSpace(run.out.String()) != "2" {
		t.Fatalf("expected 2 chits, got %q", run.out.String())
	}
}

func TestCLIHarnessReportErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantType string
	}{
		{"unknown chit", []string{"--book", sampleBook, "report", "chit", "--chit", "c9", "--render", "text"}, "not_found"},
		{"unknown kind", []string{"--book", sampleBook, "report", "ledger", "--render", "text"}, "validation"},
		{"no book", []string{"report", "directory", "--render", "text"}, "validation"},
		{"missing book file", []string{"--book", "does-not-exist.yaml", "report", "directory", "--render", "text"}, "not_found"},
		{"bad page size", []string{"--book", sampleBook, "report", "directory", "--page-size", "b5", "--out", "unused.pdf"}, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := runCLI(t, append([]string{"--output", "json"}, tt.args...)...)
			if run.err == nil {
				t.Fatal("expected an error")
			}
			var envelope struct {
				Error struct {
					Type     string `json:"type"`
					Category string `json:"category"`
				} `json:"error"`
			}
			if err := json.Unmarshal(run.errBuf.Bytes(), &envelope); err != nil {
				t.Fatalf("parse stderr: %v\n%s", err, run.errBuf.String())
			}
			if envelope.Error.Type != tt.wantType || envelope.Error.Category != "user" {
				t.Fatalf("unexpected envelope %+v", envelope.Error)
			}
		})
	}
}

func TestCLIHarnessBookMembersSorted(t *testing.T) {
	run := runCLI(t, "--book", sampleBook, "-o", "json",
		"--result-sort-by", "name", "--result-desc", "--result-limit", "2", "book", "members")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}

	var list struct {
		Results []struct {
			Name  string   `json:"name"`
			Chits []string `json:"chits"`
		} `json:"results"`
	}
	if err := json.Unmarshal(run.out.Bytes(), &list); err != nil {
		t.Fatalf("parse output: %v\n%s", err, run.out.String())
	}
	var names []string
	for _, r := range list.Results {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "Ezhil M,Dinesh P" {
		t.Fatalf("unexpected members %v", names)
	}
}

func TestCLIHarnessBookPayoutsTable(t *testing.T) {
	run := runCLI(t, "--book", sampleBook, "-o", "table", "book", "payouts", "--chit", "c1")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	lines := strings.Split(strings.TrimSpace(run.out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two payouts, got %q", run.out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "BALANCE") {
		t.Fatalf("unexpected header %q", lines[0])
	}
}

func TestCLIHarnessQuery(t *testing.T) {
	run := runCLI(t, "--book", sampleBook, "-o", "json", "--query", ".chits", "book", "show")
	if run.err != nil {
		t.Fatalf("execute: %v (stderr %q)", run.err, run.errBuf.String())
	}
	if strings.TrimSpace(run.out.String()) != "2" {
		t.Fatalf("expected 2 chits, got %q", run.out.String())
	}
}

func TestCLIHarnessVersion(t *testing.T) {
	run := runCLI(t, "-o", "text", "version")
	if run.err != nil {
		t.Fatalf("execute: %v", run.err)
	}
	if !strings.HasPrefix(run.out.String(), "chitbook version ") {
		t.Fatalf("unexpected version output %q", run.out.String())
	}
}

func snapshotCLIState() func() {
	prevBook := bookPath
	prevOutputFmt := outputFmt
	prevOutputType := outputType
	prevDebug := debug
	prevConfig := configFile
	prevQueryExpr := queryExpr
	prevQueryFile := queryFile
	prevErrorFmt := errorFmt
	prevQuiet := quietFlag
	prevResultLimit := resultLimit
	prevResultSort := resultSort
	prevResultDesc := resultDesc
	prevActiveConfig := activeConfig
	prevLogger := logger
	prevReportOpts := reportOpts
	prevListPage := listPage
	prevListPerPage := listPerPage
	prevListChit := listChit
	prevListMember := listMember

	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()
	prevIn := rootCmd.InOrStdin()
	prevCtx := rootCmd.Context()

	return func() {
		bookPath = prevBook
		outputFmt = prevOutputFmt
		outputType = prevOutputType
		debug = prevDebug
		configFile = prevConfig
		queryExpr = prevQueryExpr
		queryFile = prevQueryFile
		errorFmt = prevErrorFmt
		quietFlag = prevQuiet
		resultLimit = prevResultLimit
		resultSort = prevResultSort
		resultDesc = prevResultDesc
		activeConfig = prevActiveConfig
		logger = prevLogger
		if logger == nil {
			logger = zap.NewNop()
		}
		reportOpts = prevReportOpts
		listPage = prevListPage
		listPerPage = prevListPerPage
		listChit = prevListChit
		listMember = prevListMember

		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetIn(prevIn)
		rootCmd.SetContext(prevCtx)
		rootCmd.SetArgs(nil)
		resetFlagChanges(rootCmd)
	}
}

// resetFlagChanges clears Changed on cmd and every subcommand so one
// harness run cannot leak flags into the next.
func resetFlagChanges(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlagChanges(sub)
	}
}
