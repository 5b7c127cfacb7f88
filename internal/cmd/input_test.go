package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	bookFile := filepath.Join(dir, "book.yaml")
	if err := os.WriteFile(bookFile, []byte("name: Deepam\n"), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}

	tests := []struct {
		name    string
		source  string
		stdin   string
		want    string
		wantErr string
	}{
		{name: "file", source: bookFile, want: "name: Deepam\n"},
		{name: "file path is trimmed", source: "  " + bookFile + " ", want: "name: Deepam\n"},
		{name: "stdin", source: "-", stdin: "name: Piped\n", want: "name: Piped\n"},
		{name: "stdin dash is trimmed", source: " - ", stdin: "x", want: "x"},
		{name: "empty", source: "  ", wantErr: "empty input source"},
		{name: "missing file", source: filepath.Join(dir, "nope.yaml"), wantErr: "failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSource(tt.source, strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.jq")
	if err := os.WriteFile(path, []byte("\n  .results[] | .name\n\n"), 0o644); err != nil {
		t.Fatalf("write query: %v", err)
	}

	got, err := readQuery(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ".results[] | .name" {
		t.Errorf("got %q", got)
	}

	got, err = readQuery("-", strings.NewReader(".chits\n"))
	if err != nil || got != ".chits" {
		t.Errorf("stdin query = %q, %v", got, err)
	}
}

func TestStdinHasData(t *testing.T) {
	if !stdinHasData(strings.NewReader("name: x")) {
		t.Error("expected true for a strings.Reader")
	}
	if !stdinHasData(&bytes.Buffer{}) {
		t.Error("expected true for a bytes.Buffer")
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer pr.Close()
	defer pw.Close()
	if !stdinHasData(pr) {
		t.Error("expected true for a pipe")
	}
}
