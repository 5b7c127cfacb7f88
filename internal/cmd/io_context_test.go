package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

func TestIOFromContext_Defaults(t *testing.T) {
	contexts := map[string]context.Context{
		"nil":    nil,
		"empty":  context.Background(),
		"nil io": withIO(context.Background(), nil, nil, nil),
	}
	for name, ctx := range contexts {
		t.Run(name, func(t *testing.T) {
			if got := stdinFromContext(ctx); got != os.Stdin {
				t.Errorf("stdin = %v, want os.Stdin", got)
			}
			if got := stdoutFromContext(ctx); got != os.Stdout {
				t.Errorf("stdout = %v, want os.Stdout", got)
			}
			if got := stderrFromContext(ctx); got != os.Stderr {
				t.Errorf("stderr = %v, want os.Stderr", got)
			}
		})
	}
}

func TestIOFromContext_PartialOverride(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := withIO(context.Background(), nil, out, nil)

	if got := stdoutFromContext(ctx); got != out {
		t.Error("expected the provided stdout")
	}
	if got := stdinFromContext(ctx); got != os.Stdin {
		t.Error("expected os.Stdin for a missing stdin")
	}
	if got := stderrFromContext(ctx); got != os.Stderr {
		t.Error("expected os.Stderr for a missing stderr")
	}
}

func TestIOFromContext_BookFromStdin(t *testing.T) {
	withEnv(t, nil)

	cmd := withBookFlag(t, "-")
	var in io.Reader = strings.NewReader("name: Piped\nmembers:\n  - id: m1\n    name: Anand\n")
	cmd.SetContext(withIO(context.Background(), in, &bytes.Buffer{}, &bytes.Buffer{}))

	if got := stdinFromContext(cmd.Context()); got != in {
		t.Fatal("expected the command's stdin")
	}
	b, err := loadBook(cmd)
	if err != nil {
		t.Fatalf("loadBook: %v", err)
	}
	if b.Name != "Piped" {
		t.Errorf("book name = %q", b.Name)
	}
}
