package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readSource reads a file, or stdin when source is "-".
func readSource(source string, stdin io.Reader) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("empty input source")
	}
	if source != "-" {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		return data, nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// readQuery loads a --query-file. Surrounding whitespace is dropped.
func readQuery(source string, stdin io.Reader) (string, error) {
	data, err := readSource(source, stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// stdinHasData reports whether r can be read without waiting on a
// terminal. Readers that are not files always can.
func stdinHasData(r io.Reader) bool {
	if r == nil {
		r = os.Stdin
	}
	file, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
