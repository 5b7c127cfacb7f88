package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/salmonumbrella/chitbook/internal/book"
	"github.com/salmonumbrella/chitbook/internal/config"
)

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// resolveBookPath picks the book file with precedence flag > env > config.
func resolveBookPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if flagChanged(cmd, "book") && strings.TrimSpace(bookPath) != "" {
		return strings.TrimSpace(bookPath), nil
	}
	if v := strings.TrimSpace(envGet("CHITBOOK_BOOK")); v != "" {
		return v, nil
	}
	if cfg != nil && strings.TrimSpace(cfg.Book) != "" {
		return strings.TrimSpace(cfg.Book), nil
	}
	return "", book.ValidationError{
		Message: "book file required. Set CHITBOOK_BOOK, use --book, or run 'chitbook config set book <path>'",
	}
}

// loadBook resolves and loads the book for cmd. The path "-" reads the book
// from stdin.
func loadBook(cmd *cobra.Command) (*book.Book, error) {
	path, err := resolveBookPath(cmd, activeConfig)
	if err != nil {
		return nil, err
	}
	if path != "-" {
		return loadBookFunc(path)
	}

	stdin := stdinFromContext(cmd.Context())
	if !stdinHasData(stdin) {
		return nil, book.ValidationError{Message: "no book on stdin"}
	}
	data, err := readSource(path, stdin)
	if err != nil {
		return nil, err
	}
	return book.Parse(data)
}

// configValue returns the trimmed value of a config key, or "" without a config.
func configValue(cfg *config.Config, key string) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.Values()[key])
}

// logLevel picks the logger level: --debug wins over log_level, which wins
// over the warn default.
func logLevel(cfg *config.Config) (zapcore.Level, error) {
	if debug {
		return zapcore.DebugLevel, nil
	}
	name := configValue(cfg, "log_level")
	if name == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log_level %q: %w", name, err)
	}
	return level, nil
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
