package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/salmonumbrella/chitbook/internal/config"
	"github.com/salmonumbrella/chitbook/internal/output"
	"github.com/salmonumbrella/chitbook/internal/render/pdf"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/chitbook/config.yaml.

You can view, set, or unset config keys such as book, render, page_size,
orientation, font_family, output_format and log_level.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		if structuredOutputRequested() {
			return printStructured(cfg.Values())
		}

		w := stdoutFromContext(cmd.Context())
		values := cfg.Values()
		fmt.Fprintln(w, "Config:")
		for _, key := range config.Keys() {
			fmt.Fprintf(w, "  %s: %s\n", key, values[key])
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := config.Keys()

		if structuredOutputRequested() {
			return printStructured(keys)
		}

		w := stdoutFromContext(cmd.Context())
		fmt.Fprintln(w, "Supported keys:")
		for _, key := range keys {
			fmt.Fprintf(w, "  %s\n", key)
		}
		return nil
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

// validateConfigValue rejects values the commands reading the key would
// refuse later anyway.
func validateConfigValue(key, value string) error {
	switch key {
	case "render":
		if _, err := parseRenderKind(value); err != nil {
			return err
		}
	case "orientation":
		switch strings.ToLower(value) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("invalid orientation %q (expected portrait|landscape)", value)
		}
	case "page_size":
		if !pageSizeFits(renderPDF, value) && !pageSizeFits(renderText, value) {
			return fmt.Errorf("invalid page_size %q (expected %s or COLSxLINES)", value, strings.Join(pdf.PageSizes(), "|"))
		}
	case "output_format":
		if _, err := output.ParseFormat(value); err != nil {
			return err
		}
	case "log_level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", value, err)
		}
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := validateConfigValue(key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	fmt.Fprintf(stdoutFromContext(cmd.Context()), "Updated %s\n", key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := cfg.Unset(key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]string{
			"status": "unset",
			"key":    key,
		})
	}

	fmt.Fprintf(stdoutFromContext(cmd.Context()), "Unset %s\n", key)
	return nil
}
