package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gojs configuration file",
		Long: `Create a new .gojsrc.yaml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable rules,
change severities, declare globals and enable environments.

Examples:
  gojs init                       Create minimal .gojsrc.yaml
  gojs init --full                Create full config with all rules documented
  gojs init --format toml         Create .gojsrc.toml instead
  gojs init --pack strict         Start from the strict rule pack
  gojs init --output custom.yaml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml, json or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gojsrc.<format>)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Rule pack to start from: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	format := config.FileFormat(flags.format)
	switch format {
	case config.FileFormatYAML, config.FileFormatJSON, config.FileFormatTOML:
	default:
		return fmt.Errorf("invalid format %q: must be yaml, json or toml", flags.format)
	}

	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: format,
	}
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("unknown pack %q: must be one of %s",
				flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Rules = pack.Rules
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gojsrc." + flags.format
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'gojs rules' to see all available rules")

	return nil
}
