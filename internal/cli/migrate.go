package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/configloader"
	"github.com/yaklabco/gojs/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert an eslintrc configuration to gojs format",
		Long: `Convert an existing eslint configuration file (.eslintrc.json,
.eslintrc.yaml, .eslintrc, etc.) to gojs format (.gojsrc.yaml).

Rules, globals, env, settings and ignorePatterns carry over. Known shareable
configs in "extends" map to the built-in rule packs; other keys are reported
and skipped.

If no input file is specified, the command searches the current directory.
JavaScript configuration files (.eslintrc.js, eslint.config.js) cannot be
converted automatically and require manual migration.

Examples:
  gojs migrate                        Auto-detect and convert the eslint config
  gojs migrate .eslintrc.json         Convert a specific file
  gojs migrate --output config.yaml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".gojsrc.yaml", "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.FromContext(cmd.Context())

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindESLintConfig(cwd)
		if inputPath == "" {
			return errors.New("no eslint configuration file found in current directory")
		}

		logger.Info("found eslint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(inputPath))
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertESLintConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result.Config, absOutput,
		configloader.GenerateMigrationHeader(inputPath)); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
