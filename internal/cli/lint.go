package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojs/internal/configloader"
	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
	_ "github.com/yaklabco/gojs/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gojs/pkg/reporter"
	"github.com/yaklabco/gojs/pkg/runner"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format          string
	ignore          []string
	enable          []string
	disable         []string
	fixRules        []string
	rules           []string
	envs            []string
	globals         []string
	strict          bool
	noContext       bool
	compact         bool
	detectScripts   bool
	includeVendored bool
	ruleFormat      string
	summaryOrder    string
	profile         profileFlags
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := flags.profile.start()
			if err != nil {
				return err
			}
			defer stop()

			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint JavaScript files for correctness and documentation issues.

By default, lints all .js, .mjs and .cjs files in the current directory
and subdirectories. Specify paths to lint specific files or directories.
Inline comments such as "// eslint-disable-next-line no-undef" suppress
findings on the lines they cover.

Examples:
  gojs lint                            # Lint current directory
  gojs lint src/                       # Lint src directory
  gojs lint app.js                     # Lint single file
  gojs lint --fix                      # Lint and auto-fix issues
  gojs lint --fix --dry-run            # Show fixes without applying
  gojs lint --format sarif             # Output SARIF for code scanning
  gojs lint --rule no-undef=warn       # Override a rule's severity
  gojs lint --env node --global app    # Declare globals
  gojs lint --strict                   # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if err := applyLintFlags(cfg, flags); err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		PromptOut:    cmd.ErrOrStderr(),
		PromptIn:     cmd.InOrStdin(),
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	registry := lint.DefaultRegistry
	lintRunner := runner.New(lint.NewPipeline(lint.NewEngine(registry)))

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      finalCfg.Extensions,
		DetectScripts:   flags.detectScripts,
		IncludeVendored: flags.includeVendored,
		ExcludeGlobs:    finalCfg.Ignore,
		Jobs:            finalCfg.Jobs,
		Config:          finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   config.RuleFormat(flags.ruleFormat),
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
		Registry:     registry,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("lint run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

// applyLintFlags maps string flags onto typed config values. Only values the
// user provided end up set, so config files still apply underneath.
func applyLintFlags(cfg *config.Config, flags *lintFlags) error {
	cfg.Format = config.OutputFormat(flags.format)
	cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	for _, entry := range flags.rules {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --rule %q: expected name=severity", entry)
		}
		severity, err := config.ParseSeverity(value)
		if err != nil {
			return fmt.Errorf("invalid --rule %q: %w", entry, err)
		}
		if cfg.Rules == nil {
			cfg.Rules = make(map[string]config.RuleConfig)
		}
		cfg.Rules[name] = config.RuleConfig{Severity: severity}
	}

	for _, env := range flags.envs {
		if cfg.Env == nil {
			cfg.Env = make(map[string]bool)
		}
		cfg.Env[env] = true
	}

	for _, entry := range flags.globals {
		name, value, ok := strings.Cut(entry, ":")
		global := config.GlobalReadonly
		if ok {
			parsed, err := config.ParseGlobalValue(value)
			if err != nil {
				return fmt.Errorf("invalid --global %q: %w", entry, err)
			}
			global = parsed
		}
		if cfg.Globals == nil {
			cfg.Globals = make(map[string]config.GlobalValue)
		}
		cfg.Globals[name] = global
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil, "set a rule severity, as name=off|warn|error")
	cmd.Flags().StringSliceVar(&flags.envs, "env", nil, "enable predefined globals, e.g. browser, node")
	cmd.Flags().StringSliceVar(&flags.globals, "global", nil, "declare a global, as name or name:writable")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.detectScripts, "detect-scripts", false,
		"also lint extensionless files with a node interpreter line")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"lint vendored paths such as node_modules")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")

	flags.profile.register(cmd)
}
