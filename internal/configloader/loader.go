// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and eslintrc migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gojs/internal/logging"
	"github.com/yaklabco/gojs/pkg/config"
	"github.com/yaklabco/gojs/pkg/lint"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// migratedConfigName is the file written when an eslintrc is converted.
const migratedConfigName = ".gojsrc.yaml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreESLint skips eslintrc detection and migration.
	IgnoreESLint bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// PromptOut and PromptIn carry the migration prompt. They default to
	// stdout and stdin.
	PromptOut io.Writer
	PromptIn  io.Reader

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if an eslintrc was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOJS_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gojsrc.* upward search)
//  5. User config ($XDG_CONFIG_HOME/gojs/config.*)
//  6. System config (/etc/gojs/config.*)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	if !opts.IgnoreESLint && !opts.IgnoreProjectConfig && opts.ExplicitPath == "" {
		migrated, err := handleESLintMigration(paths, result, opts, workDir)
		if err != nil {
			return nil, err
		}
		if migrated {
			paths.Project, err = FindProjectConfig(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
		}
	}

	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{name: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: opts.ExplicitPath},
	}
	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}
		layerCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		// Keys are made canonical per layer so that "no-undef" in one file and
		// "eslint/no-undef" in a later one land on the same entry.
		normalizeRuleKeys(layerCfg, lint.DefaultRegistry, result)
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldPath, layer.path, "layer", layer.name)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		normalizeRuleKeys(opts.CLIConfig, lint.DefaultRegistry, result)
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one configuration file, choosing the decoder from its
// extension.
func LoadFile(path string) (*config.Config, error) {
	format, err := config.FileFormatForPath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Decode(format, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}

	return cfg, nil
}

// handleESLintMigration offers to convert an eslintrc when no project config exists.
func handleESLintMigration(paths *ConfigPaths, result *LoadResult, opts LoadOptions, workDir string) (bool, error) {
	if paths.ESLint == "" {
		return false, nil
	}

	if paths.Project != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both %s and %s exist; using %s",
				filepath.Base(paths.Project), filepath.Base(paths.ESLint), filepath.Base(paths.Project)))
		return false, nil
	}

	if !CanMigrate(paths.ESLint) {
		result.Warnings = append(result.Warnings, GetMigrationWarning(paths.ESLint))
		return false, nil
	}

	if opts.NonInteractive || !isInteractive() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no %s; run 'gojs migrate' to convert",
				filepath.Base(paths.ESLint), migratedConfigName))
		return false, nil
	}

	out, in := opts.PromptOut, opts.PromptIn
	if out == nil {
		out = os.Stdout
	}
	if in == nil {
		in = os.Stdin
	}
	shouldMigrate, err := promptMigration(out, in, paths.ESLint)
	if err != nil || !shouldMigrate {
		return false, err
	}

	migration, err := ConvertESLintConfig(paths.ESLint)
	if err != nil {
		return false, fmt.Errorf("convert eslint config: %w", err)
	}
	result.Warnings = append(result.Warnings, migration.Warnings...)

	outputPath := filepath.Join(workDir, migratedConfigName)
	if err := WriteConfig(migration.Config, outputPath, GenerateMigrationHeader(paths.ESLint)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s; you can now delete the old file",
			filepath.Base(paths.ESLint), migratedConfigName))

	return true, nil
}

// promptMigration asks the user if they want to migrate.
func promptMigration(out io.Writer, in io.Reader, eslintPath string) (bool, error) {
	_, err := fmt.Fprintf(out, "Found %s but no %s\nConvert to gojs format? [Y/n] ",
		filepath.Base(eslintPath), migratedConfigName)
	if err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "" || response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to a YAML file with a header comment.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// normalizeRuleKeys rewrites rule names and aliases in one config to
// canonical IDs. When several keys name the same rule the canonical ID key
// wins, then the alphabetically last key, and a warning is recorded.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(cfg.Rules))
	normalized := make(map[string]config.RuleConfig, len(keys))
	owner := make(map[string]string, len(keys))

	for _, key := range keys {
		id := NormalizeRuleID(registry, key)
		if id == "" {
			id = key
		}
		if prev, dup := owner[id]; dup {
			winner := key
			if prev == id {
				winner = prev
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					prev, key, id, winner))
			if winner == prev {
				continue
			}
		}
		owner[id] = key
		normalized[id] = cfg.Rules[key]
	}

	cfg.Rules = normalized
}
