package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// appName names the system and user config directories.
const appName = "gojs"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/gojs/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/gojs/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.gojsrc.yaml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// ESLint is a detected eslintrc file path, offered for migration.
	ESLint string
}

// projectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".gojsrc.yaml",
	".gojsrc.yml",
	".gojsrc.json",
	".gojsrc.toml",
}

// dirConfigFiles are the names looked up inside the system and user config dirs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

// eslintConfigFiles are the eslint config files detected for migration.
// The script forms cannot be converted but are still reported.
//
//nolint:gochecknoglobals // Read-only lookup table.
var eslintConfigFiles = []string{
	".eslintrc.json",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc",
	".eslintrc.js",
	".eslintrc.cjs",
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations.
// It searches for:
//   - System config at /etc/gojs/config.{yaml,yml,json,toml}
//   - User config at $XDG_CONFIG_HOME/gojs/config.{yaml,yml,json,toml}
//   - Project config by searching upward from workDir for .gojsrc.*
//   - An eslintrc in workDir for migration purposes
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{
		System: findSystemConfig(),
		User:   findUserConfig(),
	}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig

	paths.ESLint = FindESLintConfig(workDir)

	return paths, nil
}

// findSystemConfig returns the path to the system-wide config file, if it exists.
func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, appName))
	}
	return findConfigInDir(filepath.Join("/etc", appName))
}

// findUserConfig returns the path to the user-level config file, if it exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return findConfigInDir(filepath.Join(configHome, appName))
}

// findConfigInDir returns the first config file present in dir, or "".
func findConfigInDir(dir string) string {
	return firstExisting(dir, dirConfigFiles)
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if path := firstExisting(currentDir, projectConfigFiles); path != "" {
			return path, nil
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}
		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindESLintConfig returns the eslint config file in dir, or "".
func FindESLintConfig(dir string) string {
	return firstExisting(dir, eslintConfigFiles)
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsScriptConfig reports whether path is an eslint config written in
// JavaScript. Those cannot be converted and require user action.
func IsScriptConfig(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".cjs", ".mjs":
		return true
	}
	return strings.HasPrefix(filepath.Base(path), "eslint.config.")
}
