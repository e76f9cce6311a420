//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// fuzzTargets are run by test:fuzz, each for fuzzTime.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/codegen", "FuzzTokenAdjacency"},
	{"./pkg/codegen", "FuzzRoundTrip"},
	{"./pkg/fix", "FuzzPrepareAndApply"},
	{"./pkg/fix", "FuzzGenerateDiff"},
}

// Build compiles bin/gojs. The parser links tree-sitter, so cgo must be on.
func Build() error {
	rebuild, err := target.Dir("bin/gojs", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gojs is up to date")
		return nil
	}
	fmt.Println("Building gojs...")
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"},
		"go", "build", "-ldflags", ldflags(), "-o", "bin/gojs", "./cmd/gojs")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gojs")
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Default runs the race-enabled test suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose prints every test as it runs.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race")
}

// Fuzz runs each printer and fixer fuzz target for
// STAVE_FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("STAVE_FUZZTIME"), "30s")
	for _, f := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", f.pkg, f.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+f.name+"$", "-fuzztime", fuzzTime, f.pkg); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Bench runs the printer benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/codegen")
}

func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}, args...)
	return sh.RunV("go", append(cmdArgs, "./...")...)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate is what CI runs: formatting, vet, lint, build, tests and a tidy module.
func (CI) Gate() error {
	st.SerialDeps(CI.FmtCheck, CI.Vet, CI.Lint, Build, Test.Default, CI.ModTidy)
	fmt.Println("All CI gate checks passed")
	return nil
}

func (CI) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'; commit the result")
	}
	return nil
}

func readModFiles() ([]byte, error) {
	var all []byte
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		all = append(all, data...)
	}
	return all, nil
}

func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
