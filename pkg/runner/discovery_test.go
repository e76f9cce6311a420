package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojs/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relPaths turns discovered absolute paths back into slash paths under dir.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	project := map[string]string{
		"index.js":                     "main();\n",
		"lib/util.mjs":                 "export {};\n",
		"lib/config.cjs":               "module.exports = {};\n",
		"lib/app.bundle.js":            "a();",
		"lib/view.jsx":                 "<div/>;\n",
		"test/cases/broken.js":         "function (\n",
		"node_modules/lodash/index.js": "module.exports = {};\n",
		"vendor/jquery.js":             "jQuery();\n",
		".eslintrc.js":                 "module.exports = {};\n",
		".cache/out.js":                "cached();\n",
		"bin/cli":                      "#!/usr/bin/env node\nrun();\n",
		"bin/setup":                    "#!/bin/sh\necho setup\n",
		"README.md":                    "# app\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults skip hidden and vendored",
			want: []string{"index.js", "lib/app.bundle.js", "lib/config.cjs", "lib/util.mjs", "test/cases/broken.js"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".JSX"}},
			want: []string{"lib/view.jsx"},
		},
		{
			name: "base name exclude",
			opts: runner.Options{ExcludeGlobs: []string{"*.bundle.js", "*.cjs"}},
			want: []string{"index.js", "lib/util.mjs", "test/cases/broken.js"},
		},
		{
			name: "recursive exclude",
			opts: runner.Options{ExcludeGlobs: []string{"**/cases/**"}},
			want: []string{"index.js", "lib/app.bundle.js", "lib/config.cjs", "lib/util.mjs"},
		},
		{
			name: "anchored exclude",
			opts: runner.Options{ExcludeGlobs: []string{"lib/*.js"}},
			want: []string{"index.js", "lib/config.cjs", "lib/util.mjs", "test/cases/broken.js"},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"lib/**"}},
			want: []string{"lib/app.bundle.js", "lib/config.cjs", "lib/util.mjs"},
		},
		{
			name: "include vendored",
			opts: runner.Options{IncludeVendored: true, IncludeGlobs: []string{"node_modules/**", "vendor/**"}},
			want: []string{"node_modules/lodash/index.js", "vendor/jquery.js"},
		},
		{
			name: "node scripts",
			opts: runner.Options{Paths: []string{"bin"}, DetectScripts: true},
			want: []string{"bin/cli"},
		},
		{
			name: "several roots",
			opts: runner.Options{Paths: []string{"test", "index.js"}},
			want: []string{"index.js", "test/cases/broken.js"},
		},
		{
			name: "duplicate arguments",
			opts: runner.Options{Paths: []string{"index.js", "./index.js", ".", "index.js"}, ExcludeGlobs: []string{"lib", "test"}},
			want: []string{"index.js"},
		},
		{
			name: "explicit vendored file",
			opts: runner.Options{Paths: []string{"node_modules/lodash/index.js"}},
			want: []string{"node_modules/lodash/index.js"},
		},
	}

	dir := t.TempDir()
	writeFiles(t, dir, project)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_AbsolutePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"b.js": "", "a.js": "", "z/c.js": ""})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "b.js"),
		filepath.Join(dir, "z", "c.js"),
	}, files)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": ""})

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real/doc.js": "doc();\n"})
	outside := t.TempDir()
	writeFiles(t, outside, map[string]string{"external.js": "ext();\n"})

	if err := os.Symlink(filepath.Join(dir, "real", "doc.js"), filepath.Join(dir, "link.js")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.js"), filepath.Join(dir, "dangling.js")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.js", "real/doc.js"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	resolved, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join(resolved, "external.js"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".js", ".mjs", ".cjs"}, runner.DefaultExtensions())
}
