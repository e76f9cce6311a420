package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gojs/pkg/langdetect"
)

// Discover expands opts.Paths into the sorted, de-duplicated list of absolute
// JavaScript file paths to lint.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		workDir = "."
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		seen:       make(map[string]struct{}),
	}
	for _, p := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		if err := w.visitArg(filepath.Clean(p)); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

type walker struct {
	ctx        context.Context
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]struct{}
	files      []string
}

// visitArg handles one command-line path. A file named directly skips the
// vendored check; everything else still has to match.
func (w *walker) visitArg(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return w.walk(path)
	}
	if w.wantFile(path, true) {
		w.add(path)
	}
	return nil
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if cerr := w.ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || w.skipDir(path, path == root) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // dangling links are ignored
			}
			if target.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// WalkDir does not descend into links, so walk the target.
				resolved, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // dangling links are ignored
				}
				return w.walk(resolved)
			}
		}

		if w.wantFile(path, false) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

func (w *walker) rel(path string) string {
	if rel, err := filepath.Rel(w.workDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (w *walker) skipDir(path string, isRoot bool) bool {
	rel := w.rel(path)
	if matchAny(rel, w.opts.ExcludeGlobs) {
		return true
	}
	return !isRoot && !w.opts.IncludeVendored && langdetect.IsVendored(rel+"/")
}

func (w *walker) wantFile(path string, explicit bool) bool {
	if !w.hasExtension(path) && !(w.opts.DetectScripts && filepath.Ext(path) == "" && isNodeScript(path)) {
		return false
	}

	rel := w.rel(path)
	if !explicit && !w.opts.IncludeVendored && langdetect.IsVendored(rel) {
		return false
	}
	if matchAny(rel, w.opts.ExcludeGlobs) {
		return false
	}
	return len(w.opts.IncludeGlobs) == 0 || matchAny(rel, w.opts.IncludeGlobs)
}

func (w *walker) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(w.extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}

// isNodeScript reports whether an extensionless file starts with an
// interpreter line that runs JavaScript.
func isNodeScript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 256)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return langdetect.HasShebang(head[:n]) && langdetect.IsJavaScript(path, head[:n])
}

// matchAny matches rel against doublestar globs such as "*.min.js", "dist/**"
// or "**/fixtures/*". A pattern without a slash also matches the base name,
// the way .gitignore entries do.
func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, pathBase(rel)); ok {
				return true
			}
		}
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
