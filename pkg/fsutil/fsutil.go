// Package fsutil reads JavaScript sources and writes fixed sources and
// generated output back to disk without leaving partial files behind.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileMode is used for files that did not exist before the write.
const DefaultFileMode os.FileMode = 0o644

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// Snapshot records a source file as it was when it was read, so a later write
// can tell whether someone else touched the file in between.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte

	content []byte
}

// Content returns the bytes that were read.
func (s *Snapshot) Content() []byte { return s.content }

// Read loads path and takes its snapshot.
func Read(ctx context.Context, path string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Snapshot{
		Path:    path,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
		content: content,
	}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	}
	return fmt.Errorf("read %s: %w", path, err)
}

// Changed reports whether the file on disk differs from the snapshot. A file
// that was removed counts as changed. With strict set, matching size and
// mtime are confirmed by hashing the current content.
func (s *Snapshot) Changed(ctx context.Context, strict bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if stat.Size() != s.Size || !stat.ModTime().Equal(s.ModTime) {
		return true, nil
	}
	if !strict {
		return false, nil
	}

	current, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(current) != s.Hash, nil
}

// WriteAtomic replaces path with content through a temporary file in the same
// directory. A zero mode keeps the mode of an existing file, or falls back to
// DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
		if stat, err := os.Stat(path); err == nil {
			mode = stat.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	err = writeAndClose(tmp, content)
	if err == nil {
		err = os.Chmod(tmpPath, mode)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeAndClose(f *os.File, content []byte) error {
	_, err := f.Write(content)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteGenerated writes generated code and, when sourceMap is non-empty, its
// source map to mapPath. The map goes first so the code never points at a map
// that is missing or stale. Unchanged files are left alone.
func WriteGenerated(ctx context.Context, codePath string, code []byte, mapPath string, sourceMap []byte) error {
	if len(sourceMap) > 0 {
		if err := writeIfChanged(ctx, mapPath, sourceMap); err != nil {
			return err
		}
	}
	return writeIfChanged(ctx, codePath, code)
}

func writeIfChanged(ctx context.Context, path string, content []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return nil
	}
	return WriteAtomic(ctx, path, content, 0)
}
