package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes the backup next to the source as name.js.gojs.bak.
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix is appended to a source path to name its sidecar backup.
const BackupSuffix = ".gojs.bak"

// BackupConfig controls whether fixed files are backed up first.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath names the sidecar backup of path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup saves the snapshot's content beside the source before the first
// fix overwrites it. An existing backup is kept, so repeated runs never lose
// the pre-fix source. It reports whether a backup was written.
func CreateBackup(ctx context.Context, snap *Snapshot, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}

	backup := BackupPath(snap.Path)
	_, err := os.Stat(backup)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backup, snap.content, snap.Mode); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}
	return true, nil
}
