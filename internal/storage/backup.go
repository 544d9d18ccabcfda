package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrBackupExists is returned when the backup destination is already taken.
var ErrBackupExists = errors.New("backup already exists")

// BackupPath returns the default location for a backup taken now, next to the database.
func (s *SQLiteStorage) BackupPath(prefix string) string {
	dir := filepath.Join(filepath.Dir(s.dbPath), "backups")
	return filepath.Join(dir, fmt.Sprintf("%s-%s.db", prefix, time.Now().Format("2006-01-02-150405")))
}

// Backup writes a consistent copy of the database to destPath.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if s.dbPath == ":memory:" {
		return fmt.Errorf("cannot back up an in-memory database")
	}

	// destPath is interpolated into SQL below.
	if strings.ContainsAny(destPath, `'";`) {
		return fmt.Errorf("invalid backup path: contains forbidden characters")
	}
	if !filepath.IsAbs(destPath) || strings.Contains(destPath, "..") {
		return fmt.Errorf("invalid backup path: must be absolute")
	}
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, destPath)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	// #nosec G201 - destPath is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}

	slog.Info("Backed up roster database", "path", destPath)
	return nil
}
