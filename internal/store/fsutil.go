package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dest, creating dest's directory.
func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Backup copies the SQLite file to servers.sqlite.bak. A store that was never written has
// nothing to back up and reports ok=false.
//
// The WAL is checkpointed into the main file first, so the copy holds every committed write
// even while another connection keeps the store open.
func (s Store) Backup(ctx context.Context) (path string, ok bool, err error) {
	src := s.sqlitePath()
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()
	var busy, logFrames, checkpointed int
	if err := db.QueryRowContext(ctx, `PRAGMA wal_checkpoint(FULL)`).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return "", false, err
	}
	if busy != 0 {
		return "", false, fmt.Errorf("backup: %s is busy, try again", src)
	}

	dest := src + ".bak"
	if err := CopyFile(src, dest); err != nil {
		return "", false, err
	}
	return dest, true, nil
}

// SQLitePath is the location of the store's database file.
func (s Store) SQLitePath() string { return s.sqlitePath() }
