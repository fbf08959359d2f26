package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"serverpanel/internal/model"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the CLI may write while a TUI session holds the file open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS servers (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			hostname TEXT NOT NULL,
			port TEXT,
			label TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_servers_position ON servers(position);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := ensureMetaULID(ctx, db, "store_id")
	return err
}

func ensureMetaULID(ctx context.Context, db *sql.DB, key string) (string, error) {
	v, err := metaValue(ctx, db, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) != "" {
		return v, nil
	}
	v = ulid.Make().String()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, v); err != nil {
		return "", err
	}
	return v, nil
}

// StoreID returns the stable identifier of this store (created on first open).
func (s Store) StoreID(ctx context.Context) (string, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", err
	}
	defer db.Close()
	return ensureMetaULID(ctx, db, "store_id")
}

// LoadServers returns the persisted servers in stored order.
//
// If the SQLite state has never held data and a legacy servers.json exists in Dir, it is
// imported once and then loaded from SQLite.
func (s Store) LoadServers(ctx context.Context) ([]model.ServerEntry, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM servers`).Scan(&n); err != nil {
		return nil, err
	}
	done, err := metaValue(ctx, db, "legacy_imported")
	if err != nil {
		return nil, err
	}
	if n == 0 && done == "" {
		imported, err := s.importLegacyJSON(ctx, db)
		if err != nil {
			return nil, err
		}
		if imported > 0 {
			glog.Infof("store: imported %d servers from %s", imported, s.legacyJSONPath())
		}
	}

	return loadServersFromSQLite(ctx, db)
}

func loadServersFromSQLite(ctx context.Context, db *sql.DB) ([]model.ServerEntry, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, hostname, port, label FROM servers ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ServerEntry{}
	for rows.Next() {
		var e model.ServerEntry
		var port sql.NullString
		if err := rows.Scan(&e.ID, &e.Hostname, &port, &e.Label); err != nil {
			return nil, err
		}
		if port.Valid {
			p := port.String
			e.Port = &p
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveServers replaces the persisted collection with entries, keeping their order.
func (s Store) SaveServers(ctx context.Context, entries []model.ServerEntry) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return saveServersTx(ctx, db, entries)
}

func saveServersTx(ctx context.Context, db *sql.DB, entries []model.ServerEntry) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all: collections are tens of rows.
	if _, err := tx.ExecContext(ctx, `DELETE FROM servers`); err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()
	for i, e := range entries {
		var port any
		if e.Port != nil {
			port = *e.Port
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO servers(id, position, hostname, port, label, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Hostname, port, e.Label, nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) importLegacyJSON(ctx context.Context, db *sql.DB) (int, error) {
	b, err := os.ReadFile(s.legacyJSONPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return 0, nil
	}
	legacy, err := ParseLegacyServers(b)
	if err != nil {
		return 0, err
	}
	AssignMissingIDs(legacy)
	if err := saveServersTx(ctx, db, legacy); err != nil {
		return 0, err
	}
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, "legacy_imported", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, err
	}
	return len(legacy), nil
}

func metaValue(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}
