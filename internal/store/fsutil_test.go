package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"serverpanel/internal/model"

	"github.com/go-playground/assert/v2"
)

func TestBackup_NothingToBackUp(t *testing.T) {
	t.Parallel()

	_, ok, err := Store{Dir: t.TempDir()}.Backup(context.Background())
	if err != nil || ok {
		t.Fatalf("expected no backup for a fresh dir, got ok=%v err=%v", ok, err)
	}
}

func TestBackup_CopiesSQLiteFile(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	if err := s.SaveServers(context.Background(), []model.ServerEntry{{ID: "0", Hostname: "h"}}); err != nil {
		t.Fatalf("SaveServers: %v", err)
	}
	path, ok, err := s.Backup(context.Background())
	if err != nil || !ok {
		t.Fatalf("Backup: ok=%v err=%v", ok, err)
	}
	if path != s.SQLitePath()+".bak" {
		t.Fatalf("unexpected backup path %q", path)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		t.Fatalf("expected non-empty backup, err=%v", err)
	}
}

func TestBackup_IncludesWritesStillInTheWAL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("openSQLite: %v", err)
	}
	defer db.Close()
	want := []model.ServerEntry{{ID: "0", Hostname: "a"}, {ID: "1", Hostname: "b"}}
	if err := saveServersTx(ctx, db, want); err != nil {
		t.Fatalf("saveServersTx: %v", err)
	}

	path, ok, err := s.Backup(ctx)
	if err != nil || !ok {
		t.Fatalf("Backup: ok=%v err=%v", ok, err)
	}

	restored := Store{Dir: t.TempDir()}
	if err := CopyFile(path, filepath.Join(restored.Dir, sqliteFileName)); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	got, err := restored.LoadServers(ctx)
	if err != nil {
		t.Fatalf("LoadServers: %v", err)
	}
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[1].Hostname, "b")
}
