package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/jobboard/db"
	"github.com/garnizeh/jobboard/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()

	d, err := db.New(ctx, filepath.Join(t.TempDir(), "migrate.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer d.Close()

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"vendors", "jobs", "job_applications"} {
		var name string
		r := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		if err := r.Scan(&name); err != nil {
			t.Fatalf("expected %s table exists: %v", table, err)
		}
	}
}

func TestMigrate_AppliesInOrderAndSkipsNonSQL(t *testing.T) {
	ctx := context.Background()
	d, err := db.New(ctx, filepath.Join(t.TempDir(), "order.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer d.Close()

	fsys := fstest.MapFS{
		"migrations/0002_seed.sql":  {Data: []byte(`INSERT INTO t (v) VALUES ('x');`)},
		"migrations/0001_table.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"migrations/README.md":      {Data: []byte(`not sql`)},
	}
	if err := db.Migrate(ctx, d, fsys); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	var n int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM t`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected seed row, got %d", n)
	}
}

func TestMigrate_BadSQL(t *testing.T) {
	ctx := context.Background()
	d, err := db.New(ctx, filepath.Join(t.TempDir(), "bad.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer d.Close()

	fsys := fstest.MapFS{"migrations/0001_bad.sql": {Data: []byte(`CREATE TABLE (`)}}
	if err := db.Migrate(ctx, d, fsys); err == nil {
		t.Fatalf("expected error for invalid migration")
	}

	fsys2 := fstest.MapFS{}
	if err := db.Migrate(ctx, d, fsys2); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
