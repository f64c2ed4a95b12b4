package db

import (
	"context"
	"fmt"
	"os"
)

// Backup writes a consistent copy of the open database to dst using
// VACUUM INTO. dst must not exist.
func Backup(ctx context.Context, d *DB, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("backup target %s already exists", dst)
	}
	if _, err := d.Exec(ctx, `VACUUM INTO ?`, dst); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dst, err)
	}
	return nil
}
