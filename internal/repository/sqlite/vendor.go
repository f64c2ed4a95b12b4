package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/pkg/models"
)

const vendorColumns = `id, name, email, password_hash, created, updated`

func (r *SQLiteRepo) CreateVendor(ctx context.Context, v *models.Vendor) (string, error) {
	if v == nil {
		return "", fmt.Errorf("vendor is nil")
	}

	id := newID()
	ts := now()
	_, err := r.conn.Exec(ctx, `INSERT INTO vendors (id, name, email, password_hash, created, updated) VALUES (?, ?, ?, ?, ?, ?)`, id, v.Name, v.Email, v.PasswordHash, ts, ts)
	if err != nil {
		return "", translateErr(err)
	}

	v.ID = id
	v.CreatedAt = fromMillis(ts)
	v.UpdatedAt = v.CreatedAt
	return id, nil
}

func (r *SQLiteRepo) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id)
	return scanVendor(row)
}

func (r *SQLiteRepo) GetVendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE email = ?`, email)
	return scanVendor(row)
}

func scanVendor(row *sql.Row) (*models.Vendor, error) {
	var (
		v                models.Vendor
		created, updated int64
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.PasswordHash, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	v.CreatedAt = fromMillis(created)
	v.UpdatedAt = fromMillis(updated)
	return &v, nil
}
