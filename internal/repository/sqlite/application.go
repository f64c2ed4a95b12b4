package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/pkg/models"
)

const applicationSelect = `SELECT a.id, a.job_id, a.vendor_id, a.applicant_name, a.applicant_email, a.status, a.created, a.updated, v.name, v.email
FROM job_applications a LEFT JOIN vendors v ON v.id = a.vendor_id`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) (string, error) {
	if a == nil {
		return "", fmt.Errorf("application is nil")
	}
	if a.Status == "" {
		a.Status = models.ApplicationStatusPending
	}

	id := newID()
	ts := now()
	var vendorID sql.NullString
	if a.VendorID != "" {
		vendorID = sql.NullString{String: a.VendorID, Valid: true}
	}
	_, err := r.conn.Exec(ctx, `INSERT INTO job_applications (id, job_id, vendor_id, applicant_name, applicant_email, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.JobID, vendorID, a.ApplicantName, a.ApplicantEmail, string(a.Status), ts, ts)
	if err != nil {
		return "", translateErr(err)
	}

	a.ID = id
	a.CreatedAt = fromMillis(ts)
	a.UpdatedAt = a.CreatedAt
	return id, nil
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	row := r.conn.QueryRow(ctx, applicationSelect+` WHERE a.id = ?`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, applicationSelect+` WHERE a.job_id = ? ORDER BY a.created ASC, a.id ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

// UpdateApplicationStatus persists a.Status; job and vendor references are immutable.
func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	ts := now()
	if _, err := r.conn.Exec(ctx, `UPDATE job_applications SET status = ?, updated = ? WHERE id = ?`, string(a.Status), ts, a.ID); err != nil {
		return err
	}

	a.UpdatedAt = fromMillis(ts)
	return nil
}

func scanApplication(s rowScanner) (*models.Application, error) {
	var (
		a                models.Application
		status           string
		vendorID         sql.NullString
		created, updated int64
		vName, vEmail    sql.NullString
	)
	if err := s.Scan(&a.ID, &a.JobID, &vendorID, &a.ApplicantName, &a.ApplicantEmail, &status, &created, &updated, &vName, &vEmail); err != nil {
		return nil, err
	}

	a.VendorID = vendorID.String
	a.Status = models.ApplicationStatus(status)
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	if vName.Valid || vEmail.Valid {
		a.Vendor = &models.VendorRef{ID: a.VendorID, Name: vName.String, Email: vEmail.String}
	}

	return &a, nil
}
