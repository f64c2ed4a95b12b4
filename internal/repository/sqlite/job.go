package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/jobboard/pkg/models"
)

// jobSelect joins the owning vendor so reads carry the name/email projection.
const jobSelect = `SELECT j.id, j.vendor_id, j.title, j.description, j.requirements, j.application_deadline, j.status, j.created, j.updated, v.name, v.email
FROM jobs j LEFT JOIN vendors v ON v.id = j.vendor_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (string, error) {
	if j == nil {
		return "", fmt.Errorf("job is nil")
	}
	if j.Status == "" {
		j.Status = models.JobStatusOpen
	}

	id := newID()
	ts := now()
	_, err := r.conn.Exec(ctx, `INSERT INTO jobs (id, vendor_id, title, description, requirements, application_deadline, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, j.VendorID, j.Title, j.Description, j.Requirements, j.ApplicationDeadline.UTC().UnixMilli(), string(j.Status), ts, ts)
	if err != nil {
		return "", translateErr(err)
	}

	j.ID = id
	j.CreatedAt = fromMillis(ts)
	j.UpdatedAt = j.CreatedAt
	r.logger.Debug("job inserted", slog.String("job_id", id))
	return id, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, jobSelect+` WHERE j.id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobsByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, jobSelect+` WHERE j.status = ? ORDER BY j.created ASC, j.id ASC`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}

// UpdateJob overwrites the mutable columns. vendor_id is never updated.
func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, description = ?, requirements = ?, application_deadline = ?, status = ?, updated = ? WHERE id = ?`,
		j.Title, j.Description, j.Requirements, j.ApplicationDeadline.UTC().UnixMilli(), string(j.Status), ts, j.ID)
	if err != nil {
		return err
	}

	j.UpdatedAt = fromMillis(ts)
	return nil
}

func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func scanJob(s rowScanner) (*models.Job, error) {
	var (
		j                          models.Job
		status                     string
		deadline, created, updated int64
		vName, vEmail              sql.NullString
	)
	if err := s.Scan(&j.ID, &j.VendorID, &j.Title, &j.Description, &j.Requirements, &deadline, &status, &created, &updated, &vName, &vEmail); err != nil {
		return nil, err
	}

	j.Status = models.JobStatus(status)
	j.ApplicationDeadline = fromMillis(deadline)
	j.CreatedAt = fromMillis(created)
	j.UpdatedAt = fromMillis(updated)
	if vName.Valid || vEmail.Valid {
		j.Vendor = &models.VendorRef{ID: j.VendorID, Name: vName.String, Email: vEmail.String}
	}

	return &j, nil
}
