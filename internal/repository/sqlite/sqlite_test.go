package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	dbfs "github.com/garnizeh/jobboard/db"
	dbpkg "github.com/garnizeh/jobboard/internal/db"
	sqlite "github.com/garnizeh/jobboard/internal/repository/sqlite"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, filepath.Join(t.TempDir(), "repo.db"), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func mustVendor(t *testing.T, repo *sqlite.SQLiteRepo, name, email string) *models.Vendor {
	t.Helper()
	v := &models.Vendor{Name: name, Email: email, PasswordHash: "hash"}
	if _, err := repo.CreateVendor(context.Background(), v); err != nil {
		t.Fatalf("CreateVendor error: %v", err)
	}
	return v
}

func mustJob(t *testing.T, repo *sqlite.SQLiteRepo, vendorID, title string, status models.JobStatus) *models.Job {
	t.Helper()
	j := &models.Job{
		VendorID:            vendorID,
		Title:               title,
		Description:         "desc",
		Requirements:        "reqs",
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
		Status:              status,
	}
	if _, err := repo.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	return j
}

func TestVendorCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateVendor(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil vendor")
	}

	got, err := repo.GetVendorByID(ctx, "missing")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing id, got %#v, %v", got, err)
	}
	got, err = repo.GetVendorByEmail(ctx, "a@a.com")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing email, got %#v, %v", got, err)
	}

	v := &models.Vendor{Name: "Acme", Email: "hr@acme.test", PasswordHash: "hash"}
	id, err := repo.CreateVendor(ctx, v)
	if err != nil {
		t.Fatalf("CreateVendor error: %v", err)
	}
	if id == "" || v.ID != id {
		t.Fatalf("expected id to be assigned, got %q / %q", id, v.ID)
	}
	if v.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}

	got, err = repo.GetVendorByID(ctx, id)
	if err != nil {
		t.Fatalf("GetVendorByID error: %v", err)
	}
	if got == nil || got.Email != v.Email || got.PasswordHash != "hash" {
		t.Fatalf("GetVendorByID wrong result: %#v", got)
	}

	byEmail, err := repo.GetVendorByEmail(ctx, v.Email)
	if err != nil {
		t.Fatalf("GetVendorByEmail error: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("GetVendorByEmail wrong result: %#v", byEmail)
	}
}

func TestVendor_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mustVendor(t, repo, "First", "dup@example.com")

	_, err := repo.CreateVendor(ctx, &models.Vendor{Name: "Second", Email: "dup@example.com", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// email uniqueness is case-sensitive
	if _, err := repo.CreateVendor(ctx, &models.Vendor{Name: "Third", Email: "DUP@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("expected differently-cased email to be accepted, got %v", err)
	}
}

func TestJobCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateJob(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil job")
	}

	v := mustVendor(t, repo, "Acme", "hr@acme.test")
	deadline := time.Date(2031, 5, 17, 12, 30, 0, 0, time.UTC)
	j := &models.Job{VendorID: v.ID, Title: "Go dev", Description: "d", Requirements: "r", ApplicationDeadline: deadline}
	id, err := repo.CreateJob(ctx, j)
	if err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	if j.Status != models.JobStatusOpen {
		t.Fatalf("expected default status open, got %q", j.Status)
	}

	got, err := repo.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob error: %v", err)
	}
	if got == nil || got.Title != "Go dev" || !got.ApplicationDeadline.Equal(deadline) {
		t.Fatalf("GetJob wrong result: %#v", got)
	}
	if got.Vendor == nil || got.Vendor.Name != "Acme" || got.Vendor.Email != "hr@acme.test" {
		t.Fatalf("expected vendor projection, got %#v", got.Vendor)
	}

	got.Title = "Senior Go dev"
	got.Status = models.JobStatusClosed
	if err := repo.UpdateJob(ctx, got); err != nil {
		t.Fatalf("UpdateJob error: %v", err)
	}
	if err := repo.UpdateJob(ctx, nil); err == nil {
		t.Fatalf("expected error when updating nil job")
	}

	after, err := repo.GetJob(ctx, id)
	if err != nil {
		t.Fatalf("GetJob after update error: %v", err)
	}
	if after.Title != "Senior Go dev" || after.Status != models.JobStatusClosed || after.VendorID != v.ID {
		t.Fatalf("update not persisted: %#v", after)
	}

	if err := repo.DeleteJob(ctx, id); err != nil {
		t.Fatalf("DeleteJob error: %v", err)
	}
	gone, err := repo.GetJob(ctx, id)
	if err != nil || gone != nil {
		t.Fatalf("expected nil after delete, got %#v, %v", gone, err)
	}
}

func TestListJobsByStatus(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	v := mustVendor(t, repo, "Acme", "hr@acme.test")
	mustJob(t, repo, v.ID, "open-1", models.JobStatusOpen)
	mustJob(t, repo, v.ID, "closed-1", models.JobStatusClosed)
	mustJob(t, repo, v.ID, "open-2", models.JobStatusOpen)

	open, err := repo.ListJobsByStatus(ctx, models.JobStatusOpen)
	if err != nil {
		t.Fatalf("ListJobsByStatus error: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 open jobs, got %d", len(open))
	}
	for _, j := range open {
		if j.Status != models.JobStatusOpen {
			t.Fatalf("closed job listed: %#v", j)
		}
		if j.Vendor == nil || j.Vendor.Email != "hr@acme.test" {
			t.Fatalf("missing vendor projection: %#v", j)
		}
	}
}

func TestApplicationCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateApplication(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil application")
	}

	v := mustVendor(t, repo, "Acme", "hr@acme.test")
	j := mustJob(t, repo, v.ID, "Go dev", models.JobStatusOpen)

	a := &models.Application{JobID: j.ID, VendorID: v.ID, ApplicantName: "Ann", ApplicantEmail: "ann@example.com"}
	id, err := repo.CreateApplication(ctx, a)
	if err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}
	if a.Status != models.ApplicationStatusPending {
		t.Fatalf("expected pending default, got %q", a.Status)
	}

	got, err := repo.GetApplication(ctx, id)
	if err != nil {
		t.Fatalf("GetApplication error: %v", err)
	}
	if got == nil || got.JobID != j.ID || got.VendorID != v.ID || got.ApplicantEmail != "ann@example.com" {
		t.Fatalf("GetApplication wrong result: %#v", got)
	}

	got.Status = models.ApplicationStatusHired
	if err := repo.UpdateApplicationStatus(ctx, got); err != nil {
		t.Fatalf("UpdateApplicationStatus error: %v", err)
	}
	if err := repo.UpdateApplicationStatus(ctx, nil); err == nil {
		t.Fatalf("expected error when updating nil application")
	}

	list, err := repo.ListApplicationsByJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("ListApplicationsByJob error: %v", err)
	}
	if len(list) != 1 || list[0].Status != models.ApplicationStatusHired {
		t.Fatalf("unexpected list: %#v", list)
	}
	if list[0].Vendor == nil || list[0].Vendor.Name != "Acme" {
		t.Fatalf("missing vendor projection: %#v", list[0])
	}

	missing, err := repo.GetApplication(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing application, got %#v, %v", missing, err)
	}
}

func TestApplications_SurviveJobDeletion(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	v := mustVendor(t, repo, "Acme", "hr@acme.test")
	j := mustJob(t, repo, v.ID, "Go dev", models.JobStatusOpen)
	if _, err := repo.CreateApplication(ctx, &models.Application{JobID: j.ID, VendorID: v.ID, ApplicantName: "Ann", ApplicantEmail: "ann@example.com"}); err != nil {
		t.Fatalf("CreateApplication error: %v", err)
	}

	if err := repo.DeleteJob(ctx, j.ID); err != nil {
		t.Fatalf("DeleteJob error: %v", err)
	}

	list, err := repo.ListApplicationsByJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("ListApplicationsByJob error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected orphaned application to remain, got %d", len(list))
	}
}
