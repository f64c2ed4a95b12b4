// Package jobboard holds the job and application registries: the ownership
// checks and status rules that sit between the HTTP handlers and storage.
package jobboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const (
	msgJobNotFound   = "Job not found"
	msgNotAuthorized = "Not authorized"
)

type Option func(*JobService)

// WithClock replaces time.Now when checking application deadlines.
func WithClock(now func() time.Time) Option {
	return func(s *JobService) {
		if now != nil {
			s.now = now
		}
	}
}

// JobInput carries job fields from a request. A nil field was not provided.
type JobInput struct {
	Title               *string
	Description         *string
	Requirements        *string
	ApplicationDeadline *string
	Status              *string
}

type JobService struct {
	jobs   repository.JobRepo
	logger *slog.Logger
	now    func() time.Time
}

func NewJobService(jobs repository.JobRepo, logger *slog.Logger, opts ...Option) (*JobService, error) {
	if jobs == nil {
		return nil, errors.New("jobboard: job repository is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &JobService{jobs: jobs, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create posts a new open job owned by vendorID.
func (s *JobService) Create(ctx context.Context, vendorID string, in JobInput) (*models.Job, error) {
	var fields apperr.Fields
	if blank(in.Title) {
		fields.Add("title", "Title is required")
	}
	if blank(in.Description) {
		fields.Add("description", "Description is required")
	}
	if blank(in.Requirements) {
		fields.Add("requirements", "Requirements are required")
	}

	var deadline time.Time
	if blank(in.ApplicationDeadline) {
		fields.Add("applicationDeadline", "Valid application deadline is required")
	} else {
		deadline = s.checkDeadline(&fields, *in.ApplicationDeadline)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	job := &models.Job{
		VendorID:            vendorID,
		Title:               strings.TrimSpace(*in.Title),
		Description:         strings.TrimSpace(*in.Description),
		Requirements:        strings.TrimSpace(*in.Requirements),
		ApplicationDeadline: deadline,
		Status:              models.JobStatusOpen,
	}
	if _, err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, apperr.Internalf(err, "create job")
	}

	s.logger.Info("job created", slog.String("job_id", job.ID), slog.String("vendor_id", vendorID))
	return job, nil
}

// ListOpen returns every open job with its vendor projection.
func (s *JobService) ListOpen(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.ListJobsByStatus(ctx, models.JobStatusOpen)
	if err != nil {
		return nil, apperr.Internalf(err, "list open jobs")
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.jobs.GetJob(ctx, id)
	if err != nil {
		return nil, apperr.Internalf(err, "get job")
	}
	if job == nil {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	return job, nil
}

// Update applies a partial update. Omitted fields keep their value; an
// explicitly empty field is rejected. Status goes through the same rule as
// SetStatus.
func (s *JobService) Update(ctx context.Context, id, vendorID string, in JobInput) (*models.Job, error) {
	var fields apperr.Fields
	checkNotEmpty(&fields, in.Title, "title", "Title cannot be empty")
	checkNotEmpty(&fields, in.Description, "description", "Description cannot be empty")
	checkNotEmpty(&fields, in.Requirements, "requirements", "Requirements cannot be empty")

	var deadline time.Time
	if in.ApplicationDeadline != nil {
		if blank(in.ApplicationDeadline) {
			fields.Add("applicationDeadline", "Application deadline cannot be empty")
		} else {
			deadline = s.checkDeadline(&fields, *in.ApplicationDeadline)
		}
	}

	var status models.JobStatus
	if in.Status != nil {
		st, err := ParseJobStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	job, err := s.owned(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		applyJobStatus(job, status)
	}
	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		job.Description = strings.TrimSpace(*in.Description)
	}
	if in.Requirements != nil {
		job.Requirements = strings.TrimSpace(*in.Requirements)
	}
	if in.ApplicationDeadline != nil {
		job.ApplicationDeadline = deadline
	}

	if err := s.jobs.UpdateJob(ctx, job); err != nil {
		return nil, apperr.Internalf(err, "update job")
	}

	s.logger.Info("job updated", slog.String("job_id", job.ID))
	return job, nil
}

// SetStatus changes only the job's status.
func (s *JobService) SetStatus(ctx context.Context, id, vendorID, status string) (*models.Job, error) {
	st, err := ParseJobStatus(status)
	if err != nil {
		return nil, err
	}

	job, err := s.owned(ctx, id, vendorID)
	if err != nil {
		return nil, err
	}

	if applyJobStatus(job, st) {
		if err := s.jobs.UpdateJob(ctx, job); err != nil {
			return nil, apperr.Internalf(err, "update job status")
		}
		s.logger.Info("job status changed", slog.String("job_id", job.ID), slog.String("status", string(st)))
	}
	return job, nil
}

// Delete removes the job. Its applications are left in place.
func (s *JobService) Delete(ctx context.Context, id, vendorID string) error {
	if _, err := s.owned(ctx, id, vendorID); err != nil {
		return err
	}
	if err := s.jobs.DeleteJob(ctx, id); err != nil {
		return apperr.Internalf(err, "delete job")
	}

	s.logger.Info("job deleted", slog.String("job_id", id), slog.String("vendor_id", vendorID))
	return nil
}

func (s *JobService) owned(ctx context.Context, id, vendorID string) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.VendorID != vendorID {
		return nil, apperr.Authorization(msgNotAuthorized)
	}
	return job, nil
}

func (s *JobService) checkDeadline(fields *apperr.Fields, raw string) time.Time {
	deadline, ok := parseDeadline(raw)
	if !ok {
		fields.Add("applicationDeadline", "Valid application deadline is required")
		return time.Time{}
	}
	if !deadline.After(s.now()) {
		fields.Add("applicationDeadline", "Deadline must be in the future")
		return time.Time{}
	}
	return deadline
}

func checkNotEmpty(fields *apperr.Fields, v *string, field, msg string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		fields.Add(field, msg)
	}
}
