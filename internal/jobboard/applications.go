package jobboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const (
	msgJobNotOpen          = "Job not found or not open for applications"
	msgApplicationNotFound = "Application not found"
	msgNotAuthorizedList   = "Not authorized to view applicants"
	msgNotAuthorizedUpdate = "Not authorized to update this application"
)

type ApplicationInput struct {
	ApplicantName  string
	ApplicantEmail string
}

type ApplicationService struct {
	jobs         repository.JobRepo
	applications repository.ApplicationRepo
	logger       *slog.Logger
}

func NewApplicationService(jobs repository.JobRepo, applications repository.ApplicationRepo, logger *slog.Logger) (*ApplicationService, error) {
	if jobs == nil || applications == nil {
		return nil, errors.New("jobboard: job and application repositories are required")
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &ApplicationService{jobs: jobs, applications: applications, logger: logger}, nil
}

// Create submits an application to an open job. No authentication is needed;
// a missing job and a closed job are reported the same way.
func (s *ApplicationService) Create(ctx context.Context, jobID string, in ApplicationInput) (*models.Application, error) {
	name := strings.TrimSpace(in.ApplicantName)
	email := strings.TrimSpace(in.ApplicantEmail)

	var fields apperr.Fields
	if name == "" {
		fields.Add("applicantName", "Applicant name is required")
	}
	if email == "" {
		fields.Add("applicantEmail", "Applicant email is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, apperr.Internalf(err, "get job")
	}
	if job == nil || job.Status != models.JobStatusOpen {
		return nil, apperr.NotFound(msgJobNotOpen)
	}

	app := &models.Application{
		JobID:          job.ID,
		VendorID:       job.VendorID,
		ApplicantName:  name,
		ApplicantEmail: email,
		Status:         models.ApplicationStatusPending,
	}
	if _, err := s.applications.CreateApplication(ctx, app); err != nil {
		return nil, apperr.Internalf(err, "create application")
	}

	s.logger.Info("application created", slog.String("application_id", app.ID), slog.String("job_id", job.ID))
	return app, nil
}

// ListForJob returns the applicants of a job owned by vendorID.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, vendorID string) ([]models.ApplicantSummary, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, apperr.Internalf(err, "get job")
	}
	if job == nil {
		return nil, apperr.NotFound(msgJobNotFound)
	}
	if job.VendorID != vendorID {
		return nil, apperr.Authorization(msgNotAuthorizedList)
	}

	apps, err := s.applications.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, apperr.Internalf(err, "list applications")
	}

	out := make([]models.ApplicantSummary, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.ApplicantSummary{
			ID:             a.ID,
			ApplicantName:  a.ApplicantName,
			ApplicantEmail: a.ApplicantEmail,
			Status:         a.Status,
			CreatedAt:      a.CreatedAt,
			Vendor:         a.Vendor,
		})
	}
	return out, nil
}

// UpdateStatus sets an application's status. The application must belong to
// jobID and to the calling vendor.
func (s *ApplicationService) UpdateStatus(ctx context.Context, jobID, applicationID, vendorID, status string) (*models.Application, error) {
	st, err := ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	app, err := s.applications.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, apperr.Internalf(err, "get application")
	}
	if app == nil {
		return nil, apperr.NotFound(msgApplicationNotFound)
	}
	if app.JobID != jobID || app.VendorID != vendorID {
		return nil, apperr.Authorization(msgNotAuthorizedUpdate)
	}

	app.Status = st
	if err := s.applications.UpdateApplicationStatus(ctx, app); err != nil {
		return nil, apperr.Internalf(err, "update application status")
	}

	s.logger.Info("application status changed",
		slog.String("application_id", app.ID),
		slog.String("status", string(st)),
	)
	return app, nil
}
