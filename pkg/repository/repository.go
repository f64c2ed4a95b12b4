package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/jobboard/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Getters return (nil, nil) when the row does not exist.

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("repository: duplicate key")

type VendorRepo interface {
	CreateVendor(ctx context.Context, v *models.Vendor) (string, error)
	GetVendorByID(ctx context.Context, id string) (*models.Vendor, error)
	GetVendorByEmail(ctx context.Context, email string) (*models.Vendor, error)
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (string, error)
	// GetJob returns the job with its vendor projection populated.
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobsByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id string) error
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) (string, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	// ListApplicationsByJob returns applications with their vendor projection populated.
	ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, a *models.Application) error
}
