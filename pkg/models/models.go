package models

import "time"

// Domain models matching the database schema in db/migrations/0001_init.sql

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusHired     ApplicationStatus = "hired"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s is a value the job_applications table accepts.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusInterview, ApplicationStatusHired, ApplicationStatusRejected:
		return true
	}
	return false
}

type Vendor struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated"`
}

// Public returns a copy of the vendor without the password hash.
func (v Vendor) Public() *Vendor {
	v.PasswordHash = ""
	return &v
}

// VendorRef is the read-only vendor projection attached to jobs and
// applications on reads.
type VendorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Job struct {
	ID                  string     `json:"id" db:"id"`
	VendorID            string     `json:"vendorId" db:"vendor_id"`
	Vendor              *VendorRef `json:"vendor,omitempty"`
	Title               string     `json:"title" db:"title"`
	Description         string     `json:"description" db:"description"`
	Requirements        string     `json:"requirements" db:"requirements"`
	ApplicationDeadline time.Time  `json:"applicationDeadline" db:"application_deadline"`
	Status              JobStatus  `json:"status" db:"status"`
	CreatedAt           time.Time  `json:"createdAt" db:"created"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated"`
}

// Application is a candidate's submission against one job. VendorID is
// copied from the job when the application is created and is never re-synced.
type Application struct {
	ID             string            `json:"id" db:"id"`
	JobID          string            `json:"jobId" db:"job_id"`
	VendorID       string            `json:"vendorId,omitempty" db:"vendor_id"`
	Vendor         *VendorRef        `json:"vendor,omitempty"`
	ApplicantName  string            `json:"applicantName" db:"applicant_name"`
	ApplicantEmail string            `json:"applicantEmail" db:"applicant_email"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CreatedAt      time.Time         `json:"createdAt" db:"created"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated"`
}

// ApplicantSummary is what a vendor sees when listing a job's applicants.
type ApplicantSummary struct {
	ID             string            `json:"id"`
	ApplicantName  string            `json:"applicantName"`
	ApplicantEmail string            `json:"applicantEmail"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	Vendor         *VendorRef        `json:"vendor,omitempty"`
}
