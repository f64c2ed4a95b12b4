package jobboard

import (
	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
)

const msgInvalidJobStatus = "Invalid status. Please provide either 'open' or 'closed'."

// ParseJobStatus accepts exactly "open" or "closed", with no surrounding
// whitespace and no case folding.
func ParseJobStatus(s string) (models.JobStatus, error) {
	switch st := models.JobStatus(s); st {
	case models.JobStatusOpen, models.JobStatusClosed:
		return st, nil
	}
	return "", apperr.Validation(msgInvalidJobStatus, apperr.FieldError{Field: "status", Message: msgInvalidJobStatus})
}

// applyJobStatus is the single transition rule used by both Update and
// SetStatus. Any status may move to any other; only the value is checked.
func applyJobStatus(job *models.Job, status models.JobStatus) bool {
	if job.Status == status {
		return false
	}
	job.Status = status
	return true
}

// settable application statuses. "interview" is a stored value that the
// status endpoint cannot set.
var settableApplicationStatuses = map[models.ApplicationStatus]bool{
	models.ApplicationStatusPending:  true,
	models.ApplicationStatusHired:    true,
	models.ApplicationStatusRejected: true,
}

// ParseApplicationStatus validates a status requested by a vendor.
func ParseApplicationStatus(s string) (models.ApplicationStatus, error) {
	st := models.ApplicationStatus(s)
	if !settableApplicationStatuses[st] {
		return "", apperr.Validation("Invalid status",
			apperr.FieldError{Field: "status", Message: "Status must be one of pending, hired, rejected"})
	}
	return st, nil
}
