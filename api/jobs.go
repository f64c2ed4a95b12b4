package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/gorilla/mux"
)

type JobsHandler struct {
	jobs      *jobboard.JobService
	validator *Validator
	errs      ErrorHandler
}

func NewJobsHandler(jobs *jobboard.JobService, v *Validator, errs ErrorHandler) *JobsHandler {
	return &JobsHandler{jobs: jobs, validator: v, errs: errs}
}

// jobRequest uses pointers so omitted fields can be told apart from empty ones.
type jobRequest struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	Requirements        *string `json:"requirements"`
	ApplicationDeadline *string `json:"applicationDeadline"`
	Status              *string `json:"status"`
}

func (req jobRequest) input() jobboard.JobInput {
	return jobboard.JobInput{
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              req.Status,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// currentVendorID returns the id set by VendorAuthMiddleware.
func currentVendorID(r *http.Request) (string, error) {
	v, ok := VendorFromContext(r.Context())
	if !ok {
		return "", apperr.Authentication("Not authorized, no token")
	}
	return v.ID, nil
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	vendorID, err := currentVendorID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	var req jobRequest
	if err := h.validator.Decode(w, r, schemaJobCreate, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	job, err := h.jobs.Create(r.Context(), vendorID, req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListOpen(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	vendorID, err := currentVendorID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	var req jobRequest
	if err := h.validator.Decode(w, r, schemaJobUpdate, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	job, err := h.jobs.Update(r.Context(), mux.Vars(r)["id"], vendorID, req.input())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	vendorID, err := currentVendorID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	var req statusRequest
	if err := h.validator.Decode(w, r, schemaStatus, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	job, err := h.jobs.SetStatus(r.Context(), mux.Vars(r)["id"], vendorID, req.Status)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	vendorID, err := currentVendorID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	if err := h.jobs.Delete(r.Context(), mux.Vars(r)["id"], vendorID); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, messageResponse{Message: "Job removed"}, http.StatusOK)
}
