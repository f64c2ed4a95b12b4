package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/gorilla/mux"
)

type ApplicationsHandler struct {
	apps      *jobboard.ApplicationService
	validator *Validator
	errs      ErrorHandler
}

func NewApplicationsHandler(apps *jobboard.ApplicationService, v *Validator, errs ErrorHandler) *ApplicationsHandler {
	return &ApplicationsHandler{apps: apps, validator: v, errs: errs}
}

type applicationRequest struct {
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
}

type applicationCreatedResponse struct {
	Message     string              `json:"message"`
	Application *models.Application `json:"application"`
}

// Apply is open to anonymous callers.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := h.validator.Decode(w, r, schemaApplicationCreate, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	app, err := h.apps.Create(r.Context(), mux.Vars(r)["id"], jobboard.ApplicationInput{
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, applicationCreatedResponse{Message: "Applicant created successfully", Application: app}, http.StatusCreated)
}

func (h *ApplicationsHandler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	vendorID, err := currentVendorID(r)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	list, err := h.apps.ListForJob(r.Context(), mux.Vars(r)["id"], vendorID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *ApplicationsHandler) UpdateApplicantStatus(w http.ResponseWriter, r *http.Request) {
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

	vars := mux.Vars(r)
	app, err := h.apps.UpdateStatus(r.Context(), vars["id"], vars["applicantId"], vendorID, req.Status)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, app, http.StatusOK)
}
