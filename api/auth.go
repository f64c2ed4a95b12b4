package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/auth"
)

type AuthHandler struct {
	svc       *auth.Service
	validator *Validator
	errs      ErrorHandler
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(svc *auth.Service, v *Validator, errs ErrorHandler) *AuthHandler {
	return &AuthHandler{svc: svc, validator: v, errs: errs}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func newAuthResponse(s *auth.Session) authResponse {
	return authResponse{ID: s.Vendor.ID, Name: s.Vendor.Name, Email: s.Vendor.Email, Token: s.Token}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.validator.Decode(w, r, schemaRegister, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	sess, err := h.svc.Register(r.Context(), auth.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, newAuthResponse(sess), http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.validator.Decode(w, r, schemaLogin, &req); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	sess, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	writeJSON(w, newAuthResponse(sess), http.StatusOK)
}
