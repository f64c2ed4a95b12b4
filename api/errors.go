package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/jobboard/internal/apperr"
)

const msgGenericInternal = "Something went very wrong!"

// ErrorHandler renders errors returned by the services. With Debug set the
// body also carries the full error and the stack where it was raised.
type ErrorHandler struct {
	Debug bool
}

type errorResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
	Stack   []string            `json:"stack,omitempty"`
}

func (h ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}

	status := ae.StatusCode()
	resp := errorResponse{Status: "fail", Message: ae.Message, Errors: ae.Details}
	if status >= http.StatusInternalServerError {
		resp.Status = "error"
		resp.Message = msgGenericInternal
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
	} else {
		logger.Info("request rejected",
			slog.String("path", r.URL.Path),
			slog.String("kind", ae.Kind.String()),
			slog.String("message", ae.Message),
		)
	}

	if h.Debug {
		resp.Message = ae.Message
		resp.Error = err.Error()
		resp.Stack = ae.Stack()
	}

	writeJSON(w, resp, status)
}
