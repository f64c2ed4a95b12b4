package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garnizeh/jobboard/api"
	"github.com/garnizeh/jobboard/internal/apperr"
)

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name       string
		debug      bool
		err        error
		wantStatus int
		wantBody   string
		wantMsg    string
		wantStack  bool
	}{
		{"Validation", false, apperr.Validation("bad", apperr.FieldError{Field: "title", Message: "required"}), http.StatusBadRequest, "fail", "bad", false},
		{"Authentication", false, apperr.Authentication("who"), http.StatusUnauthorized, "fail", "who", false},
		{"Authorization", false, apperr.Authorization("nope"), http.StatusForbidden, "fail", "nope", false},
		{"NotFound", false, apperr.NotFound("gone"), http.StatusNotFound, "fail", "gone", false},
		{"InternalProduction", false, apperr.Internalf(errors.New("disk"), "save"), http.StatusInternalServerError, "error", "Something went very wrong!", false},
		{"PlainErrorProduction", false, errors.New("boom"), http.StatusInternalServerError, "error", "Something went very wrong!", false},
		{"InternalDebug", true, apperr.Internalf(errors.New("disk"), "save"), http.StatusInternalServerError, "error", "save", true},
		{"NotFoundDebug", true, apperr.NotFound("gone"), http.StatusNotFound, "fail", "gone", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			api.ErrorHandler{Debug: c.debug}.Write(w, httptest.NewRequest(http.MethodGet, "/x", nil), c.err)

			if w.Code != c.wantStatus {
				t.Fatalf("want %d got %d", c.wantStatus, w.Code)
			}
			var eb errBody
			decode(t, w, &eb)
			if eb.Status != c.wantBody || eb.Message != c.wantMsg {
				t.Fatalf("unexpected body %+v", eb)
			}
			if (len(eb.Stack) > 0) != c.wantStack || (eb.Error != "") != c.wantStack {
				t.Fatalf("debug detail mismatch: %+v", eb)
			}
		})
	}
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := apperr.Validation("Validation error",
		apperr.FieldError{Field: "title", Message: "Title is required"},
		apperr.FieldError{Field: "description", Message: "Description is required"},
	)
	api.ErrorHandler{}.Write(w, httptest.NewRequest(http.MethodPost, "/x", nil), err)

	var eb errBody
	decode(t, w, &eb)
	if len(eb.Errors) != 2 {
		t.Fatalf("expected two field errors, got %+v", eb.Errors)
	}
}

func TestNotFoundRoute(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/api/nowhere", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404 got %d", w.Code)
	}
	var eb errBody
	decode(t, w, &eb)
	if eb.Message != "Can't find /api/nowhere on this server!" {
		t.Fatalf("unexpected message %q", eb.Message)
	}
}
