package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/internal/repository/sqlite"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/gorilla/mux"
)

// Dependencies are the collaborators NewRouter wires into handlers.
type Dependencies struct {
	Vendors      repository.VendorRepo
	Jobs         repository.JobRepo
	Applications repository.ApplicationRepo

	Auth         auth.Config
	Debug        bool
	MaxBodyBytes int64
	// RateLimiter is applied to /api routes when set.
	RateLimiter *RateLimiter
	// Now overrides the clock used for tokens and deadlines.
	Now func() time.Time
	// Ping reports whether the backing store is reachable for /health.
	Ping func(ctx context.Context) error
}

// NewRouter returns the full HTTP handler. The global middleware wraps the
// mux router itself and so also covers preflight, 404 and 405 responses.
func NewRouter(deps Dependencies, version, buildTime string) (http.Handler, error) {
	if deps.Vendors == nil || deps.Jobs == nil || deps.Applications == nil {
		return nil, errors.New("api: repositories are required")
	}

	var authOpts []auth.Option
	var jobOpts []jobboard.Option
	if deps.Now != nil {
		authOpts = append(authOpts, auth.WithClock(deps.Now))
		jobOpts = append(jobOpts, jobboard.WithClock(deps.Now))
	}

	authSvc, err := auth.NewService(deps.Vendors, deps.Auth, logger, authOpts...)
	if err != nil {
		return nil, err
	}
	jobSvc, err := jobboard.NewJobService(deps.Jobs, logger, jobOpts...)
	if err != nil {
		return nil, err
	}
	appSvc, err := jobboard.NewApplicationService(deps.Jobs, deps.Applications, logger)
	if err != nil {
		return nil, err
	}
	validator, err := NewValidator(deps.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	errs := ErrorHandler{Debug: deps.Debug}
	gate := auth.NewGate(authSvc, deps.Vendors)
	protect := VendorAuthMiddleware(gate, errs)

	r := mux.NewRouter()

	notFound := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		errs.Write(w, req, apperr.NotFound(fmt.Sprintf("Can't find %s on this server!", req.URL.Path)))
	})
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		errs.Write(w, req, apperr.MethodNotAllowed(fmt.Sprintf("Method %s is not allowed on %s", req.Method, req.URL.Path)))
	})
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = methodNotAllowed

	// Create handlers
	systemHandler := &SystemHandler{Ping: deps.Ping}
	authHandler := NewAuthHandler(authSvc, validator, errs)
	jobsHandler := NewJobsHandler(jobSvc, validator, errs)
	appsHandler := NewApplicationsHandler(appSvc, validator, errs)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	apiR := r.PathPrefix("/api").Subrouter()
	apiR.NotFoundHandler = notFound
	apiR.MethodNotAllowedHandler = methodNotAllowed
	if deps.RateLimiter != nil {
		apiR.Use(deps.RateLimiter.Middleware)
	}

	// Auth endpoints
	apiR.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	apiR.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Jobs endpoints
	apiR.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiR.Handle("/jobs", protect(http.HandlerFunc(jobsHandler.CreateJob))).Methods("POST")
	apiR.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")
	apiR.Handle("/jobs/{id}", protect(http.HandlerFunc(jobsHandler.UpdateJob))).Methods("PATCH")
	apiR.Handle("/jobs/{id}", protect(http.HandlerFunc(jobsHandler.DeleteJob))).Methods("DELETE")
	apiR.Handle("/jobs/{id}/status", protect(http.HandlerFunc(jobsHandler.UpdateJobStatus))).Methods("PATCH")

	// Applications endpoints
	apiR.HandleFunc("/jobs/{id}/applicant", appsHandler.Apply).Methods("POST")
	apiR.Handle("/jobs/{id}/applicants", protect(http.HandlerFunc(appsHandler.ListApplicants))).Methods("GET")
	apiR.Handle("/jobs/{id}/applicant/{applicantId}", protect(http.HandlerFunc(appsHandler.UpdateApplicantStatus))).Methods("PATCH")

	// Middleware chain
	var h http.Handler = r
	h = SecureHeadersMiddleware(h)
	h = CORSMiddleware(h)
	h = LoggingMiddleware(h)
	h = RecoveryMiddleware(h)

	return h, nil
}

// SetupRoutes builds the router for a running server backed by sqlite.
func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) (http.Handler, error) {
	repo := sqlite.New(conn, logger)

	deps := Dependencies{
		Vendors:      repo,
		Jobs:         repo,
		Applications: repo,
		Auth: auth.Config{
			Secret:     cfg.JWTSecret,
			TokenTTL:   cfg.TokenDuration,
			BcryptCost: cfg.BcryptCost,
		},
		Debug:        cfg.IsDevelopment(),
		MaxBodyBytes: cfg.MaxBodyBytes,
		Ping:         conn.GetConn().PingContext,
	}
	if cfg.RateLimitEnabled() {
		deps.RateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	return NewRouter(deps, version, buildTime)
}
