// Package auth implements vendor credentials: registration, login, session
// tokens, and the gate that resolves a bearer token to a vendor.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is the session token lifetime used when Config.TokenTTL is zero.
const DefaultTokenTTL = 10 * time.Minute

const msgInvalidCredentials = "Invalid email or password"

// Config carries the secrets and costs the Service needs. It is passed in
// explicitly; the Service never reads the environment.
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

type Option func(*Service)

// WithClock replaces time.Now for token issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

type Service struct {
	vendors repository.VendorRepo
	cfg     Config
	secret  []byte
	logger  *slog.Logger
	now     func() time.Time

	// dummyHash is compared against when an email is unknown so that both
	// login failure paths cost one bcrypt comparison.
	dummyHash string
}

func NewService(vendors repository.VendorRepo, cfg Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if vendors == nil {
		return nil, errors.New("auth: vendor repository is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s := &Service{
		vendors: vendors,
		cfg:     cfg,
		secret:  []byte(cfg.Secret),
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := HashPassword("jobboard-dummy-password", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is a vendor identity (without password hash) plus a fresh token.
type Session struct {
	Vendor *models.Vendor
	Token  string
}

// Register creates a vendor and issues its first session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	var fields apperr.Fields
	if name == "" {
		fields.Add("name", "Name is required")
	}
	if email == "" {
		fields.Add("email", "Email is required")
	}
	if strings.TrimSpace(in.Password) == "" {
		fields.Add("password", "Password is required")
	} else if len(in.Password) > MaxPasswordBytes {
		fields.Add("password", fmt.Sprintf("Password must be at most %d bytes", MaxPasswordBytes))
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	existing, err := s.vendors.GetVendorByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internalf(err, "lookup vendor")
	}
	if existing != nil {
		return nil, duplicateEmail(email)
	}

	hash, err := HashPassword(in.Password, s.cfg.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Validation("Validation error", apperr.FieldError{Field: "password", Message: err.Error()})
	}
	if err != nil {
		return nil, apperr.Internalf(err, "hash password")
	}

	vendor := &models.Vendor{Name: name, Email: email, PasswordHash: hash}
	if _, err := s.vendors.CreateVendor(ctx, vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateEmail(email)
		}
		return nil, apperr.Internalf(err, "create vendor")
	}

	token, err := s.IssueToken(vendor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.Info("vendor registered", slog.String("vendor_id", vendor.ID))
	return &Session{Vendor: vendor.Public(), Token: token}, nil
}

// Authenticate checks credentials. An unknown email and a wrong password
// produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	vendor, err := s.vendors.GetVendorByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperr.Internalf(err, "lookup vendor")
	}

	hash := s.dummyHash
	if vendor != nil {
		hash = vendor.PasswordHash
	}
	ok := ComparePassword(hash, password)
	if vendor == nil || !ok {
		s.logger.Warn("login rejected")
		return nil, apperr.Authentication(msgInvalidCredentials)
	}

	token, err := s.IssueToken(vendor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{Vendor: vendor.Public(), Token: token}, nil
}

func duplicateEmail(email string) error {
	return apperr.Validation(
		fmt.Sprintf("Duplicate field value: %q. Please use another value!", email),
		apperr.FieldError{Field: "email", Message: "Email is already registered"},
	)
}
