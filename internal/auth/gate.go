package auth

import (
	"context"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const (
	MsgNoToken     = "Not authorized, no token"
	MsgTokenFailed = "Not authorized, token failed"
)

// Gate resolves an Authorization header to the vendor it identifies.
type Gate struct {
	tokens  *Service
	vendors repository.VendorRepo
}

func NewGate(tokens *Service, vendors repository.VendorRepo) *Gate {
	return &Gate{tokens: tokens, vendors: vendors}
}

// Resolve returns the vendor (password hash cleared) named by a
// "Bearer <token>" header. A token whose vendor no longer exists is rejected.
func (g *Gate) Resolve(ctx context.Context, authorization string) (*models.Vendor, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, apperr.Authentication(MsgNoToken)
	}

	vendorID, err := g.tokens.VerifyToken(token)
	if err != nil {
		return nil, apperr.Authentication(MsgTokenFailed)
	}

	vendor, err := g.vendors.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, apperr.Internalf(err, "resolve vendor")
	}
	if vendor == nil {
		return nil, apperr.Authentication(MsgTokenFailed)
	}

	return vendor.Public(), nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
