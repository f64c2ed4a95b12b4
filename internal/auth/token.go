package auth

import (
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

const (
	msgInvalidToken = "Invalid token. Please log in again!"
	msgExpiredToken = "Your token has expired! Please log in again!"
)

// Claims is the session token payload.
type Claims struct {
	VendorID string `json:"id"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for vendorID that expires TokenTTL from now.
func (s *Service) IssueToken(vendorID string) (string, error) {
	if vendorID == "" {
		return "", fmt.Errorf("issue token: empty vendor id")
	}

	now := s.now()
	claims := Claims{
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenStr, nil
}

// VerifyToken validates signature and expiry and returns the embedded vendor id.
func (s *Service) VerifyToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Authentication(msgExpiredToken)
		}
		return "", apperr.Authentication(msgInvalidToken)
	}
	if !token.Valid || claims.VendorID == "" {
		return "", apperr.Authentication(msgInvalidToken)
	}

	return claims.VendorID, nil
}
