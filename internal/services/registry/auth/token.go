// Package auth issues and verifies the bearer tokens that carry a registry
// principal when token authentication is enabled.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/registrar/internal/platform/errors"
)

// DefaultIssuer is the issuer used when none is configured.
const DefaultIssuer = "registrar"

// TokenConfig defines how principal tokens are signed and verified.
type TokenConfig struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

// Enabled reports whether a signing secret is configured.
func (c TokenConfig) Enabled() bool {
	return len(c.Secret) > 0
}

func (c TokenConfig) normalized() TokenConfig {
	if c.Now == nil {
		c.Now = time.Now
	}
	c.Issuer = strings.TrimSpace(c.Issuer)
	if c.Issuer == "" {
		c.Issuer = DefaultIssuer
	}
	return c
}

// IssueToken signs an HS256 token for subject valid for ttl.
func IssueToken(cfg TokenConfig, subject string, ttl time.Duration) (string, error) {
	cfg = cfg.normalized()
	if !cfg.Enabled() {
		return "", errors.New("token secret is not configured")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	now := cfg.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, issuer and validity window and returns the
// token subject.
func VerifyToken(cfg TokenConfig, raw string) (string, error) {
	cfg = cfg.normalized()
	if !cfg.Enabled() {
		return "", errors.New("token verifier is not configured")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("token is required")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.Now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", invalid("token subject is required")
	}
	return subject, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token is expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token not active yet", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token issuer mismatch", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token signature is invalid", err)
	default:
		return apperrors.Wrap(apperrors.CodeTokenInvalid, "token is invalid", err)
	}
}

func invalid(message string) error {
	return apperrors.New(apperrors.CodeTokenInvalid, message)
}
