package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Verification errors.
var (
	ErrMissingToken = errors.New("missing authorization token")
	ErrInvalidToken = errors.New("invalid authorization token")
)

// Claims are the token claims the API cares about.
type Claims struct {
	Username string `json:"cognito:username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier validates bearer tokens and extracts their subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
	SubjectFromAuthHeader(ctx context.Context, header string) (string, error)
}

// JWKSVerifier verifies RS256 tokens against a JWKS endpoint.
type JWKSVerifier struct {
	keyfunc jwt.Keyfunc
	logger  *logrus.Logger
}

// NewJWKSVerifier fetches the JWKS at jwksURL and returns a verifier backed
// by it. The key set refreshes itself in the background.
func NewJWKSVerifier(ctx context.Context, jwksURL string, logger *logrus.Logger) (*JWKSVerifier, error) {
	if logger == nil {
		logger = logrus.New()
	}
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &JWKSVerifier{keyfunc: k.Keyfunc, logger: logger}, nil
}

// NewStaticVerifier builds a verifier around a fixed keyfunc. Used in tests.
func NewStaticVerifier(fn jwt.Keyfunc, logger *logrus.Logger) *JWKSVerifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &JWKSVerifier{keyfunc: fn, logger: logger}
}

// Verify parses and validates the token signature and standard claims.
func (v *JWKSVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		v.logger.WithError(err).Warn("Token verification failed")
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectFromAuthHeader verifies the bearer token in an Authorization header
// and returns its subject claim.
func (v *JWKSVerifier) SubjectFromAuthHeader(ctx context.Context, header string) (string, error) {
	token := ExtractBearerToken(header)
	if token == "" {
		return "", ErrMissingToken
	}
	claims, err := v.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

// ExtractBearerToken strips the Bearer prefix from an Authorization header.
// Returns the raw header value when no prefix is present.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
