package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the token claims the API reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Verifier checks bearer tokens signed with an HS256 secret or an RS256 key.
type Verifier struct {
	key     any
	methods []string
	opts    []jwt.ParserOption
}

// NewVerifier builds a verifier from cfg. The RS256 public key wins when both
// key kinds are configured.
func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	v := &Verifier{}
	switch {
	case cfg.JWTPublicKey != "":
		key, err := parsePublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, err
		}
		v.key = key
		v.methods = []string{jwt.SigningMethodRS256.Alg()}
	case cfg.JWTSecret != "":
		v.key = []byte(cfg.JWTSecret)
		v.methods = []string{jwt.SigningMethodHS256.Alg()}
	default:
		return nil, errors.New("no token verification key configured")
	}

	v.opts = []jwt.ParserOption{jwt.WithValidMethods(v.methods), jwt.WithExpirationRequired()}
	if cfg.JWTIssuer != "" {
		v.opts = append(v.opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	if cfg.JWTAudience != "" {
		v.opts = append(v.opts, jwt.WithAudience(cfg.JWTAudience))
	}
	return v, nil
}

func parsePublicKey(pem string) (*rsa.PublicKey, error) {
	// Env files often carry the PEM with escaped newlines.
	pem = strings.ReplaceAll(pem, `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parse AUTH_JWT_PUBLIC_KEY: %w", err)
	}
	return key, nil
}

// Verify validates token and returns the caller's identity.
func (v *Verifier) Verify(token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrMissingToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, v.opts...)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	return models.Identity{Subject: claims.Subject, Email: claims.Email}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
