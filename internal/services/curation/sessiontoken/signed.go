package sessiontoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/curation/internal/platform/id"
)

const (
	signedIssuer   = "curation"
	minSecretBytes = 32
)

// Signed issues HS256 JWTs carrying only registered claims.
type Signed struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewSigned builds a Signed manager. The secret must be at least 32 bytes.
func NewSigned(secret []byte, lifetime time.Duration, now func() time.Time) (*Signed, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("session secret must be at least %d bytes", minSecretBytes)
	}
	if now == nil {
		now = time.Now
	}
	return &Signed{secret: secret, lifetime: lifetime, now: now}, nil
}

// Issue signs a token valid for the configured lifetime.
func (s *Signed) Issue(_ context.Context, now time.Time) (Token, error) {
	jti, err := id.NewID()
	if err != nil {
		return Token{}, err
	}
	expiresAt := now.Add(s.lifetime)
	claims := jwt.RegisteredClaims{
		Issuer:    signedIssuer,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session token: %w", err)
	}
	return Token{Value: value, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature, issuer and expiry.
func (s *Signed) Verify(_ context.Context, value string) bool {
	return s.parse(value) == nil
}

func (s *Signed) parse(value string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signedIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	return mapJWTError(err)
}

var (
	errTokenExpired   = errors.New("session token expired")
	errTokenSignature = errors.New("session token signature is invalid")
	errTokenInvalid   = errors.New("session token is invalid")
)

func mapJWTError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return errTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errTokenSignature
	default:
		return errTokenInvalid
	}
}
