package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiration is the lifetime of an issued session token.
const DefaultExpiration = time.Hour

var (
	ErrMissingSecret     = errors.New("jwt secret key is not configured")
	ErrMissingToken      = errors.New("authorization header missing")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
	// ErrTokenExpired also matches ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)
)

// Claims is the identity asserted by a session token.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// JWT issues and validates HS256 session tokens.
type JWT struct {
	secretKey []byte
	exp       time.Duration
	now       func() time.Time
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) {
		j.secretKey = []byte(secret)
	}
}

// WithExpiration overrides DefaultExpiration.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) {
		j.exp = exp
	}
}

// WithClock sets the time source used for issuing and validating.
func WithClock(now func() time.Time) Opt {
	return func(j *JWT) {
		j.now = now
	}
}

// New creates a JWT codec. It fails when no secret key is given.
func New(opts ...Opt) (*JWT, error) {
	j := &JWT{
		exp: DefaultExpiration,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	if len(j.secretKey) == 0 {
		return nil, ErrMissingSecret
	}
	return j, nil
}

// Generate creates a signed token for the given user.
func (j *JWT) Generate(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	now := j.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GetClaims parses and validates the token, returning its claims.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate reports whether the token is valid.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the bearer token from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthHeader
	}

	return parts[1], nil
}
