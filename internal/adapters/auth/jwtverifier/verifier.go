package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maintenance-inspections/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretEmpty   = errors.New("jwt secret is empty")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("token missing subject")
)

// tokenClaims: sub es el user id; el resto son claims privados.
type tokenClaims struct {
	Email    string   `json:"email,omitempty"`
	TenantID string   `json:"tenant_id,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier valida tokens HS256 firmados con un secreto compartido.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

type Option func(*Verifier)

func WithIssuer(iss string) Option {
	return func(v *Verifier) { v.issuer = strings.TrimSpace(iss) }
}

func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) { v.leeway = d }
}

func New(secret string, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretEmpty
	}
	v := &Verifier{secret: []byte(secret), leeway: 30 * time.Second}
	for _, o := range opts {
		o(v)
	}
	return v, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		popts = append(popts, jwt.WithIssuer(v.issuer))
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, popts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID:   sub,
		Email:    tc.Email,
		TenantID: tc.TenantID,
		Roles:    tc.Roles,
	}, nil
}

// Sign emite un token HS256; lo usan los tests y el tooling local.
func (v *Verifier) Sign(c auth.Claims, ttl time.Duration, now time.Time) (string, error) {
	tc := tokenClaims{
		Email:    c.Email,
		TenantID: c.TenantID,
		Roles:    c.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(v.secret)
}
