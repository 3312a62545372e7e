package iam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"maintenance-inspections/internal/platform/httpclient"
	"maintenance-inspections/internal/ports/auth"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("iam response missing user_id")
)

const verifyPath = "/v1/tokens/verify"

// verifyResponse es el contrato del endpoint de verificación del IAM.
type verifyResponse struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles"`
}

// Verifier implementa auth.AuthVerifier delegando en el IAM corporativo.
type Verifier struct {
	client *httpclient.Client
}

func NewVerifier(client *httpclient.Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || !v.client.IsConfigured() {
		return auth.Claims{}, httpclient.ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out verifyResponse
	err := v.client.PostJSON(ctx, verifyPath,
		// Algunos IAM esperan el token en Authorization, aunque también vaya en body.
		map[string]string{"Authorization": "Bearer " + token},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("iam verify failed: %w", err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	roles := make([]string, 0, len(out.Roles))
	for _, r := range out.Roles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}

	return auth.Claims{
		UserID:   out.UserID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
		Roles:    roles,
	}, nil
}
