package roles

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"maintenance-inspections/internal/platform/httpclient"
	"maintenance-inspections/internal/ports/auth"
)

var ErrUserIDRequired = errors.New("user id required")

const rolesPath = "/v1/roles"

// rolesResponse es el contrato de GET /v1/roles?user_id=...
type rolesResponse struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
}

// RemoteDirectory consulta los roles globales en el servicio de identidad.
type RemoteDirectory struct {
	client *httpclient.Client
}

func NewRemoteDirectory(client *httpclient.Client) *RemoteDirectory {
	return &RemoteDirectory{client: client}
}

func (d *RemoteDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, ErrUserIDRequired
	}
	if d == nil || !d.client.IsConfigured() {
		return false, httpclient.ErrNotConfigured
	}

	q := url.Values{}
	q.Set("user_id", userID)

	var out rolesResponse
	if err := d.client.GetJSON(ctx, rolesPath+"?"+q.Encode(), nil, &out); err != nil {
		return false, err
	}

	return auth.Claims{Roles: out.Roles}.HasRole(auth.RoleAdmin), nil
}
