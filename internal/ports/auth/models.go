package auth

import "strings"

// RoleAdmin es el rol global que habilita aprobaciones y reversiones.
const RoleAdmin = "admin"

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
	Roles    []string
}

func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}
