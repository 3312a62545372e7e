package roles

import (
	"context"
	"strings"
)

// StaticDirectory responde desde una lista fija (ADMIN_USER_IDS).
type StaticDirectory struct {
	admins map[string]struct{}
}

func NewStaticDirectory(userIDs []string) *StaticDirectory {
	m := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id = strings.TrimSpace(id); id != "" {
			m[id] = struct{}{}
		}
	}
	return &StaticDirectory{admins: m}
}

func (d *StaticDirectory) IsAdmin(_ context.Context, userID string) (bool, error) {
	_, ok := d.admins[strings.TrimSpace(userID)]
	return ok, nil
}
