package roles

import "context"

// Directory responde si un usuario tiene el rol global de administrador.
// Lo consulta la capa HTTP al resolver el principal; el motor nunca.
type Directory interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
