package workflow

import "strings"

// Principal es el usuario autenticado tal como lo resuelve la capa HTTP
// (claims + directorio de roles). El motor no hace lookups de sesión.
type Principal struct {
	ID      string
	IsAdmin bool
}

// Actor es el contexto del principal relativo a un evento concreto.
type Actor struct {
	IsAdmin bool
	IsOwner bool
}

// ResolveActor: isOwner cuando el principal es quien creó el evento.
// Para sub-eventos, CreatedBy ya viene proyectado desde el padre (ver DeriveSubEvent).
func ResolveActor(p Principal, ev Snapshot) Actor {
	id := strings.TrimSpace(p.ID)
	return Actor{
		IsAdmin: p.IsAdmin,
		IsOwner: id != "" && id == strings.TrimSpace(ev.CreatedBy),
	}
}

// CanManage: admin u owner. Es la guarda común de los cambios de estado
// no reservados a administradores.
func (a Actor) CanManage() bool { return a.IsAdmin || a.IsOwner }
