package workflow

import "strings"

// Status es el ciclo de vida de un evento de mantenimiento (y de sus sub-eventos).
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lista los estados legales en orden de ciclo de vida.
var Statuses = []Status{StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive: ejecución en curso.
func (s Status) IsActive() bool { return s == StatusInProgress }

// IsTerminal: completado o cancelado.
func (s Status) IsTerminal() bool { return s == StatusCompleted || s == StatusCancelled }

// IsInPlanMode: planificado, con o sin aprobación. Se pueden agendar inspecciones
// pero no ejecutarlas.
func (s Status) IsInPlanMode() bool { return s == StatusPlanned }

// Category define cómo se organiza el trabajo de un evento.
type Category string

const (
	// CategorySimple permite crear inspecciones directas una vez aprobado.
	CategorySimple Category = "simple"
	// CategoryComplex organiza el trabajo en sub-eventos y planificación formal.
	CategoryComplex Category = "complex"
)

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

func (c Category) Valid() bool {
	return c == CategorySimple || c == CategoryComplex
}

// Stage es el estado refinado por la aprobación. Planned se divide en
// unapproved / approved; el resto coincide con Status.
type Stage string

const (
	StagePlannedUnapproved Stage = "planned_unapproved"
	StagePlannedApproved   Stage = "planned_approved"
	StageInProgress        Stage = "in_progress"
	StageCompleted         Stage = "completed"
	StageCancelled         Stage = "cancelled"
)

// StageOf combina status y aprobación.
func StageOf(s Status, a Approval) Stage {
	switch s {
	case StatusPlanned:
		if a.IsApproved() {
			return StagePlannedApproved
		}
		return StagePlannedUnapproved
	case StatusInProgress:
		return StageInProgress
	case StatusCompleted:
		return StageCompleted
	case StatusCancelled:
		return StageCancelled
	default:
		return Stage(s)
	}
}

func (st Stage) String() string {
	switch st {
	case StagePlannedUnapproved:
		return "planned (unapproved)"
	case StagePlannedApproved:
		return "planned (approved)"
	default:
		return string(st)
	}
}
