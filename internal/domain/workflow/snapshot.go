package workflow

import "time"

// Snapshot es la vista inmutable de un evento (o de un sub-evento ya derivado)
// sobre la que decide el motor. La arma la capa que persiste.
type Snapshot struct {
	ID     string
	Number string

	Status    Status
	Approval  Approval
	CreatedBy string
	Category  Category

	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	// Hijos directos. Solo se usa el status (completar / borrar).
	SubEvents       []ChildStatus
	InspectionCount int

	// Parent != nil marca un snapshot derivado de un sub-evento.
	Parent *ParentContext
}

type ChildStatus struct {
	ID     string
	Number string
	Status Status
}

// ParentContext es lo que un sub-evento necesita saber de su padre.
type ParentContext struct {
	ID     string
	Number string
	Status Status
}

func (s Snapshot) Stage() Stage { return StageOf(s.Status, s.Approval) }

func (s Snapshot) IsSubEvent() bool { return s.Parent != nil }

// OpenSubEvents devuelve los hijos que no están completados ni cancelados.
func (s Snapshot) OpenSubEvents() []ChildStatus {
	out := make([]ChildStatus, 0)
	for _, c := range s.SubEvents {
		if !c.Status.IsTerminal() {
			out = append(out, c)
		}
	}
	return out
}

// DateOnly normaliza a medianoche UTC; todas las ventanas se comparan por día.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	return DateOnly(t).Format("2006-01-02")
}
