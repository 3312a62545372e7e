package maintenance

import (
	"time"

	"maintenance-inspections/internal/domain/workflow"
)

// Lifecycle son los campos de agenda y estado que comparten eventos y sub-eventos.
type Lifecycle struct {
	Status workflow.Status

	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	CancelledBy  string
	CancelledAt  *time.Time
	CancelReason string
}

// Event es un evento de mantenimiento.
type Event struct {
	ID     string
	Number string // ME-<año>-<secuencia>, único e inmutable

	Title       string
	Description string
	Category    workflow.Category

	Lifecycle

	Approval   workflow.Approval
	ApprovedAt *time.Time

	CreatedBy string

	// SubEventSeq numera los sub-eventos (<número>-<nn>). Nunca decrece.
	SubEventSeq int

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubEvent pertenece a un único evento. No tiene aprobación ni creador
// propios: se proyectan del padre al evaluar.
type SubEvent struct {
	ID      string
	EventID string
	Number  string

	Title       string
	Description string

	Lifecycle

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner identifica al dueño de una inspección: evento XOR sub-evento.
type Owner struct {
	EventID    string
	SubEventID string
}

func EventOwner(id string) Owner    { return Owner{EventID: id} }
func SubEventOwner(id string) Owner { return Owner{SubEventID: id} }

func (o Owner) Valid() bool {
	return (o.EventID == "") != (o.SubEventID == "")
}

// Inspection es planificada (ventana) o no planificada (fecha + motivo).
type Inspection struct {
	ID    string
	Owner Owner

	Kind      workflow.InspectionAction
	IsPlanned bool

	PlannedStart *time.Time
	PlannedEnd   *time.Time

	ActualStart     *time.Time
	UnplannedReason UnplannedReason

	Title string
	Notes string

	CreatedBy string
	CreatedAt time.Time
}

// Snapshot arma la vista que consume el motor.
func (e Event) Snapshot(subs []SubEvent, inspections int) workflow.Snapshot {
	children := make([]workflow.ChildStatus, 0, len(subs))
	for _, s := range subs {
		children = append(children, workflow.ChildStatus{ID: s.ID, Number: s.Number, Status: s.Status})
	}
	return workflow.Snapshot{
		ID:              e.ID,
		Number:          e.Number,
		Status:          e.Status,
		Approval:        e.Approval,
		CreatedBy:       e.CreatedBy,
		Category:        e.Category,
		PlannedStart:    e.PlannedStart,
		PlannedEnd:      e.PlannedEnd,
		ActualStart:     e.ActualStart,
		ActualEnd:       e.ActualEnd,
		SubEvents:       children,
		InspectionCount: inspections,
	}
}

// Snapshot del sub-evento, todavía sin el contexto del padre.
func (s SubEvent) Snapshot(inspections int) workflow.SubEventSnapshot {
	return workflow.SubEventSnapshot{
		ID:              s.ID,
		Number:          s.Number,
		Status:          s.Status,
		PlannedStart:    s.PlannedStart,
		PlannedEnd:      s.PlannedEnd,
		ActualStart:     s.ActualStart,
		ActualEnd:       s.ActualEnd,
		InspectionCount: inspections,
	}
}

// apply aplica los efectos de una transición ya validada sobre el ciclo de vida.
func (l *Lifecycle) apply(t workflow.Transition, to workflow.Target, by, reason string, now time.Time) {
	switch t {
	case workflow.TransitionStart:
		l.Status = workflow.StatusInProgress
		if l.ActualStart == nil {
			l.ActualStart = &now
		}
	case workflow.TransitionComplete:
		l.Status = workflow.StatusCompleted
		l.ActualEnd = &now
	case workflow.TransitionCancel:
		l.Status = workflow.StatusCancelled
		l.CancelledBy = by
		l.CancelledAt = &now
		l.CancelReason = reason
	case workflow.TransitionReopen:
		l.Status = workflow.StatusInProgress
		l.ActualEnd = nil
	case workflow.TransitionRevert, workflow.TransitionRevertApproval:
		l.Status = workflow.StatusPlanned
		l.ActualStart = nil
	case workflow.TransitionReactivate:
		l.CancelledBy = ""
		l.CancelledAt = nil
		l.CancelReason = ""
		if to == workflow.TargetInProgress {
			l.Status = workflow.StatusInProgress
			if l.ActualStart == nil {
				l.ActualStart = &now
			}
		} else {
			l.Status = workflow.StatusPlanned
		}
	}
}

// apply agrega al ciclo de vida los efectos sobre la aprobación.
func (e *Event) apply(t workflow.Transition, to workflow.Target, by, reason string, now time.Time) {
	switch t {
	case workflow.TransitionApprove:
		e.Approval = workflow.ApprovedBy(by)
		e.ApprovedAt = &now
	case workflow.TransitionRevertApproval:
		e.Approval = workflow.Unapproved()
		e.ApprovedAt = nil
	}
	e.Lifecycle.apply(t, to, by, reason, now)
}
