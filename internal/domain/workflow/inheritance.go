package workflow

import "time"

// SubEventSnapshot son los campos propios de un sub-evento. No tiene
// aprobación ni creador: esos vienen del padre.
type SubEventSnapshot struct {
	ID     string
	Number string
	Status Status

	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time

	InspectionCount int
}

// DeriveSubEvent proyecta aprobación, creador y categoría del padre sobre el
// sub-evento. El status NO se hereda. El snapshot resultante lleva Parent, lo
// que activa las guardas de padre en el validador.
func DeriveSubEvent(parent Snapshot, sub SubEventSnapshot) Snapshot {
	return Snapshot{
		ID:     sub.ID,
		Number: sub.Number,

		Status:    sub.Status,
		Approval:  parent.Approval,
		CreatedBy: parent.CreatedBy,
		Category:  parent.Category,

		PlannedStart: sub.PlannedStart,
		PlannedEnd:   sub.PlannedEnd,
		ActualStart:  sub.ActualStart,
		ActualEnd:    sub.ActualEnd,

		InspectionCount: sub.InspectionCount,

		Parent: &ParentContext{
			ID:     parent.ID,
			Number: parent.Number,
			Status: parent.Status,
		},
	}
}

// SubEventCapabilities es el atajo derivar + resolver.
func (e *Engine) SubEventCapabilities(parent Snapshot, sub SubEventSnapshot, actor Actor) CapabilitySet {
	return e.Capabilities(DeriveSubEvent(parent, sub), actor)
}
