package maintenance

import (
	"context"

	"maintenance-inspections/internal/domain/workflow"
)

// Repository persiste eventos, sub-eventos e inspecciones.
//
// Update* y Delete* son compare-and-swap sobre Version: si la versión guardada
// no es expectedVersion devuelven ErrConflict sin escribir. Ausencia => ErrNotFound.
//
// Las escrituras de sub-eventos e inspecciones llevan además un Fence sobre el
// evento raíz: en la misma operación verifican su versión y la incrementan.
// Así un complete/delete del padre que leyó a los hijos pierde el CAS si un
// hijo cambió en el medio, y viceversa.
type Repository interface {
	NextEventSequence(ctx context.Context) (int64, error)

	CreateEvent(ctx context.Context, e Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, filter ListFilter) ([]Event, error)
	UpdateEvent(ctx context.Context, e Event, expectedVersion int64) error
	DeleteEvent(ctx context.Context, id string, expectedVersion int64) error

	CreateSubEvent(ctx context.Context, s SubEvent, fence Fence) error
	GetSubEvent(ctx context.Context, id string) (SubEvent, error)
	ListSubEvents(ctx context.Context, eventID string) ([]SubEvent, error)
	UpdateSubEvent(ctx context.Context, s SubEvent, expectedVersion int64, fence Fence) error
	DeleteSubEvent(ctx context.Context, id string, expectedVersion int64, fence Fence) error

	CreateInspection(ctx context.Context, in Inspection, fence Fence) error
	ListInspections(ctx context.Context, owner Owner) ([]Inspection, error)
	CountInspections(ctx context.Context, owner Owner) (int, error)
}

// Fence es la versión del evento raíz que leyó quien escribe en su familia.
type Fence struct {
	EventID string
	Version int64
}

// FenceOf toma la versión leída del evento.
func FenceOf(e Event) Fence {
	return Fence{EventID: e.ID, Version: e.Version}
}

type ListFilter struct {
	Statuses  []workflow.Status
	Category  workflow.Category
	CreatedBy string
	Query     string
	Limit     int
}
