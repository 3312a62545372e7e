package maintenance

import (
	"context"
	"time"

	"maintenance-inspections/internal/domain/workflow"
	"maintenance-inspections/internal/platform/eventbus"
	"maintenance-inspections/internal/platform/logger"
)

const StatusChangedEvent = "maintenance.status_changed"

type Entity string

const (
	EntityEvent    Entity = "event"
	EntitySubEvent Entity = "sub_event"
)

// StatusChanged se publica después de persistir un cambio de estado.
type StatusChanged struct {
	Entity     Entity
	ID         string
	Number     string
	ParentID   string
	Transition workflow.Transition
	From       workflow.Stage
	To         workflow.Stage
	By         string
	Reason     string
	At         time.Time
}

func (StatusChanged) Name() string { return StatusChangedEvent }

func (c StatusChanged) fields() map[string]any {
	f := map[string]any{
		"entity":     string(c.Entity),
		"id":         c.ID,
		"number":     c.Number,
		"transition": string(c.Transition),
		"from":       string(c.From),
		"to":         string(c.To),
		"by":         c.By,
	}
	if c.ParentID != "" {
		f["parent_id"] = c.ParentID
	}
	if c.Reason != "" {
		f["reason"] = c.Reason
	}
	return f
}

// AuditListener deja rastro de cada cambio de estado en el log de auditoría.
func AuditListener(log logger.Logger) eventbus.Listener {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "audit"})
	return func(_ context.Context, ev eventbus.Event) error {
		sc, ok := ev.(StatusChanged)
		if !ok {
			return nil
		}
		log.Info("maintenance status changed", sc.fields())
		return nil
	}
}
