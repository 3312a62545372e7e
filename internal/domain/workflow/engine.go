package workflow

import "time"

// Engine agrupa las tres llamadas públicas del motor: GetCapabilities,
// ValidateTransition y CheckInspectionAction. No guarda estado mutable; el
// único insumo fuera de los argumentos es el reloj (fecha de hoy).
type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) today() time.Time {
	return DateOnly(e.now())
}

// GetCapabilities es el camino de lectura: arma el set completo para el actor.
// subEvents reemplaza los hijos del snapshot (la capa HTTP los carga aparte).
func (e *Engine) GetCapabilities(ev Snapshot, subEvents []ChildStatus, actor Actor) CapabilitySet {
	if subEvents != nil {
		ev.SubEvents = subEvents
	}
	return e.Capabilities(ev, actor)
}
