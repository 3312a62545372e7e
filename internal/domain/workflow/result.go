package workflow

import (
	"errors"
	"fmt"
)

// Kind clasifica una decisión negativa.
type Kind string

const (
	KindNone Kind = ""
	// KindIllegalTransition: no hay arista o su guarda falla.
	KindIllegalTransition Kind = "illegal_transition"
	// KindPolicyDenial: la acción de inspección no aplica al ciclo de vida / categoría.
	KindPolicyDenial Kind = "policy_denied"
	// KindValidation: fechas o ventanas mal formadas; es input inválido, no un conflicto.
	KindValidation Kind = "validation_failed"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrPolicyDenied      = errors.New("policy denied")
	ErrValidation        = errors.New("validation failed")
)

// DecisionError transporta el kind y el motivo legible para el usuario.
type DecisionError struct {
	Kind   Kind
	Reason string
}

func (e *DecisionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *DecisionError) Is(target error) bool {
	switch target {
	case ErrIllegalTransition:
		return e.Kind == KindIllegalTransition
	case ErrPolicyDenied:
		return e.Kind == KindPolicyDenial
	case ErrValidation:
		return e.Kind == KindValidation
	default:
		return false
	}
}

// ValidationResult es el resultado del validador de transiciones.
type ValidationResult struct {
	OK         bool
	Transition Transition // arista que matcheó; vacío si no hay arista
	Kind       Kind
	Reason     string
}

func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &DecisionError{Kind: r.Kind, Reason: r.Reason}
}

// Bound indica qué límite inferior se usó para validar una inspección no planificada.
type Bound string

const (
	BoundNone         Bound = ""
	BoundActualStart  Bound = "actual_start"
	BoundPlannedStart Bound = "planned_start"
	BoundPlannedEnd   Bound = "planned_end"
)

// PolicyResult es el resultado de la política de inspecciones.
type PolicyResult struct {
	Allowed bool
	Kind    Kind
	Reason  string
	Bound   Bound
}

func (r PolicyResult) Err() error {
	if r.Allowed {
		return nil
	}
	return &DecisionError{Kind: r.Kind, Reason: r.Reason}
}

func allow(t Transition) ValidationResult {
	return ValidationResult{OK: true, Transition: t}
}

func deny(t Transition, reason string) ValidationResult {
	return ValidationResult{OK: false, Transition: t, Kind: KindIllegalTransition, Reason: reason}
}
