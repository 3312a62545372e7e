package workflow

import (
	"fmt"
	"strings"
	"time"
)

// InspectionAction es el tipo de alta de inspección que se quiere hacer.
type InspectionAction string

const (
	// ActionPlan: inspección planificada con ventana.
	ActionPlan InspectionAction = "plan"
	// ActionCreate: inspección no planificada / de emergencia con una sola fecha.
	ActionCreate InspectionAction = "create"
	// ActionDirect: alta directa en eventos Simple aprobados, sin planificación formal.
	ActionDirect InspectionAction = "direct"
)

var InspectionActions = []InspectionAction{ActionPlan, ActionCreate, ActionDirect}

func ParseInspectionAction(s string) (InspectionAction, bool) {
	a := InspectionAction(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionPlan, ActionCreate, ActionDirect:
		return a, true
	}
	return "", false
}

// InspectionRequest: fechas en cero se saltean (chequeo solo de política).
type InspectionRequest struct {
	Action       InspectionAction
	PlannedStart time.Time
	PlannedEnd   time.Time
	Date         time.Time
}

const (
	reasonNotStarted       = "event not started"
	reasonClosed           = "event already closed"
	reasonCategoryNoDirect = "category does not permit direct inspections"
	reasonNotApproved      = "event has not been approved"
	reasonParentClosed     = "parent event is closed"
)

// CheckInspectionAction decide si la acción aplica al evento efectivo (el
// sub-evento mismo cuando la inspección le pertenece) y valida fechas.
func (e *Engine) CheckInspectionAction(ev Snapshot, req InspectionRequest) PolicyResult {
	if _, known := ParseInspectionAction(string(req.Action)); known && ev.Parent != nil && ev.Parent.Status.IsTerminal() {
		return policyDenied(reasonParentClosed)
	}

	switch req.Action {
	case ActionPlan:
		if ev.Status.IsTerminal() {
			return policyDenied(reasonClosed)
		}
		return checkWindow(ev, req.PlannedStart, req.PlannedEnd)

	case ActionCreate:
		switch {
		case ev.Status == StatusPlanned:
			return policyDenied(reasonNotStarted)
		case ev.Status.IsTerminal():
			return policyDenied(reasonClosed)
		}
		return checkUnplannedDate(ev, req.Date)

	case ActionDirect:
		switch {
		case ev.Category != CategorySimple:
			return policyDenied(reasonCategoryNoDirect)
		case ev.Status.IsTerminal():
			return policyDenied(reasonClosed)
		case !ev.Approval.IsApproved():
			return policyDenied(reasonNotApproved)
		}
		return checkWindow(ev, req.PlannedStart, req.PlannedEnd)

	default:
		return policyDenied(fmt.Sprintf("unknown inspection action %q", req.Action))
	}
}

// checkWindow: plannedStart ≤ start ≤ end ≤ plannedEnd, por día.
func checkWindow(ev Snapshot, start, end time.Time) PolicyResult {
	if start.IsZero() && end.IsZero() {
		return PolicyResult{Allowed: true}
	}
	if start.IsZero() || end.IsZero() {
		return invalid(BoundNone, "inspection window requires both start and end dates")
	}

	s, en := DateOnly(start), DateOnly(end)
	if s.After(en) {
		return invalid(BoundNone, fmt.Sprintf("inspection start %s is after its end %s", formatDate(s), formatDate(en)))
	}
	if !ev.PlannedStart.IsZero() && s.Before(DateOnly(ev.PlannedStart)) {
		return invalid(BoundPlannedStart, fmt.Sprintf("inspection start %s is before the event planned start %s",
			formatDate(s), formatDate(ev.PlannedStart)))
	}
	if !ev.PlannedEnd.IsZero() && en.After(DateOnly(ev.PlannedEnd)) {
		return invalid(BoundPlannedEnd, fmt.Sprintf("inspection end %s is after the event planned end %s",
			formatDate(en), formatDate(ev.PlannedEnd)))
	}
	return PolicyResult{Allowed: true}
}

// checkUnplannedDate: el límite inferior es el inicio real si existe, si no el planificado.
func checkUnplannedDate(ev Snapshot, date time.Time) PolicyResult {
	if date.IsZero() {
		return PolicyResult{Allowed: true}
	}
	d := DateOnly(date)

	lower, bound := ev.PlannedStart, BoundPlannedStart
	if ev.ActualStart != nil && !ev.ActualStart.IsZero() {
		lower, bound = *ev.ActualStart, BoundActualStart
	}

	if !lower.IsZero() && d.Before(DateOnly(lower)) {
		label := "planned start"
		if bound == BoundActualStart {
			label = "actual start"
		}
		return invalid(bound, fmt.Sprintf("inspection date %s is before the event %s %s",
			formatDate(d), label, formatDate(lower)))
	}
	if !ev.PlannedEnd.IsZero() && d.After(DateOnly(ev.PlannedEnd)) {
		return invalid(BoundPlannedEnd, fmt.Sprintf("inspection date %s is after the event planned end %s",
			formatDate(d), formatDate(ev.PlannedEnd)))
	}
	return PolicyResult{Allowed: true, Bound: bound}
}

func policyDenied(reason string) PolicyResult {
	return PolicyResult{Allowed: false, Kind: KindPolicyDenial, Reason: reason}
}

func invalid(b Bound, reason string) PolicyResult {
	return PolicyResult{Allowed: false, Kind: KindValidation, Reason: reason, Bound: b}
}
