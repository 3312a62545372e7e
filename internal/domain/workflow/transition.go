package workflow

import (
	"fmt"
	"strings"
)

// Target es el estado destino pedido al validador. Planned se pide como
// planned_approved / planned_unapproved cuando importa la aprobación, o como
// planned a secas cuando la aprobación se conserva (revert, reactivate).
type Target string

const (
	TargetApproved   Target = "planned_approved"
	TargetUnapproved Target = "planned_unapproved"
	TargetPlanned    Target = "planned"
	TargetInProgress Target = "in_progress"
	TargetCompleted  Target = "completed"
	TargetCancelled  Target = "cancelled"
	TargetRemoved    Target = "removed"
)

var Targets = []Target{
	TargetApproved, TargetUnapproved, TargetPlanned,
	TargetInProgress, TargetCompleted, TargetCancelled, TargetRemoved,
}

func ParseTarget(s string) (Target, bool) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// TargetForStatus traduce un Status plano a su Target.
func TargetForStatus(s Status) Target {
	switch s {
	case StatusPlanned:
		return TargetPlanned
	case StatusInProgress:
		return TargetInProgress
	case StatusCompleted:
		return TargetCompleted
	case StatusCancelled:
		return TargetCancelled
	default:
		return Target(s)
	}
}

// Transition nombra cada arista de la máquina de estados.
type Transition string

const (
	TransitionApprove        Transition = "approve"
	TransitionRevertApproval Transition = "revert_approval"
	TransitionStart          Transition = "start"
	TransitionComplete       Transition = "complete"
	TransitionCancel         Transition = "cancel"
	TransitionReopen         Transition = "reopen"
	TransitionRevert         Transition = "revert"
	TransitionReactivate     Transition = "reactivate"
	TransitionDelete         Transition = "delete"
)

var Transitions = []Transition{
	TransitionApprove, TransitionRevertApproval, TransitionStart, TransitionComplete,
	TransitionCancel, TransitionReopen, TransitionRevert, TransitionReactivate, TransitionDelete,
}

// ParseTransition acepta "revert-approval" y "revert_approval".
func ParseTransition(s string) (Transition, bool) {
	t := Transition(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Transitions {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// DefaultTarget es el destino de la acción cuando el caller no lo especifica.
func (t Transition) DefaultTarget() Target {
	switch t {
	case TransitionApprove:
		return TargetApproved
	case TransitionRevertApproval:
		return TargetUnapproved
	case TransitionStart, TransitionReopen:
		return TargetInProgress
	case TransitionComplete:
		return TargetCompleted
	case TransitionCancel:
		return TargetCancelled
	case TransitionRevert, TransitionReactivate:
		return TargetPlanned
	case TransitionDelete:
		return TargetRemoved
	default:
		return ""
	}
}

func (t Transition) verb() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

type guardFunc func(e *Engine, ev Snapshot, a Actor) string

type edge struct {
	from   Stage
	to     Target
	name   Transition
	guards []guardFunc
}

// edges es la tabla completa. Cada par (from, to) aparece a lo sumo una vez;
// cualquier par ausente es una transición ilegal.
var edges = []edge{
	{StagePlannedUnapproved, TargetApproved, TransitionApprove,
		[]guardFunc{approvalNotInherited, adminOnly}},

	{StagePlannedApproved, TargetUnapproved, TransitionRevertApproval,
		[]guardFunc{approvalNotInherited, adminOnly, revertApprovalRequiresStart}},
	{StageInProgress, TargetUnapproved, TransitionRevertApproval,
		[]guardFunc{approvalNotInherited, adminOnly, noActiveSubEvents}},

	{StagePlannedApproved, TargetInProgress, TransitionStart,
		[]guardFunc{parentStarted, ownerOrAdmin, windowNotElapsed}},
	{StagePlannedUnapproved, TargetInProgress, TransitionStart,
		[]guardFunc{parentStarted, ownerOrAdmin, mustBeApproved}},

	{StageInProgress, TargetCompleted, TransitionComplete,
		[]guardFunc{parentOpen, ownerOrAdmin, noOpenSubEvents}},

	{StagePlannedUnapproved, TargetCancelled, TransitionCancel, []guardFunc{parentOpen, ownerOrAdmin}},
	{StagePlannedApproved, TargetCancelled, TransitionCancel, []guardFunc{parentOpen, ownerOrAdmin}},
	{StageInProgress, TargetCancelled, TransitionCancel, []guardFunc{parentOpen, ownerOrAdmin}},

	{StageCompleted, TargetInProgress, TransitionReopen, []guardFunc{parentStarted, adminOnly}},

	{StageInProgress, TargetPlanned, TransitionRevert,
		[]guardFunc{parentOpen, adminOnly, noActiveSubEvents}},

	{StageCancelled, TargetPlanned, TransitionReactivate,
		[]guardFunc{parentOpen, adminOnly, noActiveSubEvents}},
	{StageCancelled, TargetInProgress, TransitionReactivate, []guardFunc{parentStarted, adminOnly}},

	{StagePlannedUnapproved, TargetRemoved, TransitionDelete,
		[]guardFunc{ownerOrAdmin, childless}},
}

func findEdge(from Stage, to Target) (edge, bool) {
	for _, ed := range edges {
		if ed.from == from && ed.to == to {
			return ed, true
		}
	}
	return edge{}, false
}

func (e *Engine) evaluate(ed edge, ev Snapshot, a Actor) ValidationResult {
	for _, g := range ed.guards {
		if reason := g(e, ev, a); reason != "" {
			return deny(ed.name, reason)
		}
	}
	return allow(ed.name)
}

// ValidateTransition decide si (ev, to, actor) es legal. Es total: cualquier
// combinación devuelve un resultado, nunca un panic ni un bool pelado.
func (e *Engine) ValidateTransition(ev Snapshot, to Target, actor Actor) ValidationResult {
	from := ev.Stage()
	ed, ok := findEdge(from, to)
	if !ok {
		return deny("", fmt.Sprintf("illegal transition from %s to %s", from, to))
	}
	return e.evaluate(ed, ev, actor)
}

// CheckTransition evalúa una transición por nombre desde el estado actual.
// Es lo que usa el resolver de capabilities.
func (e *Engine) CheckTransition(ev Snapshot, t Transition, actor Actor) ValidationResult {
	from := ev.Stage()

	var first *ValidationResult
	for _, ed := range edges {
		if ed.from != from || ed.name != t {
			continue
		}
		res := e.evaluate(ed, ev, actor)
		if res.OK {
			return res
		}
		if first == nil {
			first = &res
		}
	}
	if first != nil {
		return *first
	}
	return deny(t, fmt.Sprintf("cannot %s an event that is %s", t.verb(), from))
}

// ValidateAction valida una acción nombrada (endpoint start/approve/...) hacia
// to; si to viene vacío se usa el destino por defecto de la acción.
func (e *Engine) ValidateAction(ev Snapshot, t Transition, to Target, actor Actor) ValidationResult {
	if to == "" {
		to = t.DefaultTarget()
	}
	res := e.ValidateTransition(ev, to, actor)
	if res.Transition == t {
		return res
	}
	// El par (from, to) existe pero pertenece a otra acción, o no existe.
	named := e.CheckTransition(ev, t, actor)
	if !named.OK {
		return named
	}
	return deny(t, fmt.Sprintf("illegal transition from %s to %s", ev.Stage(), to))
}

// --- guardas ---

func adminOnly(_ *Engine, _ Snapshot, a Actor) string {
	if !a.IsAdmin {
		return "only an administrator can perform this action"
	}
	return ""
}

func ownerOrAdmin(_ *Engine, _ Snapshot, a Actor) string {
	if !a.CanManage() {
		return "only the event owner or an administrator can perform this action"
	}
	return ""
}

func approvalNotInherited(_ *Engine, ev Snapshot, _ Actor) string {
	if ev.IsSubEvent() {
		return "approval is inherited from the parent event"
	}
	return ""
}

// revertApprovalRequiresStart: revertir la aprobación solo corrige un inicio
// equivocado; desde Planned (approved) no aplica.
func revertApprovalRequiresStart(_ *Engine, ev Snapshot, _ Actor) string {
	if ev.Status != StatusInProgress {
		return "approval can only be reverted once the event is in progress"
	}
	return ""
}

func mustBeApproved(_ *Engine, ev Snapshot, _ Actor) string {
	if !ev.Approval.IsApproved() {
		return "event must be approved before it can start"
	}
	return ""
}

func windowNotElapsed(e *Engine, ev Snapshot, _ Actor) string {
	if ev.PlannedEnd.IsZero() {
		return ""
	}
	if e.today().After(DateOnly(ev.PlannedEnd)) {
		return fmt.Sprintf("planned window already elapsed (ended %s)", formatDate(ev.PlannedEnd))
	}
	return ""
}

func noOpenSubEvents(_ *Engine, ev Snapshot, _ Actor) string {
	open := ev.OpenSubEvents()
	if len(open) == 0 {
		return ""
	}
	labels := make([]string, 0, len(open))
	for _, c := range open {
		label := c.Number
		if label == "" {
			label = c.ID
		}
		labels = append(labels, fmt.Sprintf("%s (%s)", label, c.Status))
	}
	return fmt.Sprintf("cannot complete while %d open sub-event(s) remain: %s", len(open), strings.Join(labels, ", "))
}

// noActiveSubEvents: el padre no vuelve a Planned con hijos en ejecución.
func noActiveSubEvents(_ *Engine, ev Snapshot, _ Actor) string {
	var labels []string
	for _, c := range ev.SubEvents {
		if c.Status != StatusInProgress {
			continue
		}
		label := c.Number
		if label == "" {
			label = c.ID
		}
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("cannot move back to planned while %d sub-event(s) are in progress: %s", len(labels), strings.Join(labels, ", "))
}

func childless(_ *Engine, ev Snapshot, _ Actor) string {
	if len(ev.SubEvents) > 0 {
		return fmt.Sprintf("cannot delete: event owns %d sub-event(s)", len(ev.SubEvents))
	}
	if ev.InspectionCount > 0 {
		return fmt.Sprintf("cannot delete: event owns %d inspection(s)", ev.InspectionCount)
	}
	return ""
}

// parentStarted: un sub-evento solo entra en ejecución (start, reopen,
// reactivate) con el padre en ejecución, sin importar su propia aprobación
// proyectada.
func parentStarted(_ *Engine, ev Snapshot, _ Actor) string {
	if ev.Parent == nil {
		return ""
	}
	switch ev.Parent.Status {
	case StatusInProgress:
		return ""
	case StatusPlanned:
		return "parent event has not started"
	default:
		return "parent event is closed"
	}
}

// parentOpen: un padre cerrado congela a sus hijos.
func parentOpen(_ *Engine, ev Snapshot, _ Actor) string {
	if ev.Parent != nil && ev.Parent.Status.IsTerminal() {
		return "parent event is closed"
	}
	return ""
}
