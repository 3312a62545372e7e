package workflow

// PlanModeRestrictions describe lo que no se puede hacer mientras el evento está Planned.
type PlanModeRestrictions struct {
	CannotStartInspections           bool   `json:"cannot_start_inspections"`
	CannotCreateUnplannedInspections bool   `json:"cannot_create_unplanned_inspections"`
	Message                          string `json:"message,omitempty"`
}

// CapabilitySet es el registro fijo que consumen la UI y los endpoints de escritura.
type CapabilitySet struct {
	Stage Stage `json:"stage"`

	CanEdit           bool `json:"can_edit"`
	CanDelete         bool `json:"can_delete"`
	CanCancel         bool `json:"can_cancel"`
	CanStart          bool `json:"can_start"`
	CanComplete       bool `json:"can_complete"`
	CanApprove        bool `json:"can_approve"`
	CanRevertApproval bool `json:"can_revert_approval"`
	CanReopen         bool `json:"can_reopen"`
	CanRevert         bool `json:"can_revert"`
	CanReactivate     bool `json:"can_reactivate"`

	CanAddSubEvents               bool `json:"can_add_sub_events"`
	CanPlanInspections            bool `json:"can_plan_inspections"`
	CanCreateDirectInspections    bool `json:"can_create_direct_inspections"`
	CanCreateUnplannedInspections bool `json:"can_create_unplanned_inspections"`
	RequiresApproval              bool `json:"requires_approval"`

	PlanModeRestrictions PlanModeRestrictions `json:"plan_mode_restrictions"`

	IsActive     bool `json:"is_active"`
	IsTerminal   bool `json:"is_terminal"`
	IsInPlanMode bool `json:"is_in_plan_mode"`

	// Reasons explica cada flag de transición en false.
	Reasons map[Transition]string `json:"reasons,omitempty"`
}

const planModeMessage = "event is in plan mode: inspections can be scheduled but not executed until the event starts"

// Allows devuelve el flag correspondiente a una transición.
func (c CapabilitySet) Allows(t Transition) bool {
	switch t {
	case TransitionApprove:
		return c.CanApprove
	case TransitionRevertApproval:
		return c.CanRevertApproval
	case TransitionStart:
		return c.CanStart
	case TransitionComplete:
		return c.CanComplete
	case TransitionCancel:
		return c.CanCancel
	case TransitionReopen:
		return c.CanReopen
	case TransitionRevert:
		return c.CanRevert
	case TransitionReactivate:
		return c.CanReactivate
	case TransitionDelete:
		return c.CanDelete
	default:
		return false
	}
}

// Capabilities resuelve el set completo. Los flags de transición salen del
// validador; el resto son reglas de status/categoría/aprobación.
func (e *Engine) Capabilities(ev Snapshot, actor Actor) CapabilitySet {
	status := ev.Status
	approved := ev.Approval.IsApproved()

	caps := CapabilitySet{
		Stage: ev.Stage(),

		IsActive:     status.IsActive(),
		IsTerminal:   status.IsTerminal(),
		IsInPlanMode: status.IsInPlanMode(),

		CanEdit:                       status == StatusPlanned || status == StatusCompleted,
		CanAddSubEvents:               ev.Category == CategoryComplex && status == StatusPlanned && !ev.IsSubEvent(),
		CanPlanInspections:            status == StatusPlanned || status == StatusInProgress,
		CanCreateDirectInspections:    ev.Category == CategorySimple && approved && (status == StatusPlanned || status == StatusInProgress),
		CanCreateUnplannedInspections: status == StatusInProgress,
		RequiresApproval:              status == StatusPlanned && !approved,

		Reasons: make(map[Transition]string),
	}

	// Padre cerrado: el hijo queda congelado.
	if ev.Parent != nil && ev.Parent.Status.IsTerminal() {
		caps.CanEdit = false
		caps.CanAddSubEvents = false
		caps.CanPlanInspections = false
		caps.CanCreateDirectInspections = false
		caps.CanCreateUnplannedInspections = false
	}

	if caps.IsInPlanMode {
		caps.PlanModeRestrictions = PlanModeRestrictions{
			CannotStartInspections:           true,
			CannotCreateUnplannedInspections: true,
			Message:                          planModeMessage,
		}
	}

	for _, t := range Transitions {
		res := e.CheckTransition(ev, t, actor)
		caps.set(t, res.OK)
		if !res.OK {
			caps.Reasons[t] = res.Reason
		}
	}

	return caps
}

func (c *CapabilitySet) set(t Transition, v bool) {
	switch t {
	case TransitionApprove:
		c.CanApprove = v
	case TransitionRevertApproval:
		c.CanRevertApproval = v
	case TransitionStart:
		c.CanStart = v
	case TransitionComplete:
		c.CanComplete = v
	case TransitionCancel:
		c.CanCancel = v
	case TransitionReopen:
		c.CanReopen = v
	case TransitionRevert:
		c.CanRevert = v
	case TransitionReactivate:
		c.CanReactivate = v
	case TransitionDelete:
		c.CanDelete = v
	}
}
