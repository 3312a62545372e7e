package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInspectionAction_Lifecycle(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name    string
		stage   Stage
		cat     Category
		action  InspectionAction
		allowed bool
		reason  string
	}{
		{"plan while planned", StagePlannedUnapproved, CategoryComplex, ActionPlan, true, ""},
		{"plan while running", StageInProgress, CategoryComplex, ActionPlan, true, ""},
		{"plan after completion", StageCompleted, CategoryComplex, ActionPlan, false, "event already closed"},
		{"plan after cancel", StageCancelled, CategoryComplex, ActionPlan, false, "event already closed"},
		{"create before start", StagePlannedApproved, CategoryComplex, ActionCreate, false, "event not started"},
		{"create while running", StageInProgress, CategoryComplex, ActionCreate, true, ""},
		{"create after completion", StageCompleted, CategoryComplex, ActionCreate, false, "event already closed"},
		{"direct on complex", StagePlannedApproved, CategoryComplex, ActionDirect, false, "category does not permit direct inspections"},
		{"direct unapproved", StagePlannedUnapproved, CategorySimple, ActionDirect, false, "event has not been approved"},
		{"direct approved", StagePlannedApproved, CategorySimple, ActionDirect, true, ""},
		{"direct running", StageInProgress, CategorySimple, ActionDirect, true, ""},
		{"direct closed", StageCompleted, CategorySimple, ActionDirect, false, "event already closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := snapshotAt(tt.stage)
			ev.Category = tt.cat

			res := e.CheckInspectionAction(ev, InspectionRequest{Action: tt.action})
			assert.Equal(t, tt.allowed, res.Allowed)
			if !tt.allowed {
				assert.Equal(t, KindPolicyDenial, res.Kind)
				assert.Equal(t, tt.reason, res.Reason)
				assert.True(t, errors.Is(res.Err(), ErrPolicyDenied))
			}
		})
	}
}

func TestCheckInspectionAction_AgreesWithCapabilities(t *testing.T) {
	e := newTestEngine()

	for _, ev := range gridSnapshots() {
		caps := e.Capabilities(ev, admin)
		assert.Equal(t, caps.CanPlanInspections, e.CheckInspectionAction(ev, InspectionRequest{Action: ActionPlan}).Allowed)
		assert.Equal(t, caps.CanCreateUnplannedInspections, e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate}).Allowed)
		assert.Equal(t, caps.CanCreateDirectInspections, e.CheckInspectionAction(ev, InspectionRequest{Action: ActionDirect}).Allowed)
	}
}

func TestCheckInspectionAction_WindowContainment(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StagePlannedApproved)

	tests := []struct {
		name  string
		start int
		end   int
		ok    bool
		bound Bound
	}{
		{"inside", 5, 10, true, BoundNone},
		{"exactly the event window", 1, 31, true, BoundNone},
		{"single day", 31, 31, true, BoundNone},
		{"reversed", 10, 5, false, BoundNone},
		{"ends after event", 20, 31 + 1, false, BoundPlannedEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := InspectionRequest{
				Action:       ActionPlan,
				PlannedStart: day(2026, 3, tt.start),
				PlannedEnd:   day(2026, 3, tt.end),
			}
			res := e.CheckInspectionAction(ev, req)
			assert.Equal(t, tt.ok, res.Allowed, res.Reason)
			if !tt.ok {
				assert.Equal(t, KindValidation, res.Kind)
				assert.Equal(t, tt.bound, res.Bound)
				assert.True(t, errors.Is(res.Err(), ErrValidation))
			}
		})
	}

	res := e.CheckInspectionAction(ev, InspectionRequest{
		Action:       ActionPlan,
		PlannedStart: day(2026, 2, 27),
		PlannedEnd:   day(2026, 3, 2),
	})
	require.False(t, res.Allowed)
	assert.Equal(t, BoundPlannedStart, res.Bound)

	res = e.CheckInspectionAction(ev, InspectionRequest{Action: ActionPlan, PlannedStart: day(2026, 3, 2)})
	require.False(t, res.Allowed)
	assert.Equal(t, KindValidation, res.Kind)
}

// Escenario: inspección no planificada anterior al inicio real del evento.
func TestCheckInspectionAction_UnplannedBeforeActualStart(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StageInProgress)
	ev.Category = CategorySimple
	ev.ActualStart = ptr(day(2026, 3, 5))

	res := e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate, Date: day(2026, 3, 3)})
	require.False(t, res.Allowed)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, BoundActualStart, res.Bound)
	assert.Contains(t, res.Reason, "actual start")

	res = e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate, Date: day(2026, 3, 5)})
	assert.True(t, res.Allowed)
	assert.Equal(t, BoundActualStart, res.Bound)
}

func TestCheckInspectionAction_UnplannedFallsBackToPlannedStart(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StageInProgress)
	ev.ActualStart = nil

	res := e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate, Date: day(2026, 2, 28)})
	require.False(t, res.Allowed)
	assert.Equal(t, BoundPlannedStart, res.Bound)
	assert.Contains(t, res.Reason, "planned start")

	res = e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate, Date: day(2026, 4, 1)})
	require.False(t, res.Allowed)
	assert.Equal(t, BoundPlannedEnd, res.Bound)
}

// El límite inferior es el inicio real cuando existe, aunque el evento haya
// arrancado antes de lo planificado.
func TestCheckInspectionAction_UnplannedLowerBound(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name    string
		actual  *time.Time
		date    time.Time
		allowed bool
		bound   Bound
	}{
		{"early start allows dates before planned start", ptr(day(2026, 2, 25)), day(2026, 2, 26), true, BoundActualStart},
		{"early start still bounds below", ptr(day(2026, 2, 25)), day(2026, 2, 24), false, BoundActualStart},
		{"early start on its own day", ptr(day(2026, 2, 25)), day(2026, 2, 25), true, BoundActualStart},
		{"late start bounds below", ptr(day(2026, 3, 5)), day(2026, 3, 3), false, BoundActualStart},
		{"no actual start uses planned start", nil, day(2026, 2, 28), false, BoundPlannedStart},
		{"no actual start inside window", nil, day(2026, 3, 1), true, BoundPlannedStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := snapshotAt(StageInProgress)
			ev.ActualStart = tt.actual

			res := e.CheckInspectionAction(ev, InspectionRequest{Action: ActionCreate, Date: tt.date})
			assert.Equal(t, tt.allowed, res.Allowed, res.Reason)
			assert.Equal(t, tt.bound, res.Bound)
			if !tt.allowed {
				assert.Equal(t, KindValidation, res.Kind)
			}
		})
	}
}

func TestCheckInspectionAction_SubEventUsesOwnStatus(t *testing.T) {
	e := newTestEngine()
	parent := snapshotAt(StageInProgress)

	d := DeriveSubEvent(parent, testSub(StatusPlanned))
	res := e.CheckInspectionAction(d, InspectionRequest{Action: ActionCreate})
	require.False(t, res.Allowed)
	assert.Equal(t, "event not started", res.Reason)

	res = e.CheckInspectionAction(d, InspectionRequest{
		Action:       ActionPlan,
		PlannedStart: day(2026, 3, 2),
		PlannedEnd:   day(2026, 3, 6),
	})
	require.False(t, res.Allowed)
	assert.Equal(t, BoundPlannedStart, res.Bound)
}

func TestCheckInspectionAction_UnknownAction(t *testing.T) {
	e := newTestEngine()
	res := e.CheckInspectionAction(snapshotAt(StageInProgress), InspectionRequest{Action: "teleport"})
	assert.False(t, res.Allowed)
	assert.Equal(t, KindPolicyDenial, res.Kind)
}
