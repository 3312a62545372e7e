package maintenance_test

import (
	"context"
	"testing"

	"maintenance-inspections/internal/domain/maintenance"
	"maintenance-inspections/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInspection_Plan(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ev := createEvent(t, svc, workflow.CategoryComplex)
	owner := maintenance.EventOwner(ev.ID)

	insp, err := svc.AddInspection(ctx, ownerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "Vibration survey", PlannedStart: day(3, 2), PlannedEnd: day(3, 4),
	})
	require.NoError(t, err)
	assert.True(t, insp.IsPlanned)
	require.NotNil(t, insp.PlannedStart)
	assert.Equal(t, day(3, 2), *insp.PlannedStart)

	_, err = svc.AddInspection(ctx, ownerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "Too long", PlannedStart: day(3, 28), PlannedEnd: day(4, 2),
	})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = svc.AddInspection(ctx, strangerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "x", PlannedStart: day(3, 2), PlannedEnd: day(3, 4),
	})
	assert.ErrorIs(t, err, maintenance.ErrForbidden)

	_, err = svc.AddInspection(ctx, ownerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "no dates",
	})
	assert.ErrorIs(t, err, maintenance.ErrInvalidInput)

	items, err := svc.ListInspections(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// Escenario: inspección no planificada antes del inicio real.
func TestAddInspection_UnplannedUsesActualStart(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ev := createEvent(t, svc, workflow.CategorySimple)
	owner := maintenance.EventOwner(ev.ID)

	in := maintenance.InspectionInput{
		Action: workflow.ActionCreate,
		Title:  "Leak check",
		Date:   day(3, 10),
		Reason: maintenance.ReasonSafetyConcern,
	}

	_, err := svc.AddInspection(ctx, ownerP, owner, in)
	require.ErrorIs(t, err, workflow.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "event not started")

	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)
	act(t, svc, ownerP, ev.ID, workflow.TransitionStart) // actual start = 2026-03-10

	in.Date = day(3, 5)
	res, err := svc.CheckInspectionAction(ctx, owner, workflow.InspectionRequest{Action: workflow.ActionCreate, Date: in.Date})
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, workflow.BoundActualStart, res.Bound)

	_, err = svc.AddInspection(ctx, ownerP, owner, in)
	assert.ErrorIs(t, err, workflow.ErrValidation)

	in.Date = day(3, 10)
	insp, err := svc.AddInspection(ctx, ownerP, owner, in)
	require.NoError(t, err)
	assert.False(t, insp.IsPlanned)
	assert.Equal(t, maintenance.ReasonSafetyConcern, insp.UnplannedReason)

	in.Reason = "boredom"
	_, err = svc.AddInspection(ctx, ownerP, owner, in)
	assert.ErrorIs(t, err, maintenance.ErrInvalidInput)
}

func TestAddInspection_Direct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	in := maintenance.InspectionInput{
		Action: workflow.ActionDirect, Title: "Walkdown", PlannedStart: day(3, 3), PlannedEnd: day(3, 3),
	}

	complexEv := createEvent(t, svc, workflow.CategoryComplex)
	_, err := svc.AddInspection(ctx, adminP, maintenance.EventOwner(complexEv.ID), in)
	require.ErrorIs(t, err, workflow.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "category does not permit direct inspections")

	simple := createEvent(t, svc, workflow.CategorySimple)
	_, err = svc.AddInspection(ctx, ownerP, maintenance.EventOwner(simple.ID), in)
	require.ErrorIs(t, err, workflow.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "not been approved")

	act(t, svc, adminP, simple.ID, workflow.TransitionApprove)
	insp, err := svc.AddInspection(ctx, ownerP, maintenance.EventOwner(simple.ID), in)
	require.NoError(t, err)
	assert.Equal(t, workflow.ActionDirect, insp.Kind)
}

func TestAddInspection_SubEventIsEffectiveEvent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID) // 03-05 .. 03-15
	owner := maintenance.SubEventOwner(sub.ID)

	// la ventana del sub-evento manda, no la del padre
	_, err := svc.AddInspection(ctx, ownerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "x", PlannedStart: day(3, 2), PlannedEnd: day(3, 6),
	})
	require.ErrorIs(t, err, workflow.ErrValidation)

	insp, err := svc.AddInspection(ctx, ownerP, owner, maintenance.InspectionInput{
		Action: workflow.ActionPlan, Title: "x", PlannedStart: day(3, 6), PlannedEnd: day(3, 7),
	})
	require.NoError(t, err)
	assert.Equal(t, sub.ID, insp.Owner.SubEventID)

	// con el padre en marcha el sub-evento sigue planned: no admite no planificadas
	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)
	act(t, svc, ownerP, ev.ID, workflow.TransitionStart)
	res, err := svc.CheckInspectionAction(ctx, owner, workflow.InspectionRequest{Action: workflow.ActionCreate})
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, "event not started", res.Reason)

	_, err = svc.CheckInspectionAction(ctx, maintenance.Owner{}, workflow.InspectionRequest{Action: workflow.ActionPlan})
	assert.ErrorIs(t, err, maintenance.ErrInvalidInput)
}
