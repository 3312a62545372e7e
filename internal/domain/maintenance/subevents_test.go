package maintenance_test

import (
	"context"
	"testing"

	"maintenance-inspections/internal/domain/maintenance"
	"maintenance-inspections/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSub(t *testing.T, svc *maintenance.Service, eventID string) maintenance.SubEvent {
	t.Helper()
	sub, err := svc.AddSubEvent(context.Background(), ownerP, eventID, maintenance.SubEventInput{
		Title:        "Replace seals",
		PlannedStart: day(3, 5),
		PlannedEnd:   day(3, 15),
	})
	require.NoError(t, err)
	return sub
}

func actSub(t *testing.T, svc *maintenance.Service, p workflow.Principal, eventID, subID string, action workflow.Transition) (maintenance.SubEvent, error) {
	t.Helper()
	return svc.TransitionSubEvent(context.Background(), p, eventID, subID, maintenance.TransitionInput{Action: action})
}

func TestAddSubEvent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	simple := createEvent(t, svc, workflow.CategorySimple)
	_, err := svc.AddSubEvent(ctx, ownerP, simple.ID, maintenance.SubEventInput{
		Title: "x", PlannedStart: day(3, 5), PlannedEnd: day(3, 6),
	})
	require.ErrorIs(t, err, workflow.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "complex")

	ev := createEvent(t, svc, workflow.CategoryComplex)
	first := addSub(t, svc, ev.ID)
	second := addSub(t, svc, ev.ID)
	assert.Equal(t, ev.Number+"-01", first.Number)
	assert.Equal(t, ev.Number+"-02", second.Number)
	assert.Equal(t, workflow.StatusPlanned, first.Status)

	_, err = svc.AddSubEvent(ctx, ownerP, ev.ID, maintenance.SubEventInput{
		Title: "late", PlannedStart: day(3, 25), PlannedEnd: day(4, 2),
	})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = svc.AddSubEvent(ctx, strangerP, ev.ID, maintenance.SubEventInput{
		Title: "x", PlannedStart: day(3, 5), PlannedEnd: day(3, 6),
	})
	assert.ErrorIs(t, err, maintenance.ErrForbidden)

	subs, err := svc.ListSubEvents(ctx, ev.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

// Escenario: el sub-evento no arranca hasta que arranque el padre.
func TestTransitionSubEvent_WaitsForParent(t *testing.T) {
	svc, rec := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)
	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)

	_, err := actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionStart)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "parent event has not started")

	_, caps, err := svc.SubEventCapabilities(ctx, ownerP, ev.ID, sub.ID)
	require.NoError(t, err)
	assert.False(t, caps.CanStart)
	assert.Equal(t, workflow.StagePlannedApproved, caps.Stage)

	act(t, svc, ownerP, ev.ID, workflow.TransitionStart)

	started, err := actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionStart)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusInProgress, started.Status)

	// el padre no se completa con un hijo abierto
	_, err = svc.TransitionEvent(ctx, ownerP, ev.ID, maintenance.TransitionInput{Action: workflow.TransitionComplete})
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), sub.Number)

	_, err = actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionComplete)
	require.NoError(t, err)
	act(t, svc, ownerP, ev.ID, workflow.TransitionComplete)

	// con el padre cerrado, reabrir el hijo no aplica
	_, err = actSub(t, svc, adminP, ev.ID, sub.ID, workflow.TransitionReopen)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "parent event is closed")

	var subChanges int
	for _, sc := range rec.all() {
		if sc.Entity == maintenance.EntitySubEvent {
			subChanges++
			assert.Equal(t, ev.ID, sc.ParentID)
		}
	}
	assert.Equal(t, 2, subChanges)
}

func TestTransitionSubEvent_ApprovalIsInherited(t *testing.T) {
	svc, _ := newService(t)
	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)

	_, err := actSub(t, svc, adminP, ev.ID, sub.ID, workflow.TransitionApprove)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "inherited")
}

func TestSubEvent_WrongParentIsNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	other := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)

	_, err := svc.GetSubEvent(ctx, other.ID, sub.ID)
	assert.ErrorIs(t, err, maintenance.ErrNotFound)

	_, err = actSub(t, svc, adminP, other.ID, sub.ID, workflow.TransitionCancel)
	assert.ErrorIs(t, err, maintenance.ErrNotFound)
}

func TestUpdateAndDeleteSubEvent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)

	end := day(4, 3)
	_, err := svc.UpdateSubEvent(ctx, ownerP, ev.ID, sub.ID, maintenance.UpdateInput{PlannedEnd: &end})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	end = day(3, 20)
	updated, err := svc.UpdateSubEvent(ctx, ownerP, ev.ID, sub.ID, maintenance.UpdateInput{PlannedEnd: &end})
	require.NoError(t, err)
	assert.Equal(t, day(3, 20), updated.PlannedEnd)

	// el padre tiene un hijo: no se puede borrar
	err = svc.DeleteEvent(ctx, ownerP, ev.ID, nil)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)

	require.NoError(t, svc.DeleteSubEvent(ctx, ownerP, ev.ID, sub.ID, nil))
	require.NoError(t, svc.DeleteEvent(ctx, ownerP, ev.ID, nil))
}

func TestDeleteSubEvent_FollowsParentApproval(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)
	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)

	err := svc.DeleteSubEvent(ctx, ownerP, ev.ID, sub.ID, nil)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

// Con el padre cancelado el sub-evento en curso queda congelado hasta que el
// padre se reactive en ejecución.
func TestTransitionSubEvent_CancelledParentFreezesChildren(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)
	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)
	act(t, svc, ownerP, ev.ID, workflow.TransitionStart)
	_, err := actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionStart)
	require.NoError(t, err)

	act(t, svc, ownerP, ev.ID, workflow.TransitionCancel)

	for _, action := range []workflow.Transition{workflow.TransitionComplete, workflow.TransitionCancel} {
		_, err = actSub(t, svc, adminP, ev.ID, sub.ID, action)
		require.ErrorIs(t, err, workflow.ErrIllegalTransition, action)
		assert.Contains(t, err.Error(), "parent event is closed")
	}

	_, err = svc.AddInspection(ctx, ownerP, maintenance.SubEventOwner(sub.ID), maintenance.InspectionInput{
		Action: workflow.ActionCreate, Title: "Leak", Date: day(3, 10), Reason: maintenance.ReasonEquipmentFailure,
	})
	require.ErrorIs(t, err, workflow.ErrPolicyDenied)
	assert.Contains(t, err.Error(), "parent event is closed")

	title := "Replace seals and gaskets"
	_, err = svc.UpdateSubEvent(ctx, ownerP, ev.ID, sub.ID, maintenance.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, workflow.ErrPolicyDenied)

	_, caps, err := svc.SubEventCapabilities(ctx, adminP, ev.ID, sub.ID)
	require.NoError(t, err)
	assert.False(t, caps.CanComplete)
	assert.False(t, caps.CanCancel)
	assert.False(t, caps.CanCreateUnplannedInspections)

	// volver a planned con un hijo en curso no aplica; a in_progress sí
	_, err = svc.TransitionEvent(ctx, adminP, ev.ID, maintenance.TransitionInput{
		Action: workflow.TransitionReactivate, Target: workflow.TargetPlanned,
	})
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), sub.Number)

	_, err = svc.TransitionEvent(ctx, adminP, ev.ID, maintenance.TransitionInput{
		Action: workflow.TransitionReactivate, Target: workflow.TargetInProgress,
	})
	require.NoError(t, err)

	done, err := actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionComplete)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, done.Status)
}

// Reopen y reactivate a in_progress exigen al padre en ejecución, igual que start.
func TestTransitionSubEvent_InProgressTargetsNeedRunningParent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ev := createEvent(t, svc, workflow.CategoryComplex)
	sub := addSub(t, svc, ev.ID)
	act(t, svc, adminP, ev.ID, workflow.TransitionApprove)
	act(t, svc, ownerP, ev.ID, workflow.TransitionStart)
	_, err := actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionStart)
	require.NoError(t, err)
	_, err = actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionComplete)
	require.NoError(t, err)
	act(t, svc, adminP, ev.ID, workflow.TransitionRevert)

	_, err = actSub(t, svc, adminP, ev.ID, sub.ID, workflow.TransitionReopen)
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "parent event has not started")

	act(t, svc, ownerP, ev.ID, workflow.TransitionStart)
	reopened, err := actSub(t, svc, adminP, ev.ID, sub.ID, workflow.TransitionReopen)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusInProgress, reopened.Status)

	// el padre no vuelve a planned con el hijo en curso
	for _, action := range []workflow.Transition{workflow.TransitionRevert, workflow.TransitionRevertApproval} {
		_, err = svc.TransitionEvent(ctx, adminP, ev.ID, maintenance.TransitionInput{Action: action})
		require.ErrorIs(t, err, workflow.ErrIllegalTransition, action)
		assert.Contains(t, err.Error(), sub.Number)
	}

	_, err = actSub(t, svc, ownerP, ev.ID, sub.ID, workflow.TransitionCancel)
	require.NoError(t, err)
	act(t, svc, adminP, ev.ID, workflow.TransitionRevert)

	_, err = svc.TransitionSubEvent(ctx, adminP, ev.ID, sub.ID, maintenance.TransitionInput{
		Action: workflow.TransitionReactivate, Target: workflow.TargetInProgress,
	})
	require.ErrorIs(t, err, workflow.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "parent event has not started")

	back, err := svc.TransitionSubEvent(ctx, adminP, ev.ID, sub.ID, maintenance.TransitionInput{
		Action: workflow.TransitionReactivate, Target: workflow.TargetPlanned,
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPlanned, back.Status)
}
