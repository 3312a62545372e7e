package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_LegalEdges(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		from  Stage
		to    Target
		actor Actor
		want  Transition
	}{
		{"approve", StagePlannedUnapproved, TargetApproved, admin, TransitionApprove},
		{"revert approval after start", StageInProgress, TargetUnapproved, admin, TransitionRevertApproval},
		{"owner starts approved event", StagePlannedApproved, TargetInProgress, owner, TransitionStart},
		{"owner completes", StageInProgress, TargetCompleted, owner, TransitionComplete},
		{"owner cancels unapproved", StagePlannedUnapproved, TargetCancelled, owner, TransitionCancel},
		{"owner cancels approved", StagePlannedApproved, TargetCancelled, owner, TransitionCancel},
		{"admin cancels running", StageInProgress, TargetCancelled, admin, TransitionCancel},
		{"reopen", StageCompleted, TargetInProgress, admin, TransitionReopen},
		{"revert start", StageInProgress, TargetPlanned, admin, TransitionRevert},
		{"reactivate to planned", StageCancelled, TargetPlanned, admin, TransitionReactivate},
		{"reactivate to in progress", StageCancelled, TargetInProgress, admin, TransitionReactivate},
		{"owner deletes", StagePlannedUnapproved, TargetRemoved, owner, TransitionDelete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ValidateTransition(snapshotAt(tt.from), tt.to, tt.actor)
			require.True(t, res.OK, res.Reason)
			assert.Equal(t, tt.want, res.Transition)
			assert.NoError(t, res.Err())
		})
	}
}

func TestValidateTransition_GuardFailures(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name   string
		ev     Snapshot
		to     Target
		actor  Actor
		reason string
	}{
		{"owner cannot approve", snapshotAt(StagePlannedUnapproved), TargetApproved, owner, "administrator"},
		{"revert approval needs a start", snapshotAt(StagePlannedApproved), TargetUnapproved, admin, "in progress"},
		{"owner cannot revert approval", snapshotAt(StageInProgress), TargetUnapproved, owner, "administrator"},
		{"start requires approval", snapshotAt(StagePlannedUnapproved), TargetInProgress, admin, "must be approved"},
		{"stranger cannot start", snapshotAt(StagePlannedApproved), TargetInProgress, stranger, "owner or an administrator"},
		{"stranger cannot cancel", snapshotAt(StageInProgress), TargetCancelled, stranger, "owner or an administrator"},
		{"owner cannot reopen", snapshotAt(StageCompleted), TargetInProgress, owner, "administrator"},
		{"owner cannot revert", snapshotAt(StageInProgress), TargetPlanned, owner, "administrator"},
		{"owner cannot reactivate", snapshotAt(StageCancelled), TargetPlanned, owner, "administrator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ValidateTransition(tt.ev, tt.to, tt.actor)
			require.False(t, res.OK)
			assert.Equal(t, KindIllegalTransition, res.Kind)
			assert.Contains(t, res.Reason, tt.reason)
			assert.True(t, errors.Is(res.Err(), ErrIllegalTransition))
		})
	}
}

func TestValidateTransition_ElapsedWindow(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StagePlannedApproved)
	ev.PlannedStart = day(2026, 2, 1)
	ev.PlannedEnd = day(2026, 2, 28)

	res := e.ValidateTransition(ev, TargetInProgress, admin)
	require.False(t, res.OK)
	assert.Contains(t, res.Reason, "already elapsed")

	// el último día de la ventana todavía permite arrancar
	ev.PlannedEnd = day(2026, 3, 10)
	assert.True(t, e.ValidateTransition(ev, TargetInProgress, admin).OK)
}

func TestValidateTransition_CompleteWithOpenSubEvents(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StageInProgress)
	ev.SubEvents = []ChildStatus{
		{ID: "s1", Number: "ME-2026-00001-01", Status: StatusCompleted},
		{ID: "s2", Number: "ME-2026-00001-02", Status: StatusInProgress},
		{ID: "s3", Number: "ME-2026-00001-03", Status: StatusCancelled},
	}

	res := e.ValidateTransition(ev, TargetCompleted, admin)
	require.False(t, res.OK)
	assert.Contains(t, res.Reason, "open sub-event")
	assert.Contains(t, res.Reason, "ME-2026-00001-02")
	assert.NotContains(t, res.Reason, "ME-2026-00001-01")

	ev.SubEvents[1].Status = StatusCompleted
	assert.True(t, e.ValidateTransition(ev, TargetCompleted, admin).OK)
}

func TestValidateTransition_DeleteRequiresChildless(t *testing.T) {
	e := newTestEngine()

	ev := snapshotAt(StagePlannedUnapproved)
	ev.SubEvents = []ChildStatus{{ID: "s1", Status: StatusPlanned}}
	res := e.ValidateTransition(ev, TargetRemoved, admin)
	require.False(t, res.OK)
	assert.Contains(t, res.Reason, "sub-event")

	ev = snapshotAt(StagePlannedUnapproved)
	ev.InspectionCount = 2
	res = e.ValidateTransition(ev, TargetRemoved, admin)
	require.False(t, res.OK)
	assert.Contains(t, res.Reason, "inspection")

	res = e.ValidateTransition(snapshotAt(StagePlannedApproved), TargetRemoved, admin)
	require.False(t, res.OK)
	assert.Equal(t, "illegal transition from planned (approved) to removed", res.Reason)
}

func TestValidateTransition_MoveBackWithActiveSubEvents(t *testing.T) {
	e := newTestEngine()
	running := []ChildStatus{
		{ID: "s1", Number: "ME-2026-00001-01", Status: StatusCompleted},
		{ID: "s2", Number: "ME-2026-00001-02", Status: StatusInProgress},
	}

	ev := snapshotAt(StageInProgress)
	ev.SubEvents = running
	for _, to := range []Target{TargetPlanned, TargetUnapproved} {
		res := e.ValidateTransition(ev, to, admin)
		require.False(t, res.OK, to)
		assert.Contains(t, res.Reason, "in progress")
		assert.Contains(t, res.Reason, "ME-2026-00001-02")
		assert.NotContains(t, res.Reason, "ME-2026-00001-01")
	}

	ev = snapshotAt(StageCancelled)
	ev.SubEvents = running
	assert.False(t, e.ValidateTransition(ev, TargetPlanned, admin).OK)
	assert.True(t, e.ValidateTransition(ev, TargetInProgress, admin).OK)
	assert.True(t, e.Capabilities(ev, admin).CanReactivate)

	ev = snapshotAt(StageInProgress)
	ev.SubEvents = []ChildStatus{{ID: "s1", Status: StatusCompleted}, {ID: "s3", Status: StatusPlanned}}
	assert.True(t, e.ValidateTransition(ev, TargetPlanned, admin).OK)
	assert.True(t, e.ValidateTransition(ev, TargetUnapproved, admin).OK)
}

// Ninguna transición fuera de la tabla tiene éxito, para ningún actor.
func TestValidateTransition_IllegalGrid(t *testing.T) {
	e := newTestEngine()

	for _, st := range allStages {
		for _, to := range Targets {
			if _, ok := legalPairs[stageTarget{st, to}]; ok {
				continue
			}
			for _, a := range allActors {
				name := fmt.Sprintf("%s->%s/admin=%v,owner=%v", st, to, a.IsAdmin, a.IsOwner)
				t.Run(name, func(t *testing.T) {
					res := e.ValidateTransition(snapshotAt(st), to, a)
					assert.False(t, res.OK)
					assert.Equal(t, KindIllegalTransition, res.Kind)
					assert.Equal(t, fmt.Sprintf("illegal transition from %s to %s", st, to), res.Reason)
				})
			}
		}
	}
}

// Cada arista de la tabla lleva el nombre de transición esperado.
func TestValidateTransition_EdgeNames(t *testing.T) {
	e := newTestEngine()

	for pair, want := range legalPairs {
		for _, a := range allActors {
			res := e.ValidateTransition(snapshotAt(pair.from), pair.to, a)
			assert.Equal(t, want, res.Transition, "%s -> %s", pair.from, pair.to)
		}
	}
}

func TestValidateTransition_UnknownStatusIsRejected(t *testing.T) {
	e := newTestEngine()
	ev := Snapshot{Status: Status("archived")}

	res := e.ValidateTransition(ev, TargetInProgress, admin)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "illegal transition from archived")
}

func TestValidateAction(t *testing.T) {
	e := newTestEngine()

	res := e.ValidateAction(snapshotAt(StageCompleted), TransitionStart, "", admin)
	require.False(t, res.OK)
	assert.Equal(t, "cannot start an event that is completed", res.Reason)

	res = e.ValidateAction(snapshotAt(StageCancelled), TransitionReactivate, TargetInProgress, admin)
	require.True(t, res.OK)
	assert.Equal(t, TransitionReactivate, res.Transition)

	res = e.ValidateAction(snapshotAt(StageCancelled), TransitionReactivate, TargetCompleted, admin)
	require.False(t, res.OK)
	assert.Equal(t, "illegal transition from cancelled to completed", res.Reason)

	res = e.ValidateAction(snapshotAt(StageCancelled), TransitionReactivate, "", owner)
	require.False(t, res.OK)
	assert.Contains(t, res.Reason, "administrator")

	res = e.ValidateAction(snapshotAt(StagePlannedApproved), TransitionApprove, "", admin)
	require.False(t, res.OK)
	assert.Equal(t, "cannot approve an event that is planned (approved)", res.Reason)
}

func TestParseTransition(t *testing.T) {
	tr, ok := ParseTransition("revert-approval")
	assert.True(t, ok)
	assert.Equal(t, TransitionRevertApproval, tr)

	_, ok = ParseTransition("archive")
	assert.False(t, ok)

	for _, tr := range Transitions {
		assert.NotEmpty(t, tr.DefaultTarget(), tr)
	}
}

// Escenario: evento aprobado por alice, el dueño lo arranca.
func TestScenario_OwnerStartsApprovedEvent(t *testing.T) {
	e := newTestEngine()
	ev := snapshotAt(StagePlannedUnapproved)
	ev.Approval = ApprovedBy("alice")

	actor := ResolveActor(Principal{ID: "owner-1"}, ev)
	require.Equal(t, Actor{IsOwner: true}, actor)

	assert.True(t, e.ValidateTransition(ev, TargetInProgress, actor).OK)
}
