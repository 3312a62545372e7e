package workflow

import "time"

var (
	testToday    = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	plannedStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	plannedEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	admin    = Actor{IsAdmin: true}
	owner    = Actor{IsOwner: true}
	stranger = Actor{}

	allActors = []Actor{
		{},
		{IsOwner: true},
		{IsAdmin: true},
		{IsAdmin: true, IsOwner: true},
	}

	allStages = []Stage{
		StagePlannedUnapproved, StagePlannedApproved, StageInProgress, StageCompleted, StageCancelled,
	}
)

func newTestEngine() *Engine {
	return NewEngine(WithClock(func() time.Time { return testToday }))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

// snapshotAt arma un evento top-level en el stage pedido.
func snapshotAt(st Stage) Snapshot {
	ev := Snapshot{
		ID:           "ev-1",
		Number:       "ME-2026-00001",
		CreatedBy:    "owner-1",
		Category:     CategoryComplex,
		PlannedStart: plannedStart,
		PlannedEnd:   plannedEnd,
	}

	switch st {
	case StagePlannedUnapproved:
		ev.Status = StatusPlanned
	case StagePlannedApproved:
		ev.Status = StatusPlanned
		ev.Approval = ApprovedBy("alice")
	case StageInProgress:
		ev.Status = StatusInProgress
		ev.Approval = ApprovedBy("alice")
		ev.ActualStart = ptr(day(2026, 3, 5))
	case StageCompleted:
		ev.Status = StatusCompleted
		ev.Approval = ApprovedBy("alice")
		ev.ActualStart = ptr(day(2026, 3, 5))
		ev.ActualEnd = ptr(day(2026, 3, 8))
	case StageCancelled:
		ev.Status = StatusCancelled
	}
	return ev
}

type stageTarget struct {
	from Stage
	to   Target
}

// legalPairs son las aristas existentes del ciclo de vida.
var legalPairs = map[stageTarget]Transition{
	{StagePlannedUnapproved, TargetApproved}:   TransitionApprove,
	{StagePlannedApproved, TargetUnapproved}:   TransitionRevertApproval,
	{StageInProgress, TargetUnapproved}:        TransitionRevertApproval,
	{StagePlannedApproved, TargetInProgress}:   TransitionStart,
	{StagePlannedUnapproved, TargetInProgress}: TransitionStart,
	{StageInProgress, TargetCompleted}:         TransitionComplete,
	{StagePlannedUnapproved, TargetCancelled}:  TransitionCancel,
	{StagePlannedApproved, TargetCancelled}:    TransitionCancel,
	{StageInProgress, TargetCancelled}:         TransitionCancel,
	{StageCompleted, TargetInProgress}:         TransitionReopen,
	{StageInProgress, TargetPlanned}:           TransitionRevert,
	{StageCancelled, TargetPlanned}:            TransitionReactivate,
	{StageCancelled, TargetInProgress}:         TransitionReactivate,
	{StagePlannedUnapproved, TargetRemoved}:    TransitionDelete,
}
