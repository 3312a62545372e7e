package maintenance

import (
	"context"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/workflow"

	"github.com/google/uuid"
)

type InspectionInput struct {
	Action workflow.InspectionAction
	Title  string
	Notes  string

	// plan / direct
	PlannedStart time.Time
	PlannedEnd   time.Time

	// create (no planificada)
	Date   time.Time
	Reason UnplannedReason
}

// ownerState es el evento efectivo dueño de una inspección. fence apunta al
// evento raíz aunque el dueño sea un sub-evento.
type ownerState struct {
	owner Owner
	snap  workflow.Snapshot
	fence Fence
}

func (s *Service) resolveOwner(ctx context.Context, owner Owner) (ownerState, error) {
	if !owner.Valid() {
		return ownerState{}, ErrInvalidInput
	}
	if owner.SubEventID != "" {
		sub, err := s.repo.GetSubEvent(ctx, owner.SubEventID)
		if err != nil {
			return ownerState{}, err
		}
		st, err := s.subEventState(ctx, sub.EventID, sub.ID)
		if err != nil {
			return ownerState{}, err
		}
		return ownerState{owner: owner, snap: st.snap, fence: FenceOf(st.parent)}, nil
	}

	ev, err := s.GetEvent(ctx, owner.EventID)
	if err != nil {
		return ownerState{}, err
	}
	snap, _, err := s.eventState(ctx, ev)
	if err != nil {
		return ownerState{}, err
	}
	return ownerState{owner: owner, snap: snap, fence: FenceOf(ev)}, nil
}

// CheckInspectionAction es el camino de lectura: responde si la acción
// aplicaría ahora, con o sin fechas propuestas.
func (s *Service) CheckInspectionAction(ctx context.Context, owner Owner, req workflow.InspectionRequest) (workflow.PolicyResult, error) {
	st, err := s.resolveOwner(ctx, owner)
	if err != nil {
		return workflow.PolicyResult{}, err
	}
	return s.engine.CheckInspectionAction(st.snap, req), nil
}

func (s *Service) AddInspection(ctx context.Context, p workflow.Principal, owner Owner, in InspectionInput) (Inspection, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Inspection{}, ErrInvalidInput
	}
	if err := checkInspectionInput(in); err != nil {
		return Inspection{}, err
	}

	st, err := s.resolveOwner(ctx, owner)
	if err != nil {
		return Inspection{}, err
	}
	if !workflow.ResolveActor(p, st.snap).CanManage() {
		return Inspection{}, ErrForbidden
	}

	res := s.engine.CheckInspectionAction(st.snap, workflow.InspectionRequest{
		Action:       in.Action,
		PlannedStart: in.PlannedStart,
		PlannedEnd:   in.PlannedEnd,
		Date:         in.Date,
	})
	if err := res.Err(); err != nil {
		return Inspection{}, err
	}

	insp := Inspection{
		ID:        uuid.NewString(),
		Owner:     owner,
		Kind:      in.Action,
		IsPlanned: in.Action != workflow.ActionCreate,
		Title:     title,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedBy: strings.TrimSpace(p.ID),
		CreatedAt: s.now(),
	}
	if insp.IsPlanned {
		start, end := workflow.DateOnly(in.PlannedStart), workflow.DateOnly(in.PlannedEnd)
		insp.PlannedStart, insp.PlannedEnd = &start, &end
	} else {
		date := workflow.DateOnly(in.Date)
		insp.ActualStart = &date
		insp.UnplannedReason = in.Reason
	}

	if err := s.repo.CreateInspection(ctx, insp, st.fence); err != nil {
		return Inspection{}, err
	}

	s.log.Info("inspection created", map[string]any{
		"inspection_id": insp.ID,
		"event_id":      owner.EventID,
		"sub_event_id":  owner.SubEventID,
		"action":        string(in.Action),
	})
	return insp, nil
}

func (s *Service) ListInspections(ctx context.Context, owner Owner) ([]Inspection, error) {
	if _, err := s.resolveOwner(ctx, owner); err != nil {
		return nil, err
	}
	return s.repo.ListInspections(ctx, owner)
}

func checkInspectionInput(in InspectionInput) error {
	switch in.Action {
	case workflow.ActionPlan, workflow.ActionDirect:
		if in.PlannedStart.IsZero() || in.PlannedEnd.IsZero() {
			return ErrInvalidInput
		}
	case workflow.ActionCreate:
		if in.Date.IsZero() {
			return ErrInvalidInput
		}
		if _, ok := ParseUnplannedReason(string(in.Reason)); !ok {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	return nil
}
