package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/workflow"

	"github.com/google/uuid"
)

type SubEventInput struct {
	Title        string
	Description  string
	PlannedStart time.Time
	PlannedEnd   time.Time
}

func (s *Service) AddSubEvent(ctx context.Context, p workflow.Principal, eventID string, in SubEventInput) (SubEvent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return SubEvent{}, ErrInvalidInput
	}
	if err := validateWindow(in.PlannedStart, in.PlannedEnd); err != nil {
		return SubEvent{}, err
	}

	parent, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return SubEvent{}, err
	}
	snap, _, err := s.eventState(ctx, parent)
	if err != nil {
		return SubEvent{}, err
	}
	actor := workflow.ResolveActor(p, snap)
	if !actor.CanManage() {
		return SubEvent{}, ErrForbidden
	}
	if !s.engine.Capabilities(snap, actor).CanAddSubEvents {
		return SubEvent{}, denied(addSubEventDenial(parent))
	}
	if !within(in.PlannedStart, in.PlannedEnd, parent.PlannedStart, parent.PlannedEnd) {
		return SubEvent{}, invalid("sub-event window must fall inside the event planned window")
	}

	// El contador vive en el padre; el CAS serializa dos altas concurrentes.
	now := s.now()
	nextParent := parent
	nextParent.SubEventSeq++
	nextParent.Version = parent.Version + 1
	nextParent.UpdatedAt = now
	if err := s.repo.UpdateEvent(ctx, nextParent, parent.Version); err != nil {
		return SubEvent{}, err
	}

	sub := SubEvent{
		ID:          uuid.NewString(),
		EventID:     parent.ID,
		Number:      fmt.Sprintf("%s-%02d", parent.Number, nextParent.SubEventSeq),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Lifecycle: Lifecycle{
			Status:       workflow.StatusPlanned,
			PlannedStart: workflow.DateOnly(in.PlannedStart),
			PlannedEnd:   workflow.DateOnly(in.PlannedEnd),
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateSubEvent(ctx, sub, FenceOf(nextParent)); err != nil {
		return SubEvent{}, err
	}

	s.log.Info("sub-event created", map[string]any{"event_id": parent.ID, "sub_event_id": sub.ID, "number": sub.Number})
	return sub, nil
}

func addSubEventDenial(parent Event) string {
	if parent.Category != workflow.CategoryComplex {
		return "only complex events can own sub-events"
	}
	return fmt.Sprintf("sub-events cannot be added while the event is %s", parent.Status)
}

// GetSubEvent valida que el sub-evento pertenezca al evento pedido.
func (s *Service) GetSubEvent(ctx context.Context, eventID, subID string) (SubEvent, error) {
	eventID, subID = strings.TrimSpace(eventID), strings.TrimSpace(subID)
	if eventID == "" || subID == "" {
		return SubEvent{}, ErrInvalidInput
	}
	sub, err := s.repo.GetSubEvent(ctx, subID)
	if err != nil {
		return SubEvent{}, err
	}
	if sub.EventID != eventID {
		return SubEvent{}, ErrNotFound
	}
	return sub, nil
}

func (s *Service) ListSubEvents(ctx context.Context, eventID string) ([]SubEvent, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListSubEvents(ctx, eventID)
}

func (s *Service) SubEventCapabilities(ctx context.Context, p workflow.Principal, eventID, subID string) (SubEvent, workflow.CapabilitySet, error) {
	st, err := s.subEventState(ctx, eventID, subID)
	if err != nil {
		return SubEvent{}, workflow.CapabilitySet{}, err
	}
	return st.sub, s.engine.Capabilities(st.snap, workflow.ResolveActor(p, st.snap)), nil
}

func (s *Service) UpdateSubEvent(ctx context.Context, p workflow.Principal, eventID, subID string, in UpdateInput) (SubEvent, error) {
	st, err := s.subEventState(ctx, eventID, subID)
	if err != nil {
		return SubEvent{}, err
	}
	if err := checkVersion(in.Version, st.sub.Version); err != nil {
		return SubEvent{}, err
	}
	actor := workflow.ResolveActor(p, st.snap)
	if !actor.CanManage() {
		return SubEvent{}, ErrForbidden
	}
	if !s.engine.Capabilities(st.snap, actor).CanEdit {
		return SubEvent{}, denied(fmt.Sprintf("sub-event cannot be edited while %s", st.sub.Status))
	}

	next := st.sub
	if err := applyDetails(&next.Title, &next.Description, in); err != nil {
		return SubEvent{}, err
	}
	if in.PlannedStart != nil || in.PlannedEnd != nil {
		if err := applyWindow(&next.Lifecycle, in); err != nil {
			return SubEvent{}, err
		}
		if !within(next.PlannedStart, next.PlannedEnd, st.parent.PlannedStart, st.parent.PlannedEnd) {
			return SubEvent{}, invalid("sub-event window must fall inside the event planned window")
		}
	}

	next.Version = st.sub.Version + 1
	next.UpdatedAt = s.now()
	if err := s.repo.UpdateSubEvent(ctx, next, st.sub.Version, FenceOf(st.parent)); err != nil {
		return SubEvent{}, err
	}
	return next, nil
}

func (s *Service) DeleteSubEvent(ctx context.Context, p workflow.Principal, eventID, subID string, version *int64) error {
	st, err := s.subEventState(ctx, eventID, subID)
	if err != nil {
		return err
	}
	if err := checkVersion(version, st.sub.Version); err != nil {
		return err
	}
	actor := workflow.ResolveActor(p, st.snap)
	if !actor.CanManage() {
		return ErrForbidden
	}
	if err := s.engine.ValidateTransition(st.snap, workflow.TargetRemoved, actor).Err(); err != nil {
		return err
	}
	if err := s.repo.DeleteSubEvent(ctx, st.sub.ID, st.sub.Version, FenceOf(st.parent)); err != nil {
		return err
	}
	s.log.Info("sub-event deleted", map[string]any{"event_id": eventID, "sub_event_id": st.sub.ID, "by": p.ID})
	return nil
}

func (s *Service) TransitionSubEvent(ctx context.Context, p workflow.Principal, eventID, subID string, in TransitionInput) (SubEvent, error) {
	if err := checkTransitionInput(in); err != nil {
		return SubEvent{}, err
	}
	st, err := s.subEventState(ctx, eventID, subID)
	if err != nil {
		return SubEvent{}, err
	}
	if err := checkVersion(in.Version, st.sub.Version); err != nil {
		return SubEvent{}, err
	}
	actor := workflow.ResolveActor(p, st.snap)
	if !actor.CanManage() {
		return SubEvent{}, ErrForbidden
	}

	res := s.validate(st.snap, in, actor)
	if err := res.Err(); err != nil {
		return SubEvent{}, err
	}

	now := s.now()
	next := st.sub
	next.Lifecycle.apply(res.Transition, targetOf(in, res), p.ID, strings.TrimSpace(in.Reason), now)
	next.Version = st.sub.Version + 1
	next.UpdatedAt = now

	if err := s.repo.UpdateSubEvent(ctx, next, st.sub.Version, FenceOf(st.parent)); err != nil {
		return SubEvent{}, err
	}

	s.publish(ctx, StatusChanged{
		Entity:     EntitySubEvent,
		ID:         next.ID,
		Number:     next.Number,
		ParentID:   st.parent.ID,
		Transition: res.Transition,
		From:       st.snap.Stage(),
		To:         workflow.StageOf(next.Status, st.parent.Approval),
		By:         p.ID,
		Reason:     strings.TrimSpace(in.Reason),
		At:         now,
	})
	return next, nil
}

type subEventState struct {
	parent Event
	sub    SubEvent
	snap   workflow.Snapshot
}

// subEventState arma el snapshot derivado: estado propio, aprobación y dueño del padre.
func (s *Service) subEventState(ctx context.Context, eventID, subID string) (subEventState, error) {
	sub, err := s.GetSubEvent(ctx, eventID, subID)
	if err != nil {
		return subEventState{}, err
	}
	parent, err := s.repo.GetEvent(ctx, sub.EventID)
	if err != nil {
		return subEventState{}, err
	}
	count, err := s.repo.CountInspections(ctx, SubEventOwner(sub.ID))
	if err != nil {
		return subEventState{}, err
	}
	return subEventState{
		parent: parent,
		sub:    sub,
		snap:   workflow.DeriveSubEvent(parent.Snapshot(nil, 0), sub.Snapshot(count)),
	}, nil
}
