package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/workflow"
	"maintenance-inspections/internal/platform/eventbus"
	"maintenance-inspections/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	// ErrConflict: la versión guardada cambió entre la lectura y la escritura.
	// El cliente tiene que volver a leer y re-evaluar, no reintentar a ciegas.
	ErrConflict = errors.New("version conflict")
)

// Publisher recibe los cambios de estado ya persistidos.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type Service struct {
	repo   Repository
	engine *workflow.Engine
	now    func() time.Time
	log    logger.Logger
	bus    Publisher
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.bus = p }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = workflow.NewEngine(workflow.WithClock(s.now))
	s.log = s.log.With(map[string]any{"component": "maintenance"})
	return s
}

type CreateEventInput struct {
	Title        string
	Description  string
	Category     workflow.Category
	PlannedStart time.Time
	PlannedEnd   time.Time
}

// UpdateInput: nil = no tocar. Version (opcional) rechaza la escritura si el
// cliente editó sobre una copia vieja.
type UpdateInput struct {
	Title        *string
	Description  *string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	Version      *int64
}

// TransitionInput pide una acción con nombre (Action, con Target opcional para
// reactivate) o un destino genérico (solo Target).
type TransitionInput struct {
	Action  workflow.Transition
	Target  workflow.Target
	Reason  string
	Version *int64
}

func (s *Service) CreateEvent(ctx context.Context, p workflow.Principal, in CreateEventInput) (Event, error) {
	createdBy := strings.TrimSpace(p.ID)
	title := strings.TrimSpace(in.Title)
	if createdBy == "" || title == "" {
		return Event{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return Event{}, ErrInvalidInput
	}
	if err := validateWindow(in.PlannedStart, in.PlannedEnd); err != nil {
		return Event{}, err
	}

	seq, err := s.repo.NextEventSequence(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("next event sequence: %w", err)
	}

	now := s.now()
	e := Event{
		ID:          uuid.NewString(),
		Number:      fmt.Sprintf("ME-%d-%05d", now.UTC().Year(), seq),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Lifecycle: Lifecycle{
			Status:       workflow.StatusPlanned,
			PlannedStart: workflow.DateOnly(in.PlannedStart),
			PlannedEnd:   workflow.DateOnly(in.PlannedEnd),
		},
		Approval:  workflow.Unapproved(),
		CreatedBy: createdBy,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return Event{}, err
	}

	s.log.Info("event created", map[string]any{"event_id": e.ID, "number": e.Number, "created_by": createdBy})
	return e, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, filter ListFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return s.repo.ListEvents(ctx, filter)
}

// EventCapabilities es el camino de lectura para la UI.
func (s *Service) EventCapabilities(ctx context.Context, p workflow.Principal, id string) (Event, workflow.CapabilitySet, error) {
	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return Event{}, workflow.CapabilitySet{}, err
	}
	snap, _, err := s.eventState(ctx, ev)
	if err != nil {
		return Event{}, workflow.CapabilitySet{}, err
	}
	return ev, s.engine.Capabilities(snap, workflow.ResolveActor(p, snap)), nil
}

func (s *Service) UpdateEvent(ctx context.Context, p workflow.Principal, id string, in UpdateInput) (Event, error) {
	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := checkVersion(in.Version, ev.Version); err != nil {
		return Event{}, err
	}

	snap, subs, err := s.eventState(ctx, ev)
	if err != nil {
		return Event{}, err
	}
	actor := workflow.ResolveActor(p, snap)
	if !actor.CanManage() {
		return Event{}, ErrForbidden
	}
	if !s.engine.Capabilities(snap, actor).CanEdit {
		return Event{}, denied(fmt.Sprintf("event cannot be edited while %s", ev.Status))
	}

	next := ev
	if err := applyDetails(&next.Title, &next.Description, in); err != nil {
		return Event{}, err
	}
	if in.PlannedStart != nil || in.PlannedEnd != nil {
		if err := applyWindow(&next.Lifecycle, in); err != nil {
			return Event{}, err
		}
		for _, sub := range subs {
			if !within(sub.PlannedStart, sub.PlannedEnd, next.PlannedStart, next.PlannedEnd) {
				return Event{}, invalid(fmt.Sprintf("sub-event %s falls outside the new planned window", sub.Number))
			}
		}
	}

	next.Version = ev.Version + 1
	next.UpdatedAt = s.now()
	if err := s.repo.UpdateEvent(ctx, next, ev.Version); err != nil {
		return Event{}, err
	}
	return next, nil
}

func (s *Service) DeleteEvent(ctx context.Context, p workflow.Principal, id string, version *int64) error {
	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := checkVersion(version, ev.Version); err != nil {
		return err
	}

	snap, _, err := s.eventState(ctx, ev)
	if err != nil {
		return err
	}
	actor := workflow.ResolveActor(p, snap)
	if !actor.CanManage() {
		return ErrForbidden
	}
	if err := s.engine.ValidateTransition(snap, workflow.TargetRemoved, actor).Err(); err != nil {
		return err
	}

	if err := s.repo.DeleteEvent(ctx, ev.ID, ev.Version); err != nil {
		return err
	}
	s.log.Info("event deleted", map[string]any{"event_id": ev.ID, "number": ev.Number, "by": p.ID})
	return nil
}

// TransitionEvent es lectura-validación-escritura atómica: la escritura es un
// CAS sobre la versión leída, así dos "start" concurrentes no pueden ganar ambos.
func (s *Service) TransitionEvent(ctx context.Context, p workflow.Principal, id string, in TransitionInput) (Event, error) {
	if err := checkTransitionInput(in); err != nil {
		return Event{}, err
	}

	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := checkVersion(in.Version, ev.Version); err != nil {
		return Event{}, err
	}

	snap, _, err := s.eventState(ctx, ev)
	if err != nil {
		return Event{}, err
	}
	actor := workflow.ResolveActor(p, snap)
	if !actor.CanManage() {
		return Event{}, ErrForbidden
	}

	res := s.validate(snap, in, actor)
	if err := res.Err(); err != nil {
		return Event{}, err
	}

	now := s.now()
	next := ev
	next.apply(res.Transition, targetOf(in, res), p.ID, strings.TrimSpace(in.Reason), now)
	next.Version = ev.Version + 1
	next.UpdatedAt = now

	if err := s.repo.UpdateEvent(ctx, next, ev.Version); err != nil {
		return Event{}, err
	}

	s.publish(ctx, StatusChanged{
		Entity:     EntityEvent,
		ID:         next.ID,
		Number:     next.Number,
		Transition: res.Transition,
		From:       snap.Stage(),
		To:         workflow.StageOf(next.Status, next.Approval),
		By:         p.ID,
		Reason:     strings.TrimSpace(in.Reason),
		At:         now,
	})
	return next, nil
}

// eventState carga hijos e inspecciones y arma el snapshot.
func (s *Service) eventState(ctx context.Context, ev Event) (workflow.Snapshot, []SubEvent, error) {
	subs, err := s.repo.ListSubEvents(ctx, ev.ID)
	if err != nil {
		return workflow.Snapshot{}, nil, err
	}
	count, err := s.repo.CountInspections(ctx, EventOwner(ev.ID))
	if err != nil {
		return workflow.Snapshot{}, nil, err
	}
	return ev.Snapshot(subs, count), subs, nil
}

func (s *Service) validate(snap workflow.Snapshot, in TransitionInput, actor workflow.Actor) workflow.ValidationResult {
	if in.Action != "" {
		return s.engine.ValidateAction(snap, in.Action, in.Target, actor)
	}
	return s.engine.ValidateTransition(snap, in.Target, actor)
}

func (s *Service) publish(ctx context.Context, ev StatusChanged) {
	s.log.Info("status changed", ev.fields())
	if s.bus != nil {
		s.bus.Publish(ctx, ev)
	}
}

func checkTransitionInput(in TransitionInput) error {
	if in.Action == "" && in.Target == "" {
		return ErrInvalidInput
	}
	// El borrado tiene su propio endpoint.
	if in.Action == workflow.TransitionDelete || in.Target == workflow.TargetRemoved {
		return ErrInvalidInput
	}
	return nil
}

func targetOf(in TransitionInput, res workflow.ValidationResult) workflow.Target {
	if in.Target != "" {
		return in.Target
	}
	return res.Transition.DefaultTarget()
}

func checkVersion(want *int64, have int64) error {
	if want != nil && *want != have {
		return ErrConflict
	}
	return nil
}

func applyDetails(title, description *string, in UpdateInput) error {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return ErrInvalidInput
		}
		*title = t
	}
	if in.Description != nil {
		*description = strings.TrimSpace(*in.Description)
	}
	return nil
}

func applyWindow(l *Lifecycle, in UpdateInput) error {
	start, end := l.PlannedStart, l.PlannedEnd
	if in.PlannedStart != nil {
		start = *in.PlannedStart
	}
	if in.PlannedEnd != nil {
		end = *in.PlannedEnd
	}
	if err := validateWindow(start, end); err != nil {
		return err
	}
	l.PlannedStart = workflow.DateOnly(start)
	l.PlannedEnd = workflow.DateOnly(end)
	return nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrInvalidInput
	}
	if workflow.DateOnly(start).After(workflow.DateOnly(end)) {
		return invalid("planned start must not be after planned end")
	}
	return nil
}

// within: [start, end] ⊆ [outerStart, outerEnd], por día.
func within(start, end, outerStart, outerEnd time.Time) bool {
	return !workflow.DateOnly(start).Before(workflow.DateOnly(outerStart)) &&
		!workflow.DateOnly(end).After(workflow.DateOnly(outerEnd))
}

func invalid(reason string) error {
	return &workflow.DecisionError{Kind: workflow.KindValidation, Reason: reason}
}

func denied(reason string) error {
	return &workflow.DecisionError{Kind: workflow.KindPolicyDenial, Reason: reason}
}
