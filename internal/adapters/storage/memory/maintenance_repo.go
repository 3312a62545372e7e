package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"maintenance-inspections/internal/domain/maintenance"
)

type maintenanceRepo struct {
	mu sync.RWMutex

	seq         int64
	events      map[string]maintenance.Event
	subEvents   map[string]maintenance.SubEvent
	inspections map[string]maintenance.Inspection
}

func NewMaintenanceRepo() maintenance.Repository {
	return &maintenanceRepo{
		events:      make(map[string]maintenance.Event),
		subEvents:   make(map[string]maintenance.SubEvent),
		inspections: make(map[string]maintenance.Inspection),
	}
}

func (r *maintenanceRepo) NextEventSequence(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return r.seq, nil
}

func (r *maintenanceRepo) CreateEvent(ctx context.Context, e maintenance.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}
	if _, exists := r.events[e.ID]; exists {
		return errors.New("event already exists")
	}
	for _, other := range r.events {
		if other.Number == e.Number {
			return errors.New("event number already exists")
		}
	}
	r.events[e.ID] = e
	return nil
}

func (r *maintenanceRepo) GetEvent(ctx context.Context, id string) (maintenance.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return maintenance.Event{}, maintenance.ErrNotFound
	}
	return e, nil
}

func (r *maintenanceRepo) ListEvents(ctx context.Context, filter maintenance.ListFilter) ([]maintenance.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = maintenance.DefaultListLimit
	}

	out := make([]maintenance.Event, 0)
	for _, e := range r.events {
		if len(filter.Statuses) > 0 {
			ok := false
			for _, st := range filter.Statuses {
				if e.Status == st {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.CreatedBy != "" && e.CreatedBy != filter.CreatedBy {
			continue
		}
		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.Number + " " + e.Title + " " + e.Description)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}
		out = append(out, e)
	}

	// Más reciente primero; el número desempata.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Number > out[j].Number
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *maintenanceRepo) UpdateEvent(ctx context.Context, e maintenance.Event, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.events[e.ID]
	if !ok {
		return maintenance.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return maintenance.ErrConflict
	}
	r.events[e.ID] = e
	return nil
}

func (r *maintenanceRepo) DeleteEvent(ctx context.Context, id string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.events[id]
	if !ok {
		return maintenance.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return maintenance.ErrConflict
	}
	delete(r.events, id)
	return nil
}

func (r *maintenanceRepo) CreateSubEvent(ctx context.Context, s maintenance.SubEvent, fence maintenance.Fence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("sub-event id required")
	}
	if fence.EventID != s.EventID {
		return errors.New("fence must be the sub-event parent")
	}
	if err := r.checkFence(fence); err != nil {
		return err
	}
	if _, exists := r.subEvents[s.ID]; exists {
		return errors.New("sub-event already exists")
	}
	r.subEvents[s.ID] = s
	r.bump(fence)
	return nil
}

func (r *maintenanceRepo) GetSubEvent(ctx context.Context, id string) (maintenance.SubEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subEvents[id]
	if !ok {
		return maintenance.SubEvent{}, maintenance.ErrNotFound
	}
	return s, nil
}

func (r *maintenanceRepo) ListSubEvents(ctx context.Context, eventID string) ([]maintenance.SubEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]maintenance.SubEvent, 0)
	for _, s := range r.subEvents {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *maintenanceRepo) UpdateSubEvent(ctx context.Context, s maintenance.SubEvent, expectedVersion int64, fence maintenance.Fence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.subEvents[s.ID]
	if !ok {
		return maintenance.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return maintenance.ErrConflict
	}
	if err := r.checkFence(fence); err != nil {
		return err
	}
	r.subEvents[s.ID] = s
	r.bump(fence)
	return nil
}

func (r *maintenanceRepo) DeleteSubEvent(ctx context.Context, id string, expectedVersion int64, fence maintenance.Fence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.subEvents[id]
	if !ok {
		return maintenance.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return maintenance.ErrConflict
	}
	if err := r.checkFence(fence); err != nil {
		return err
	}
	delete(r.subEvents, id)
	r.bump(fence)
	return nil
}

func (r *maintenanceRepo) CreateInspection(ctx context.Context, in maintenance.Inspection, fence maintenance.Fence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(in.ID) == "" {
		return errors.New("inspection id required")
	}
	if !in.Owner.Valid() {
		return errors.New("inspection owner must be an event or a sub-event")
	}
	if _, exists := r.inspections[in.ID]; exists {
		return errors.New("inspection already exists")
	}
	if err := r.checkFence(fence); err != nil {
		return err
	}
	r.inspections[in.ID] = in
	r.bump(fence)
	return nil
}

func (r *maintenanceRepo) ListInspections(ctx context.Context, owner maintenance.Owner) ([]maintenance.Inspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]maintenance.Inspection, 0)
	for _, in := range r.inspections {
		if in.Owner == owner {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *maintenanceRepo) CountInspections(ctx context.Context, owner maintenance.Owner) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, in := range r.inspections {
		if in.Owner == owner {
			n++
		}
	}
	return n, nil
}

// checkFence y bump asumen r.mu tomado en escritura.
func (r *maintenanceRepo) checkFence(f maintenance.Fence) error {
	e, ok := r.events[f.EventID]
	if !ok {
		return maintenance.ErrNotFound
	}
	if e.Version != f.Version {
		return maintenance.ErrConflict
	}
	return nil
}

func (r *maintenanceRepo) bump(f maintenance.Fence) {
	e := r.events[f.EventID]
	e.Version++
	r.events[f.EventID] = e
}
