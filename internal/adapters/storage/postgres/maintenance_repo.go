package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/maintenance"
	"maintenance-inspections/internal/domain/workflow"

	sq "github.com/Masterminds/squirrel"
)

const (
	eventsTable      = "maintenance_events"
	subEventsTable   = "maintenance_sub_events"
	inspectionsTable = "maintenance_inspections"
)

var (
	eventColumns = []string{
		"id", "number", "title", "description", "category", "status",
		"planned_start", "planned_end", "actual_start", "actual_end",
		"cancelled_by", "cancelled_at", "cancel_reason",
		"approved_by", "approved_at", "created_by", "sub_event_seq",
		"version", "created_at", "updated_at",
	}
	subEventColumns = []string{
		"id", "event_id", "number", "title", "description", "status",
		"planned_start", "planned_end", "actual_start", "actual_end",
		"cancelled_by", "cancelled_at", "cancel_reason",
		"version", "created_at", "updated_at",
	}
	inspectionColumns = []string{
		"id", "event_id", "sub_event_id", "kind", "is_planned",
		"planned_start", "planned_end", "actual_start", "unplanned_reason",
		"title", "notes", "created_by", "created_at",
	}
)

type MaintenanceRepo struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo {
	return &MaintenanceRepo{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MaintenanceRepo) NextEventSequence(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('maintenance_event_seq')`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// --- events ---

func (r *MaintenanceRepo) CreateEvent(ctx context.Context, e maintenance.Event) error {
	approvedBy, _ := e.Approval.By()
	query, args, err := r.psql.Insert(eventsTable).Columns(eventColumns...).Values(
		e.ID, e.Number, e.Title, e.Description, string(e.Category), string(e.Status),
		e.PlannedStart, e.PlannedEnd, nullTime(e.ActualStart), nullTime(e.ActualEnd),
		e.CancelledBy, nullTime(e.CancelledAt), e.CancelReason,
		nullString(approvedBy), nullTime(e.ApprovedAt), e.CreatedBy, e.SubEventSeq,
		e.Version, e.CreatedAt, e.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert event: %w", err)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *MaintenanceRepo) GetEvent(ctx context.Context, id string) (maintenance.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return maintenance.Event{}, maintenance.ErrNotFound
	}

	query, args, err := r.psql.Select(eventColumns...).From(eventsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return maintenance.Event{}, fmt.Errorf("build select event: %w", err)
	}

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return maintenance.Event{}, maintenance.ErrNotFound
	}
	return e, err
}

func (r *MaintenanceRepo) ListEvents(ctx context.Context, filter maintenance.ListFilter) ([]maintenance.Event, error) {
	b := r.psql.Select(eventColumns...).From(eventsTable)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		b = b.Where(sq.Eq{"status": statuses})
	}
	if filter.Category != "" {
		b = b.Where(sq.Eq{"category": string(filter.Category)})
	}
	if filter.CreatedBy != "" {
		b = b.Where(sq.Eq{"created_by": filter.CreatedBy})
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		b = b.Where(sq.Or{
			sq.ILike{"number": like},
			sq.ILike{"title": like},
			sq.ILike{"description": like},
		})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = maintenance.DefaultListLimit
	}
	if limit > maintenance.MaxListLimit {
		limit = maintenance.MaxListLimit
	}
	b = b.OrderBy("created_at DESC", "number DESC").Limit(uint64(limit))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]maintenance.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) UpdateEvent(ctx context.Context, e maintenance.Event, expectedVersion int64) error {
	approvedBy, _ := e.Approval.By()
	query, args, err := r.psql.Update(eventsTable).SetMap(map[string]any{
		"title":         e.Title,
		"description":   e.Description,
		"status":        string(e.Status),
		"planned_start": e.PlannedStart,
		"planned_end":   e.PlannedEnd,
		"actual_start":  nullTime(e.ActualStart),
		"actual_end":    nullTime(e.ActualEnd),
		"cancelled_by":  e.CancelledBy,
		"cancelled_at":  nullTime(e.CancelledAt),
		"cancel_reason": e.CancelReason,
		"approved_by":   nullString(approvedBy),
		"approved_at":   nullTime(e.ApprovedAt),
		"sub_event_seq": e.SubEventSeq,
		"version":       e.Version,
		"updated_at":    e.UpdatedAt,
	}).Where(sq.Eq{"id": e.ID, "version": expectedVersion}).ToSql()
	if err != nil {
		return fmt.Errorf("build update event: %w", err)
	}
	return r.execCAS(ctx, r.db, eventsTable, e.ID, query, args)
}

func (r *MaintenanceRepo) DeleteEvent(ctx context.Context, id string, expectedVersion int64) error {
	query, args, err := r.psql.Delete(eventsTable).Where(sq.Eq{"id": id, "version": expectedVersion}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}
	return r.execCAS(ctx, r.db, eventsTable, id, query, args)
}

// --- sub-events ---

func (r *MaintenanceRepo) CreateSubEvent(ctx context.Context, s maintenance.SubEvent, fence maintenance.Fence) error {
	if fence.EventID != s.EventID {
		return errors.New("fence must be the sub-event parent")
	}
	query, args, err := r.psql.Insert(subEventsTable).Columns(subEventColumns...).Values(
		s.ID, s.EventID, s.Number, s.Title, s.Description, string(s.Status),
		s.PlannedStart, s.PlannedEnd, nullTime(s.ActualStart), nullTime(s.ActualEnd),
		s.CancelledBy, nullTime(s.CancelledAt), s.CancelReason,
		s.Version, s.CreatedAt, s.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert sub-event: %w", err)
	}
	return r.inFamily(ctx, fence, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (r *MaintenanceRepo) GetSubEvent(ctx context.Context, id string) (maintenance.SubEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return maintenance.SubEvent{}, maintenance.ErrNotFound
	}

	query, args, err := r.psql.Select(subEventColumns...).From(subEventsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return maintenance.SubEvent{}, fmt.Errorf("build select sub-event: %w", err)
	}

	s, err := scanSubEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return maintenance.SubEvent{}, maintenance.ErrNotFound
	}
	return s, err
}

func (r *MaintenanceRepo) ListSubEvents(ctx context.Context, eventID string) ([]maintenance.SubEvent, error) {
	query, args, err := r.psql.Select(subEventColumns...).From(subEventsTable).
		Where(sq.Eq{"event_id": eventID}).OrderBy("number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sub-events: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]maintenance.SubEvent, 0)
	for rows.Next() {
		s, err := scanSubEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) UpdateSubEvent(ctx context.Context, s maintenance.SubEvent, expectedVersion int64, fence maintenance.Fence) error {
	query, args, err := r.psql.Update(subEventsTable).SetMap(map[string]any{
		"title":         s.Title,
		"description":   s.Description,
		"status":        string(s.Status),
		"planned_start": s.PlannedStart,
		"planned_end":   s.PlannedEnd,
		"actual_start":  nullTime(s.ActualStart),
		"actual_end":    nullTime(s.ActualEnd),
		"cancelled_by":  s.CancelledBy,
		"cancelled_at":  nullTime(s.CancelledAt),
		"cancel_reason": s.CancelReason,
		"version":       s.Version,
		"updated_at":    s.UpdatedAt,
	}).Where(sq.Eq{"id": s.ID, "version": expectedVersion}).ToSql()
	if err != nil {
		return fmt.Errorf("build update sub-event: %w", err)
	}
	return r.inFamily(ctx, fence, func(tx *sql.Tx) error {
		return r.execCAS(ctx, tx, subEventsTable, s.ID, query, args)
	})
}

func (r *MaintenanceRepo) DeleteSubEvent(ctx context.Context, id string, expectedVersion int64, fence maintenance.Fence) error {
	query, args, err := r.psql.Delete(subEventsTable).Where(sq.Eq{"id": id, "version": expectedVersion}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete sub-event: %w", err)
	}
	return r.inFamily(ctx, fence, func(tx *sql.Tx) error {
		return r.execCAS(ctx, tx, subEventsTable, id, query, args)
	})
}

// --- inspections ---

func (r *MaintenanceRepo) CreateInspection(ctx context.Context, in maintenance.Inspection, fence maintenance.Fence) error {
	query, args, err := r.psql.Insert(inspectionsTable).Columns(inspectionColumns...).Values(
		in.ID, nullString(in.Owner.EventID), nullString(in.Owner.SubEventID), string(in.Kind), in.IsPlanned,
		nullTime(in.PlannedStart), nullTime(in.PlannedEnd), nullTime(in.ActualStart), string(in.UnplannedReason),
		in.Title, in.Notes, in.CreatedBy, in.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert inspection: %w", err)
	}
	return r.inFamily(ctx, fence, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (r *MaintenanceRepo) ListInspections(ctx context.Context, owner maintenance.Owner) ([]maintenance.Inspection, error) {
	query, args, err := r.psql.Select(inspectionColumns...).From(inspectionsTable).
		Where(ownerClause(owner)).OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list inspections: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]maintenance.Inspection, 0)
	for rows.Next() {
		in, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *MaintenanceRepo) CountInspections(ctx context.Context, owner maintenance.Owner) (int, error) {
	query, args, err := r.psql.Select("COUNT(*)").From(inspectionsTable).Where(ownerClause(owner)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count inspections: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// inFamily corre write en una transacción que antes avanza la versión del
// evento raíz. El UPDATE del fence toma el lock de la fila del evento, así que
// un UpdateEvent/DeleteEvent concurrente espera y después pierde el CAS.
func (r *MaintenanceRepo) inFamily(ctx context.Context, fence maintenance.Fence, write func(tx *sql.Tx) error) error {
	query, args, err := r.fenceQuery(fence)
	if err != nil {
		return fmt.Errorf("build fence: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.execCAS(ctx, tx, eventsTable, fence.EventID, query, args); err != nil {
		return err
	}
	if err := write(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MaintenanceRepo) fenceQuery(f maintenance.Fence) (string, []any, error) {
	return r.psql.Update(eventsTable).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": f.EventID, "version": f.Version}).
		ToSql()
}

// execer es lo común entre *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execCAS ejecuta un UPDATE/DELETE condicionado a la versión. Sin filas
// afectadas distingue entre fila inexistente y versión vieja.
func (r *MaintenanceRepo) execCAS(ctx context.Context, db execer, table, id, query string, args []any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	q, a, err := r.psql.Select("1").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build exists: %w", err)
	}
	var one int
	if err := db.QueryRowContext(ctx, q, a...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return maintenance.ErrNotFound
		}
		return err
	}
	return maintenance.ErrConflict
}

func ownerClause(o maintenance.Owner) sq.Eq {
	if o.SubEventID != "" {
		return sq.Eq{"sub_event_id": o.SubEventID}
	}
	return sq.Eq{"event_id": o.EventID}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (maintenance.Event, error) {
	var (
		e                                            maintenance.Event
		category, status                             string
		actualStart, actualEnd, cancelledAt, apprvAt sql.NullTime
		approvedBy                                   sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.Number, &e.Title, &e.Description, &category, &status,
		&e.PlannedStart, &e.PlannedEnd, &actualStart, &actualEnd,
		&e.CancelledBy, &cancelledAt, &e.CancelReason,
		&approvedBy, &apprvAt, &e.CreatedBy, &e.SubEventSeq,
		&e.Version, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return maintenance.Event{}, err
	}

	e.Category = workflow.Category(category)
	e.Status = workflow.Status(status)
	e.PlannedStart = workflow.DateOnly(e.PlannedStart)
	e.PlannedEnd = workflow.DateOnly(e.PlannedEnd)
	e.ActualStart = timePtr(actualStart)
	e.ActualEnd = timePtr(actualEnd)
	e.CancelledAt = timePtr(cancelledAt)
	e.ApprovedAt = timePtr(apprvAt)
	if approvedBy.Valid {
		e.Approval = workflow.ApprovedBy(approvedBy.String)
	}
	return e, nil
}

func scanSubEvent(row rowScanner) (maintenance.SubEvent, error) {
	var (
		s                                   maintenance.SubEvent
		status                              string
		actualStart, actualEnd, cancelledAt sql.NullTime
	)
	if err := row.Scan(
		&s.ID, &s.EventID, &s.Number, &s.Title, &s.Description, &status,
		&s.PlannedStart, &s.PlannedEnd, &actualStart, &actualEnd,
		&s.CancelledBy, &cancelledAt, &s.CancelReason,
		&s.Version, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return maintenance.SubEvent{}, err
	}

	s.Status = workflow.Status(status)
	s.PlannedStart = workflow.DateOnly(s.PlannedStart)
	s.PlannedEnd = workflow.DateOnly(s.PlannedEnd)
	s.ActualStart = timePtr(actualStart)
	s.ActualEnd = timePtr(actualEnd)
	s.CancelledAt = timePtr(cancelledAt)
	return s, nil
}

func scanInspection(row rowScanner) (maintenance.Inspection, error) {
	var (
		in                                    maintenance.Inspection
		eventID, subEventID                   sql.NullString
		kind, reason                          string
		plannedStart, plannedEnd, actualStart sql.NullTime
	)
	if err := row.Scan(
		&in.ID, &eventID, &subEventID, &kind, &in.IsPlanned,
		&plannedStart, &plannedEnd, &actualStart, &reason,
		&in.Title, &in.Notes, &in.CreatedBy, &in.CreatedAt,
	); err != nil {
		return maintenance.Inspection{}, err
	}

	in.Owner = maintenance.Owner{EventID: eventID.String, SubEventID: subEventID.String}
	in.Kind = workflow.InspectionAction(kind)
	in.UnplannedReason = maintenance.UnplannedReason(reason)
	in.PlannedStart = timePtr(plannedStart)
	in.PlannedEnd = timePtr(plannedEnd)
	in.ActualStart = timePtr(actualStart)
	return in, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
