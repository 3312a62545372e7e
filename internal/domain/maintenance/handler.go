package maintenance

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/workflow"
	"maintenance-inspections/internal/middleware"
	"maintenance-inspections/internal/platform/logger"
	"maintenance-inspections/internal/platform/validation"
	"maintenance-inspections/internal/ports/auth"
	"maintenance-inspections/internal/ports/roles"

	"github.com/go-chi/chi/v5"
)

// deps es lo que comparten todos los handlers del módulo.
type deps struct {
	svc *Service
	dir roles.Directory
	v   *validation.Validator
	log logger.Logger
}

// ValidationRules son las reglas custom que usan los DTOs de este módulo.
func ValidationRules() []validation.Rule {
	return []validation.Rule{
		validation.OneOf("status", workflow.Statuses...),
		validation.OneOf("category", workflow.CategorySimple, workflow.CategoryComplex),
		validation.OneOf("target", workflow.Targets...),
		validation.OneOf("unplanned_reason", UnplannedReasons...),
		validation.OneOf("inspection_action", workflow.InspectionActions...),
	}
}

func RegisterRoutes(r chi.Router, svc *Service, dir roles.Directory, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	d := deps{svc: svc, dir: dir, v: validation.New(ValidationRules()...), log: log}

	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(d))
		er.Get("/", listEventsHandler(d))

		er.Route("/{eventID}", func(ir chi.Router) {
			ir.Get("/", getEventHandler(d))
			ir.Patch("/", updateEventHandler(d))
			ir.Delete("/", deleteEventHandler(d))
			ir.Get("/capabilities", eventCapabilitiesHandler(d))
			ir.Post("/actions/{action}", eventActionHandler(d))
			ir.Post("/transitions", eventTransitionHandler(d))

			ir.Post("/inspections", addInspectionHandler(d))
			ir.Get("/inspections", listInspectionsHandler(d))
			ir.Get("/inspection-policy", inspectionPolicyHandler(d))

			ir.Route("/sub-events", func(sr chi.Router) {
				sr.Post("/", addSubEventHandler(d))
				sr.Get("/", listSubEventsHandler(d))

				sr.Route("/{subEventID}", func(sir chi.Router) {
					sir.Get("/", getSubEventHandler(d))
					sir.Patch("/", updateSubEventHandler(d))
					sir.Delete("/", deleteSubEventHandler(d))
					sir.Get("/capabilities", subEventCapabilitiesHandler(d))
					sir.Post("/actions/{action}", subEventActionHandler(d))
					sir.Post("/transitions", subEventTransitionHandler(d))

					sir.Post("/inspections", addInspectionHandler(d))
					sir.Get("/inspections", listInspectionsHandler(d))
					sir.Get("/inspection-policy", inspectionPolicyHandler(d))
				})
			})
		})
	})
}

// createEventRequest es el cuerpo para crear un evento de mantenimiento.
type createEventRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=4000"`
	Category     string `json:"category" validate:"required,category" enums:"simple,complex"`
	PlannedStart string `json:"planned_start" validate:"required,date"` // YYYY-MM-DD
	PlannedEnd   string `json:"planned_end" validate:"required,date"`   // YYYY-MM-DD
}

// updateRequest edita datos y ventana; los campos ausentes no se tocan.
type updateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=4000"`
	PlannedStart *string `json:"planned_start" validate:"omitempty,date"`
	PlannedEnd   *string `json:"planned_end" validate:"omitempty,date"`
	Version      *int64  `json:"version"`
}

// transitionRequest: target es obligatorio en /transitions y opcional en
// /actions/reactivate (planned o in_progress).
type transitionRequest struct {
	Target  string `json:"target" validate:"omitempty,target"`
	Reason  string `json:"reason" validate:"max=1000"`
	Version *int64 `json:"version"`
}

// eventResponse representa un evento de mantenimiento devuelto por la API.
type eventResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Status       string          `json:"status"`
	Stage        string          `json:"stage"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	CreatedBy    string          `json:"created_by"`
	PlannedStart string          `json:"planned_start"`
	PlannedEnd   string          `json:"planned_end"`
	ActualStart  *time.Time      `json:"actual_start,omitempty"`
	ActualEnd    *time.Time      `json:"actual_end,omitempty"`
	Cancellation *cancellationJS `json:"cancellation,omitempty"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type cancellationJS struct {
	By     string     `json:"by"`
	At     *time.Time `json:"at,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// capabilitiesResponse es lo que consume la UI para habilitar botones.
type capabilitiesResponse struct {
	ID           string                 `json:"id"`
	Number       string                 `json:"number"`
	Capabilities workflow.CapabilitySet `json:"capabilities"`
}

// decisionResponse es el cuerpo de un 409/422 del motor.
type decisionResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// createEventHandler godoc
// @Summary Crear evento de mantenimiento
// @Description Crea un evento en estado planned y sin aprobar. El creador queda como dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createEventRequest true "Datos del evento; fechas YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {object} decisionResponse
// @Router /events [post]
func createEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEventRequest
		if !d.decode(w, r, &req) {
			return
		}

		cat, _ := workflow.ParseCategory(req.Category)
		start, _ := validation.ParseDate(req.PlannedStart)
		end, _ := validation.ParseDate(req.PlannedEnd)

		ev, err := d.svc.CreateEvent(r.Context(), p, CreateEventInput{
			Title:        req.Title,
			Description:  req.Description,
			Category:     cat,
			PlannedStart: start,
			PlannedEnd:   end,
		})
		if err != nil {
			d.writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(ev))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Lista eventos de mantenimiento, más recientes primero. Filtros opcionales por estado, categoría, creador y texto.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "Lista CSV de estados (planned,in_progress,completed,cancelled)"
// @Param category query string false "simple | complex"
// @Param created_by query string false "ID del creador"
// @Param q query string false "Texto libre en número/título/descripción"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "filtro inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /events [get]
func listEventsHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := d.svc.ListEvents(r.Context(), filter)
		if err != nil {
			d.writeError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID} [get]
func getEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ev, err := d.svc.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(ev))
	}
}

// updateEventHandler godoc
// @Summary Editar evento
// @Description Edita título, descripción y ventana planificada. Solo dueño o administrador, y solo mientras el evento está planned o completed. Los sub-eventos deben quedar dentro de la nueva ventana.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param payload body updateRequest true "Campos a modificar; version opcional para control optimista"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Failure 422 {object} decisionResponse
// @Router /events/{eventID} [patch]
func updateEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateRequest
		if !d.decode(w, r, &req) {
			return
		}

		ev, err := d.svc.UpdateEvent(r.Context(), p, chi.URLParam(r, "eventID"), req.toInput())
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(ev))
	}
}

// deleteEventHandler godoc
// @Summary Borrar evento
// @Description Solo eventos planned sin aprobar, sin sub-eventos ni inspecciones. Dueño o administrador.
// @Tags events
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param version query int false "Versión esperada"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID} [delete]
func deleteEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		version, err := parseVersion(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := d.svc.DeleteEvent(r.Context(), p, chi.URLParam(r, "eventID"), version); err != nil {
			d.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// eventCapabilitiesHandler godoc
// @Summary Capacidades del evento
// @Description Devuelve qué transiciones y operaciones hijas están habilitadas para el usuario actual, con el motivo de cada transición deshabilitada.
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} capabilitiesResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/capabilities [get]
func eventCapabilitiesHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ev, caps, err := d.svc.EventCapabilities(r.Context(), p, chi.URLParam(r, "eventID"))
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, capabilitiesResponse{
			ID:           ev.ID,
			Number:       ev.Number,
			Capabilities: caps,
		})
	}
}

// eventActionHandler godoc
// @Summary Ejecutar una acción sobre el evento
// @Description Acciones: approve, revert-approval, start, complete, cancel, reopen, revert, reactivate. Una transición ilegal devuelve 409 con el motivo.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param action path string true "Acción" Enums(approve, revert-approval, start, complete, cancel, reopen, revert, reactivate)
// @Param payload body transitionRequest false "Motivo, versión y (para reactivate) destino"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID}/actions/{action} [post]
func eventActionHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := d.actionInput(w, r)
		if !ok {
			return
		}

		ev, err := d.svc.TransitionEvent(r.Context(), p, chi.URLParam(r, "eventID"), in)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(ev))
	}
}

// eventTransitionHandler godoc
// @Summary Transición genérica por destino
// @Description Mueve el evento al destino pedido si existe una arista legal desde su etapa actual.
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param payload body transitionRequest true "Destino (planned_approved, planned_unapproved, planned, in_progress, completed, cancelled)"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID}/transitions [post]
func eventTransitionHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := d.targetInput(w, r)
		if !ok {
			return
		}

		ev, err := d.svc.TransitionEvent(r.Context(), p, chi.URLParam(r, "eventID"), in)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(ev))
	}
}

// principal resuelve el usuario del request. Admin = rol en el token o el
// directorio de roles lo confirma. Si el directorio falla se sigue como no-admin.
func (d deps) principal(r *http.Request) (workflow.Principal, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return workflow.Principal{}, false
	}

	p := workflow.Principal{ID: strings.TrimSpace(claims.UserID), IsAdmin: claims.HasRole(auth.RoleAdmin)}
	if p.IsAdmin || d.dir == nil {
		return p, true
	}

	isAdmin, err := d.dir.IsAdmin(r.Context(), p.ID)
	if err != nil {
		d.log.Warn("role lookup failed", map[string]any{"user_id": p.ID, "error": err})
		return p, true
	}
	p.IsAdmin = isAdmin
	return p, true
}

// decode lee el JSON y lo valida. Escribe el 400 si falla.
func (d deps) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := d.v.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// decodeOptional acepta cuerpo vacío.
func (d deps) decodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := d.v.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (d deps) actionInput(w http.ResponseWriter, r *http.Request) (TransitionInput, bool) {
	action, ok := workflow.ParseTransition(chi.URLParam(r, "action"))
	if !ok || action == workflow.TransitionDelete {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return TransitionInput{}, false
	}

	var req transitionRequest
	if !d.decodeOptional(w, r, &req) {
		return TransitionInput{}, false
	}

	in := TransitionInput{Action: action, Reason: req.Reason, Version: req.Version}
	if req.Target != "" {
		in.Target, _ = workflow.ParseTarget(req.Target)
	}
	return in, true
}

func (d deps) targetInput(w http.ResponseWriter, r *http.Request) (TransitionInput, bool) {
	var req transitionRequest
	if !d.decode(w, r, &req) {
		return TransitionInput{}, false
	}
	target, ok := workflow.ParseTarget(req.Target)
	if !ok || target == workflow.TargetRemoved {
		http.Error(w, "target is required", http.StatusBadRequest)
		return TransitionInput{}, false
	}
	return TransitionInput{Target: target, Reason: req.Reason, Version: req.Version}, true
}

// writeError traduce errores del servicio y del motor a HTTP.
func (d deps) writeError(w http.ResponseWriter, err error) {
	var de *workflow.DecisionError
	switch {
	case errors.As(err, &de):
		status := http.StatusConflict
		if de.Kind == workflow.KindValidation {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, decisionResponse{Error: string(de.Kind), Reason: de.Reason})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, "version conflict", http.StatusConflict)
	default:
		d.log.Error("request failed", map[string]any{"error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (req updateRequest) toInput() UpdateInput {
	in := UpdateInput{Title: req.Title, Description: req.Description, Version: req.Version}
	if req.PlannedStart != nil {
		if t, err := validation.ParseDate(*req.PlannedStart); err == nil {
			in.PlannedStart = &t
		}
	}
	if req.PlannedEnd != nil {
		if t, err := validation.ParseDate(*req.PlannedEnd); err == nil {
			in.PlannedEnd = &t
		}
	}
	return in
}

func parseVersion(r *http.Request) (*int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get("version"))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, errors.New("version must be an integer")
	}
	return &n, nil
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxListLimit {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// status=planned,in_progress
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			st, ok := workflow.ParseStatus(part)
			if !ok {
				return ListFilter{}, errors.New("status must be one of planned, in_progress, completed, cancelled")
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		c, ok := workflow.ParseCategory(v)
		if !ok {
			return ListFilter{}, errors.New("category must be simple or complex")
		}
		filter.Category = c
	}

	filter.CreatedBy = strings.TrimSpace(r.URL.Query().Get("created_by"))
	filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))

	return filter, nil
}

func toEventResponse(e Event) eventResponse {
	out := eventResponse{
		ID:           e.ID,
		Number:       e.Number,
		Title:        e.Title,
		Description:  e.Description,
		Category:     string(e.Category),
		Status:       string(e.Status),
		Stage:        string(workflow.StageOf(e.Status, e.Approval)),
		ApprovedAt:   e.ApprovedAt,
		CreatedBy:    e.CreatedBy,
		PlannedStart: e.PlannedStart.Format(validation.DateLayout),
		PlannedEnd:   e.PlannedEnd.Format(validation.DateLayout),
		ActualStart:  e.ActualStart,
		ActualEnd:    e.ActualEnd,
		Cancellation: toCancellation(e.Lifecycle),
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if by, ok := e.Approval.By(); ok {
		out.ApprovedBy = by
	}
	return out
}

func toCancellation(l Lifecycle) *cancellationJS {
	if l.CancelledAt == nil && l.CancelledBy == "" {
		return nil
	}
	return &cancellationJS{By: l.CancelledBy, At: l.CancelledAt, Reason: l.CancelReason}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
