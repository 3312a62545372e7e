package maintenance

import (
	"net/http"
	"time"

	"maintenance-inspections/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// subEventRequest es el cuerpo para crear un sub-evento.
type subEventRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=4000"`
	PlannedStart string `json:"planned_start" validate:"required,date"`
	PlannedEnd   string `json:"planned_end" validate:"required,date"`
}

// subEventResponse representa un sub-evento. La aprobación es la del padre.
type subEventResponse struct {
	ID           string          `json:"id"`
	EventID      string          `json:"event_id"`
	Number       string          `json:"number"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	PlannedStart string          `json:"planned_start"`
	PlannedEnd   string          `json:"planned_end"`
	ActualStart  *time.Time      `json:"actual_start,omitempty"`
	ActualEnd    *time.Time      `json:"actual_end,omitempty"`
	Cancellation *cancellationJS `json:"cancellation,omitempty"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// addSubEventHandler godoc
// @Summary Crear sub-evento
// @Description Solo eventos complex en estado planned. La ventana debe caer dentro de la del evento. Dueño o administrador.
// @Tags sub-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param payload body subEventRequest true "Datos del sub-evento; fechas YYYY-MM-DD"
// @Success 201 {object} subEventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Failure 422 {object} decisionResponse
// @Router /events/{eventID}/sub-events [post]
func addSubEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req subEventRequest
		if !d.decode(w, r, &req) {
			return
		}
		start, _ := validation.ParseDate(req.PlannedStart)
		end, _ := validation.ParseDate(req.PlannedEnd)

		sub, err := d.svc.AddSubEvent(r.Context(), p, chi.URLParam(r, "eventID"), SubEventInput{
			Title:        req.Title,
			Description:  req.Description,
			PlannedStart: start,
			PlannedEnd:   end,
		})
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSubEventResponse(sub))
	}
}

// listSubEventsHandler godoc
// @Summary Listar sub-eventos
// @Tags sub-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Success 200 {array} subEventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/sub-events [get]
func listSubEventsHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := d.svc.ListSubEvents(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			d.writeError(w, err)
			return
		}
		out := make([]subEventResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toSubEventResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getSubEventHandler godoc
// @Summary Obtener sub-evento
// @Tags sub-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Success 200 {object} subEventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/sub-events/{subEventID} [get]
func getSubEventHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sub, err := d.svc.GetSubEvent(r.Context(), chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"))
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubEventResponse(sub))
	}
}

// updateSubEventHandler godoc
// @Summary Editar sub-evento
// @Description La nueva ventana debe seguir dentro de la del evento padre.
// @Tags sub-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Param payload body updateRequest true "Campos a modificar"
// @Success 200 {object} subEventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Failure 422 {object} decisionResponse
// @Router /events/{eventID}/sub-events/{subEventID} [patch]
func updateSubEventHandler(d deps) http.HandlerFunc {
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

		sub, err := d.svc.UpdateSubEvent(r.Context(), p, chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"), req.toInput())
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubEventResponse(sub))
	}
}

// deleteSubEventHandler godoc
// @Summary Borrar sub-evento
// @Tags sub-events
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Param version query int false "Versión esperada"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID}/sub-events/{subEventID} [delete]
func deleteSubEventHandler(d deps) http.HandlerFunc {
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

		if err := d.svc.DeleteSubEvent(r.Context(), p, chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"), version); err != nil {
			d.writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// subEventCapabilitiesHandler godoc
// @Summary Capacidades del sub-evento
// @Description Evalúa el sub-evento con la aprobación y el dueño del padre, más las guardas de estado del padre.
// @Tags sub-events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Success 200 {object} capabilitiesResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/sub-events/{subEventID}/capabilities [get]
func subEventCapabilitiesHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sub, caps, err := d.svc.SubEventCapabilities(r.Context(), p, chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"))
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, capabilitiesResponse{
			ID:           sub.ID,
			Number:       sub.Number,
			Capabilities: caps,
		})
	}
}

// subEventActionHandler godoc
// @Summary Ejecutar una acción sobre el sub-evento
// @Description Acciones: start, complete, cancel, reopen, revert, reactivate. La aprobación se hereda del padre y no se gestiona aquí.
// @Tags sub-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Param action path string true "Acción" Enums(start, complete, cancel, reopen, revert, reactivate)
// @Param payload body transitionRequest false "Motivo, versión y (para reactivate) destino"
// @Success 200 {object} subEventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID}/sub-events/{subEventID}/actions/{action} [post]
func subEventActionHandler(d deps) http.HandlerFunc {
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

		sub, err := d.svc.TransitionSubEvent(r.Context(), p, chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"), in)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubEventResponse(sub))
	}
}

// subEventTransitionHandler godoc
// @Summary Transición genérica del sub-evento
// @Tags sub-events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Roles header string false "Solo en modo dev, roles CSV (ej: admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param subEventID path string true "ID del sub-evento"
// @Param payload body transitionRequest true "Destino"
// @Success 200 {object} subEventResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Router /events/{eventID}/sub-events/{subEventID}/transitions [post]
func subEventTransitionHandler(d deps) http.HandlerFunc {
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

		sub, err := d.svc.TransitionSubEvent(r.Context(), p, chi.URLParam(r, "eventID"), chi.URLParam(r, "subEventID"), in)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubEventResponse(sub))
	}
}

func toSubEventResponse(s SubEvent) subEventResponse {
	return subEventResponse{
		ID:           s.ID,
		EventID:      s.EventID,
		Number:       s.Number,
		Title:        s.Title,
		Description:  s.Description,
		Status:       string(s.Status),
		PlannedStart: s.PlannedStart.Format(validation.DateLayout),
		PlannedEnd:   s.PlannedEnd.Format(validation.DateLayout),
		ActualStart:  s.ActualStart,
		ActualEnd:    s.ActualEnd,
		Cancellation: toCancellation(s.Lifecycle),
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
