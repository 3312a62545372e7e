package maintenance

import (
	"net/http"
	"strings"
	"time"

	"maintenance-inspections/internal/domain/workflow"
	"maintenance-inspections/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

// inspectionRequest: plan y direct usan planned_start/planned_end; create usa
// date + reason.
type inspectionRequest struct {
	Action       string `json:"action" validate:"required,inspection_action" enums:"plan,create,direct"`
	Title        string `json:"title" validate:"required,max=200"`
	Notes        string `json:"notes" validate:"max=4000"`
	PlannedStart string `json:"planned_start" validate:"omitempty,date"`
	PlannedEnd   string `json:"planned_end" validate:"omitempty,date"`
	Date         string `json:"date" validate:"omitempty,date"`
	Reason       string `json:"reason" validate:"omitempty,unplanned_reason" enums:"equipment_failure,safety_concern,regulatory_request,operator_request,other"`
}

// inspectionResponse representa una inspección devuelta por la API.
type inspectionResponse struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id,omitempty"`
	SubEventID      string    `json:"sub_event_id,omitempty"`
	Kind            string    `json:"kind"`
	IsPlanned       bool      `json:"is_planned"`
	PlannedStart    string    `json:"planned_start,omitempty"`
	PlannedEnd      string    `json:"planned_end,omitempty"`
	Date            string    `json:"date,omitempty"`
	UnplannedReason string    `json:"unplanned_reason,omitempty"`
	Title           string    `json:"title"`
	Notes           string    `json:"notes"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// policyResponse es la respuesta de la política de inspecciones.
type policyResponse struct {
	Action  string `json:"action"`
	Allowed bool   `json:"allowed"`
	Kind    string `json:"kind,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Bound   string `json:"bound,omitempty"`
}

// addInspectionHandler godoc
// @Summary Crear inspección
// @Description Crea una inspección planificada (plan), no planificada (create) o directa (direct) en el evento o sub-evento. Requiere dueño o administrador y que la política lo permita.
// @Tags inspections
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param payload body inspectionRequest true "Datos de la inspección; fechas YYYY-MM-DD"
// @Success 201 {object} inspectionResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Failure 409 {object} decisionResponse
// @Failure 422 {object} decisionResponse
// @Router /events/{eventID}/inspections [post]
// @Router /events/{eventID}/sub-events/{subEventID}/inspections [post]
func addInspectionHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.principal(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req inspectionRequest
		if !d.decode(w, r, &req) {
			return
		}

		owner, err := d.owner(r)
		if err != nil {
			d.writeError(w, err)
			return
		}

		action, _ := workflow.ParseInspectionAction(req.Action)
		reason, _ := ParseUnplannedReason(req.Reason)
		in := InspectionInput{
			Action: action,
			Title:  req.Title,
			Notes:  req.Notes,
			Reason: reason,
		}
		in.PlannedStart, _ = parseOptionalDate(req.PlannedStart)
		in.PlannedEnd, _ = parseOptionalDate(req.PlannedEnd)
		in.Date, _ = parseOptionalDate(req.Date)

		insp, err := d.svc.AddInspection(r.Context(), p, owner, in)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toInspectionResponse(insp))
	}
}

// listInspectionsHandler godoc
// @Summary Listar inspecciones
// @Tags inspections
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Success 200 {array} inspectionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/inspections [get]
// @Router /events/{eventID}/sub-events/{subEventID}/inspections [get]
func listInspectionsHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		owner, err := d.owner(r)
		if err != nil {
			d.writeError(w, err)
			return
		}

		items, err := d.svc.ListInspections(r.Context(), owner)
		if err != nil {
			d.writeError(w, err)
			return
		}
		out := make([]inspectionResponse, 0, len(items))
		for _, in := range items {
			out = append(out, toInspectionResponse(in))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// inspectionPolicyHandler godoc
// @Summary Consultar política de inspecciones
// @Description Indica si la acción aplicaría ahora. Con fechas propuestas también valida la ventana; un 200 con allowed=false trae kind, reason y el límite usado (bound).
// @Tags inspections
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Param action query string true "plan | create | direct"
// @Param planned_start query string false "YYYY-MM-DD"
// @Param planned_end query string false "YYYY-MM-DD"
// @Param date query string false "YYYY-MM-DD (create)"
// @Success 200 {object} policyResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /events/{eventID}/inspection-policy [get]
// @Router /events/{eventID}/sub-events/{subEventID}/inspection-policy [get]
func inspectionPolicyHandler(d deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := d.principal(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		action, ok := workflow.ParseInspectionAction(q.Get("action"))
		if !ok {
			http.Error(w, "action must be one of plan, create, direct", http.StatusBadRequest)
			return
		}

		req := workflow.InspectionRequest{Action: action}
		var err error
		if req.PlannedStart, err = parseOptionalDate(q.Get("planned_start")); err != nil {
			http.Error(w, "planned_start must be a date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		if req.PlannedEnd, err = parseOptionalDate(q.Get("planned_end")); err != nil {
			http.Error(w, "planned_end must be a date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		if req.Date, err = parseOptionalDate(q.Get("date")); err != nil {
			http.Error(w, "date must be a date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		owner, err := d.owner(r)
		if err != nil {
			d.writeError(w, err)
			return
		}

		res, err := d.svc.CheckInspectionAction(r.Context(), owner, req)
		if err != nil {
			d.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, policyResponse{
			Action:  string(action),
			Allowed: res.Allowed,
			Kind:    string(res.Kind),
			Reason:  res.Reason,
			Bound:   string(res.Bound),
		})
	}
}

// owner resuelve el dueño desde la ruta. Para sub-eventos verifica que
// pertenezcan al evento de la URL.
func (d deps) owner(r *http.Request) (Owner, error) {
	eventID := chi.URLParam(r, "eventID")
	subID := chi.URLParam(r, "subEventID")
	if subID == "" {
		return EventOwner(eventID), nil
	}
	sub, err := d.svc.GetSubEvent(r.Context(), eventID, subID)
	if err != nil {
		return Owner{}, err
	}
	return SubEventOwner(sub.ID), nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return validation.ParseDate(s)
}

func toInspectionResponse(in Inspection) inspectionResponse {
	out := inspectionResponse{
		ID:              in.ID,
		EventID:         in.Owner.EventID,
		SubEventID:      in.Owner.SubEventID,
		Kind:            string(in.Kind),
		IsPlanned:       in.IsPlanned,
		UnplannedReason: string(in.UnplannedReason),
		Title:           in.Title,
		Notes:           in.Notes,
		CreatedBy:       in.CreatedBy,
		CreatedAt:       in.CreatedAt,
	}
	if in.PlannedStart != nil {
		out.PlannedStart = in.PlannedStart.Format(validation.DateLayout)
	}
	if in.PlannedEnd != nil {
		out.PlannedEnd = in.PlannedEnd.Format(validation.DateLayout)
	}
	if in.ActualStart != nil {
		out.Date = in.ActualStart.Format(validation.DateLayout)
	}
	return out
}
