package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maintenance-inspections/internal/adapters/roles"
	"maintenance-inspections/internal/middleware"
	"maintenance-inspections/internal/platform/eventbus"
	"maintenance-inspections/internal/platform/logger"
	"maintenance-inspections/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	ownerID    = "owner-1"
	chiefID    = "chief-1" // admin vía directorio
	strangerID = "someone-else"
)

type user struct {
	id    string
	roles string
}

var (
	owner    = user{id: ownerID}
	chief    = user{id: chiefID}
	stranger = user{id: strangerID}
	anon     = user{}
)

func newServer(t *testing.T) (*httptest.Server, *eventbus.Bus, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core))
	bus := eventbus.New(log)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Roles:        roles.NewStaticDirectory([]string{chiefID}),
		Logger:       log,
		Bus:          bus,
		Now:          func() time.Time { return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC) },
	}))
	t.Cleanup(ts.Close)
	return ts, bus, logs
}

func TestHTTP_Health(t *testing.T) {
	ts, _, _ := newServer(t)

	st, body := doReq(t, ts.URL, http.MethodGet, "/health", anon, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, ts.URL, http.MethodGet, "/swagger/doc.json", anon, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/events/{eventID}/inspection-policy")
}

func TestHTTP_EndToEnd_EventLifecycle(t *testing.T) {
	ts, bus, logs := newServer(t)

	// 1) Sin usuario => 401
	st, _ := doReq(t, ts.URL, http.MethodPost, "/events", anon, map[string]any{})
	require.Equal(t, http.StatusUnauthorized, st)

	// 2) Owner crea evento complejo
	ev := createEvent(t, ts.URL, owner, "complex")
	assert.Equal(t, "ME-2026-00001", ev.Number)
	assert.Equal(t, "planned", ev.Status)
	assert.Equal(t, "planned_unapproved", ev.Stage)

	// 3) El owner no puede aprobar; un extraño ni siquiera gestiona
	st, body := doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/actions/approve", owner, nil)
	require.Equal(t, http.StatusConflict, st, string(body))
	var dec struct {
		Error  string `json:"error"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(body, &dec))
	assert.Equal(t, "illegal_transition", dec.Error)

	st, _ = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/actions/cancel", stranger, nil)
	assert.Equal(t, http.StatusForbidden, st)

	// 4) Capacidades del owner antes de aprobar
	var caps struct {
		Capabilities map[string]any `json:"capabilities"`
	}
	getJSON(t, ts.URL, "/events/"+ev.ID+"/capabilities", owner, &caps)
	assert.Equal(t, false, caps.Capabilities["can_approve"])
	assert.Equal(t, true, caps.Capabilities["can_add_sub_events"])

	// 5) Sub-evento
	st, body = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/sub-events", owner, map[string]any{
		"title": "Replace seals", "planned_start": "2026-03-05", "planned_end": "2026-03-15",
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	var sub struct {
		ID     string `json:"id"`
		Number string `json:"number"`
	}
	require.NoError(t, json.Unmarshal(body, &sub))
	assert.Equal(t, ev.Number+"-01", sub.Number)

	// 6) Admin por directorio (rol no viene en el token) aprueba
	ev = doAction(t, ts.URL, chief, ev.ID, "approve", nil)
	assert.Equal(t, "planned_approved", ev.Stage)
	assert.Equal(t, chiefID, ev.ApprovedBy)

	// 7) Versión vieja => 409
	stale := ev.Version - 1
	st, _ = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/actions/start", owner, map[string]any{"version": stale})
	assert.Equal(t, http.StatusConflict, st)

	// 8) Start + start del sub-evento
	ev = doAction(t, ts.URL, owner, ev.ID, "start", map[string]any{"version": ev.Version})
	assert.Equal(t, "in_progress", ev.Status)
	require.NotNil(t, ev.ActualStart)

	st, body = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/sub-events/"+sub.ID+"/actions/start", owner, nil)
	require.Equal(t, http.StatusOK, st, string(body))

	// 9) Completar el padre con un hijo abierto => 409
	st, _ = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/actions/complete", owner, nil)
	assert.Equal(t, http.StatusConflict, st)

	st, _ = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/sub-events/"+sub.ID+"/transitions", owner, map[string]any{"target": "completed"})
	require.Equal(t, http.StatusOK, st)

	ev = doAction(t, ts.URL, owner, ev.ID, "complete", nil)
	assert.Equal(t, "completed", ev.Status)

	// 10) Reabrir: solo admin
	st, _ = doReq(t, ts.URL, http.MethodPost, "/events/"+ev.ID+"/actions/reopen", owner, nil)
	assert.Equal(t, http.StatusConflict, st)
	ev = doAction(t, ts.URL, user{id: "boss", roles: "admin"}, ev.ID, "reopen", map[string]any{"reason": "missing torque check"})
	assert.Equal(t, "in_progress", ev.Status)
	assert.Nil(t, ev.ActualEnd)

	// 11) Los cambios de estado llegan a la auditoría
	bus.Wait()
	audit := logs.FilterMessage("maintenance status changed").All()
	assert.Len(t, audit, 6) // approve, start, sub start, sub complete, complete, reopen
}

func TestHTTP_InspectionsAndPolicy(t *testing.T) {
	ts, _, _ := newServer(t)
	ev := createEvent(t, ts.URL, owner, "simple")
	base := "/events/" + ev.ID

	var pol struct {
		Allowed bool   `json:"allowed"`
		Kind    string `json:"kind"`
		Reason  string `json:"reason"`
		Bound   string `json:"bound"`
	}
	getJSON(t, ts.URL, base+"/inspection-policy?action=create&date=2026-03-10", owner, &pol)
	assert.False(t, pol.Allowed)
	assert.Equal(t, "event not started", pol.Reason)

	st, _ := doReq(t, ts.URL, http.MethodGet, base+"/inspection-policy?action=bogus", owner, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, body := doReq(t, ts.URL, http.MethodPost, base+"/inspections", owner, map[string]any{
		"action": "plan", "title": "Vibration survey", "planned_start": "2026-03-02", "planned_end": "2026-03-04",
	})
	require.Equal(t, http.StatusCreated, st, string(body))

	st, body = doReq(t, ts.URL, http.MethodPost, base+"/inspections", owner, map[string]any{
		"action": "plan", "title": "Too long", "planned_start": "2026-03-28", "planned_end": "2026-04-02",
	})
	require.Equal(t, http.StatusUnprocessableEntity, st, string(body))

	st, body = doReq(t, ts.URL, http.MethodPost, base+"/inspections", owner, map[string]any{
		"action": "create", "title": "Leak", "date": "2026-03-10", "reason": "boredom",
	})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	var items []map[string]any
	getJSON(t, ts.URL, base+"/inspections", owner, &items)
	assert.Len(t, items, 1)

	// sub-eventos no existen en un evento simple
	st, _ = doReq(t, ts.URL, http.MethodGet, base+"/sub-events/nope/inspections", owner, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_ListUpdateDelete(t *testing.T) {
	ts, _, _ := newServer(t)
	first := createEvent(t, ts.URL, owner, "simple")
	createEvent(t, ts.URL, owner, "complex")

	var list []eventJSON
	getJSON(t, ts.URL, "/events?category=complex", owner, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "complex", list[0].Category)

	st, _ := doReq(t, ts.URL, http.MethodGet, "/events?status=bogus", owner, nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, body := doReq(t, ts.URL, http.MethodPatch, "/events/"+first.ID, owner, map[string]any{"title": "Pump overhaul"})
	require.Equal(t, http.StatusOK, st, string(body))
	var updated eventJSON
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Pump overhaul", updated.Title)

	st, _ = doReq(t, ts.URL, http.MethodPatch, "/events/"+first.ID, owner, map[string]any{"planned_end": "2026-02-01"})
	assert.Equal(t, http.StatusUnprocessableEntity, st)

	st, _ = doReq(t, ts.URL, http.MethodDelete, "/events/"+first.ID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, st)

	st, _ = doReq(t, ts.URL, http.MethodDelete, "/events/"+first.ID+"?version=1", owner, nil)
	assert.Equal(t, http.StatusConflict, st)

	st, _ = doReq(t, ts.URL, http.MethodDelete, "/events/"+first.ID+"?version=2", owner, nil)
	assert.Equal(t, http.StatusNoContent, st)

	st, _ = doReq(t, ts.URL, http.MethodGet, "/events/"+first.ID, owner, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

type eventJSON struct {
	ID          string     `json:"id"`
	Number      string     `json:"number"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Stage       string     `json:"stage"`
	ApprovedBy  string     `json:"approved_by"`
	ActualStart *time.Time `json:"actual_start"`
	ActualEnd   *time.Time `json:"actual_end"`
	Version     int64      `json:"version"`
}

func createEvent(t *testing.T, baseURL string, u user, category string) eventJSON {
	t.Helper()

	st, body := doReq(t, baseURL, http.MethodPost, "/events", u, map[string]any{
		"title":         "Compressor C-101 overhaul",
		"category":      category,
		"planned_start": "2026-03-01",
		"planned_end":   "2026-03-31",
	})
	require.Equal(t, http.StatusCreated, st, string(body))

	var ev eventJSON
	require.NoError(t, json.Unmarshal(body, &ev))
	require.NotEmpty(t, ev.ID, string(body))
	return ev
}

func doAction(t *testing.T, baseURL string, u user, eventID, action string, payload any) eventJSON {
	t.Helper()

	st, body := doReq(t, baseURL, http.MethodPost, "/events/"+eventID+"/actions/"+action, u, payload)
	require.Equal(t, http.StatusOK, st, "%s: %s", action, string(body))

	var ev eventJSON
	require.NoError(t, json.Unmarshal(body, &ev))
	return ev
}

func getJSON(t *testing.T, baseURL, path string, u user, out any) {
	t.Helper()

	st, body := doReq(t, baseURL, http.MethodGet, path, u, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	require.NoError(t, json.Unmarshal(body, out))
}

func doReq(t *testing.T, baseURL, method, path string, u user, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u.id != "" {
		req.Header.Set(middleware.HeaderDebugUserID, u.id)
	}
	if u.roles != "" {
		req.Header.Set(middleware.HeaderDebugRoles, u.roles)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
