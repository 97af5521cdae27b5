package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-system/models"
)

// These tests exercise the request paths that resolve before any backend
// access: payload validation and authorization guards.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequestEvent(method, target, body string) *core.RequestEvent {
	e := &core.RequestEvent{}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.Request = req
	e.Response = httptest.NewRecorder()
	return e
}

func newAuthRecord(id, role string) *core.Record {
	col := core.NewAuthCollection("users")
	col.Fields.Add(
		&core.TextField{Name: "nome"},
		&core.TextField{Name: "cognome"},
		&core.TextField{Name: "telefono"},
		&core.SelectField{Name: "role", Values: []string{"user", "admin"}, MaxSelect: 1},
	)

	rec := core.NewRecord(col)
	rec.Id = id
	rec.Set("role", role)
	return rec
}

func TestSessionHandler_LoginRejectsMalformedEmail(t *testing.T) {
	h := NewSessionHandler(nil, nil, discardLogger())

	e := newRequestEvent(http.MethodPost, "/api/session", `{"email":"non-una-email","password":"segreta"}`)
	err := h.Login(e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato dell'email")
}

func TestSessionHandler_LoginRejectsEmptyPassword(t *testing.T) {
	h := NewSessionHandler(nil, nil, discardLogger())

	e := newRequestEvent(http.MethodPost, "/api/session", `{"email":"mario@example.com","password":"   "}`)
	err := h.Login(e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non corretti")
}

func TestSessionHandler_MeRequiresAuth(t *testing.T) {
	h := NewSessionHandler(nil, nil, discardLogger())

	e := newRequestEvent(http.MethodGet, "/api/session", "")
	assert.Error(t, h.Me(e))
}

func TestSessionHandler_MeReturnsViewerProfile(t *testing.T) {
	h := NewSessionHandler(nil, nil, discardLogger())

	e := newRequestEvent(http.MethodGet, "/api/session", "")
	rec := newAuthRecord("usr1", "user")
	rec.Set("nome", "Mario")
	rec.Set("cognome", "Rossi")
	e.Auth = rec

	require.NoError(t, h.Me(e))

	body := e.Response.(*httptest.ResponseRecorder).Body.String()
	assert.Contains(t, body, `"uid":"usr1"`)
	assert.Contains(t, body, `"nome":"Mario"`)
}

func TestAdminUserHandler_SelfDemotionIsRejected(t *testing.T) {
	h := NewAdminUserHandler(nil, discardLogger())

	e := newRequestEvent(http.MethodPatch, "/api/admin/users/usr1/role", `{"role":"user"}`)
	e.Request.SetPathValue("id", "usr1")
	e.Auth = newAuthRecord("usr1", "admin")

	err := h.UpdateRole(e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "te stesso")
}

func TestAdminUserHandler_RejectsUnknownRole(t *testing.T) {
	h := NewAdminUserHandler(nil, discardLogger())

	e := newRequestEvent(http.MethodPatch, "/api/admin/users/usr2/role", `{"role":"superuser"}`)
	e.Request.SetPathValue("id", "usr2")
	e.Auth = newAuthRecord("usr1", "admin")

	assert.Error(t, h.UpdateRole(e))
}

func TestRequireAdmin_RejectsMissingAuth(t *testing.T) {
	handler := RequireAdmin()

	e := newRequestEvent(http.MethodGet, "/api/admin/events", "")
	assert.Error(t, handler.Func(e))
}

func TestRequireAdmin_RejectsPlainUser(t *testing.T) {
	handler := RequireAdmin()

	e := newRequestEvent(http.MethodGet, "/api/admin/events", "")
	e.Auth = newAuthRecord("usr1", string(models.RoleUser))

	err := handler.Func(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amministratori")
}
