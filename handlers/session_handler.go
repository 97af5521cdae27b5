package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"membership-system/models"
	"membership-system/monitoring"
	"membership-system/security"
)

type SessionHandler struct {
	app      core.App
	throttle *security.LoginThrottle
	logger   *slog.Logger
}

func NewSessionHandler(app core.App, throttle *security.LoginThrottle, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		app:      app,
		throttle: throttle,
		logger:   logger,
	}
}

// Login exchanges email + password for an auth token and the member profile.
// Failures map to the portal's fixed user-facing messages; raw backend
// errors are never surfaced.
func (h *SessionHandler) Login(e *core.RequestEvent) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Si è verificato un errore imprevisto.", err)
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if err := validation.Validate(req.Email, validation.Required, is.EmailFormat); err != nil {
		monitoring.TrackLogin("invalid")
		return e.BadRequestError("Il formato dell'email non è valido.", nil)
	}
	if req.Password == "" {
		monitoring.TrackLogin("invalid")
		return e.BadRequestError("Email o password non corretti.", nil)
	}

	ctx := e.Request.Context()
	if !h.throttle.Allow(ctx, req.Email) {
		monitoring.TrackLogin("throttled")
		return apis.NewApiError(http.StatusTooManyRequests, "Troppi tentativi di accesso. Riprova più tardi.", nil)
	}

	record, err := h.app.FindAuthRecordByEmail("users", req.Email)
	if err != nil || !record.ValidatePassword(req.Password) {
		monitoring.TrackLogin("failure")
		h.logger.Info("login rejected", "email", req.Email)
		return e.BadRequestError("Email o password non corretti.", nil)
	}

	token, err := record.NewAuthToken()
	if err != nil {
		monitoring.TrackLogin("failure")
		return e.InternalServerError("Si è verificato un errore. Riprova più tardi.", err)
	}

	h.throttle.Reset(ctx, req.Email)
	monitoring.TrackLogin("success")

	return e.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user":  models.UserFromRecord(record),
	})
}

// Me returns the resolved viewer identity for the current session.
func (h *SessionHandler) Me(e *core.RequestEvent) error {
	if e.Auth == nil {
		return e.UnauthorizedError("Autenticazione richiesta.", nil)
	}
	return e.JSON(http.StatusOK, models.UserFromRecord(e.Auth))
}
