package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"membership-system/models"
)

// AdminUserHandler lists registered members and manages their roles. User
// creation and deletion happen in the backend console, not here.
type AdminUserHandler struct {
	app    core.App
	logger *slog.Logger
}

func NewAdminUserHandler(app core.App, logger *slog.Logger) *AdminUserHandler {
	return &AdminUserHandler{app: app, logger: logger}
}

func (h *AdminUserHandler) List(e *core.RequestEvent) error {
	records := []*core.Record{}
	err := h.app.RecordQuery("users").
		OrderBy("cognome ASC", "nome ASC").
		All(&records)
	if err != nil {
		return e.BadRequestError("Impossibile caricare gli utenti.", err)
	}

	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		users = append(users, models.UserFromRecord(rec))
	}
	return e.JSON(http.StatusOK, users)
}

// UpdateRole changes a member's role. An admin cannot demote themself: the
// request is rejected before any backend write.
func (h *AdminUserHandler) UpdateRole(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")

	var form models.RoleForm
	if err := e.BindBody(&form); err != nil {
		return e.BadRequestError("Dati non validi.", err)
	}
	if err := form.Validate(); err != nil {
		return e.BadRequestError(err.Error(), nil)
	}

	if e.Auth != nil && e.Auth.Id == id && form.Role != models.RoleAdmin {
		return e.ForbiddenError("Non puoi rimuovere il ruolo di amministratore a te stesso.", nil)
	}

	rec, err := h.app.FindRecordById("users", id)
	if err != nil {
		return e.NotFoundError("Utente non trovato.", err)
	}

	rec.Set("role", string(form.Role))
	if err := h.app.Save(rec); err != nil {
		h.logger.Error("role update failed", "userId", id, "error", err)
		return e.BadRequestError("Impossibile aggiornare il ruolo dell'utente.", err)
	}

	h.logger.Info("role updated", "userId", id, "role", form.Role, "by", e.Auth.Id)
	return e.JSON(http.StatusOK, models.UserFromRecord(rec))
}
