package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/hook"

	"membership-system/models"
)

// RequireAdmin gates a route group on the admin role. Superusers (the
// backend console) pass as well.
func RequireAdmin() *hook.Handler[*core.RequestEvent] {
	return &hook.Handler[*core.RequestEvent]{
		Id: "requireAdminRole",
		Func: func(e *core.RequestEvent) error {
			if e.Auth == nil {
				return e.UnauthorizedError("Autenticazione richiesta.", nil)
			}
			if e.HasSuperuserAuth() || e.Auth.GetString("role") == string(models.RoleAdmin) {
				return e.Next()
			}
			return e.ForbiddenError("Accesso riservato agli amministratori.", nil)
		},
	}
}
