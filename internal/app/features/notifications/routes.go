// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/register-token", h.HandleRegisterToken)
		pr.Post("/unregister-token", h.HandleUnregisterToken)
	})

	return r
}
