// internal/app/features/contacts/routes.go
package contacts

import (
	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/available", h.ServeAvailable)
	})

	return r
}
