// internal/app/features/conversations/routes.go
package conversations

import (
	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// LIST
		pr.Get("/", h.ServeConversationList)

		// EXPLICIT MARK-READ (no page fetch)
		pr.Post("/{userID}/read", h.HandleMarkRead)
	})

	return r
}
