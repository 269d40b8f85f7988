// internal/app/features/groups/routes.go
package groups

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/system/auth"
	"github.com/voluntree/voluntree/internal/app/system/limits"
	"github.com/voluntree/voluntree/internal/app/system/ratelimit"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// LIST
		pr.Get("/", h.ServeGroupList)

		// CREATE
		pr.Post("/", h.HandleCreateGroup)

		// UPDATE / DELETE
		pr.Put("/{id}", h.HandleUpdateGroup)
		pr.Delete("/{id}", h.HandleDeleteGroup)

		// MEMBERSHIP
		pr.Post("/{id}/members", h.HandleAddMembers)
		pr.Delete("/{id}/members/{memberID}", h.HandleRemoveMember)

		// THREAD
		pr.Get("/{id}/messages", h.ServeGroupThread)
		pr.With(ratelimit.PerSender(limits.SendsPerMinute, time.Minute)).
			Post("/{id}/messages", h.HandleSendGroupMessage)
	})

	return r
}
