// internal/app/features/messages/routes.go
package messages

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

		// THREAD PAGE (marks fetched counterparty messages read)
		pr.Get("/{userID}", h.ServeDirectThread)

		// SEND (throttled per sender)
		pr.With(ratelimit.PerSender(limits.SendsPerMinute, time.Minute)).
			Post("/", h.HandleSendDirect)
	})

	return r
}
