// internal/app/features/conversations/read.go
package conversations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleMarkRead handles POST /conversations/{userID}/read: the explicit
// bulk read receipt used by notification taps, without fetching a page.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("marking a conversation read requires an authenticated user"))
		return
	}

	counterpartyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("malformed user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	marked, err := messagestore.New(h.DB).MarkDirectRead(ctx, uid, counterpartyID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]int64{"marked_read": marked})
}
