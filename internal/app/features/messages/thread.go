// internal/app/features/messages/thread.go
package messages

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/paging"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeDirectThread handles GET /messages/{userID}?limit&cursor.
//
// Fetching a page marks the counterparty's unread messages as read — the
// client only asks for a thread it is rendering. The read update runs
// before the page query so the returned messages already carry their
// final read state.
func (h *Handler) ServeDirectThread(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("reading messages requires an authenticated user"))
		return
	}

	counterpartyID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("malformed user id"))
		return
	}
	limit := paging.ParseLimit(r)
	cursor, hasCursor, err := paging.ParseCursor(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msgs := messagestore.New(h.DB)
	if _, err := msgs.MarkDirectRead(ctx, uid, counterpartyID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	page, err := msgs.DirectThreadPage(ctx, uid, counterpartyID, limit, cursor, hasCursor)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, page)
}
