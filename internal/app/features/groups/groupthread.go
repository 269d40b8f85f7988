// internal/app/features/groups/groupthread.go
package groups

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/paging"
	"github.com/voluntree/voluntree/internal/app/system/sanitize"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
)

type groupSendRequest struct {
	Content string        `json:"content"`
	Media   *models.Media `json:"media,omitempty"`
}

// ServeGroupThread handles GET /groups/{id}/messages?limit&cursor.
// Membership is required. As with direct threads, fetching a page records
// the caller's read receipts before the page query so returned messages
// already reflect them.
func (h *Handler) ServeGroupThread(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("reading group messages requires an authenticated user"))
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

	g, _, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if !g.HasMember(uid) {
		httpjson.Error(w, h.Log, apperr.Permission("only group members can read this thread"))
		return
	}

	msgs := messagestore.New(h.DB)
	if _, err := msgs.MarkGroupRead(ctx, g.ID, uid); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	page, err := msgs.GroupThreadPage(ctx, g.ID, limit, cursor, hasCursor)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, page)
}

// HandleSendGroupMessage handles POST /groups/{id}/messages. Any member may
// post; there is no initiation rule inside a group.
func (h *Handler) HandleSendGroupMessage(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("sending group messages requires an authenticated user"))
		return
	}

	var req groupSendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	content := sanitize.Text(req.Content)
	if content == "" && req.Media == nil {
		httpjson.Error(w, h.Log, apperr.Validation("message needs content or media"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, _, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if !g.HasMember(uid) {
		httpjson.Error(w, h.Log, apperr.Permission("only group members can post to this thread"))
		return
	}

	msg, err := messagestore.New(h.DB).Create(ctx, uid, models.GroupTarget(g.ID), content, req.Media)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, msg)
}
