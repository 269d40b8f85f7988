// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/store/groups"
	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
)

// groupEntry is one group in the client-facing listing, annotated with the
// data the chat list needs without a second round trip.
type groupEntry struct {
	models.Group
	LastMessage *models.Message `json:"last_message,omitempty"`
	UnreadCount int64           `json:"unread_count"`
}

// ServeGroupList handles GET /groups: every group the user belongs to,
// each with its most recent message and the user's unread count.
func (h *Handler) ServeGroupList(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("listing groups requires an authenticated user"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := groupstore.New(h.DB).ListByMember(ctx, uid)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	msgs := messagestore.New(h.DB)
	out := make([]groupEntry, 0, len(list))
	for _, g := range list {
		e := groupEntry{Group: g}
		if last, found, err := msgs.LastGroupMessage(ctx, g.ID); err != nil {
			httpjson.Error(w, h.Log, err)
			return
		} else if found {
			e.LastMessage = &last
		}
		n, err := msgs.GroupUnreadCount(ctx, g.ID, uid)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		e.UnreadCount = n
		out = append(out, e)
	}
	httpjson.Respond(w, http.StatusOK, out)
}
