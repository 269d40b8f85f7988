// internal/app/features/conversations/list.go
package conversations

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// entry is one conversation in the client-facing list.
type entry struct {
	CounterpartyID primitive.ObjectID  `json:"counterparty_id"`
	Counterparty   *models.UserSummary `json:"counterparty,omitempty"`
	LastMessage    models.Message      `json:"last_message"`
	UnreadCount    int64               `json:"unread_count"`
}

// ServeConversationList handles GET /conversations.
//
// The aggregation returns counterparties in arbitrary order; the store
// sorts by last-message recency before this handler joins in the
// counterparty summaries. A counterparty whose user record has vanished
// still appears (with a null summary) so history is never hidden.
func (h *Handler) ServeConversationList(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("listing conversations requires an authenticated user"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	convs, err := messagestore.New(h.DB).Conversations(ctx, uid)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.CounterpartyID)
	}
	summaries, err := userstore.New(h.DB).SummariesByIDs(ctx, ids)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	out := make([]entry, 0, len(convs))
	for _, c := range convs {
		e := entry{
			CounterpartyID: c.CounterpartyID,
			LastMessage:    c.LastMessage,
			UnreadCount:    c.UnreadCount,
		}
		if sum, found := summaries[c.CounterpartyID]; found {
			e.Counterparty = &sum
		}
		out = append(out, e)
	}
	httpjson.Respond(w, http.StatusOK, out)
}
