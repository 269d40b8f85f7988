// internal/app/features/messages/send.go
package messages

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/policy/messagepolicy"
	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/sanitize"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sendRequest struct {
	ReceiverID string        `json:"receiver_id"`
	Content    string        `json:"content"`
	Media      *models.Media `json:"media,omitempty"`
}

// HandleSendDirect handles POST /messages.
//
// Validation runs before the store is touched; the initiation rule
// (only organization/admin/mentor may open a new thread) runs after the
// receiver is confirmed to exist, so a denial never leaks whether a user
// ID is real through ordering alone.
func (h *Handler) HandleSendDirect(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("sending messages requires an authenticated user"))
		return
	}

	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("receiver_id is required"))
		return
	}
	if receiverID == uid {
		httpjson.Error(w, h.Log, apperr.Validation("cannot message yourself"))
		return
	}
	content := sanitize.Text(req.Content)
	if content == "" && req.Media == nil {
		httpjson.Error(w, h.Log, apperr.Validation("message needs content or media"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := userstore.New(h.DB).GetByID(ctx, receiverID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	msgs := messagestore.New(h.DB)
	if err := messagepolicy.CheckSendDirect(ctx, msgs, r, receiverID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	msg, err := msgs.Create(ctx, uid, models.DirectTarget(receiverID), content, req.Media)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, msg)
}
