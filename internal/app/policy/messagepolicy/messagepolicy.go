// Package messagepolicy gates direct-message sending. Only organization,
// admin, and mentor roles may open a brand-new 1:1 thread; anyone may
// reply once a thread exists.
package messagepolicy

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckSendDirect returns nil when the sender may message the receiver,
// or a permission error naming the unmet condition.
func CheckSendDirect(ctx context.Context, msgs *messagestore.Store, r *http.Request, receiverID primitive.ObjectID) error {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return apperr.Permission("sending messages requires an authenticated user")
	}
	if role.CanInitiateDirect() {
		return nil
	}
	exists, err := msgs.HasDirectHistory(ctx, uid, receiverID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Permission("only organization, admin, or mentor roles may start a new conversation")
	}
	return nil
}
