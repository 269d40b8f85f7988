// internal/app/features/notifications/tokens.go
package notifications

import (
	"context"
	"net/http"
	"strings"

	"github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
)

type registerTokenRequest struct {
	Token string `json:"token"`
}

// HandleRegisterToken handles POST /notifications/register-token, storing
// the device's push token on the user record. Re-registering replaces the
// previous token; a device belongs to one account at a time.
func (h *Handler) HandleRegisterToken(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("registering a push token requires an authenticated user"))
		return
	}

	var req registerTokenRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		httpjson.Error(w, h.Log, apperr.Validation("token is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := userstore.New(h.DB).SetPushToken(ctx, uid, token); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"registered": true})
}

// HandleUnregisterToken handles POST /notifications/unregister-token,
// clearing the stored push token on sign-out.
func (h *Handler) HandleUnregisterToken(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("unregistering a push token requires an authenticated user"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := userstore.New(h.DB).ClearPushToken(ctx, uid); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]bool{"registered": false})
}
