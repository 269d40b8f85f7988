// internal/app/features/contacts/available.go
package contacts

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/paging"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
)

type availableResponse struct {
	Users []models.UserSummary `json:"users"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ServeAvailable handles GET /users/available?search&page&limit: the set of
// users the caller is allowed to start a conversation with, filtered by the
// role visibility rules and an optional name-prefix search.
func (h *Handler) ServeAvailable(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("listing contacts requires an authenticated user"))
		return
	}

	search := query.Get(r, "search")
	limit := paging.ParseLimit(r)
	page := 1
	if raw := query.Get(r, "page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpjson.Error(w, h.Log, apperr.Validation("page must be a positive integer"))
			return
		}
		page = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).SearchAvailable(ctx, uid, role, search, page, limit)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, availableResponse{Users: users, Page: page, Limit: limit})
}
