// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/policy/grouppolicy"
	"github.com/voluntree/voluntree/internal/app/store/groups"
	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/sanitize"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// loadGroupWithCaps resolves the {id} URL param, loads the group, and
// computes the actor's capabilities once for the request.
func (h *Handler) loadGroupWithCaps(ctx context.Context, r *http.Request) (models.Group, grouppolicy.Capabilities, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return models.Group{}, grouppolicy.Capabilities{}, apperr.Validation("malformed group id")
	}
	g, err := groupstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		return models.Group{}, grouppolicy.Capabilities{}, err
	}
	caps, err := grouppolicy.ForGroup(ctx, h.DB, r, g)
	if err != nil {
		return models.Group{}, grouppolicy.Capabilities{}, err
	}
	return g, caps, nil
}

// HandleUpdateGroup handles PUT /groups/{id}: metadata changes only;
// membership moves through the member endpoints.
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, caps, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if !caps.CanUpdate {
		httpjson.Error(w, h.Log, grouppolicy.DenyUpdate())
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Name == nil && req.Description == nil {
		httpjson.Error(w, h.Log, apperr.Validation("nothing to update"))
		return
	}
	if req.Name != nil {
		clean := sanitize.Text(*req.Name)
		req.Name = &clean
	}
	if req.Description != nil {
		clean := sanitize.Text(*req.Description)
		req.Description = &clean
	}

	store := groupstore.New(h.DB)
	if err := store.UpdateInfo(ctx, g.ID, req.Name, req.Description); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	updated, err := store.GetByID(ctx, g.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// HandleDeleteGroup handles DELETE /groups/{id}, cascading to the group's
// messages first. If the group record removal then fails, the orphaned
// messages are reported loudly: the inconsistency is detectable, not
// silent.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, caps, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if !caps.CanDelete {
		httpjson.Error(w, h.Log, grouppolicy.DenyDelete())
		return
	}

	removed, err := messagestore.New(h.DB).DeleteByGroup(ctx, g.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := groupstore.New(h.DB).Delete(ctx, g.ID); err != nil {
		h.Log.Error("group record removal failed after message cascade",
			zap.String("group_id", g.ID.Hex()),
			zap.Int64("messages_removed", removed),
			zap.Error(err))
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]int64{"messages_removed": removed})
}
