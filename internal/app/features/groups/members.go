// internal/app/features/groups/members.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/app/policy/grouppolicy"
	"github.com/voluntree/voluntree/internal/app/store/groups"
	"github.com/voluntree/voluntree/internal/app/store/mentors"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addMembersRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// HandleAddMembers handles POST /groups/{id}/members. New members with a
// mentor assignment for the group's opportunity come in as admins, same as
// at creation time.
func (h *Handler) HandleAddMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, caps, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if !caps.CanManageMembers {
		httpjson.Error(w, h.Log, grouppolicy.DenyManageMembers())
		return
	}

	var req addMembersRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if len(req.MemberIDs) == 0 {
		httpjson.Error(w, h.Log, apperr.Validation("member_ids is required"))
		return
	}
	memberIDs := make([]primitive.ObjectID, 0, len(req.MemberIDs))
	for _, raw := range req.MemberIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Validation("malformed member id %q", raw))
			return
		}
		memberIDs = append(memberIDs, oid)
	}

	store := groupstore.New(h.DB)
	if err := store.AddMembers(ctx, g.ID, memberIDs); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if g.OpportunityID != nil {
		mentorIDs, err := mentorstore.New(h.DB).MentorsAmong(ctx, *g.OpportunityID, memberIDs)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		if len(mentorIDs) > 0 {
			if err := store.PromoteAdmins(ctx, g.ID, mentorIDs); err != nil {
				httpjson.Error(w, h.Log, err)
				return
			}
		}
	}

	updated, err := store.GetByID(ctx, g.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, updated)
}

// HandleRemoveMember handles DELETE /groups/{id}/members/{memberID}. A
// member may always remove themselves (leave); removing anyone else takes
// the manage-members capability. The store rejects removing the last admin.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("malformed member id"))
		return
	}

	g, caps, err := h.loadGroupWithCaps(ctx, r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	self := false
	if _, _, uid, ok := authz.UserCtx(r); ok {
		self = uid == memberID
	}
	if !self && !caps.CanManageMembers {
		httpjson.Error(w, h.Log, grouppolicy.DenyManageMembers())
		return
	}
	if !g.HasMember(memberID) {
		httpjson.Error(w, h.Log, apperr.NotFound("user is not a member of this group"))
		return
	}

	if err := groupstore.New(h.DB).RemoveMember(ctx, g.ID, memberID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"removed": memberID.Hex()})
}
