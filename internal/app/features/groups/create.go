// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/policy/grouppolicy"
	"github.com/voluntree/voluntree/internal/app/store/groups"
	"github.com/voluntree/voluntree/internal/app/store/mentors"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/app/system/httpjson"
	"github.com/voluntree/voluntree/internal/app/system/sanitize"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	MemberIDs     []string `json:"member_ids"`
	IsOrgGroup    bool     `json:"is_org_group,omitempty"`
	OpportunityID string   `json:"opportunity_id,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
}

// HandleCreateGroup handles POST /groups.
//
// Side effects on success: the creator lands in both members and admins,
// invited members are deduplicated, and when the group is tied to an
// opportunity, invitees holding a matching mentor assignment are promoted
// to admin alongside the creator.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Permission("group creation requires an authenticated user"))
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	name := sanitize.Text(req.Name)
	if name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("group name is required"))
		return
	}

	var opportunityID *primitive.ObjectID
	if req.OpportunityID != "" {
		oid, err := primitive.ObjectIDFromHex(req.OpportunityID)
		if err != nil {
			httpjson.Error(w, h.Log, apperr.Validation("malformed opportunity id"))
			return
		}
		opportunityID = &oid
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := grouppolicy.CheckCreate(ctx, h.DB, r, opportunityID, req.IsOrgGroup); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	g := models.Group{
		Name:          name,
		Description:   sanitize.Text(req.Description),
		MemberIDs:     memberIDs,
		CreatorID:     uid,
		IsOrgGroup:    req.IsOrgGroup,
		OpportunityID: opportunityID,
		Avatar:        req.Avatar,
	}

	// Mentor invitees become admins alongside the creator.
	if opportunityID != nil {
		mentorIDs, err := mentorstore.New(h.DB).MentorsAmong(ctx, *opportunityID, memberIDs)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		g.AdminIDs = mentorIDs
	}

	created, err := groupstore.New(h.DB).Create(ctx, g)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, created)
}
