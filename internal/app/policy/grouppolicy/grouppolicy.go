// internal/app/policy/grouppolicy.go
//
// Package grouppolicy decides who may create, modify, and delete groups.
//
// Authorization rules:
//   - Admin and organization roles can manage any group
//   - A group admin, or the group's creator, can manage that group
//   - A volunteer holding an opportunity-mentor record for the group's
//     linked opportunity can manage that group
//   - Everyone else is denied
//
// Capabilities are computed once per request and reused across the
// handler, instead of re-evaluating the OR-chain at each call site.
package grouppolicy

import (
	"context"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/store/mentors"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/authz"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Capabilities is the set of group-management rights the actor holds on
// one specific group.
type Capabilities struct {
	CanUpdate        bool
	CanDelete        bool
	CanManageMembers bool
}

func all() Capabilities {
	return Capabilities{CanUpdate: true, CanDelete: true, CanManageMembers: true}
}

// ForGroup computes the actor's capabilities on the group. A database
// error is distinct from "no capabilities": callers must not treat a
// lookup failure as a denial.
func ForGroup(ctx context.Context, db *mongo.Database, r *http.Request, g models.Group) (Capabilities, error) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return Capabilities{}, nil
	}
	if role.Elevated() {
		return all(), nil
	}
	if g.HasAdmin(uid) || g.CreatorID == uid {
		return all(), nil
	}
	if role == models.RoleVolunteer && g.OpportunityID != nil {
		isMentor, err := mentorstore.New(db).HasForOpportunity(ctx, *g.OpportunityID, uid)
		if err != nil {
			return Capabilities{}, err
		}
		if isMentor {
			return all(), nil
		}
	}
	return Capabilities{}, nil
}

// DenyUpdate is the descriptive denial for metadata changes.
func DenyUpdate() error {
	return apperr.Permission("updating a group requires an elevated role, group admin, creator, or opportunity-mentor standing")
}

// DenyDelete is the descriptive denial for group deletion.
func DenyDelete() error {
	return apperr.Permission("deleting a group requires an elevated role, group admin, creator, or opportunity-mentor standing")
}

// DenyManageMembers is the descriptive denial for membership changes.
func DenyManageMembers() error {
	return apperr.Permission("managing members requires an elevated role, group admin, creator, or opportunity-mentor standing")
}

// CheckCreate evaluates the group-creation rule:
//   - admin and organization roles may always create groups
//   - a volunteer may create one only while holding an opportunity-mentor
//     record: for the named opportunity when one is given, otherwise for
//     any opportunity
//   - the organization-group variant additionally requires the admin role
//
// Returns nil when permitted, a permission error naming the unmet
// condition otherwise.
func CheckCreate(ctx context.Context, db *mongo.Database, r *http.Request, opportunityID *primitive.ObjectID, isOrgGroup bool) error {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return apperr.Permission("group creation requires an authenticated user")
	}
	if isOrgGroup && role != models.RoleAdmin {
		return apperr.Permission("creating an organization group requires the admin role")
	}
	if role.Elevated() {
		return nil
	}
	if role != models.RoleVolunteer {
		return apperr.Permission("group creation requires the admin, organization, or mentor-delegated volunteer role")
	}

	mentors := mentorstore.New(db)
	if opportunityID != nil {
		permitted, err := mentors.HasForOpportunity(ctx, *opportunityID, uid)
		if err != nil {
			return err
		}
		if !permitted {
			return apperr.Permission("volunteer is not a mentor for the requested opportunity")
		}
		return nil
	}
	permitted, err := mentors.HasAny(ctx, uid)
	if err != nil {
		return err
	}
	if !permitted {
		return apperr.Permission("volunteer holds no opportunity-mentor assignment")
	}
	return nil
}
