// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a named multi-party thread.
//
// Invariants (enforced by the group store):
//   - CreatorID is always a member
//   - AdminIDs ⊆ MemberIDs
//   - AdminIDs is never empty
type Group struct {
	ID            primitive.ObjectID   `bson:"_id" json:"id"`
	Name          string               `bson:"name" json:"name"`
	NameCI        string               `bson:"name_ci" json:"-"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	MemberIDs     []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	AdminIDs      []primitive.ObjectID `bson:"admin_ids" json:"admin_ids"`
	CreatorID     primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	IsOrgGroup    bool                 `bson:"is_org_group" json:"is_org_group"`
	OpportunityID *primitive.ObjectID  `bson:"opportunity_id,omitempty" json:"opportunity_id,omitempty"`
	Avatar        string               `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the user belongs to the group.
func (g Group) HasMember(userID primitive.ObjectID) bool {
	return containsID(g.MemberIDs, userID)
}

// HasAdmin reports whether the user is in the group's admin set.
func (g Group) HasAdmin(userID primitive.ObjectID) bool {
	return containsID(g.AdminIDs, userID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
