// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents volunteers, organizations, admins, and mentors.
//
// NOTE:
//   - PasswordHash is optional: externally provisioned users (OAuth and
//     imported accounts) have no local password.
//   - PushToken is a single slot, overwritten on each registration.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"full_name" json:"full_name"`
	FullNameCI   string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash,omitempty" json:"-"`
	Provider     string              `bson:"provider,omitempty" json:"provider,omitempty"`
	Role         Role                `bson:"role,omitempty" json:"role,omitempty"`
	ProfileImage string              `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Verified     bool                `bson:"verified" json:"verified"`
	OrgProfileID *primitive.ObjectID `bson:"org_profile_id,omitempty" json:"org_profile_id,omitempty"`
	LastSeenAt   time.Time           `bson:"last_seen_at,omitempty" json:"last_seen_at,omitempty"`
	PushToken    string              `bson:"push_token,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the reduced user shape embedded in conversation and group
// listings.
type UserSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Role         Role               `bson:"role,omitempty" json:"role,omitempty"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
}

// Summary projects the fields clients need to render a counterparty.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		FullName:     u.FullName,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}
