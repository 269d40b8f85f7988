// internal/domain/models/opportunitymentor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OpportunityMentor delegates group-management rights over one opportunity
// to a volunteer. It is the only way a volunteer-role user gains those
// rights. Unique per (opportunity_id, volunteer_id).
type OpportunityMentor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OpportunityID  primitive.ObjectID `bson:"opportunity_id" json:"opportunity_id"`
	VolunteerID    primitive.ObjectID `bson:"volunteer_id" json:"volunteer_id"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	AssignedBy     primitive.ObjectID `bson:"assigned_by" json:"assigned_by"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
