// internal/app/store/mentors/mentorstore.go
package mentorstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateAssignment = apperr.Constraint("volunteer is already a mentor for this opportunity")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("opportunity_mentors")}
}

// Create inserts a mentor delegation. The (opportunity, volunteer) pair is
// unique; a repeat insert is a constraint violation, not an upsert.
func (s *Store) Create(ctx context.Context, a models.OpportunityMentor) (models.OpportunityMentor, error) {
	if a.OpportunityID.IsZero() || a.VolunteerID.IsZero() {
		return models.OpportunityMentor{}, apperr.Validation("opportunity and volunteer are required")
	}
	a.ID = primitive.NewObjectID()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.OpportunityMentor{}, ErrDuplicateAssignment
		}
		return models.OpportunityMentor{}, apperr.Infra("mentor assignment insert failed", err)
	}
	return a, nil
}

// Delete removes the assignment with the given _id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return apperr.Infra("mentor assignment delete failed", err)
	}
	return nil
}

// HasAny reports whether the volunteer holds a mentor assignment for any
// opportunity.
func (s *Store) HasAny(ctx context.Context, volunteerID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"volunteer_id": volunteerID})
	if err != nil {
		return false, apperr.Infra("mentor assignment count failed", err)
	}
	return n > 0, nil
}

// HasForOpportunity reports whether the volunteer is a mentor for the
// specific opportunity.
func (s *Store) HasForOpportunity(ctx context.Context, opportunityID, volunteerID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"opportunity_id": opportunityID,
		"volunteer_id":   volunteerID,
	})
	if err != nil {
		return false, apperr.Infra("mentor assignment count failed", err)
	}
	return n > 0, nil
}

// MentorsAmong filters candidates down to those holding a mentor assignment
// for the opportunity. Used at group creation to auto-promote invited
// mentors to group admin.
func (s *Store) MentorsAmong(ctx context.Context, opportunityID primitive.ObjectID, candidates []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{
		"opportunity_id": opportunityID,
		"volunteer_id":   bson.M{"$in": candidates},
	})
	if err != nil {
		return nil, apperr.Infra("mentor assignment query failed", err)
	}
	defer cur.Close(ctx)

	var out []primitive.ObjectID
	for cur.Next(ctx) {
		var a models.OpportunityMentor
		if err := cur.Decode(&a); err != nil {
			return nil, apperr.Infra("mentor assignment decode failed", err)
		}
		out = append(out, a.VolunteerID)
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Infra("mentor assignment cursor failed", err)
	}
	return out, nil
}

// ListByVolunteer returns all assignments held by a volunteer.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.OpportunityMentor, error) {
	cur, err := s.c.Find(ctx, bson.M{"volunteer_id": volunteerID})
	if err != nil {
		return nil, apperr.Infra("mentor assignment query failed", err)
	}
	defer cur.Close(ctx)
	var out []models.OpportunityMentor
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Infra("mentor assignment decode failed", err)
	}
	return out, nil
}
