// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/limits"
	"github.com/voluntree/voluntree/internal/app/system/normalize"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

// ErrLastAdmin rejects removals that would leave a group without admins.
var ErrLastAdmin = apperr.Constraint("cannot remove the group's only admin")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, apperr.NotFound("group not found")
		}
		return models.Group{}, apperr.Infra("group lookup failed", err)
	}
	return g, nil
}

// Create inserts a group after normalizing its membership sets: members are
// deduplicated, the creator is forced into both members and admins, and
// admins are clipped to the member set. Callers run permission checks and
// mentor auto-promotion before reaching here.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.Name = normalize.Name(g.Name)
	if g.Name == "" {
		return models.Group{}, apperr.Validation("group name is required")
	}
	if len(g.Name) > limits.MaxGroupName {
		return models.Group{}, apperr.Validation("group name exceeds %d bytes", limits.MaxGroupName)
	}
	if len(g.Description) > limits.MaxGroupDescription {
		return models.Group{}, apperr.Validation("group description exceeds %d bytes", limits.MaxGroupDescription)
	}
	if g.CreatorID.IsZero() {
		return models.Group{}, apperr.Validation("group creator is required")
	}

	g.MemberIDs = dedupe(append(g.MemberIDs, g.CreatorID))
	g.AdminIDs = intersect(dedupe(append(g.AdminIDs, g.CreatorID)), g.MemberIDs)

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, apperr.Infra("group insert failed", err)
	}
	return g, nil
}

// UpdateInfo changes name and/or description. Nil pointers leave the field
// untouched; an empty description clears it.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc *string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != nil {
		n := normalize.Name(*name)
		if n == "" {
			return apperr.Validation("group name cannot be empty")
		}
		if len(n) > limits.MaxGroupName {
			return apperr.Validation("group name exceeds %d bytes", limits.MaxGroupName)
		}
		set["name"] = n
		set["name_ci"] = text.Fold(n)
	}
	if desc != nil {
		if len(*desc) > limits.MaxGroupDescription {
			return apperr.Validation("group description exceeds %d bytes", limits.MaxGroupDescription)
		}
		set["description"] = *desc
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return apperr.Infra("group update failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// AddMembers adds users to the member set. Existing members are unaffected
// ($addToSet), so re-inviting is harmless.
func (s *Store) AddMembers(ctx context.Context, id primitive.ObjectID, memberIDs []primitive.ObjectID) error {
	memberIDs = dedupe(memberIDs)
	if len(memberIDs) == 0 {
		return apperr.Validation("no members to add")
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"member_ids": bson.M{"$each": memberIDs}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Infra("add members failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// RemoveMember pulls a user from both the member and admin sets. The update
// filter refuses to match when the target is the sole remaining admin, so
// the admin-count invariant holds even under concurrent removals.
func (s *Store) RemoveMember(ctx context.Context, id, memberID primitive.ObjectID) error {
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"admin_ids": bson.M{"$ne": memberID}},   // target is not an admin
			{"admin_ids.1": bson.M{"$exists": true}}, // or there is more than one admin
		},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$pull": bson.M{"member_ids": memberID, "admin_ids": memberID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Infra("remove member failed", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing group from the last-admin guard.
		if _, gerr := s.GetByID(ctx, id); gerr != nil {
			return gerr
		}
		return ErrLastAdmin
	}
	return nil
}

// PromoteAdmins adds members to the admin set. Only existing members are
// promoted; IDs outside the member set are ignored by the filter.
func (s *Store) PromoteAdmins(ctx context.Context, id primitive.ObjectID, adminIDs []primitive.ObjectID) error {
	adminIDs = dedupe(adminIDs)
	if len(adminIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"admin_ids": bson.M{"$each": adminIDs}}},
	)
	if err != nil {
		return apperr.Infra("promote admins failed", err)
	}
	return nil
}

// Delete removes a group record. Message cascade is the caller's job (see
// the groups feature); this keeps per-collection stores single-purpose.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Infra("group delete failed", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// ListByMember returns every group the user belongs to, most recently
// updated first.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"member_ids": userID})
	if err != nil {
		return nil, apperr.Infra("group list failed", err)
	}
	defer cur.Close(ctx)
	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Infra("group list decode failed", err)
	}
	return out, nil
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func intersect(a, b []primitive.ObjectID) []primitive.ObjectID {
	inB := make(map[primitive.ObjectID]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	out := make([]primitive.ObjectID, 0, len(a))
	for _, id := range a {
		if _, ok := inB[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
