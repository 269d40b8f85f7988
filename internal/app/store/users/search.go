// internal/app/store/users/search.go
package userstore

import (
	"context"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// visibleRoles maps a viewer's role to the roles they may contact.
// Volunteers see platform staff; staff see volunteers. Users without a role
// see nobody (they can still reply in threads started with them).
func visibleRoles(viewer models.Role) []models.Role {
	switch viewer {
	case models.RoleVolunteer:
		return []models.Role{models.RoleAdmin, models.RoleMentor, models.RoleOrganization}
	case models.RoleAdmin, models.RoleMentor, models.RoleOrganization:
		return []models.Role{models.RoleVolunteer}
	default:
		return nil
	}
}

// SearchAvailable returns the page of users the viewer is allowed to start
// a conversation with, optionally filtered by a folded-name prefix. Page
// numbers are 1-based; this listing uses plain skip/limit because contact
// pickers jump to arbitrary pages.
func (s *Store) SearchAvailable(ctx context.Context, viewerID primitive.ObjectID, viewerRole models.Role, search string, page, limit int) ([]models.UserSummary, error) {
	roles := visibleRoles(viewerRole)
	if len(roles) == 0 {
		return []models.UserSummary{}, nil
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{
		"_id":  bson.M{"$ne": viewerID},
		"role": bson.M{"$in": roles},
	}
	if folded := text.Fold(search); folded != "" {
		filter["full_name_ci"] = bson.M{"$regex": "^" + regexEscape(folded)}
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "full_name": 1, "role": 1, "profile_image": 1}).
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Infra("contact search failed", err)
	}
	defer cur.Close(ctx)

	out := []models.UserSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Infra("contact search decode failed", err)
	}
	return out, nil
}

// regexEscape quotes regex metacharacters so user input is matched
// literally in the prefix query.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
