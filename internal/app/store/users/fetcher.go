// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/voluntree/voluntree/internal/app/system/auth"
	"github.com/voluntree/voluntree/internal/app/system/timeouts"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh user data on each
// request, so role changes and deletions take effect immediately instead
// of riding out a token's lifetime.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser retrieves a user by ID and returns nil if the user is not
// found, the ID is malformed, or any error occurs. Implements
// auth.UserFetcher. As a side effect it touches last_seen_at, which is how
// a polling client's presence is tracked.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.Identity {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"role":      1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		return nil
	}

	role, err := models.ParseRole(string(u.Role))
	if err != nil {
		// A record with an out-of-enum role is unusable; fail closed.
		return nil
	}

	// Presence update; an error here never blocks the request.
	_, _ = f.users.UpdateByID(ctx, oid, bson.M{"$currentDate": bson.M{"last_seen_at": true}})

	return &auth.Identity{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  role,
	}
}
