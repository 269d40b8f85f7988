// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/normalize"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = apperr.Constraint("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Infra("user lookup failed", err)
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, apperr.NotFound("user not found")
		}
		return models.User{}, apperr.Infra("user lookup failed", err)
	}
	return u, nil
}

// Create inserts a user. Email is normalized and globally unique; the role
// string must parse (unknown values are rejected here, not at call sites).
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.Email = normalize.Email(u.Email)
	u.FullName = normalize.Name(u.FullName)
	if u.Email == "" {
		return models.User{}, apperr.Validation("email is required")
	}
	if u.FullName == "" {
		return models.User{}, apperr.Validation("full name is required")
	}
	role, err := models.ParseRole(string(u.Role))
	if err != nil {
		return models.User{}, apperr.Validation("%v", err)
	}
	u.Role = role

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullNameCI = text.Fold(u.FullName)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, apperr.Infra("user insert failed", err)
	}
	return u, nil
}

// SetPassword stores a bcrypt hash of the plaintext password.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Infra("password hashing failed", err)
	}
	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": string(hash),
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Infra("password update failed", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// Users provisioned without a local password always fail the check.
func (s *Store) CheckPassword(ctx context.Context, id primitive.ObjectID, plaintext string) (bool, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if u.PasswordHash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil, nil
}

// TouchLastSeen records activity for the user. Best-effort; callers may
// ignore the error.
func (s *Store) TouchLastSeen(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_seen_at": time.Now().UTC()}})
	return err
}

// SetPushToken overwrites the user's single device-token slot.
func (s *Store) SetPushToken(ctx context.Context, id primitive.ObjectID, token string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"push_token": token,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Infra("push token update failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// ClearPushToken empties the device-token slot.
func (s *Store) ClearPushToken(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$unset": bson.M{"push_token": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return apperr.Infra("push token clear failed", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// SummariesByIDs returns counterparty summaries keyed by user ID.
func (s *Store) SummariesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	proj := options.Find().SetProjection(bson.M{"_id": 1, "full_name": 1, "role": 1, "profile_image": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, apperr.Infra("user summaries query failed", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var sum models.UserSummary
		if err := cur.Decode(&sum); err != nil {
			return nil, apperr.Infra("user summary decode failed", err)
		}
		out[sum.ID] = sum
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Infra("user summaries cursor failed", err)
	}
	return out, nil
}
