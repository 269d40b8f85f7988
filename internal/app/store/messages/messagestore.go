// internal/app/store/messages/messagestore.go
//
// The message collection is the flat store everything else is derived
// from: conversation lists, unread counts, and thread pages are all
// queries over it. Messages are immutable after insert except for their
// read-state fields.
package messagestore

import (
	"context"
	"errors"
	"time"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/limits"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("messages")}
}

// Create inserts a message addressed by the given target. The Target union
// guarantees exactly one of receiver/group; a zero target is rejected
// before the store is touched. Content may be empty only when media is
// attached.
func (s *Store) Create(ctx context.Context, senderID primitive.ObjectID, target models.Target, content string, media *models.Media) (models.Message, error) {
	if senderID.IsZero() {
		return models.Message{}, apperr.Validation("sender is required")
	}
	if err := target.Validate(); err != nil {
		return models.Message{}, apperr.Validation("%v", err)
	}
	if content == "" && media == nil {
		return models.Message{}, apperr.Validation("message needs content or media")
	}
	if len(content) > limits.MaxMessageContent {
		return models.Message{}, apperr.Validation("message content exceeds %d bytes", limits.MaxMessageContent)
	}
	if media != nil && media.Kind != models.MediaImage && media.Kind != models.MediaVideo {
		return models.Message{}, apperr.Validation("media kind must be image or video")
	}

	m := models.Message{
		ID:        primitive.NewObjectID(),
		SenderID:  senderID,
		Content:   content,
		Media:     media,
		CreatedAt: time.Now().UTC(),
	}
	if rid, ok := target.Receiver(); ok {
		m.ReceiverID = &rid
	}
	if gid, ok := target.Group(); ok {
		m.GroupID = &gid
	}

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, apperr.Infra("message insert failed", err)
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Message, error) {
	var m models.Message
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Message{}, apperr.NotFound("message not found")
		}
		return models.Message{}, apperr.Infra("message lookup failed", err)
	}
	return m, nil
}

// HasDirectHistory reports whether any message has ever passed between the
// two users, in either direction. The thread-initiation rule hangs off
// this.
func (s *Store) HasDirectHistory(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"sender_id": a, "receiver_id": b},
			{"sender_id": b, "receiver_id": a},
		},
	})
	if err != nil {
		return false, apperr.Infra("direct history check failed", err)
	}
	return n > 0, nil
}

// DeleteByGroup removes every message in a group. Called by the group
// delete cascade before the group record itself goes away.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, apperr.Infra("group message delete failed", err)
	}
	return res.DeletedCount, nil
}
