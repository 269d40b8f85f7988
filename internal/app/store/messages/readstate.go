// internal/app/store/messages/readstate.go
package messagestore

import (
	"context"
	"time"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarkDirectRead flips every unread message from the counterparty to the
// reader and appends a read receipt. One bulk update scoped by
// (sender, receiver, unread); a message arriving mid-update simply waits
// for the next poll. Returns the number of messages marked.
func (s *Store) MarkDirectRead(ctx context.Context, readerID, counterpartyID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"sender_id":   counterpartyID,
			"receiver_id": readerID,
			"read":        false,
		},
		bson.M{
			"$set":  bson.M{"read": true},
			"$push": bson.M{"read_by": models.ReadReceipt{UserID: readerID, At: time.Now().UTC()}},
		},
	)
	if err != nil {
		return 0, apperr.Infra("direct read update failed", err)
	}
	return res.ModifiedCount, nil
}

// MarkGroupRead appends the reader's receipt to every group message they
// have not yet seen. There is no single read boolean for groups; read
// state is per member. The reader's own messages are skipped — authors are
// implicitly caught up on their own sends.
func (s *Store) MarkGroupRead(ctx context.Context, groupID, readerID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"group_id":        groupID,
			"sender_id":       bson.M{"$ne": readerID},
			"read_by.user_id": bson.M{"$ne": readerID},
		},
		bson.M{
			"$push": bson.M{"read_by": models.ReadReceipt{UserID: readerID, At: time.Now().UTC()}},
		},
	)
	if err != nil {
		return 0, apperr.Infra("group read update failed", err)
	}
	return res.ModifiedCount, nil
}

// DirectUnreadCount counts unread messages addressed to the user from one
// counterparty.
func (s *Store) DirectUnreadCount(ctx context.Context, userID, counterpartyID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"sender_id":   counterpartyID,
		"receiver_id": userID,
		"read":        false,
	})
	if err != nil {
		return 0, apperr.Infra("unread count failed", err)
	}
	return n, nil
}

// GroupUnreadCount counts group messages the user has not seen, excluding
// their own.
func (s *Store) GroupUnreadCount(ctx context.Context, groupID, userID primitive.ObjectID) (int64, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"group_id":        groupID,
		"sender_id":       bson.M{"$ne": userID},
		"read_by.user_id": bson.M{"$ne": userID},
	})
	if err != nil {
		return 0, apperr.Infra("group unread count failed", err)
	}
	return n, nil
}

// LastGroupMessage returns the most recent message in a group, or
// (zero, false) for an empty thread.
func (s *Store) LastGroupMessage(ctx context.Context, groupID primitive.ObjectID) (models.Message, bool, error) {
	page, err := s.GroupThreadPage(ctx, groupID, 1, primitive.NilObjectID, false)
	if err != nil {
		return models.Message{}, false, err
	}
	if len(page.Messages) == 0 {
		return models.Message{}, false, nil
	}
	return page.Messages[0], true, nil
}
