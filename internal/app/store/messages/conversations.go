// internal/app/store/messages/conversations.go
package messagestore

import (
	"context"
	"sort"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is one entry in a user's 1:1 conversation list.
type Conversation struct {
	CounterpartyID primitive.ObjectID `bson:"_id" json:"counterparty_id"`
	LastMessage    models.Message     `bson:"last_message" json:"last_message"`
	UnreadCount    int64              `bson:"unread_count" json:"unread_count"`
}

// Conversations derives the user's distinct 1:1 counterparties from the
// flat message collection. For each pair it keeps the newest message and
// counts the messages still unread on the user's side.
//
// The pre-group sort orders by created_at descending with _id descending
// as the tie-break, so "most recent" is a deterministic total order even
// when timestamps collide. The aggregation may emit groups in any order;
// the final sort by last-message recency is applied here, in Go, as the
// contract requires.
func (s *Store) Conversations(ctx context.Context, userID primitive.ObjectID) ([]Conversation, error) {
	pipeline := mongoPipeline(userID)
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Infra("conversation aggregation failed", err)
	}
	defer cur.Close(ctx)

	out := []Conversation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Infra("conversation decode failed", err)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessage, out[j].LastMessage
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() > b.ID.Hex()
	})
	return out, nil
}

func mongoPipeline(userID primitive.ObjectID) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"receiver_id": bson.M{"$exists": true},
			"$or": []bson.M{
				{"sender_id": userID},
				{"receiver_id": userID},
			},
		}},
		{"$sort": bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}},
		{"$group": bson.M{
			"_id": bson.M{"$cond": []any{
				bson.M{"$eq": []any{"$sender_id", userID}},
				"$receiver_id",
				"$sender_id",
			}},
			"last_message": bson.M{"$first": "$$ROOT"},
			"unread_count": bson.M{"$sum": bson.M{"$cond": []any{
				bson.M{"$and": []any{
					bson.M{"$eq": []any{"$receiver_id", userID}},
					bson.M{"$eq": []any{"$read", false}},
				}},
				1,
				0,
			}}},
		}},
	}
}
