// internal/app/store/messages/thread.go
package messagestore

import (
	"context"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/app/system/paging"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page is one window of a thread, oldest-first, with the cursor for the
// next (older) window. An empty NextCursor means history is exhausted.
type Page struct {
	Messages   []models.Message `json:"messages"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// DirectThreadPage returns a window of the 1:1 thread between two users.
func (s *Store) DirectThreadPage(ctx context.Context, a, b primitive.ObjectID, limit int, cursor primitive.ObjectID, hasCursor bool) (Page, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": a, "receiver_id": b},
			{"sender_id": b, "receiver_id": a},
		},
	}
	return s.threadPage(ctx, filter, limit, cursor, hasCursor)
}

// GroupThreadPage returns a window of a group thread.
func (s *Store) GroupThreadPage(ctx context.Context, groupID primitive.ObjectID, limit int, cursor primitive.ObjectID, hasCursor bool) (Page, error) {
	return s.threadPage(ctx, bson.M{"group_id": groupID}, limit, cursor, hasCursor)
}

// threadPage is the shared pagination engine. The query runs newest-first
// over _id (monotonic with creation time) so "latest N" is correct on
// threads of any size, then the window is reversed to oldest-first for
// display. Fetching limit+1 rows detects whether older history remains;
// the cursor carries all continuation state, so concurrent inserts never
// shift an already-issued page.
func (s *Store) threadPage(ctx context.Context, filter bson.M, limit int, cursor primitive.ObjectID, hasCursor bool) (Page, error) {
	if limit < 1 {
		limit = paging.DefaultLimit
	}
	if hasCursor {
		filter["_id"] = bson.M{"$lt": cursor}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit + 1))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, apperr.Infra("thread query failed", err)
	}
	defer cur.Close(ctx)

	var rows []models.Message
	if err := cur.All(ctx, &rows); err != nil {
		return Page{}, apperr.Infra("thread decode failed", err)
	}

	rows, next := paging.Window(rows, limit, func(m models.Message) primitive.ObjectID { return m.ID })
	paging.Reverse(rows)
	if rows == nil {
		rows = []models.Message{}
	}
	return Page{Messages: rows, NextCursor: next}, nil
}
