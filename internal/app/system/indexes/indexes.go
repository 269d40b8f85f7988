// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent:
CreateMany on an index that already exists with the same spec is a no-op.
Errors are aggregated so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureOpportunityMentors(ctx, db); err != nil {
		problems = append(problems, "opportunity_mentors: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			// contact search: role filter + folded-name prefix scan
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("role_name_ci"),
		},
	})
	return err
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// direct thread scans and unread counts
			Keys:    bson.D{{Key: "receiver_id", Value: 1}, {Key: "sender_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("direct_thread"),
		},
		{
			// group thread pagination walks _id descending within a group
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("group_thread"),
		},
		{
			// conversation aggregation matches on either side of a pair
			Keys:    bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}},
			Options: options.Index().SetName("sender_receiver"),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// "my groups" listing
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("member_ids"),
		},
	})
	return err
}

func ensureOpportunityMentors(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("opportunity_mentors").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "opportunity_id", Value: 1}, {Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_opportunity_volunteer"),
		},
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetName("volunteer_id"),
		},
	})
	return err
}
