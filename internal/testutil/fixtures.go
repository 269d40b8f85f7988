package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, role models.Role) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Provider:   "local",
		Role:       role,
		Verified:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup inserts a group with the given members and admins. The
// creator is expected to already be in both lists when the test wants the
// usual shape; this helper writes exactly what it is given.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID, memberIDs, adminIDs []primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		MemberIDs: memberIDs,
		AdminIDs:  adminIDs,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateMentorAssignment inserts an opportunity-mentor record.
func (f *Fixtures) CreateMentorAssignment(ctx context.Context, opportunityID, volunteerID, organizationID primitive.ObjectID) models.OpportunityMentor {
	f.t.Helper()

	m := models.OpportunityMentor{
		ID:             primitive.NewObjectID(),
		OpportunityID:  opportunityID,
		VolunteerID:    volunteerID,
		OrganizationID: organizationID,
		AssignedBy:     organizationID,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := f.db.Collection("opportunity_mentors").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test mentor assignment: %v", err)
	}
	return m
}

// CreateDirectMessage inserts an unread direct message from sender to
// receiver at the given time.
func (f *Fixtures) CreateDirectMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, content string, at time.Time) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		ReceiverID: &receiverID,
		Content:    content,
		CreatedAt:  at,
	}

	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}

// CreateGroupMessage inserts a group message from sender at the given time.
func (f *Fixtures) CreateGroupMessage(ctx context.Context, senderID, groupID primitive.ObjectID, content string, at time.Time) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		SenderID:  senderID,
		GroupID:   &groupID,
		Content:   content,
		CreatedAt: at,
	}

	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test group message: %v", err)
	}
	return msg
}
