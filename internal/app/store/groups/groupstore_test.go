package groupstore_test

import (
	"errors"
	"testing"

	"github.com/voluntree/voluntree/internal/app/store/groups"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"github.com/voluntree/voluntree/internal/domain/models"
	"github.com/voluntree/voluntree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_CreatorJoinsMembersAndAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	g, err := store.Create(ctx, models.Group{
		Name:      "Beach Cleanup",
		MemberIDs: []primitive.ObjectID{invitee, invitee}, // duplicate on purpose
		CreatorID: creator,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !g.HasMember(creator) {
		t.Error("creator must be a member")
	}
	if !g.HasAdmin(creator) {
		t.Error("creator must be an admin")
	}
	if len(g.MemberIDs) != 2 {
		t.Errorf("members: got %d, want 2 (creator + deduplicated invitee)", len(g.MemberIDs))
	}
}

func TestCreate_AdminsMustBeMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	g, err := store.Create(ctx, models.Group{
		Name:      "Mentor Circle",
		MemberIDs: []primitive.ObjectID{member},
		AdminIDs:  []primitive.ObjectID{member, outsider},
		CreatorID: creator,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !g.HasAdmin(member) {
		t.Error("member nominated as admin must be promoted")
	}
	if g.HasAdmin(outsider) {
		t.Error("a non-member must not become admin")
	}
}

func TestRemoveMember_LastAdminGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()

	g, err := store.Create(ctx, models.Group{
		Name:      "Solo Admin",
		MemberIDs: []primitive.ObjectID{member},
		CreatorID: creator,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The creator is the only admin: removal must be refused and the
	// group left untouched.
	err = store.RemoveMember(ctx, g.ID, creator)
	if !errors.Is(err, groupstore.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasMember(creator) || !got.HasAdmin(creator) {
		t.Error("failed removal must leave the group unchanged")
	}

	// A plain member can still be removed.
	if err := store.RemoveMember(ctx, g.ID, member); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	got, err = store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HasMember(member) {
		t.Error("member not removed")
	}
}

func TestRemoveMember_AdminWithPeers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	coAdmin := primitive.NewObjectID()

	g, err := store.Create(ctx, models.Group{
		Name:      "Two Admins",
		MemberIDs: []primitive.ObjectID{coAdmin},
		AdminIDs:  []primitive.ObjectID{coAdmin},
		CreatorID: creator,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.RemoveMember(ctx, g.ID, coAdmin); err != nil {
		t.Fatalf("remove co-admin: %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HasAdmin(coAdmin) || got.HasMember(coAdmin) {
		t.Error("co-admin must be removed from both sets")
	}
	if !got.HasAdmin(creator) {
		t.Error("remaining admin must stay")
	}
}

func TestRemoveMember_MissingGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.RemoveMember(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind: got %v, want not-found", apperr.KindOf(err))
	}
}

func TestAddMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := primitive.NewObjectID()
	g, err := store.Create(ctx, models.Group{Name: "Growing", CreatorID: creator})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newcomer := primitive.NewObjectID()
	if err := store.AddMembers(ctx, g.ID, []primitive.ObjectID{newcomer, newcomer, creator}); err != nil {
		t.Fatalf("add members: %v", err)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasMember(newcomer) {
		t.Error("newcomer not added")
	}
	if len(got.MemberIDs) != 2 {
		t.Errorf("members: got %d, want 2 (re-adding existing members is a no-op)", len(got.MemberIDs))
	}
}

func TestListByMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Group{Name: "Mine", CreatorID: member}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Theirs", CreatorID: other}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := store.ListByMember(ctx, member)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Mine" {
		t.Errorf("list: got %d groups, want only the membership", len(list))
	}
}

func TestUpdateInfo_PartialUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{
		Name:        "Original",
		Description: "keep me",
		CreatorID:   primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Renamed"
	if err := store.UpdateInfo(ctx, g.ID, &name, nil); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("name: got %q, want %q", got.Name, "Renamed")
	}
	if got.Description != "keep me" {
		t.Errorf("description must be untouched, got %q", got.Description)
	}
}
