package userstore_test

import (
	"testing"

	"github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/domain/models"
	"github.com/voluntree/voluntree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchAvailable_RoleVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	volunteer := f.CreateUser(ctx, "Vera Volunteer", "vera@example.com", models.RoleVolunteer)
	f.CreateUser(ctx, "Other Volunteer", "other@example.com", models.RoleVolunteer)
	org := f.CreateUser(ctx, "Helping Hands", "org@example.com", models.RoleOrganization)
	f.CreateUser(ctx, "Marty Mentor", "mentor@example.com", models.RoleMentor)
	f.CreateUser(ctx, "Ada Admin", "admin@example.com", models.RoleAdmin)

	// A volunteer sees staff roles, never fellow volunteers.
	got, err := store.SearchAvailable(ctx, volunteer.ID, volunteer.Role, "", 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("volunteer results: got %d, want 3", len(got))
	}
	for _, u := range got {
		if u.Role == models.RoleVolunteer {
			t.Errorf("volunteer %q visible to another volunteer", u.FullName)
		}
	}

	// Staff see volunteers, and never themselves.
	got, err = store.SearchAvailable(ctx, org.ID, org.Role, "", 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("org results: got %d, want 2", len(got))
	}
	for _, u := range got {
		if u.Role != models.RoleVolunteer {
			t.Errorf("non-volunteer %q visible to an organization", u.FullName)
		}
		if u.ID == org.ID {
			t.Error("viewer included in their own contact list")
		}
	}
}

func TestSearchAvailable_NamePrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	viewer := f.CreateUser(ctx, "Helping Hands", "org@example.com", models.RoleOrganization)
	f.CreateUser(ctx, "Ámelie Accents", "amelie@example.com", models.RoleVolunteer)
	f.CreateUser(ctx, "Bob Builder", "bob@example.com", models.RoleVolunteer)

	// Prefix match is case- and diacritic-insensitive.
	got, err := store.SearchAvailable(ctx, viewer.ID, viewer.Role, "ame", 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ámelie Accents" {
		t.Errorf("prefix search: got %v, want only the accented match", got)
	}

	// Regex metacharacters in input are treated literally.
	got, err = store.SearchAvailable(ctx, viewer.ID, viewer.Role, ".*", 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("metacharacter search matched %d users, want 0", len(got))
	}
}

func TestSearchAvailable_UnsetRoleSeesNobody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateUser(ctx, "Some Volunteer", "v@example.com", models.RoleVolunteer)

	got, err := store.SearchAvailable(ctx, primitive.NewObjectID(), models.RoleUnset, "", 1, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unset role results: got %d, want 0", len(got))
	}
}
