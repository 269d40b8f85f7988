package models_test

import (
	"testing"
	"time"

	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTarget_ExactlyOneDestination(t *testing.T) {
	receiver := primitive.NewObjectID()
	group := primitive.NewObjectID()

	direct := models.DirectTarget(receiver)
	if err := direct.Validate(); err != nil {
		t.Fatalf("direct target: %v", err)
	}
	if got, ok := direct.Receiver(); !ok || got != receiver {
		t.Error("direct target must expose its receiver")
	}
	if _, ok := direct.Group(); ok {
		t.Error("direct target must have no group")
	}

	grp := models.GroupTarget(group)
	if err := grp.Validate(); err != nil {
		t.Fatalf("group target: %v", err)
	}
	if _, ok := grp.Receiver(); ok {
		t.Error("group target must have no receiver")
	}
	if got, ok := grp.Group(); !ok || got != group {
		t.Error("group target must expose its group")
	}

	var zero models.Target
	if err := zero.Validate(); err == nil {
		t.Error("zero target must be invalid")
	}
}

func TestMessage_ReadByUser(t *testing.T) {
	reader := primitive.NewObjectID()
	msg := models.Message{
		ReadBy: []models.ReadReceipt{{UserID: reader, At: time.Now().UTC()}},
	}
	if !msg.ReadByUser(reader) {
		t.Error("receipt holder must count as having read")
	}
	if msg.ReadByUser(primitive.NewObjectID()) {
		t.Error("stranger must not count as having read")
	}
}

func TestRoles(t *testing.T) {
	if _, err := models.ParseRole("volunteer"); err != nil {
		t.Errorf("volunteer: %v", err)
	}
	if _, err := models.ParseRole("superuser"); err == nil {
		t.Error("unknown role must be rejected")
	}
	if models.RoleVolunteer.CanInitiateDirect() {
		t.Error("volunteers must not initiate direct threads")
	}
	for _, r := range []models.Role{models.RoleOrganization, models.RoleAdmin, models.RoleMentor} {
		if !r.CanInitiateDirect() {
			t.Errorf("%s must be able to initiate direct threads", r)
		}
	}
	if !models.RoleAdmin.Elevated() || !models.RoleOrganization.Elevated() {
		t.Error("admin and organization are elevated")
	}
	if models.RoleMentor.Elevated() || models.RoleVolunteer.Elevated() {
		t.Error("mentor and volunteer are not elevated")
	}
}
