package conversations_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/voluntree/voluntree/internal/app/features/conversations"
	"github.com/voluntree/voluntree/internal/app/features/messages"
	"github.com/voluntree/voluntree/internal/testutil"
	"go.uber.org/zap"
)

// TestDirectMessagingFlow walks the happy path end to end: an organization
// opens a thread with a volunteer, the volunteer replies, both sides see
// the conversation, and reading the thread clears the unread count.
func TestDirectMessagingFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	logger := zap.NewNop()

	convHandler := conversations.NewHandler(db, logger)
	msgHandler := messages.NewHandler(db, logger)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgUser := f.CreateUser(ctx, "Helping Hands", "org@example.com", "organization")
	volunteer := f.CreateUser(ctx, "Vera Volunteer", "vera@example.com", "volunteer")
	org := testutil.AsUser(orgUser)
	vol := testutil.AsUser(volunteer)

	// The organization opens the thread.
	body := fmt.Sprintf(`{"receiver_id":%q,"content":"Hello"}`, volunteer.ID.Hex())
	rec := testutil.NewRecorder()
	msgHandler.HandleSendDirect(rec.ResponseRecorder, testutil.NewJSONRequest("POST", "/messages", body, org))
	rec.AssertStatus(t, http.StatusCreated)

	// The volunteer may reply because history now exists.
	body = fmt.Sprintf(`{"receiver_id":%q,"content":"Hi"}`, orgUser.ID.Hex())
	rec = testutil.NewRecorder()
	msgHandler.HandleSendDirect(rec.ResponseRecorder, testutil.NewJSONRequest("POST", "/messages", body, vol))
	rec.AssertStatus(t, http.StatusCreated)

	// Both sides see one conversation with the latest message.
	type entry struct {
		CounterpartyID string `json:"counterparty_id"`
		Counterparty   *struct {
			FullName string `json:"full_name"`
		} `json:"counterparty"`
		LastMessage struct {
			Content string `json:"content"`
		} `json:"last_message"`
		UnreadCount int64 `json:"unread_count"`
	}

	listFor := func(u testutil.TestUser) []entry {
		t.Helper()
		rec := testutil.NewRecorder()
		convHandler.ServeConversationList(rec.ResponseRecorder, testutil.NewAuthenticatedRequest("GET", "/conversations", u))
		rec.AssertStatus(t, http.StatusOK)
		var out []entry
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	}

	orgList := listFor(org)
	if len(orgList) != 1 {
		t.Fatalf("org conversations: got %d, want 1", len(orgList))
	}
	if orgList[0].CounterpartyID != volunteer.ID.Hex() {
		t.Error("org counterparty mismatch")
	}
	if orgList[0].Counterparty == nil || orgList[0].Counterparty.FullName != "Vera Volunteer" {
		t.Error("counterparty summary not joined")
	}
	if orgList[0].LastMessage.Content != "Hi" {
		t.Errorf("last message: got %q, want the reply", orgList[0].LastMessage.Content)
	}
	if orgList[0].UnreadCount != 1 {
		t.Errorf("org unread: got %d, want 1", orgList[0].UnreadCount)
	}

	volList := listFor(vol)
	if len(volList) != 1 || volList[0].CounterpartyID != orgUser.ID.Hex() {
		t.Fatal("volunteer must see the organization as counterparty")
	}

	// Explicit mark-read clears the org's unread count.
	req := testutil.NewAuthenticatedRequest("POST", "/conversations/"+volunteer.ID.Hex()+"/read", org)
	req = testutil.WithChiURLParam(req, "userID", volunteer.ID.Hex())
	rec = testutil.NewRecorder()
	convHandler.HandleMarkRead(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"marked_read":1`)

	orgList = listFor(org)
	if orgList[0].UnreadCount != 0 {
		t.Errorf("org unread after mark: got %d, want 0", orgList[0].UnreadCount)
	}
}

func TestSendDirect_VolunteerCannotInitiate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	msgHandler := messages.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()

	volunteer := f.CreateUser(ctx, "Vera Volunteer", "vera@example.com", "volunteer")
	other := f.CreateUser(ctx, "Victor Volunteer", "victor@example.com", "volunteer")

	body := fmt.Sprintf(`{"receiver_id":%q,"content":"hey"}`, other.ID.Hex())
	rec := testutil.NewRecorder()
	msgHandler.HandleSendDirect(rec.ResponseRecorder, testutil.NewJSONRequest("POST", "/messages", body, testutil.AsUser(volunteer)))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestSendDirect_UnknownReceiver(t *testing.T) {
	db := testutil.SetupTestDB(t)
	msgHandler := messages.NewHandler(db, zap.NewNop())

	body := `{"receiver_id":"ffffffffffffffffffffffff","content":"hey"}`
	rec := testutil.NewRecorder()
	msgHandler.HandleSendDirect(rec.ResponseRecorder, testutil.NewJSONRequest("POST", "/messages", body, testutil.OrganizationUser()))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestSendDirect_SelfMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	msgHandler := messages.NewHandler(db, zap.NewNop())

	sender := testutil.OrganizationUser()
	body := fmt.Sprintf(`{"receiver_id":%q,"content":"note to self"}`, sender.ID)
	rec := testutil.NewRecorder()
	msgHandler.HandleSendDirect(rec.ResponseRecorder, testutil.NewJSONRequest("POST", "/messages", body, sender))
	rec.AssertStatus(t, http.StatusBadRequest)
}
