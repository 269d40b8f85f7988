package messagestore_test

import (
	"testing"
	"time"

	"github.com/voluntree/voluntree/internal/app/store/messages"
	"github.com/voluntree/voluntree/internal/app/system/paging"
	"github.com/voluntree/voluntree/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// walkThread pages through a direct thread until the cursor runs out and
// returns every message seen, in the order pages returned them.
func walkThread(t *testing.T, store *messagestore.Store, a, b primitive.ObjectID, limit int) []messagestore.Page {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	var pages []messagestore.Page
	var cursor primitive.ObjectID
	hasCursor := false
	for {
		page, err := store.DirectThreadPage(ctx, a, b, limit, cursor, hasCursor)
		if err != nil {
			t.Fatalf("thread page: %v", err)
		}
		pages = append(pages, page)
		if page.NextCursor == "" {
			return pages
		}
		cursor, err = primitive.ObjectIDFromHex(page.NextCursor)
		if err != nil {
			t.Fatalf("returned cursor not a valid object id: %v", err)
		}
		hasCursor = true
	}
}

func TestDirectThreadPage_WalksWholeThread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	const total = 45
	for i := 0; i < total; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		f.CreateDirectMessage(ctx, from, to, "m", base.Add(time.Duration(i)*time.Second))
	}

	pages := walkThread(t, store, a, b, 20)
	if len(pages) != 3 {
		t.Fatalf("pages: got %d, want 3", len(pages))
	}
	if n := len(pages[0].Messages); n != 20 {
		t.Errorf("first page size: got %d, want 20", n)
	}
	if n := len(pages[2].Messages); n != 5 {
		t.Errorf("last page size: got %d, want 5", n)
	}

	// Every message appears exactly once across the walk.
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range pages {
		for _, m := range p.Messages {
			if seen[m.ID] {
				t.Fatalf("message %s returned twice", m.ID.Hex())
			}
			seen[m.ID] = true
		}
	}
	if len(seen) != total {
		t.Errorf("messages seen: got %d, want %d", len(seen), total)
	}

	// Within each page, messages run oldest to newest, and each page is
	// strictly older than the one fetched before it.
	for pi, p := range pages {
		for i := 1; i < len(p.Messages); i++ {
			if p.Messages[i].ID.Hex() <= p.Messages[i-1].ID.Hex() {
				t.Fatalf("page %d not in ascending order", pi)
			}
		}
		if pi > 0 {
			prevOldest := pages[pi-1].Messages[0]
			newest := p.Messages[len(p.Messages)-1]
			if newest.ID.Hex() >= prevOldest.ID.Hex() {
				t.Fatalf("page %d overlaps page %d", pi, pi-1)
			}
		}
	}
}

func TestDirectThreadPage_StableUnderInsertion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	for i := 0; i < 30; i++ {
		f.CreateDirectMessage(ctx, a, b, "old", base.Add(time.Duration(i)*time.Second))
	}

	first, err := store.DirectThreadPage(ctx, a, b, 20, primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if first.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}

	// A new message arriving between page fetches must not disturb the
	// rest of the walk.
	f.CreateDirectMessage(ctx, b, a, "new arrival", time.Now().UTC())

	cursor, err := primitive.ObjectIDFromHex(first.NextCursor)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	second, err := store.DirectThreadPage(ctx, a, b, 20, cursor, true)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Messages) != 10 {
		t.Errorf("second page size: got %d, want 10", len(second.Messages))
	}
	for _, m := range second.Messages {
		if m.Content == "new arrival" {
			t.Error("message inserted after the walk started leaked into an older page")
		}
	}
}

func TestDirectThreadPage_ExcludesOtherPairs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	now := time.Now().UTC()
	f.CreateDirectMessage(ctx, a, b, "a to b", now.Add(-3*time.Minute))
	f.CreateDirectMessage(ctx, b, a, "b to a", now.Add(-2*time.Minute))
	f.CreateDirectMessage(ctx, a, c, "a to c", now.Add(-time.Minute))
	f.CreateGroupMessage(ctx, a, primitive.NewObjectID(), "group noise", now)

	page, err := store.DirectThreadPage(ctx, a, b, 20, primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("thread page: %v", err)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(page.Messages))
	}
	if page.Messages[0].Content != "a to b" || page.Messages[1].Content != "b to a" {
		t.Error("thread must contain both directions of the pair, oldest first")
	}
}

func TestGroupThreadPage_FiltersByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	g1 := primitive.NewObjectID()
	g2 := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	now := time.Now().UTC()
	f.CreateGroupMessage(ctx, sender, g1, "one", now.Add(-2*time.Minute))
	f.CreateGroupMessage(ctx, sender, g1, "two", now.Add(-time.Minute))
	f.CreateGroupMessage(ctx, sender, g2, "other group", now)

	page, err := store.GroupThreadPage(ctx, g1, 20, primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("group page: %v", err)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(page.Messages))
	}
	if page.Messages[0].Content != "one" || page.Messages[1].Content != "two" {
		t.Error("group thread out of order")
	}
}

func TestThreadPage_EmptyThread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	page, err := store.DirectThreadPage(ctx, primitive.NewObjectID(), primitive.NewObjectID(), 20, primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("thread page: %v", err)
	}
	if page.Messages == nil {
		t.Error("empty thread must serialize as [], not null")
	}
	if len(page.Messages) != 0 || page.NextCursor != "" {
		t.Error("empty thread must have no rows and no cursor")
	}
}

func TestThreadPage_ZeroLimitFallsBackToDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	store := messagestore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < paging.DefaultLimit+5; i++ {
		f.CreateDirectMessage(ctx, a, b, "m", base.Add(time.Duration(i)*time.Second))
	}

	page, err := store.DirectThreadPage(ctx, a, b, 0, primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("thread page: %v", err)
	}
	if len(page.Messages) != paging.DefaultLimit {
		t.Errorf("messages: got %d, want %d", len(page.Messages), paging.DefaultLimit)
	}
	if page.NextCursor == "" {
		t.Error("expected a next cursor when history remains")
	}
}
