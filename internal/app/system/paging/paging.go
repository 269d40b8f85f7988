// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLimit is the page size used when the client does not supply one.
const DefaultLimit = 20

// MaxLimit caps client-supplied page sizes.
const MaxLimit = 100

// ParseLimit extracts the "limit" query parameter, clamped to [1, MaxLimit].
// Missing or invalid values fall back to DefaultLimit.
func ParseLimit(r *http.Request) int {
	s := query.Get(r, "limit")
	if s == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ParseCursor extracts the optional "cursor" query parameter (a message
// ObjectID from a previous page). A malformed cursor is a validation error,
// not a silent first page.
func ParseCursor(r *http.Request) (primitive.ObjectID, bool, error) {
	s := query.Get(r, "cursor")
	if s == "" {
		return primitive.NilObjectID, false, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false, apperr.Validation("malformed cursor %q", s)
	}
	return oid, true, nil
}

// Window trims a slice fetched descending with limit+1 look-ahead. If the
// extra row is present, the page has more history and the returned cursor
// is the ID of the oldest row kept; the next query filters _id strictly
// below it, so the probe row leads the following page and nothing is
// skipped or repeated. An empty cursor means the final page.
func Window[T any](rows []T, limit int, idFn func(T) primitive.ObjectID) ([]T, string) {
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	return rows, idFn(rows[len(rows)-1]).Hex()
}

// Reverse flips a slice in place. Thread pages are queried newest-first for
// correct "latest N" semantics and reversed to oldest-first for display.
func Reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
