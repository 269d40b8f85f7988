// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/voluntree/voluntree/internal/app/system/auth"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role, name, Mongo ObjectID, and a found flag.
// If no identity is present in context or the user ID is malformed, it
// returns RoleUnset, "", NilObjectID, false. Callers can trust that ok=true
// means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role models.Role, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.RoleUnset, "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed subject in a signed token - fail closed.
		return models.RoleUnset, "", primitive.NilObjectID, false
	}
	return user.Role, user.Name, userID, true
}

// IsAdmin reports whether the current request's user has the admin role.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsElevated reports whether the current user's role carries unconditional
// group-management rights (admin or organization).
func IsElevated(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role.Elevated()
}
