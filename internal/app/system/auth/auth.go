package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voluntree/voluntree/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Identity & context helpers                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// Identity is what the bearer-token verifier resolves a request to. The
// core trusts it for every authorization decision.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  models.Role
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the identity & "found?" flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	u, ok := r.Context().Value(currentUserKey).(*Identity)
	return u, ok
}

func withUser(r *http.Request, u *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects an identity directly into the request context,
// bypassing token verification. Test use only.
func WithTestUser(r *http.Request, u *Identity) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer-token verifier                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher loads fresh user data for a verified token subject. Returning
// nil means the user no longer exists (or is unusable) and the request is
// treated as unauthenticated.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *Identity
}

// Verifier validates HMAC-signed bearer tokens and resolves them to an
// Identity via the configured UserFetcher.
type Verifier struct {
	secret  []byte
	fetcher UserFetcher
	log     *zap.Logger
}

// NewVerifier builds a Verifier. The signing secret must be non-empty.
func NewVerifier(secret string, logger *zap.Logger) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: empty JWT secret")
	}
	return &Verifier{secret: []byte(secret), log: logger}, nil
}

// SetUserFetcher wires the store-backed fetcher. Must be called before the
// middleware serves traffic; without a fetcher every request is anonymous.
func (v *Verifier) SetUserFetcher(f UserFetcher) { v.fetcher = f }

// IssueToken signs a token for the given user ID. The serving layer issues
// these at login (outside this core); tests use it to mint credentials.
func (v *Verifier) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return tok.SignedString(v.secret)
}

// Subject verifies a raw token string and returns its subject.
func (v *Verifier) Subject(raw string) (string, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// LoadIdentity injects the identity into context when a valid bearer token
// is presented. Invalid or absent tokens leave the request anonymous;
// RequireSignedIn decides whether that is fatal.
func (v *Verifier) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" || v.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		sub, err := v.Subject(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if u := v.fetcher.FetchUser(r.Context(), sub); u != nil {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is an identity in context (set by
// LoadIdentity). API callers get a plain 401 JSON body.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","kind":"unauthorized"}`))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
