// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	contactsfeature "github.com/voluntree/voluntree/internal/app/features/contacts"
	conversationsfeature "github.com/voluntree/voluntree/internal/app/features/conversations"
	groupsfeature "github.com/voluntree/voluntree/internal/app/features/groups"
	healthfeature "github.com/voluntree/voluntree/internal/app/features/health"
	messagesfeature "github.com/voluntree/voluntree/internal/app/features/messages"
	notificationsfeature "github.com/voluntree/voluntree/internal/app/features/notifications"
	userstore "github.com/voluntree/voluntree/internal/app/store/users"
	"github.com/voluntree/voluntree/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Voluntree is a JSON API: the token
// verifier middleware resolves the bearer token to a fresh user identity on
// every request, then the feature routers enforce sign-in where they need
// it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier, err := auth.NewVerifier(appCfg.JWTSecret, logger)
	if err != nil {
		logger.Error("token verifier init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and removed
	// accounts take effect immediately.
	verifier.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	r := chi.NewRouter()

	// Global auth middleware: loads the Identity into context when a valid
	// bearer token is present. Handlers read it via auth.CurrentUser(r).
	r.Use(verifier.LoadIdentity)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Direct-message conversation list and read state
	conversationsHandler := conversationsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/conversations", conversationsfeature.Routes(conversationsHandler))

	// Direct-message threads and sending
	messagesHandler := messagesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler))

	// Group chat: lifecycle, membership, threads
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	// Contact discovery for starting conversations
	contactsHandler := contactsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", contactsfeature.Routes(contactsHandler))

	// Push-token registration
	notificationsHandler := notificationsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
