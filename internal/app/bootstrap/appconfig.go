// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging level, CORS, body limits). AppConfig is everything specific
// to Voluntree: the Mongo connection, the token secret, and tuning for
// the connection retry loop.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Connection retry tuning. The server keeps retrying the initial
	// connection instead of crash-looping when Mongo comes up slowly.
	DBConnectMaxAttempts int
	DBConnectBackoff     time.Duration

	// Bearer-token auth
	JWTSecret string        // HMAC signing secret for access tokens
	TokenTTL  time.Duration // Access token lifetime
}
