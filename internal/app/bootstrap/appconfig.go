// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level); AppConfig carries
// everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max pooled connections
	MongoMinPoolSize uint64 // Min pooled connections

	// Session token configuration
	TokenSecret string        // Shared secret for signing session tokens
	TokenExpiry time.Duration // Token lifetime (default: 7 days)

	// When true, the shopping-item routes require a Bearer token.
	// Defaults off so existing clients keep working without one.
	RequireAuth bool
}
