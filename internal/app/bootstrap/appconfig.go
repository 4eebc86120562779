// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: core handles HTTP ports,
// TLS, logging level, and the like, while everything specific to this
// service lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Upstream Iaso API configuration. Either a static token or OAuth2
	// client credentials must be provided.
	IasoBaseURL      string        // e.g. https://iaso.example.org
	IasoToken        string        // static bearer token
	IasoTokenURL     string        // OAuth2 token endpoint for client credentials
	IasoClientID     string        // OAuth2 client id
	IasoClientSecret string        // OAuth2 client secret
	IasoTimeout      time.Duration // per-request timeout against upstream
	IasoRetryMax     int           // retry attempts for 5xx/network failures

	// Background catalog sync
	SyncInterval time.Duration // how often the cache refreshes
	SyncTimeout  time.Duration // ceiling for one full refresh

	// API key bootstrap: when set and no key of that name exists yet, the
	// key is created on startup so a fresh deployment can authenticate.
	BootstrapAPIKeyName string
	BootstrapAPIKey     string // plaintext; only the bcrypt hash is stored
}
