// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PlanHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, iaso_base_url, etc.
//   - Environment variables: PLANHUB_MONGO_URI, PLANHUB_IASO_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --iaso_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "planhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Upstream Iaso API
	{Name: "iaso_base_url", Default: "", Desc: "Base URL of the upstream Iaso API (required)"},
	{Name: "iaso_token", Default: "", Desc: "Static bearer token for the upstream API"},
	{Name: "iaso_token_url", Default: "", Desc: "OAuth2 token endpoint for client-credentials auth"},
	{Name: "iaso_client_id", Default: "", Desc: "OAuth2 client id"},
	{Name: "iaso_client_secret", Default: "", Desc: "OAuth2 client secret"},
	{Name: "iaso_timeout", Default: "30s", Desc: "Per-request timeout against the upstream API"},
	{Name: "iaso_retry_max", Default: 3, Desc: "Retry attempts for retriable upstream failures"},

	// Background catalog sync
	{Name: "sync_interval", Default: "5m", Desc: "How often the catalog cache refreshes (e.g., 5m, 1h)"},
	{Name: "sync_timeout", Default: "5m", Desc: "Time limit for one full catalog refresh"},

	// API key bootstrap
	{Name: "bootstrap_api_key_name", Default: "bootstrap", Desc: "Name of the API key created on first startup"},
	{Name: "bootstrap_api_key", Default: "", Desc: "Plaintext of the bootstrap API key (created if absent)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PLANHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PLANHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		IasoBaseURL:      appValues.String("iaso_base_url"),
		IasoToken:        appValues.String("iaso_token"),
		IasoTokenURL:     appValues.String("iaso_token_url"),
		IasoClientID:     appValues.String("iaso_client_id"),
		IasoClientSecret: appValues.String("iaso_client_secret"),
		IasoTimeout:      appValues.Duration("iaso_timeout", 30*time.Second),
		IasoRetryMax:     appValues.Int("iaso_retry_max"),

		SyncInterval: appValues.Duration("sync_interval", 5*time.Minute),
		SyncTimeout:  appValues.Duration("sync_timeout", 5*time.Minute),

		BootstrapAPIKeyName: appValues.String("bootstrap_api_key_name"),
		BootstrapAPIKey:     appValues.String("bootstrap_api_key"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// PlanHub validates the MongoDB URI format and the upstream credentials
// early, before attempting to connect to either.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.IasoBaseURL == "" {
		return fmt.Errorf("iaso_base_url is required")
	}
	hasToken := appCfg.IasoToken != ""
	hasClientCreds := appCfg.IasoTokenURL != "" && appCfg.IasoClientID != "" && appCfg.IasoClientSecret != ""
	if !hasToken && !hasClientCreds {
		return fmt.Errorf("upstream auth requires iaso_token or iaso_token_url + iaso_client_id + iaso_client_secret")
	}

	if appCfg.SyncInterval < time.Minute {
		return fmt.Errorf("sync_interval %s is below the 1m minimum", appCfg.SyncInterval)
	}

	return nil
}
