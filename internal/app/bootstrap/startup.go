// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	apikeystore "github.com/vectorhealth/planhub/internal/app/store/apikeys"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. PlanHub
// applies timeout overrides, seeds the bootstrap API key, and starts the
// background catalog sync.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Sync: appCfg.SyncTimeout})

	if appCfg.BootstrapAPIKey != "" {
		keys := apikeystore.New(deps.MongoDatabase)
		n, err := keys.CountByName(ctx, appCfg.BootstrapAPIKeyName)
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err := keys.Create(ctx, appCfg.BootstrapAPIKeyName, appCfg.BootstrapAPIKey); err != nil {
				return err
			}
			logger.Info("created bootstrap API key", zap.String("name", appCfg.BootstrapAPIKeyName))
		}
	}

	deps.Syncer.Start()
	return nil
}
