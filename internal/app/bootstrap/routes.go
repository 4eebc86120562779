// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	catalogsfeature "github.com/vectorhealth/planhub/internal/app/features/catalogs"
	healthfeature "github.com/vectorhealth/planhub/internal/app/features/health"
	orgunitsfeature "github.com/vectorhealth/planhub/internal/app/features/orgunits"
	planningsfeature "github.com/vectorhealth/planhub/internal/app/features/plannings"
	syncfeature "github.com/vectorhealth/planhub/internal/app/features/sync"
	apikeystore "github.com/vectorhealth/planhub/internal/app/store/apikeys"
	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	"github.com/vectorhealth/planhub/internal/app/system/apiauth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Everything except the health endpoint
// sits behind API-key auth.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, syncrunstore.New(db), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authmw := apiauth.New(apikeystore.New(db), logger)

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.Require)

		planningsHandler := planningsfeature.NewHandler(db, deps.Upstream, logger)
		pr.Mount("/plannings", planningsfeature.Routes(planningsHandler))

		orgUnitsHandler := orgunitsfeature.NewHandler(db, logger)
		pr.Mount("/orgunits", orgunitsfeature.Routes(orgUnitsHandler))

		catalogsHandler := catalogsfeature.NewHandler(db, deps.Upstream, logger)
		pr.Mount("/", catalogsfeature.Routes(catalogsHandler))

		syncHandler := syncfeature.NewHandler(deps.Syncer, syncrunstore.New(db), logger)
		pr.Mount("/sync", syncfeature.Routes(syncHandler))
	})

	return r, nil
}
