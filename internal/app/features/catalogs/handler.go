// internal/app/features/catalogs/handler.go
package catalogs

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/iaso"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
)

// Handler serves the team and profile catalogs from the cache and forwards
// color changes upstream.
type Handler struct {
	Teams    *teamstore.Store
	Profiles *profilestore.Store
	Upstream *iaso.Client
	Log      *zap.Logger
}

// NewHandler constructs a catalogs handler.
func NewHandler(db *mongo.Database, upstream *iaso.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Teams:    teamstore.New(db),
		Profiles: profilestore.New(db),
		Upstream: upstream,
		Log:      logger,
	}
}
