// internal/app/features/orgunits/handler.go
package orgunits

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	orgunitstore "github.com/vectorhealth/planhub/internal/app/store/orgunits"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
)

// Handler serves read-only org-unit catalog endpoints from the local cache.
type Handler struct {
	OrgUnits    *orgunitstore.Store
	Assignments *assignmentstore.Store
	Teams       *teamstore.Store
	Profiles    *profilestore.Store
	Log         *zap.Logger
}

// NewHandler constructs an orgunits handler bound to the cache stores.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		OrgUnits:    orgunitstore.New(db),
		Assignments: assignmentstore.New(db),
		Teams:       teamstore.New(db),
		Profiles:    profilestore.New(db),
		Log:         logger,
	}
}
