// internal/app/features/plannings/handler.go
package plannings

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/iaso"
	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	orgunitstore "github.com/vectorhealth/planhub/internal/app/store/orgunits"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	saveauditstore "github.com/vectorhealth/planhub/internal/app/store/saveaudit"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
	"github.com/vectorhealth/planhub/internal/app/system/locks"
)

// Handler is the feature-level entry point for planning-scoped operations:
// map classification reads and assignment saves.
type Handler struct {
	Assignments *assignmentstore.Store
	OrgUnits    *orgunitstore.Store
	Teams       *teamstore.Store
	Profiles    *profilestore.Store
	Audit       *saveauditstore.Store

	Upstream *iaso.Client
	Saves    *locks.Keyed
	Log      *zap.Logger
}

// NewHandler constructs a plannings handler bound to the cache stores and
// the upstream client.
func NewHandler(db *mongo.Database, upstream *iaso.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		OrgUnits:    orgunitstore.New(db),
		Teams:       teamstore.New(db),
		Profiles:    profilestore.New(db),
		Audit:       saveauditstore.New(db),
		Upstream:    upstream,
		Saves:       locks.New(),
		Log:         logger,
	}
}
