// internal/app/features/catalogs/list.go
package catalogs

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// ServeTeams handles GET /teams. The catalog comes back in stable id order,
// every row carrying a display color.
func (h *Handler) ServeTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	teams, err := h.Teams.All(ctx)
	if err != nil {
		h.Log.Error("loading teams failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Teams []models.Team `json:"teams"`
	}{Teams: teams})
}

// ServeProfiles handles GET /profiles.
func (h *Handler) ServeProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profiles, err := h.Profiles.All(ctx)
	if err != nil {
		h.Log.Error("loading profiles failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Profiles []models.Profile `json:"profiles"`
	}{Profiles: profiles})
}
