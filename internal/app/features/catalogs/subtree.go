// internal/app/features/catalogs/subtree.go
package catalogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// ServeTeamSubTree handles GET /teams/{id}/subtree. The nested view comes
// straight from upstream rather than the cache: sub-team membership can
// change between syncs and this endpoint backs assignee pickers.
func (h *Handler) ServeTeamSubTree(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("invalid team id %q", raw), http.StatusBadRequest)
		return
	}

	teams, err := h.Upstream.TeamSubTree(ctx, id)
	if err != nil {
		h.Log.Error("loading team subtree failed", zap.Int64("team_id", id), zap.Error(err))
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
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
