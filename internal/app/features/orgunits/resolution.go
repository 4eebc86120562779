// internal/app/features/orgunits/resolution.go
package orgunits

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
)

type resolutionResponse struct {
	OrgUnitID  int64             `json:"org_unit_id"`
	PlanningID int64             `json:"planning_id"`
	Resolution assign.Resolution `json:"resolution"`
}

// ServeResolution handles GET /orgunits/{id}/resolution?planning=N.
//
// It resolves who holds the unit in the given planning without an active
// team-type context: both the team side and the user side of the row are
// eligible, the way a hover tooltip shows ownership regardless of which
// mode the map is in.
func (h *Handler) ServeResolution(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := orgUnitID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	planningRaw := query.Get(r, "planning")
	planning, err := strconv.ParseInt(planningRaw, 10, 64)
	if err != nil || planning <= 0 {
		http.Error(w, "planning is required", http.StatusBadRequest)
		return
	}

	if _, err := h.OrgUnits.GetByID(ctx, id); err == mongo.ErrNoDocuments {
		http.Error(w, "unknown org unit", http.StatusNotFound)
		return
	} else if err != nil {
		h.Log.Error("loading org unit failed", zap.Int64("org_unit_id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := resolutionResponse{OrgUnitID: id, PlanningID: planning}

	a, err := h.Assignments.GetByOrgUnit(ctx, planning, id)
	switch {
	case err == mongo.ErrNoDocuments:
		// no row: Resolution stays zero, distinct from a cleared row
	case err != nil:
		h.Log.Error("loading assignment failed", zap.Int64("org_unit_id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	default:
		teams, err := h.Teams.All(ctx)
		if err != nil {
			h.Log.Error("loading teams failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		profiles, err := h.Profiles.All(ctx)
		if err != nil {
			h.Log.Error("loading profiles failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		resp.Resolution = assign.Resolve(&a, teams, profiles, "")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
