// internal/app/features/plannings/maplocations.go
package plannings

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

// ServeMapLocations handles
// GET /plannings/{planningID}/maplocations?org_unit_type_id=N[&team=N|&user=N][&parent=N].
//
// It classifies every cached org unit of the target type into shape/marker
// buckets, split by whether the unit is assigned to the selected assignee in
// this planning. When a parent is given, the parent and its ancestors are
// excluded so a clicked region is never classified as one of its own
// children.
func (h *Handler) ServeMapLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	planning, err := planningID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	typeRaw := query.Get(r, "org_unit_type_id")
	typeID, err := strconv.ParseInt(typeRaw, 10, 64)
	if err != nil || typeID <= 0 {
		http.Error(w, "org_unit_type_id is required", http.StatusBadRequest)
		return
	}

	current, err := currentAssignee(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var skipIDs map[int64]struct{}
	if parentRaw := query.Get(r, "parent"); parentRaw != "" {
		parentID, err := strconv.ParseInt(parentRaw, 10, 64)
		if err != nil {
			http.Error(w, "invalid parent id", http.StatusBadRequest)
			return
		}
		parent, err := h.OrgUnits.Hydrate(ctx, parentID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "unknown parent org unit", http.StatusNotFound)
			return
		}
		if err != nil {
			h.Log.Error("hydrating parent failed", zap.Int64("parent_id", parentID), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		skipIDs = map[int64]struct{}{parent.ID: {}}
		for _, id := range assign.AncestorIDs(&parent) {
			skipIDs[id] = struct{}{}
		}
	}

	orgUnits, err := h.OrgUnits.ByType(ctx, typeID)
	if err != nil {
		h.Log.Error("loading org units failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	scoped, err := h.Assignments.ByPlanning(ctx, planning)
	if err != nil {
		h.Log.Error("loading planning assignments failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	all, err := h.Assignments.All(ctx)
	if err != nil {
		h.Log.Error("loading assignments failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
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

	locations := assign.Classify(orgUnits, assign.ClassifyParams{
		TargetTypeID:   typeID,
		SkipIDs:        skipIDs,
		Assignments:    scoped,
		AllAssignments: all,
		Teams:          teams,
		Profiles:       profiles,
		Current:        current,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(mapLocationsResponse{
		PlanningID:    planning,
		OrgUnitTypeID: typeID,
		Locations:     locations,
	})
}
