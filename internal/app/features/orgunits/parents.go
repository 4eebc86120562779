// internal/app/features/orgunits/parents.go
package orgunits

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

type parentsResponse struct {
	OrgUnitID int64    `json:"org_unit_id"`
	Name      string   `json:"name"`
	Path      []string `json:"path"`

	NearestAncestor *models.OrgUnit `json:"nearest_ancestor,omitempty"`
}

// ServeParents handles GET /orgunits/{id}/parents[?ancestor_type=N].
//
// The path is the unit's ancestor names in root-to-leaf order, without the
// unit itself, ready for breadcrumb display. With ancestor_type the response
// also carries the closest ancestor of that type, or omits the field when
// the chain has none.
func (h *Handler) ServeParents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := orgUnitID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ou, err := h.OrgUnits.Hydrate(ctx, id)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "unknown org unit", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("hydrating org unit failed", zap.Int64("org_unit_id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := parentsResponse{
		OrgUnitID: ou.ID,
		Name:      ou.Name,
		Path:      assign.AncestorPath(&ou),
	}

	if raw := query.Get(r, "ancestor_type"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || typeID <= 0 {
			http.Error(w, "invalid ancestor_type", http.StatusBadRequest)
			return
		}
		resp.NearestAncestor = assign.NearestAncestorOfType(&ou, typeID)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// orgUnitID extracts and validates the {id} URL parameter.
func orgUnitID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid org unit id %q", raw)
	}
	return id, nil
}
