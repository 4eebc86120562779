// internal/app/features/orgunits/list.go
package orgunits

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/system/paging"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

type listResponse struct {
	OrgUnits []models.OrgUnit `json:"org_units"`
	HasNext  bool             `json:"has_next"`
	NextID   int64            `json:"next_id,omitempty"`
}

// ServeList handles
// GET /orgunits?org_unit_type_id=N&validation_status=VALID&after=N&limit=N.
//
// Paging is keyset on the unit id: the response's next_id feeds the next
// request's after. One extra row is fetched to decide has_next without a
// count query.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var typeID int64
	var err error
	if raw := query.Get(r, "org_unit_type_id"); raw != "" {
		typeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || typeID <= 0 {
			http.Error(w, "invalid org_unit_type_id", http.StatusBadRequest)
			return
		}
	}
	afterID, err := paging.ParseAfter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := paging.ParseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status := query.Get(r, "validation_status")

	rows, err := h.OrgUnits.List(ctx, typeID, status, afterID, limit+1)
	if err != nil {
		h.Log.Error("listing org units failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	res := paging.Trim(&rows, limit, func(ou models.OrgUnit) int64 { return ou.ID })
	if rows == nil {
		rows = []models.OrgUnit{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listResponse{
		OrgUnits: rows,
		HasNext:  res.HasNext,
		NextID:   res.NextID,
	})
}
