// internal/app/features/plannings/audit.go
package plannings

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/system/paging"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// ServeAudit handles GET /plannings/{planningID}/audit[?limit=N].
// Records come back newest first; bulk saves share a request_id.
func (h *Handler) ServeAudit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	planning, err := planningID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, err := paging.ParseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := h.Audit.ByPlanning(ctx, planning, limit)
	if err != nil {
		h.Log.Error("loading save audit failed", zap.Int64("planning_id", planning), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []models.SaveAudit{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Records []models.SaveAudit `json:"records"`
	}{Records: recs})
}
