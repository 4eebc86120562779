// internal/app/features/sync/handler.go
package sync

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	"github.com/vectorhealth/planhub/internal/app/system/syncer"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
)

// Handler exposes the background catalog sync: trigger a run on demand and
// inspect the most recent one.
type Handler struct {
	Syncer *syncer.Syncer
	Runs   *syncrunstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a sync handler.
func NewHandler(s *syncer.Syncer, runs *syncrunstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Syncer: s, Runs: runs, Log: logger}
}

// ServeTrigger handles POST /sync. The run executes inline; large upstream
// catalogs are why this uses the sync timeout rather than a request one.
func (h *Handler) ServeTrigger(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Sync())
	defer cancel()

	run, err := h.Syncer.RunOnce(ctx)
	if err != nil {
		h.Log.Error("manual sync failed", zap.String("run_id", run.ID), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(run)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}

// ServeLast handles GET /sync/last.
func (h *Handler) ServeLast(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	run, err := h.Runs.Latest(ctx)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "no sync has run yet", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("loading latest sync run failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}
