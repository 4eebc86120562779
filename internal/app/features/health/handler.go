package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Runs   *syncrunstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, runs *syncrunstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Runs: runs, Log: logger}
}

type healthResponse struct {
	Status   string      `json:"status"`
	Database string      `json:"database"`
	Sync     *syncStatus `json:"sync,omitempty"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type syncStatus struct {
	LastRunID  string `json:"last_run_id"`
	AgeSeconds int64  `json:"age_seconds"`
	Succeeded  bool   `json:"succeeded"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "sync":{"last_run_id":"…","age_seconds":42,"succeeded":true} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Sync age is informational; a missing run just means no sync yet.
	if run, err := h.Runs.Latest(ctx); err == nil {
		resp.Sync = &syncStatus{
			LastRunID:  run.ID,
			AgeSeconds: int64(time.Since(run.StartedAt).Seconds()),
			Succeeded:  run.Succeeded(),
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
