// internal/app/features/catalogs/color.go
package catalogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type colorRequest struct {
	Color string `json:"color"`
}

type colorResponse struct {
	ID    int64  `json:"id"`
	Color string `json:"color"`
}

// ServeTeamColor handles PATCH /teams/{id}/color. The color is persisted
// upstream first, then mirrored into the cache so the next classification
// pass picks it up without waiting for a sync.
func (h *Handler) ServeTeamColor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, color, err := h.colorArgs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Teams.GetByID(ctx, id); err == mongo.ErrNoDocuments {
		http.Error(w, "unknown team", http.StatusNotFound)
		return
	} else if err != nil {
		h.Log.Error("loading team failed", zap.Int64("team_id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.Upstream.SaveTeamColor(ctx, id, color); err != nil {
		h.Log.Error("saving team color upstream failed", zap.Int64("team_id", id), zap.Error(err))
		http.Error(w, "upstream save failed", http.StatusBadGateway)
		return
	}
	if err := h.Teams.SetColor(ctx, id, color); err != nil {
		h.Log.Warn("caching team color failed", zap.Int64("team_id", id), zap.Error(err))
	}

	writeColor(w, colorResponse{ID: id, Color: color})
}

// ServeProfileColor handles PATCH /profiles/{id}/color, where {id} is the
// profile's user id.
func (h *Handler) ServeProfileColor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, color, err := h.colorArgs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Profiles.GetByUserID(ctx, id); err == mongo.ErrNoDocuments {
		http.Error(w, "unknown profile", http.StatusNotFound)
		return
	} else if err != nil {
		h.Log.Error("loading profile failed", zap.Int64("user_id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.Upstream.SaveProfileColor(ctx, id, color); err != nil {
		h.Log.Error("saving profile color upstream failed", zap.Int64("user_id", id), zap.Error(err))
		http.Error(w, "upstream save failed", http.StatusBadGateway)
		return
	}
	if err := h.Profiles.SetColor(ctx, id, color); err != nil {
		h.Log.Warn("caching profile color failed", zap.Int64("user_id", id), zap.Error(err))
	}

	writeColor(w, colorResponse{ID: id, Color: color})
}

func (h *Handler) colorArgs(r *http.Request) (int64, string, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid id %q", raw)
	}

	var req colorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, "", fmt.Errorf("invalid request body")
	}
	if !hexColorRe.MatchString(req.Color) {
		return 0, "", fmt.Errorf("color must be #rrggbb")
	}
	return id, req.Color, nil
}

func writeColor(w http.ResponseWriter, resp colorResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
