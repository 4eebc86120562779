// internal/app/features/plannings/save.go
package plannings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/app/iaso"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// ServeSave handles POST /plannings/{planningID}/assignments.
//
// One request is one click on an org unit: create an assignment if the unit
// has none, reassign it if another assignee holds it, clear it (nulling both
// sides, keeping the row) if the selected assignee already holds it. The
// mutation is forwarded upstream first and only cached locally on success.
func (h *Handler) ServeSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	planning, err := planningID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.OrgUnitID <= 0 {
		http.Error(w, "org_unit_id is required", http.StatusBadRequest)
		return
	}
	selected, err := req.assignee()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Serialize saves per org unit so two rapid clicks cannot interleave
	// their read-plan-write cycles.
	if !h.Saves.TryLock(req.OrgUnitID) {
		http.Error(w, "a save for this org unit is already in flight", http.StatusConflict)
		return
	}
	defer h.Saves.Unlock(req.OrgUnitID)

	var existing *models.Assignment
	cur, err := h.Assignments.GetByOrgUnit(ctx, planning, req.OrgUnitID)
	switch {
	case err == nil:
		existing = &cur
	case err == mongo.ErrNoDocuments:
		// first assignment for this unit
	default:
		h.Log.Error("loading assignment failed",
			zap.Int64("planning_id", planning),
			zap.Int64("org_unit_id", req.OrgUnitID),
			zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	payload := assign.PlanSave(req.OrgUnitID, existing, selected, planning)
	saved, err := h.forward(ctx, payload)
	h.auditOne(ctx, uuid.NewString(), planning, payload, err)

	if err != nil {
		h.Log.Error("forwarding save failed",
			zap.Int64("planning_id", planning),
			zap.Int64("org_unit_id", req.OrgUnitID),
			zap.String("kind", string(payload.Kind)),
			zap.Error(err))
		status := http.StatusBadGateway
		if apiErr, ok := err.(*iaso.APIError); ok && apiErr.Status >= 400 && apiErr.Status < 500 {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "upstream save failed", status)
		return
	}

	if err := h.Assignments.Upsert(ctx, saved); err != nil {
		h.Log.Warn("caching saved assignment failed",
			zap.Int64("assignment_id", saved.ID), zap.Error(err))
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

	status := http.StatusOK
	if payload.Kind == assign.SaveCreate {
		status = http.StatusCreated
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(saveResponse{
		Kind:       payload.Kind,
		Assignment: saved,
		Resolution: assign.Resolve(&saved, teams, profiles, ""),
	})
}

// forward issues the planned mutation upstream and returns the row the
// upstream reports back.
func (h *Handler) forward(ctx context.Context, p assign.SavePayload) (models.Assignment, error) {
	write := iaso.AssignmentWrite{
		ID:         p.ID,
		PlanningID: p.PlanningID,
		OrgUnitID:  p.OrgUnitID,
		TeamID:     p.TeamID,
		UserID:     p.UserID,
	}
	if p.Kind == assign.SaveCreate {
		return h.Upstream.CreateAssignment(ctx, write)
	}
	return h.Upstream.UpdateAssignment(ctx, write)
}
