// internal/app/features/plannings/bulksave.go
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

// ServeBulkSave handles POST /plannings/{planningID}/assignments/bulk.
//
// A bulk save is a click on a parent region: every descendant org unit of
// the requested type gets assigned to the selected assignee. Units already
// held by that assignee are skipped rather than toggled off, so a parent
// click is idempotent. New rows go upstream in one batched create; rows
// that exist (held by someone else, or cleared) are reassigned one by one.
func (h *Handler) ServeBulkSave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	planning, err := planningID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req bulkSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ParentID <= 0 {
		http.Error(w, "parent_id is required", http.StatusBadRequest)
		return
	}
	if req.OrgUnitTypeID <= 0 {
		http.Error(w, "org_unit_type_id is required", http.StatusBadRequest)
		return
	}
	selected, err := req.assignee()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.OrgUnits.GetByID(ctx, req.ParentID); err == mongo.ErrNoDocuments {
		http.Error(w, "unknown parent org unit", http.StatusNotFound)
		return
	} else if err != nil {
		h.Log.Error("loading parent failed", zap.Int64("parent_id", req.ParentID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	children, err := h.OrgUnits.DescendantsOfType(ctx, req.ParentID, req.OrgUnitTypeID)
	if err != nil {
		h.Log.Error("loading descendants failed", zap.Int64("parent_id", req.ParentID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	assignments, err := h.Assignments.ByPlanning(ctx, planning)
	if err != nil {
		h.Log.Error("loading planning assignments failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	payloads := assign.PlanBulkSave(children, assignments, selected, planning)
	resp := bulkSaveResponse{
		RequestID: uuid.NewString(),
		Skipped:   len(children) - len(payloads),
	}
	if len(payloads) == 0 {
		writeBulkResponse(w, resp)
		return
	}

	keys := make([]int64, 0, len(payloads))
	for _, p := range payloads {
		keys = append(keys, p.OrgUnitID)
	}
	if !h.Saves.TryLockAll(keys) {
		http.Error(w, "a save for one of the org units is already in flight", http.StatusConflict)
		return
	}
	defer h.Saves.UnlockAll(keys)

	var creates []iaso.AssignmentWrite
	var updates []assign.SavePayload
	for _, p := range payloads {
		if p.Kind == assign.SaveCreate {
			creates = append(creates, iaso.AssignmentWrite{
				PlanningID: p.PlanningID,
				OrgUnitID:  p.OrgUnitID,
				TeamID:     p.TeamID,
				UserID:     p.UserID,
			})
		} else {
			updates = append(updates, p)
		}
	}

	if len(creates) > 0 {
		err := h.Upstream.BulkCreateAssignments(ctx, creates)
		h.auditBulk(ctx, resp.RequestID, planning, payloads, assign.SaveCreate, err)
		if err != nil {
			h.Log.Error("bulk create failed",
				zap.Int64("planning_id", planning),
				zap.Int("count", len(creates)),
				zap.Error(err))
			http.Error(w, "upstream bulk create failed", http.StatusBadGateway)
			return
		}
		resp.Created = len(creates)
	}

	for _, p := range updates {
		saved, err := h.forward(ctx, p)
		h.auditOne(ctx, resp.RequestID, planning, p, err)
		if err != nil {
			h.Log.Error("bulk reassign failed",
				zap.Int64("planning_id", planning),
				zap.Int64("org_unit_id", p.OrgUnitID),
				zap.Error(err))
			resp.Failed++
			continue
		}
		if err := h.Assignments.Upsert(ctx, saved); err != nil {
			h.Log.Warn("caching saved assignment failed",
				zap.Int64("assignment_id", saved.ID), zap.Error(err))
		}
		resp.Updated++
	}

	// The bulk create endpoint does not echo the new rows, so re-pull this
	// planning's assignments to pick up their upstream-assigned ids.
	if resp.Created > 0 {
		fresh, err := h.Upstream.Assignments(ctx, iaso.AssignmentFilter{PlanningID: planning})
		if err != nil {
			h.Log.Warn("refreshing planning assignments failed", zap.Error(err))
		} else {
			for _, a := range fresh {
				if err := h.Assignments.Upsert(ctx, a); err != nil {
					h.Log.Warn("caching refreshed assignment failed",
						zap.Int64("assignment_id", a.ID), zap.Error(err))
				}
			}
		}
	}

	writeBulkResponse(w, resp)
}

// auditBulk records one audit row per payload of the given kind, all
// sharing the batch request id.
func (h *Handler) auditBulk(ctx context.Context, requestID string, planning int64, payloads []assign.SavePayload, kind assign.SaveKind, failure error) {
	for _, p := range payloads {
		if p.Kind != kind {
			continue
		}
		h.auditOne(ctx, requestID, planning, p, failure)
	}
}

func (h *Handler) auditOne(ctx context.Context, requestID string, planning int64, p assign.SavePayload, failure error) {
	rec := models.SaveAudit{
		RequestID:  requestID,
		PlanningID: planning,
		OrgUnitID:  p.OrgUnitID,
		Kind:       string(p.Kind),
		TeamID:     p.TeamID,
		UserID:     p.UserID,
		Outcome:    "ok",
	}
	if failure != nil {
		rec.Outcome = "error"
		rec.Error = failure.Error()
	}
	if _, err := h.Audit.Insert(ctx, rec); err != nil {
		h.Log.Warn("recording save audit failed", zap.Error(err))
	}
}

func writeBulkResponse(w http.ResponseWriter, resp bulkSaveResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
