// internal/app/iaso/assignments.go
package iaso

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// AssignmentFilter scopes an assignment list request. PlanningID zero means
// unscoped (all plannings), used for other-assignation lookups.
type AssignmentFilter struct {
	PlanningID int64
	TeamID     int64 // scope to a team root
	UserID     int64
}

type assignmentDTO struct {
	ID         flexInt64  `json:"id"`
	PlanningID flexInt64  `json:"planning"`
	OrgUnitID  flexInt64  `json:"org_unit"`
	TeamID     *flexInt64 `json:"team"`
	UserID     *flexInt64 `json:"user"`
}

func (d assignmentDTO) toModel(now time.Time) models.Assignment {
	return models.Assignment{
		ID:         int64(d.ID),
		PlanningID: int64(d.PlanningID),
		OrgUnitID:  int64(d.OrgUnitID),
		TeamID:     d.TeamID.ptr(),
		UserID:     d.UserID.ptr(),
		SyncedAt:   now,
	}
}

// Assignments lists assignment rows matching the filter.
func (c *Client) Assignments(ctx context.Context, f AssignmentFilter) ([]models.Assignment, error) {
	q := url.Values{}
	if f.PlanningID != 0 {
		q.Set("planning", strconv.FormatInt(f.PlanningID, 10))
	}
	if f.TeamID != 0 {
		q.Set("team", strconv.FormatInt(f.TeamID, 10))
	}
	if f.UserID != 0 {
		q.Set("user", strconv.FormatInt(f.UserID, 10))
	}

	var resp struct {
		Assignments []assignmentDTO `json:"assignments"`
	}
	if err := c.get(ctx, "/api/assignments/", q, &resp); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]models.Assignment, 0, len(resp.Assignments))
	for _, d := range resp.Assignments {
		out = append(out, d.toModel(now))
	}
	return out, nil
}

// AssignmentWrite is the save payload for one assignment row. TeamID and
// UserID serialize as explicit nulls when nil; a cleared row keeps its id
// but drops both sides, so omitting the fields would be a different request.
type AssignmentWrite struct {
	ID         *int64 `json:"id,omitempty"`
	PlanningID int64  `json:"planning"`
	OrgUnitID  int64  `json:"org_unit"`
	TeamID     *int64 `json:"team"`
	UserID     *int64 `json:"user"`
}

// CreateAssignment inserts a new assignment row upstream.
func (c *Client) CreateAssignment(ctx context.Context, w AssignmentWrite) (models.Assignment, error) {
	var d assignmentDTO
	if err := c.do(ctx, "POST", "/api/assignments/", nil, w, &d); err != nil {
		return models.Assignment{}, err
	}
	return d.toModel(time.Now().UTC()), nil
}

// UpdateAssignment updates an existing row, including the soft-clear case
// where both sides are null.
func (c *Client) UpdateAssignment(ctx context.Context, w AssignmentWrite) (models.Assignment, error) {
	if w.ID == nil {
		return models.Assignment{}, fmt.Errorf("update requires an assignment id")
	}
	path := fmt.Sprintf("/api/assignments/%d/", *w.ID)
	var d assignmentDTO
	if err := c.do(ctx, "PATCH", path, nil, w, &d); err != nil {
		return models.Assignment{}, err
	}
	return d.toModel(time.Now().UTC()), nil
}

// BulkCreateAssignments batches create rows into a single upstream request,
// used by the parent-click flow.
func (c *Client) BulkCreateAssignments(ctx context.Context, writes []AssignmentWrite) error {
	if len(writes) == 0 {
		return nil
	}
	body := struct {
		Assignments []AssignmentWrite `json:"assignments"`
	}{Assignments: writes}
	return c.do(ctx, "POST", "/api/assignments/bulk_create/", nil, body, nil)
}
