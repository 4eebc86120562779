// internal/app/features/plannings/types.go
package plannings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// mapLocationsResponse is the GET maplocations body.
type mapLocationsResponse struct {
	PlanningID    int64                 `json:"planning_id"`
	OrgUnitTypeID int64                 `json:"org_unit_type_id"`
	Locations     assign.Classification `json:"locations"`
}

// saveRequest is the POST assignments body for a single org-unit click.
type saveRequest struct {
	OrgUnitID int64  `json:"org_unit_id"`
	TeamID    *int64 `json:"team_id,omitempty"`
	UserID    *int64 `json:"user_id,omitempty"`
}

// assignee validates the team/user pair and converts it to the core type.
func (s saveRequest) assignee() (assign.Assignee, error) {
	switch {
	case s.TeamID != nil && s.UserID != nil:
		return assign.Assignee{}, fmt.Errorf("team_id and user_id are mutually exclusive")
	case s.TeamID != nil:
		return assign.Assignee{ID: *s.TeamID, Type: models.TeamOfTeams}, nil
	case s.UserID != nil:
		return assign.Assignee{ID: *s.UserID, Type: models.TeamOfUsers}, nil
	}
	return assign.Assignee{}, fmt.Errorf("one of team_id or user_id is required")
}

// saveResponse reports the applied mutation and the org unit's fresh
// resolution.
type saveResponse struct {
	Kind       assign.SaveKind   `json:"kind"`
	Assignment models.Assignment `json:"assignment"`
	Resolution assign.Resolution `json:"resolution"`
}

// bulkSaveRequest is the POST assignments/bulk body for a parent click.
type bulkSaveRequest struct {
	ParentID      int64  `json:"parent_id"`
	OrgUnitTypeID int64  `json:"org_unit_type_id"`
	TeamID        *int64 `json:"team_id,omitempty"`
	UserID        *int64 `json:"user_id,omitempty"`
}

func (b bulkSaveRequest) assignee() (assign.Assignee, error) {
	return saveRequest{TeamID: b.TeamID, UserID: b.UserID}.assignee()
}

// bulkSaveResponse summarizes a batch.
type bulkSaveResponse struct {
	RequestID string `json:"request_id"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed,omitempty"`
}

// planningID extracts and validates the {planningID} URL parameter.
func planningID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "planningID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid planning id %q", raw)
	}
	return id, nil
}

// currentAssignee reads the optional team/user query parameters that select
// the active assignee for classification.
func currentAssignee(r *http.Request) (assign.Assignee, error) {
	team := query.Get(r, "team")
	user := query.Get(r, "user")
	switch {
	case team != "" && user != "":
		return assign.Assignee{}, fmt.Errorf("team and user are mutually exclusive")
	case team != "":
		id, err := strconv.ParseInt(team, 10, 64)
		if err != nil {
			return assign.Assignee{}, fmt.Errorf("invalid team id %q", team)
		}
		return assign.Assignee{ID: id, Type: models.TeamOfTeams}, nil
	case user != "":
		id, err := strconv.ParseInt(user, 10, 64)
		if err != nil {
			return assign.Assignee{}, fmt.Errorf("invalid user id %q", user)
		}
		return assign.Assignee{ID: id, Type: models.TeamOfUsers}, nil
	}
	return assign.Assignee{}, nil
}
