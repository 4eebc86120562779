// internal/app/assign/planner.go
package assign

import (
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// SaveKind is the mutation class of a planned save.
type SaveKind string

const (
	// SaveCreate inserts a new assignment row.
	SaveCreate SaveKind = "create"
	// SaveReassign updates an existing row to a new assignee, implicitly
	// clearing the other side (team/user are mutually exclusive).
	SaveReassign SaveKind = "reassign"
	// SaveClear updates an existing row with both sides null: the toggle-off
	// path. Rows are reused, not deleted, because bulk counts and history
	// reference assignment ids.
	SaveClear SaveKind = "clear"
)

// SavePayload is the computed upstream request for one org unit. For
// SaveClear both TeamID and UserID are nil and must be serialized as
// explicit nulls, not omitted.
type SavePayload struct {
	Kind       SaveKind
	ID         *int64 // existing row id; nil for SaveCreate
	PlanningID int64
	OrgUnitID  int64
	TeamID     *int64
	UserID     *int64
}

// PlanSave computes the payload for a click on an org unit with the given
// assignee selected:
//
//   - no existing row: create
//   - existing row held by a different assignee (or cleared): reassign
//   - existing row held by the same assignee: clear (toggle off)
//
// The planner only computes the payload; issuing the request and
// invalidating caches on success is the caller's job.
func PlanSave(orgUnitID int64, existing *models.Assignment, selected Assignee, planningID int64) SavePayload {
	p := SavePayload{
		PlanningID: planningID,
		OrgUnitID:  orgUnitID,
	}

	if existing != nil && heldBy(existing, selected) {
		p.Kind = SaveClear
		id := existing.ID
		p.ID = &id
		return p
	}

	switch selected.Type {
	case models.TeamOfTeams:
		id := selected.ID
		p.TeamID = &id
	case models.TeamOfUsers:
		id := selected.ID
		p.UserID = &id
	}

	if existing == nil {
		p.Kind = SaveCreate
		return p
	}
	p.Kind = SaveReassign
	id := existing.ID
	p.ID = &id
	return p
}

// PlanBulkSave applies PlanSave to every child org unit under a clicked
// parent, for the "assign all descendants of type T" flow. Units already
// exclusively held by the selected assignee are excluded so the batch never
// carries redundant no-op writes (the UI disables their checkboxes for the
// same reason).
func PlanBulkSave(children []models.OrgUnit, assignments []models.Assignment, selected Assignee, planningID int64) []SavePayload {
	var out []SavePayload
	for _, ou := range children {
		existing := FindAssignment(assignments, ou.ID)
		if existing != nil && heldBy(existing, selected) {
			continue
		}
		out = append(out, PlanSave(ou.ID, existing, selected, planningID))
	}
	return out
}

// heldBy reports whether the row is exclusively held by the assignee.
func heldBy(a *models.Assignment, who Assignee) bool {
	return a != nil && holds(*a, who)
}
