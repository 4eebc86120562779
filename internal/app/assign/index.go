// internal/app/assign/index.go
package assign

import (
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// FindAssignment returns the first assignment for the given org unit, or nil
// when none exists. The list is a linear scan; assignment lists are small
// (a few thousand rows at most) and already scoped by the caller.
func FindAssignment(assignments []models.Assignment, orgUnitID int64) *models.Assignment {
	for i := range assignments {
		if assignments[i].OrgUnitID == orgUnitID {
			return &assignments[i]
		}
	}
	return nil
}

// FindByAssignee returns every assignment held by the given assignee.
// Used for assignation counts and for scoping bulk clears. A zero assignee
// matches nothing.
func FindByAssignee(assignments []models.Assignment, who Assignee) []models.Assignment {
	if who.IsZero() {
		return nil
	}
	var out []models.Assignment
	for _, a := range assignments {
		if holds(a, who) {
			out = append(out, a)
		}
	}
	return out
}

// CountByAssignee returns the number of assignments held by the assignee.
func CountByAssignee(assignments []models.Assignment, who Assignee) int {
	return len(FindByAssignee(assignments, who))
}

// AssignableOrgUnits filters children down to units with no live assignment.
// Soft-cleared rows do not count as assigned. Used by the parent-click bulk
// flow to pre-select only units that a create-many request may touch.
func AssignableOrgUnits(children []models.OrgUnit, assignments []models.Assignment) []models.OrgUnit {
	var out []models.OrgUnit
	for _, ou := range children {
		a := FindAssignment(assignments, ou.ID)
		if a == nil || a.Cleared() {
			out = append(out, ou)
		}
	}
	return out
}

// holds reports whether assignment a is held by the given assignee.
func holds(a models.Assignment, who Assignee) bool {
	switch who.Type {
	case models.TeamOfTeams:
		return a.TeamID != nil && *a.TeamID == who.ID
	case models.TeamOfUsers:
		return a.UserID != nil && *a.UserID == who.ID
	}
	return false
}
