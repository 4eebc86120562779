// internal/app/assign/assign.go
//
// Package assign is the pure assignment-resolution core: matching org units
// to teams/users, classifying org units into map-renderable buckets, walking
// parent hierarchies, and planning save payloads. Everything here is
// side-effect free and safe to call from any goroutine; catalogs are passed
// in explicitly and may be partially loaded (empty slices), which yields
// conservative "unassigned" results rather than errors.
package assign

import (
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Assignee identifies the currently selected assignee. Type decides how ID
// is interpreted: TeamOfTeams means ID is a sub-team id, TeamOfUsers means
// ID is a user id. The zero value means "no assignee selected".
type Assignee struct {
	ID   int64
	Type models.TeamType
}

// IsZero reports whether no assignee is selected.
func (a Assignee) IsZero() bool {
	return a.ID == 0 && a.Type == ""
}

// TeamRef is a resolved team for display.
type TeamRef struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// UserRef is a resolved user for display.
type UserRef struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color,omitempty"`
}

// Resolution is the derived assignment state of a single org unit. It is a
// pure projection over the assignment list and catalogs and is never
// persisted; recompute it whenever any input changes.
//
// At most one of AssignedTeam/AssignedUser is set, matching the active team
// context type. Empty marks an assignment row that exists but has been
// soft-cleared.
type Resolution struct {
	Assignment   *models.Assignment `json:"assignment,omitempty"`
	AssignedTeam *TeamRef           `json:"assigned_team,omitempty"`
	AssignedUser *UserRef           `json:"assigned_user,omitempty"`
	Empty        bool               `json:"empty,omitempty"`
}

// AssigneeID returns the id of whichever side of the resolution is set,
// along with the matching team type. Returns (0, "") when unresolved.
func (r Resolution) AssigneeID() (int64, models.TeamType) {
	if r.AssignedTeam != nil {
		return r.AssignedTeam.ID, models.TeamOfTeams
	}
	if r.AssignedUser != nil {
		return r.AssignedUser.ID, models.TeamOfUsers
	}
	return 0, ""
}

// Matches reports whether the resolution resolves to the given assignee.
func (r Resolution) Matches(who Assignee) bool {
	if who.IsZero() {
		return false
	}
	id, typ := r.AssigneeID()
	return id == who.ID && typ == who.Type
}
