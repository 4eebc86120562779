// internal/app/assign/resolve.go
package assign

import (
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Resolve projects an assignment into display form using the team and
// profile catalogs.
//
// activeType filters which side of the assignment is considered: TeamOfTeams
// resolves only the team side, TeamOfUsers only the user side. An empty
// activeType resolves whichever side is present, for "what is this unit
// assigned to, regardless of context" queries.
//
// Catalog lookups take the first match; duplicate ids in a catalog are a
// caller invariant violation and are not defended against. A lookup miss
// (catalog not yet loaded) leaves the corresponding ref nil.
func Resolve(a *models.Assignment, teams []models.Team, profiles []models.Profile, activeType models.TeamType) Resolution {
	if a == nil {
		return Resolution{}
	}
	if a.Cleared() {
		return Resolution{Assignment: a, Empty: true}
	}

	res := Resolution{Assignment: a}

	if a.TeamID != nil && (activeType == models.TeamOfTeams || activeType == "") {
		if t := findTeam(teams, *a.TeamID); t != nil {
			res.AssignedTeam = &TeamRef{ID: t.ID, Label: t.Name, Color: t.Color}
		}
		return res
	}
	if a.UserID != nil && (activeType == models.TeamOfUsers || activeType == "") {
		if p := findProfile(profiles, *a.UserID); p != nil {
			res.AssignedUser = &UserRef{ID: p.UserID, DisplayName: p.DisplayName, Color: p.Color}
		}
	}
	return res
}

// ResolveOrgUnit is the common find-then-resolve composition.
func ResolveOrgUnit(orgUnitID int64, assignments []models.Assignment, teams []models.Team, profiles []models.Profile, activeType models.TeamType) Resolution {
	return Resolve(FindAssignment(assignments, orgUnitID), teams, profiles, activeType)
}

func findTeam(teams []models.Team, id int64) *models.Team {
	for i := range teams {
		if teams[i].ID == id {
			return &teams[i]
		}
	}
	return nil
}

func findProfile(profiles []models.Profile, userID int64) *models.Profile {
	for i := range profiles {
		if profiles[i].UserID == userID {
			return &profiles[i]
		}
	}
	return nil
}
