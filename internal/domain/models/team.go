// internal/domain/models/team.go
package models

import "time"

// TeamType determines what a team's assignable units are: sub-teams or users.
// Only one level of sub-assignee is active at a time; the currently selected
// team's type decides which.
type TeamType string

const (
	TeamOfTeams TeamType = "TEAM_OF_TEAMS"
	TeamOfUsers TeamType = "TEAM_OF_USERS"
)

// Team is a cached copy of an upstream team record.
type Team struct {
	ID         int64    `bson:"_id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Type       TeamType `bson:"type" json:"type"`
	SubTeamIDs []int64  `bson:"sub_teams" json:"sub_teams"`
	UserIDs    []int64  `bson:"users" json:"users"`

	// Color is the persisted display color ("#rrggbb"). When upstream has
	// none, a palette default is derived by index at resolution time.
	Color string `bson:"color,omitempty" json:"color,omitempty"`

	SyncedAt time.Time `bson:"synced_at" json:"-"`
}
