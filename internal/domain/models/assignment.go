// internal/domain/models/assignment.go
package models

import "time"

// Assignment links an org unit to a single assignee (team or user) within a
// planning. At most one of TeamID/UserID is set; an assignment with neither
// set is a cleared ("soft deleted") row that upstream keeps for history and
// counting, so rows are reused rather than destroyed.
type Assignment struct {
	ID         int64  `bson:"_id" json:"id"`
	PlanningID int64  `bson:"planning_id" json:"planning"`
	OrgUnitID  int64  `bson:"org_unit_id" json:"org_unit"`
	TeamID     *int64 `bson:"team_id,omitempty" json:"team,omitempty"`
	UserID     *int64 `bson:"user_id,omitempty" json:"user,omitempty"`

	// SyncedAt records when this row was last copied from upstream.
	SyncedAt time.Time `bson:"synced_at" json:"-"`
}

// Cleared reports whether the assignment has been soft-cleared (neither a
// team nor a user is set).
func (a Assignment) Cleared() bool {
	return a.TeamID == nil && a.UserID == nil
}
