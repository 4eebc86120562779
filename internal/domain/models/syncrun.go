// internal/domain/models/syncrun.go
package models

import "time"

// SyncRun records one catalog refresh from the upstream platform.
type SyncRun struct {
	ID         string    `bson:"_id" json:"id"` // uuid
	StartedAt  time.Time `bson:"started_at" json:"started_at"`
	FinishedAt time.Time `bson:"finished_at,omitempty" json:"finished_at,omitempty"`

	OrgUnits    int `bson:"org_units" json:"org_units"`
	Assignments int `bson:"assignments" json:"assignments"`
	Teams       int `bson:"teams" json:"teams"`
	Profiles    int `bson:"profiles" json:"profiles"`

	// Error is the failure message when the run aborted; empty on success.
	Error string `bson:"error,omitempty" json:"error,omitempty"`
}

// Succeeded reports whether the run completed without error.
func (s SyncRun) Succeeded() bool {
	return s.Error == "" && !s.FinishedAt.IsZero()
}
