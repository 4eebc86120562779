// internal/domain/models/saveaudit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaveAudit records one assignment mutation planned and forwarded upstream.
// Bulk saves produce one record per affected org unit sharing a RequestID.
type SaveAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID string             `bson:"request_id" json:"request_id"` // uuid

	PlanningID int64  `bson:"planning_id" json:"planning_id"`
	OrgUnitID  int64  `bson:"org_unit_id" json:"org_unit_id"`
	Kind       string `bson:"kind" json:"kind"` // create | reassign | clear
	TeamID     *int64 `bson:"team_id,omitempty" json:"team_id,omitempty"`
	UserID     *int64 `bson:"user_id,omitempty" json:"user_id,omitempty"`

	Outcome string    `bson:"outcome" json:"outcome"` // ok | error
	Error   string    `bson:"error,omitempty" json:"error,omitempty"`
	At      time.Time `bson:"at" json:"at"`
}
