// internal/domain/models/profile.go
package models

import "time"

// Profile is a cached copy of an upstream user profile. UserID is the
// platform user id that assignment rows reference (distinct from any
// profile row id upstream may carry).
type Profile struct {
	UserID      int64  `bson:"_id" json:"user_id"`
	DisplayName string `bson:"display_name" json:"display_name"`
	Color       string `bson:"color,omitempty" json:"color,omitempty"`

	SyncedAt time.Time `bson:"synced_at" json:"-"`
}
