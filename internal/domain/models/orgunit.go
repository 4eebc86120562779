// internal/domain/models/orgunit.go
package models

import (
	"encoding/json"
	"time"
)

// OrgUnit is a node in the organisation-unit hierarchy. Parent is a borrowed
// read-only reference hydrated from the catalog (or decoded inline from the
// upstream payload); nothing in this service mutates parent links.
//
// Geometry is optional: a unit with GeoJSON renders as a map region, a unit
// with both Latitude and Longitude renders as a point marker, and a unit
// with neither stays off maps entirely.
type OrgUnit struct {
	ID            int64    `bson:"_id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	OrgUnitTypeID int64    `bson:"org_unit_type_id" json:"org_unit_type_id"`
	ParentID      *int64   `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	Parent        *OrgUnit `bson:"-" json:"parent,omitempty"`

	GeoJSON   json.RawMessage `bson:"geo_json,omitempty" json:"geo_json,omitempty"`
	Latitude  *float64        `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64        `bson:"longitude,omitempty" json:"longitude,omitempty"`

	ValidationStatus string `bson:"validation_status,omitempty" json:"validation_status,omitempty"`

	SyncedAt time.Time `bson:"synced_at" json:"-"`
}

// HasGeoJSON reports whether the unit carries polygon geometry. An empty or
// literal-null raw value counts as absent.
func (o *OrgUnit) HasGeoJSON() bool {
	return len(o.GeoJSON) > 0 && string(o.GeoJSON) != "null"
}

// HasPoint reports whether the unit carries point coordinates.
func (o *OrgUnit) HasPoint() bool {
	return o.Latitude != nil && o.Longitude != nil
}
