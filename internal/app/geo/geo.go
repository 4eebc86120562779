// internal/app/geo/geo.go
//
// Package geo classifies org-unit geometry for map rendering and provides
// GeoJSON helpers over paulmach/orb.
package geo

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/vectorhealth/planhub/internal/domain/models"
)

// Kind is the map rendering class of an org unit.
type Kind int

const (
	// None means the unit carries no geometry and is invisible on maps.
	None Kind = iota
	// Shape means the unit carries polygon geometry (geo_json).
	Shape
	// Marker means the unit carries point coordinates.
	Marker
)

// KindOf classifies an org unit by presence of geometry alone: geo_json wins
// over coordinates, and a unit with neither is None. Classification does not
// validate the GeoJSON; a unit with malformed geo_json is still a Shape here
// (upstream data quality is surfaced by Check during sync, not by dropping
// units at query time).
func KindOf(ou *models.OrgUnit) Kind {
	switch {
	case ou.HasGeoJSON():
		return Shape
	case ou.HasPoint():
		return Marker
	default:
		return None
	}
}

// Decode parses raw GeoJSON geometry. Accepts both bare geometry objects
// and Feature wrappers, which upstream emits inconsistently.
func Decode(raw json.RawMessage) (orb.Geometry, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err == nil {
		return g.Geometry(), nil
	}
	f, ferr := geojson.UnmarshalFeature(raw)
	if ferr == nil {
		return f.Geometry, nil
	}
	return nil, err
}

// Centroid returns the planar centroid of the unit's polygon geometry, used
// as a map-fit hint for shapes. ok is false when the unit has no decodable
// polygon geometry.
func Centroid(ou *models.OrgUnit) (lat, lng float64, ok bool) {
	if !ou.HasGeoJSON() {
		return 0, 0, false
	}
	g, err := Decode(ou.GeoJSON)
	if err != nil {
		return 0, 0, false
	}
	c, area := planar.CentroidArea(g)
	if area == 0 {
		// Degenerate geometry (point or line); fall back to the raw point.
		return c.Lat(), c.Lon(), true
	}
	return c.Lat(), c.Lon(), true
}

// Check validates the unit's geometry, returning a non-nil error for shapes
// whose geo_json does not decode. Used by the catalog sync to log upstream
// data-quality problems without excluding the unit.
func Check(ou *models.OrgUnit) error {
	if !ou.HasGeoJSON() {
		return nil
	}
	_, err := Decode(ou.GeoJSON)
	return err
}
