// internal/app/assign/classify.go
package assign

import (
	"github.com/vectorhealth/planhub/internal/app/geo"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// ClassifyParams carries the inputs for Classify. Assignments is the list
// scoped to the current planning/team root; AllAssignments is the unscoped
// list used to detect assignments held elsewhere ("other assignation").
type ClassifyParams struct {
	// TargetTypeID selects which org-unit type is placed on the map; units
	// of any other type are skipped.
	TargetTypeID int64

	// SkipIDs holds ancestor org-unit ids supplied by the caller so a
	// selected parent is not double-classified as if it were its own child.
	SkipIDs map[int64]struct{}

	Assignments    []models.Assignment
	AllAssignments []models.Assignment
	Teams          []models.Team
	Profiles       []models.Profile

	// Current is the assignee selected in the UI; units resolved to it are
	// bucketed as selected. Current.Type doubles as the active team context.
	Current Assignee
}

// Placed is one org unit placed into a map bucket.
type Placed struct {
	OrgUnit    models.OrgUnit `json:"org_unit"`
	Resolution Resolution     `json:"resolution"`

	// Other is the unit's resolution against the unscoped assignment list,
	// populated only for unselected units that are assigned elsewhere.
	Other *Resolution `json:"other_assignation,omitempty"`

	// Color is the selected assignee's display color; empty for unselected.
	Color string `json:"color,omitempty"`
}

// Bucket partitions placed units by selection state. All preserves every
// placed unit in input order regardless of selection.
type Bucket struct {
	All        []Placed `json:"all"`
	Selected   []Placed `json:"selected"`
	Unselected []Placed `json:"unselected"`
}

// Classification is the full map-renderable partition of a set of org units.
type Classification struct {
	Shapes  Bucket `json:"shapes"`
	Markers Bucket `json:"markers"`
}

// Classify partitions org units into shape and marker buckets, split by
// whether each unit is assigned to the currently selected assignee.
//
// Per unit: units of the wrong type, units in SkipIDs, and units without a
// type id are silently skipped; units with no geometry are dropped entirely
// (invisible on the map, not an error). Output order is input
// order; sorting is a display concern. Classify never fails: missing or
// partially loaded catalogs degrade to unassigned results.
func Classify(orgUnits []models.OrgUnit, p ClassifyParams) Classification {
	var c Classification
	for _, ou := range orgUnits {
		if ou.OrgUnitTypeID == 0 || ou.OrgUnitTypeID != p.TargetTypeID {
			continue
		}
		if _, skip := p.SkipIDs[ou.ID]; skip {
			continue
		}

		var bucket *Bucket
		switch geo.KindOf(&ou) {
		case geo.Shape:
			bucket = &c.Shapes
		case geo.Marker:
			bucket = &c.Markers
		default:
			continue
		}

		res := ResolveOrgUnit(ou.ID, p.Assignments, p.Teams, p.Profiles, p.Current.Type)
		placed := Placed{OrgUnit: ou, Resolution: res}

		if res.Matches(p.Current) {
			placed.Color = assigneeColor(res)
			bucket.Selected = append(bucket.Selected, placed)
		} else {
			// Resolve against the unscoped list so the UI can show that the
			// unit is already assigned in another planning/team context.
			other := ResolveOrgUnit(ou.ID, p.AllAssignments, p.Teams, p.Profiles, "")
			if other.AssignedTeam != nil || other.AssignedUser != nil {
				placed.Other = &other
			}
			bucket.Unselected = append(bucket.Unselected, placed)
		}
		bucket.All = append(bucket.All, placed)
	}
	return c
}

func assigneeColor(r Resolution) string {
	switch {
	case r.AssignedTeam != nil:
		return r.AssignedTeam.Color
	case r.AssignedUser != nil:
		return r.AssignedUser.Color
	}
	return ""
}
