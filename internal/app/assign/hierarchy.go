// internal/app/assign/hierarchy.go
package assign

import (
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// AncestorPath returns the names of the org unit's ancestors in root-to-leaf
// order, for breadcrumb display. The unit's own name is not included; a unit
// with no parent yields an empty path.
//
// The backend constructs parent chains acyclically, but since the data
// arrives over the wire a visited-set guard stops the walk if a cycle ever
// slips through.
func AncestorPath(ou *models.OrgUnit) []string {
	if ou == nil {
		return nil
	}
	var names []string
	seen := map[int64]struct{}{ou.ID: {}}
	for p := ou.Parent; p != nil; p = p.Parent {
		if _, dup := seen[p.ID]; dup {
			break
		}
		seen[p.ID] = struct{}{}
		names = append(names, p.Name)
	}
	// The raw walk is leaf-to-root; reverse for display.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// AncestorIDs returns the ids of the unit's ancestors, leaf-to-root. Used to
// build the classifier's skip set for parent-click flows.
func AncestorIDs(ou *models.OrgUnit) []int64 {
	if ou == nil {
		return nil
	}
	var ids []int64
	seen := map[int64]struct{}{ou.ID: {}}
	for p := ou.Parent; p != nil; p = p.Parent {
		if _, dup := seen[p.ID]; dup {
			break
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids
}

// NearestAncestorOfType walks parent links until it finds the closest
// ancestor whose type matches typeID, or returns nil when the chain ends
// without a match. Callers treat nil as "not eligible for parent-based bulk
// pick", not as an error.
func NearestAncestorOfType(ou *models.OrgUnit, typeID int64) *models.OrgUnit {
	if ou == nil {
		return nil
	}
	seen := map[int64]struct{}{ou.ID: {}}
	for p := ou.Parent; p != nil; p = p.Parent {
		if _, dup := seen[p.ID]; dup {
			return nil
		}
		seen[p.ID] = struct{}{}
		if p.OrgUnitTypeID == typeID {
			return p
		}
	}
	return nil
}
