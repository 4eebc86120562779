package assign_test

import (
	"reflect"
	"testing"

	"github.com/vectorhealth/planhub/internal/app/assign"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

// chain builds A→B→C where A is the root: returns the leaf C.
func chain() *models.OrgUnit {
	a := &models.OrgUnit{ID: 1, Name: "A", OrgUnitTypeID: 1} // county
	b := &models.OrgUnit{ID: 2, Name: "B", OrgUnitTypeID: 2, Parent: a} // district
	c := &models.OrgUnit{ID: 3, Name: "C", OrgUnitTypeID: 3, Parent: b} // facility
	return c
}

func TestAncestorPath(t *testing.T) {
	got := assign.AncestorPath(chain())
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorPath = %v, want %v", got, want)
	}
}

func TestAncestorPath_Terminal(t *testing.T) {
	root := &models.OrgUnit{ID: 1, Name: "A"}
	if got := assign.AncestorPath(root); len(got) != 0 {
		t.Errorf("expected empty path for root, got %v", got)
	}
	if got := assign.AncestorPath(nil); got != nil {
		t.Errorf("expected nil for nil unit, got %v", got)
	}
}

func TestAncestorPath_CycleGuard(t *testing.T) {
	a := &models.OrgUnit{ID: 1, Name: "A"}
	b := &models.OrgUnit{ID: 2, Name: "B", Parent: a}
	a.Parent = b // corrupt upstream data

	got := assign.AncestorPath(b)
	if len(got) != 1 || got[0] != "A" {
		t.Errorf("cycle walk should stop after A, got %v", got)
	}
}

func TestAncestorIDs(t *testing.T) {
	got := assign.AncestorIDs(chain())
	want := []int64{2, 1} // leaf-to-root
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AncestorIDs = %v, want %v", got, want)
	}
}

func TestNearestAncestorOfType(t *testing.T) {
	leaf := chain()

	// Nearest, not furthest: from the facility, type 2 is the district.
	if got := assign.NearestAncestorOfType(leaf, 2); got == nil || got.Name != "B" {
		t.Errorf("type 2: got %+v, want B", got)
	}
	if got := assign.NearestAncestorOfType(leaf, 1); got == nil || got.Name != "A" {
		t.Errorf("type 1: got %+v, want A", got)
	}
	// No ancestor of that type: nil, not an error.
	if got := assign.NearestAncestorOfType(leaf, 9); got != nil {
		t.Errorf("type 9: got %+v, want nil", got)
	}
	// The unit itself never matches.
	if got := assign.NearestAncestorOfType(leaf, 3); got != nil {
		t.Errorf("own type must not match: got %+v", got)
	}
}
