package assignmentstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	"github.com/vectorhealth/planhub/internal/domain/models"
	"github.com/vectorhealth/planhub/internal/testutil"
)

func i64(v int64) *int64 { return &v }

func TestStore_GetByOrgUnit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)
	fixtures.CreateAssignment(ctx, 501, 2, 10, i64(8), nil)

	got, err := store.GetByOrgUnit(ctx, 1, 10)
	if err != nil {
		t.Fatalf("GetByOrgUnit failed: %v", err)
	}
	if got.ID != 500 {
		t.Errorf("expected row 500, got %d", got.ID)
	}

	if _, err := store.GetByOrgUnit(ctx, 3, 10); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for missing planning, got %v", err)
	}
}

func TestStore_Upsert_ClearsSides(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)

	cleared := models.Assignment{
		ID:         500,
		PlanningID: 1,
		OrgUnitID:  10,
		SyncedAt:   time.Now().UTC(),
	}
	if err := store.Upsert(ctx, cleared); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.GetByID(ctx, 500)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != nil || got.UserID != nil {
		t.Errorf("expected both sides nil after clear, got %+v", got)
	}
	if !got.Cleared() {
		t.Error("expected Cleared() true")
	}
}

func TestStore_Upsert_InsertsNewRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	row := models.Assignment{
		ID:         600,
		PlanningID: 1,
		OrgUnitID:  11,
		UserID:     i64(42),
		SyncedAt:   time.Now().UTC(),
	}
	if err := store.Upsert(ctx, row); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.GetByID(ctx, 600)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UserID == nil || *got.UserID != 42 {
		t.Errorf("expected user 42, got %+v", got)
	}
}

func TestStore_ReplaceAll_PrunesStaleRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)

	cutoff := time.Now().UTC()
	fresh := []models.Assignment{
		{ID: 501, PlanningID: 1, OrgUnitID: 11, TeamID: i64(8), SyncedAt: cutoff},
	}
	if err := store.ReplaceAll(ctx, fresh, cutoff); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	if _, err := store.GetByID(ctx, 500); err != mongo.ErrNoDocuments {
		t.Errorf("expected stale row pruned, got err=%v", err)
	}
	all, err := store.ByPlanning(ctx, 1)
	if err != nil {
		t.Fatalf("ByPlanning failed: %v", err)
	}
	if len(all) != 1 || all[0].ID != 501 {
		t.Errorf("expected only row 501, got %v", all)
	}
}
