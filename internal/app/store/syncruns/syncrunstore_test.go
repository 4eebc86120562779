// internal/app/store/syncruns/syncrunstore_test.go
package syncrunstore_test

import (
	"fmt"
	"testing"
	"time"

	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	"github.com/vectorhealth/planhub/internal/domain/models"
	"github.com/vectorhealth/planhub/internal/testutil"
)

func TestLatestOrdersByStart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := syncrunstore.New(db)
	base := time.Now().UTC().Add(-time.Hour)

	okRun := models.SyncRun{ID: "run-ok", StartedAt: base, FinishedAt: base.Add(time.Minute), OrgUnits: 4}
	failed := models.SyncRun{ID: "run-failed", StartedAt: base.Add(10 * time.Minute), FinishedAt: base.Add(11 * time.Minute), Error: "upstream returned 500"}
	for _, run := range []models.SyncRun{okRun, failed} {
		if err := store.Insert(ctx, run); err != nil {
			t.Fatalf("Insert(%s): %v", run.ID, err)
		}
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != "run-failed" {
		t.Errorf("Latest = %s, want run-failed", latest.ID)
	}
	if latest.Succeeded() {
		t.Error("failed run reported as succeeded")
	}

	success, err := store.LatestSuccessful(ctx)
	if err != nil {
		t.Fatalf("LatestSuccessful: %v", err)
	}
	if success.ID != "run-ok" {
		t.Errorf("LatestSuccessful = %s, want run-ok", success.ID)
	}
	if success.OrgUnits != 4 {
		t.Errorf("OrgUnits = %d, want 4", success.OrgUnits)
	}
}

func TestPruneKeepsMostRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := syncrunstore.New(db)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := models.SyncRun{
			ID:         fmt.Sprintf("run-%d", i),
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
		}
		if err := store.Insert(ctx, run); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune removed %d, want 3", removed)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest after prune: %v", err)
	}
	if latest.ID != "run-4" {
		t.Errorf("Latest after prune = %s, want run-4", latest.ID)
	}

	removed, err = store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune (second): %v", err)
	}
	if removed != 0 {
		t.Errorf("second Prune removed %d, want 0", removed)
	}
}
