package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/features/health"
	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	"github.com/vectorhealth/planhub/internal/domain/models"
	"github.com/vectorhealth/planhub/internal/testutil"
)

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), syncrunstore.New(db), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var response struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Status: got %q, want %q", response.Status, "ok")
	}
	if response.Database != "connected" {
		t.Errorf("Database: got %q, want %q", response.Database, "connected")
	}
}

func TestServe_ReportsSyncAge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	runs := syncrunstore.New(db)
	handler := health.NewHandler(db.Client(), runs, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()

	started := time.Now().UTC().Add(-2 * time.Minute)
	if err := runs.Insert(ctx, models.SyncRun{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(5 * time.Second),
		OrgUnits:   10,
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response struct {
		Sync *struct {
			LastRunID  string `json:"last_run_id"`
			AgeSeconds int64  `json:"age_seconds"`
			Succeeded  bool   `json:"succeeded"`
		} `json:"sync"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Sync == nil {
		t.Fatal("expected sync status in response")
	}
	if response.Sync.LastRunID != "run-1" || !response.Sync.Succeeded {
		t.Errorf("unexpected sync status %+v", response.Sync)
	}
	if response.Sync.AgeSeconds < 110 {
		t.Errorf("expected age around 120s, got %d", response.Sync.AgeSeconds)
	}
}
