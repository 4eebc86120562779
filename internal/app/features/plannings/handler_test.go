package plannings_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/features/plannings"
	"github.com/vectorhealth/planhub/internal/app/iaso"
	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	"github.com/vectorhealth/planhub/internal/domain/models"
	"github.com/vectorhealth/planhub/internal/testutil"
)

func i64(v int64) *int64 { return &v }

// fakeUpstream is a minimal upstream API: it echoes assignment writes back
// with ids and records how many requests of each kind arrived.
type fakeUpstream struct {
	nextID  atomic.Int64
	creates atomic.Int64
	updates atomic.Int64
}

func (f *fakeUpstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/assignments/":
			f.creates.Add(1)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["id"] = f.nextID.Add(1) + 1000
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(body)
		case r.Method == "PATCH" && strings.HasPrefix(r.URL.Path, "/api/assignments/"):
			f.updates.Add(1)
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(body)
		case r.Method == "POST" && r.URL.Path == "/api/assignments/bulk_create/":
			f.creates.Add(1)
			w.WriteHeader(http.StatusCreated)
		case r.Method == "GET" && r.URL.Path == "/api/assignments/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"assignments":[]}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestHandler(t *testing.T) (*plannings.Handler, *testutil.Fixtures, *fakeUpstream) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	fake := &fakeUpstream{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client, err := iaso.New(iaso.Config{BaseURL: srv.URL, Token: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("iaso.New: %v", err)
	}

	return plannings.NewHandler(db, client, zap.NewNop()), testutil.NewFixtures(t, db), fake
}

func postJSON(t *testing.T, h http.HandlerFunc, target, planning string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", target, bytes.NewReader(buf))
	req = testutil.WithChiURLParam(req, "planningID", planning)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestServeSave_Create(t *testing.T) {
	handler, fixtures, fake := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrgUnit(ctx, 10, 2, 0, "District A")
	fixtures.CreateTeam(ctx, 7, "Team North", models.TeamOfTeams, "#1f77b4")

	rec := postJSON(t, handler.ServeSave, "/plannings/1/assignments", "1",
		map[string]any{"org_unit_id": 10, "team_id": 7})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if got := fake.creates.Load(); got != 1 {
		t.Errorf("expected 1 upstream create, got %d", got)
	}

	var resp struct {
		Kind       string            `json:"kind"`
		Assignment models.Assignment `json:"assignment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Kind != "create" {
		t.Errorf("expected kind create, got %q", resp.Kind)
	}
	if resp.Assignment.TeamID == nil || *resp.Assignment.TeamID != 7 {
		t.Errorf("expected team 7 on saved assignment, got %+v", resp.Assignment)
	}

	// The row must land in the cache under its upstream id.
	store := assignmentstore.New(fixtures.DB())
	cached, err := store.GetByOrgUnit(ctx, 1, 10)
	if err != nil {
		t.Fatalf("cached assignment not found: %v", err)
	}
	if cached.ID != resp.Assignment.ID {
		t.Errorf("cached id %d does not match response id %d", cached.ID, resp.Assignment.ID)
	}
}

func TestServeSave_ToggleOffClears(t *testing.T) {
	handler, fixtures, fake := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrgUnit(ctx, 10, 2, 0, "District A")
	fixtures.CreateTeam(ctx, 7, "Team North", models.TeamOfTeams, "#1f77b4")
	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)

	rec := postJSON(t, handler.ServeSave, "/plannings/1/assignments", "1",
		map[string]any{"org_unit_id": 10, "team_id": 7})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if got := fake.updates.Load(); got != 1 {
		t.Errorf("expected 1 upstream update, got %d", got)
	}

	var resp struct {
		Kind       string            `json:"kind"`
		Assignment models.Assignment `json:"assignment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Kind != "clear" {
		t.Errorf("expected kind clear, got %q", resp.Kind)
	}
	if resp.Assignment.ID != 500 {
		t.Errorf("clear must reuse row 500, got %d", resp.Assignment.ID)
	}
	if resp.Assignment.TeamID != nil || resp.Assignment.UserID != nil {
		t.Errorf("cleared row must have both sides nil, got %+v", resp.Assignment)
	}
}

func TestServeSave_ReassignAcrossSides(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrgUnit(ctx, 10, 2, 0, "District A")
	fixtures.CreateProfile(ctx, 42, "A. Worker", "#ff7f0e")
	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)

	rec := postJSON(t, handler.ServeSave, "/plannings/1/assignments", "1",
		map[string]any{"org_unit_id": 10, "user_id": 42})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Kind       string            `json:"kind"`
		Assignment models.Assignment `json:"assignment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Kind != "reassign" {
		t.Errorf("expected kind reassign, got %q", resp.Kind)
	}
	if resp.Assignment.UserID == nil || *resp.Assignment.UserID != 42 {
		t.Errorf("expected user 42, got %+v", resp.Assignment)
	}
	if resp.Assignment.TeamID != nil {
		t.Errorf("reassign to user must null the team side, got %+v", resp.Assignment)
	}
}

func TestServeSave_RejectsBothSides(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := postJSON(t, handler.ServeSave, "/plannings/1/assignments", "1",
		map[string]any{"org_unit_id": 10, "team_id": 7, "user_id": 42})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServeBulkSave_SkipsAlreadyHeld(t *testing.T) {
	handler, fixtures, fake := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTeam(ctx, 7, "Team North", models.TeamOfTeams, "#1f77b4")
	fixtures.CreateOrgUnit(ctx, 1, 1, 0, "Region")
	fixtures.CreateOrgUnit(ctx, 10, 2, 1, "District A")
	fixtures.CreateOrgUnit(ctx, 11, 2, 1, "District B")
	fixtures.CreateOrgUnit(ctx, 12, 2, 1, "District C")
	// District B is already held by team 7 and must be skipped.
	fixtures.CreateAssignment(ctx, 500, 1, 11, i64(7), nil)

	rec := postJSON(t, handler.ServeBulkSave, "/plannings/1/assignments/bulk", "1",
		map[string]any{"parent_id": 1, "org_unit_type_id": 2, "team_id": 7})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		RequestID string `json:"request_id"`
		Created   int    `json:"created"`
		Updated   int    `json:"updated"`
		Skipped   int    `json:"skipped"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Created != 2 || resp.Updated != 0 || resp.Skipped != 1 {
		t.Errorf("expected created=2 updated=0 skipped=1, got %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("expected a request id")
	}
	if got := fake.creates.Load(); got == 0 {
		t.Error("expected an upstream bulk create")
	}
}

func TestServeMapLocations_Buckets(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTeam(ctx, 7, "Team North", models.TeamOfTeams, "#1f77b4")
	fixtures.CreateOrgUnit(ctx, 10, 2, 0, "District A")
	fixtures.CreateOrgUnit(ctx, 11, 2, 0, "District B")
	fixtures.CreateAssignment(ctx, 500, 1, 10, i64(7), nil)

	// Give both districts point geometry so they land in the marker bucket.
	for _, id := range []int64{10, 11} {
		lat, lng := 1.5, 2.5
		if _, err := fixtures.DB().Collection("orgunits").UpdateByID(ctx, id,
			bson.M{"$set": bson.M{"latitude": lat, "longitude": lng}}); err != nil {
			t.Fatalf("setting geometry: %v", err)
		}
	}

	req := httptest.NewRequest("GET",
		fmt.Sprintf("/plannings/1/maplocations?org_unit_type_id=%d&team=%d", 2, 7), nil)
	req = testutil.WithChiURLParam(req, "planningID", "1")
	rec := httptest.NewRecorder()
	handler.ServeMapLocations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Locations struct {
			Markers struct {
				Selected   []json.RawMessage `json:"selected"`
				Unselected []json.RawMessage `json:"unselected"`
			} `json:"markers"`
		} `json:"locations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Locations.Markers.Selected) != 1 {
		t.Errorf("expected 1 selected marker, got %d", len(resp.Locations.Markers.Selected))
	}
	if len(resp.Locations.Markers.Unselected) != 1 {
		t.Errorf("expected 1 unselected marker, got %d", len(resp.Locations.Markers.Unselected))
	}
}

func TestServeAudit_RecordsSave(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrgUnit(ctx, 10, 2, 0, "District A")
	fixtures.CreateTeam(ctx, 7, "Team North", models.TeamOfTeams, "#1f77b4")

	rec := postJSON(t, handler.ServeSave, "/plannings/1/assignments", "1",
		map[string]any{"org_unit_id": 10, "team_id": 7})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest("GET", "/plannings/1/audit", nil)
	req = testutil.WithChiURLParam(req, "planningID", "1")
	auditRec := httptest.NewRecorder()
	handler.ServeAudit(auditRec, req)

	if auditRec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, auditRec.Code)
	}

	var resp struct {
		Records []models.SaveAudit `json:"records"`
	}
	if err := json.Unmarshal(auditRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(resp.Records))
	}
	if resp.Records[0].Kind != "create" || resp.Records[0].Outcome != "ok" {
		t.Errorf("unexpected audit record %+v", resp.Records[0])
	}
}
