package syncer_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vectorhealth/planhub/internal/app/iaso"
	assignmentstore "github.com/vectorhealth/planhub/internal/app/store/assignments"
	orgunitstore "github.com/vectorhealth/planhub/internal/app/store/orgunits"
	profilestore "github.com/vectorhealth/planhub/internal/app/store/profiles"
	syncrunstore "github.com/vectorhealth/planhub/internal/app/store/syncruns"
	teamstore "github.com/vectorhealth/planhub/internal/app/store/teams"
	"github.com/vectorhealth/planhub/internal/app/system/syncer"
	"github.com/vectorhealth/planhub/internal/testutil"
)

// catalogServer serves a tiny consistent upstream: two org units, one
// assignment, two teams (one without a color), one profile.
func catalogServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orgunits/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"orgunits": [
				{"id": 1, "name": "Region", "org_unit_type_id": 1},
				{"id": "10", "name": "District", "org_unit_type_id": 2,
				 "parent": {"id": 1, "name": "Region", "org_unit_type_id": 1}}
			],
			"count": 2,
			"has_next": false
		}`))
	})
	mux.HandleFunc("/api/assignments/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"assignments": [
				{"id": 500, "planning": 1, "org_unit": 10, "team": 7, "user": null}
			]
		}`))
	})
	mux.HandleFunc("/api/teams/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"teams": [
				{"id": 7, "name": "North", "type": "TEAM_OF_TEAMS", "color": "#aabbcc"},
				{"id": 8, "name": "South", "type": "TEAM_OF_USERS"}
			]
		}`))
	})
	mux.HandleFunc("/api/profiles/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"profiles": [
				{"user_id": 42, "display_name": "A. Worker"}
			]
		}`))
	})
	return httptest.NewServer(mux)
}

func TestRunOnce_MirrorsCatalogs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := catalogServer()
	t.Cleanup(srv.Close)

	client, err := iaso.New(iaso.Config{BaseURL: srv.URL, Token: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("iaso.New: %v", err)
	}

	stores := syncer.Stores{
		Assignments: assignmentstore.New(db),
		OrgUnits:    orgunitstore.New(db),
		Teams:       teamstore.New(db),
		Profiles:    profilestore.New(db),
		Runs:        syncrunstore.New(db),
	}
	s := syncer.New(client, stores, zap.NewNop(), time.Hour)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	run, err := s.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if !run.Succeeded() {
		t.Fatalf("expected a successful run, got %+v", run)
	}
	if run.OrgUnits != 2 || run.Assignments != 1 || run.Teams != 2 || run.Profiles != 1 {
		t.Errorf("unexpected counts %+v", run)
	}

	// String and numeric ids both land as int64.
	district, err := stores.OrgUnits.GetByID(ctx, 10)
	if err != nil {
		t.Fatalf("district not cached: %v", err)
	}
	if district.ParentID == nil || *district.ParentID != 1 {
		t.Errorf("expected parent id 1, got %+v", district.ParentID)
	}

	// Teams without a persisted color get a palette default by index;
	// persisted colors stay untouched.
	teams, err := stores.Teams.All(ctx)
	if err != nil {
		t.Fatalf("teams not cached: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	for _, team := range teams {
		switch team.ID {
		case 7:
			if team.Color != "#aabbcc" {
				t.Errorf("persisted color overwritten: %q", team.Color)
			}
		case 8:
			if team.Color == "" {
				t.Error("expected a palette default color")
			}
		}
	}

	// The run is recorded and retrievable.
	latest, err := stores.Runs.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != run.ID {
		t.Errorf("expected latest run %s, got %s", run.ID, latest.ID)
	}
}

func TestRunOnce_RecordsFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client, err := iaso.New(iaso.Config{BaseURL: srv.URL, Token: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("iaso.New: %v", err)
	}

	stores := syncer.Stores{
		Assignments: assignmentstore.New(db),
		OrgUnits:    orgunitstore.New(db),
		Teams:       teamstore.New(db),
		Profiles:    profilestore.New(db),
		Runs:        syncrunstore.New(db),
	}
	s := syncer.New(client, stores, zap.NewNop(), time.Hour)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	run, err := s.RunOnce(ctx)
	if err == nil {
		t.Fatal("expected an error")
	}
	if run.Succeeded() {
		t.Error("run must be marked failed")
	}
	if run.Error == "" {
		t.Error("expected the failure message on the run")
	}

	latest, lerr := stores.Runs.Latest(ctx)
	if lerr != nil {
		t.Fatalf("Latest failed: %v", lerr)
	}
	if latest.Error == "" {
		t.Error("expected the failure recorded")
	}
}
