package apiauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	apikeystore "github.com/vectorhealth/planhub/internal/app/store/apikeys"
	"github.com/vectorhealth/planhub/internal/app/system/apiauth"
	"github.com/vectorhealth/planhub/internal/testutil"
)

func setup(t *testing.T) (*apiauth.Middleware, *apikeystore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := apikeystore.New(db)
	return apiauth.New(store, zap.NewNop()), store
}

func protected(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := apiauth.Caller(r)
		if !ok {
			t.Error("expected caller in context")
		} else if caller.Name == "" {
			t.Error("expected caller name")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequire_BearerToken(t *testing.T) {
	mw, store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "ci", "the-key"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/plannings/1/maplocations", nil)
	req.Header.Set("Authorization", "Bearer the-key")
	rec := httptest.NewRecorder()
	mw.Require(protected(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestRequire_XAPIKeyHeader(t *testing.T) {
	mw, store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "ci", "the-key"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/teams", nil)
	req.Header.Set("X-API-Key", "the-key")
	rec := httptest.NewRecorder()
	mw.Require(protected(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestRequire_RejectsMissingAndWrongKeys(t *testing.T) {
	mw, store := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "ci", "the-key"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a valid key")
	})

	for _, tc := range []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no header", func(r *http.Request) {}},
		{"wrong key", func(r *http.Request) { r.Header.Set("X-API-Key", "nope") }},
		{"malformed bearer", func(r *http.Request) { r.Header.Set("Authorization", "the-key") }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/teams", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			mw.Require(next).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}
