// internal/app/system/apiauth/apiauth.go
//
// Package apiauth authenticates inbound requests with API keys. Callers
// present the key either as "Authorization: Bearer <key>" or in the
// X-API-Key header.
package apiauth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apikeystore "github.com/vectorhealth/planhub/internal/app/store/apikeys"
	"github.com/vectorhealth/planhub/internal/app/system/timeouts"
	"github.com/vectorhealth/planhub/internal/domain/models"
)

type ctxKey string

const callerKey ctxKey = "apiCaller"

// Caller returns the authenticated key record, if any.
func Caller(r *http.Request) (*models.APIKey, bool) {
	k, ok := r.Context().Value(callerKey).(*models.APIKey)
	return k, ok
}

// Middleware verifies API keys against the store.
type Middleware struct {
	keys *apikeystore.Store
	log  *zap.Logger
}

func New(keys *apikeystore.Store, logger *zap.Logger) *Middleware {
	return &Middleware{keys: keys, log: logger}
}

// Require rejects requests without a valid key with a plain 401.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plaintext := keyFrom(r)
		if plaintext == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		key, err := m.keys.Verify(ctx, plaintext)
		if err == apikeystore.ErrInvalidKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err != nil {
			m.log.Error("API key verification failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Last-used bookkeeping is best effort.
		_ = m.keys.Touch(ctx, key.ID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, &key)))
	})
}

// WithTestCaller injects a caller for handler tests, bypassing verification.
func WithTestCaller(r *http.Request, key *models.APIKey) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), callerKey, key))
}

func keyFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
