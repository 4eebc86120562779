// internal/app/features/sync/routes.go
package sync

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the sync routes.
// Typically: r.Mount("/sync", sync.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeTrigger)
	r.Get("/last", h.ServeLast)

	return r
}
