// internal/app/features/orgunits/routes.go
package orgunits

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the org-unit catalog routes.
// Typically: r.Mount("/orgunits", orgunits.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}/parents", h.ServeParents)
	r.Get("/{id}/resolution", h.ServeResolution)

	return r
}
