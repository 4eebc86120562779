// internal/app/features/plannings/routes.go
package plannings

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts all planning-scoped routes under the path where the caller
// mounts it. Typically: r.Mount("/plannings", plannings.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{planningID}/maplocations", h.ServeMapLocations)
	r.Post("/{planningID}/assignments", h.ServeSave)
	r.Post("/{planningID}/assignments/bulk", h.ServeBulkSave)
	r.Get("/{planningID}/audit", h.ServeAudit)

	return r
}
