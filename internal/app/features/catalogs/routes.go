// internal/app/features/catalogs/routes.go
package catalogs

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the team and profile catalog routes at the router root,
// since they live under two different top-level paths.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/teams", h.ServeTeams)
	r.Get("/teams/{id}/subtree", h.ServeTeamSubTree)
	r.Patch("/teams/{id}/color", h.ServeTeamColor)
	r.Get("/profiles", h.ServeProfiles)
	r.Patch("/profiles/{id}/color", h.ServeProfileColor)

	return r
}
