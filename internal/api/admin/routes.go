package admin

import (
	"net/http"

	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
)

// RegisterRoutes registers all admin API endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, loader *seed.Loader) {
	h := &Handler{store: s, loader: loader}

	mux.HandleFunc("POST /_admin/reset", h.Reset)
	mux.HandleFunc("POST /_admin/seed", h.SeedData)
	mux.HandleFunc("GET /_admin/stats", h.Stats)
}
