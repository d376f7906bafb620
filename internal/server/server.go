// Package server assembles the HTTP handler tree for the tea shop API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/teasaloon/internal/api"
	"github.com/johnwards/teasaloon/internal/api/admin"
	"github.com/johnwards/teasaloon/internal/api/crud"
	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
)

// Options configures the handler returned by New.
type Options struct {
	AuthToken string
	Logger    *slog.Logger
}

// New returns the root handler: CRUD and admin routes wrapped in the
// standard middleware chain.
func New(s *store.Store, loader *seed.Loader, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	crud.RegisterRoutes(mux, s)
	admin.RegisterRoutes(mux, s, loader)

	// Catch-all: return 404 in the standard error format.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			corrID,
		))
	})

	return api.Chain(mux,
		api.Recovery(logger),
		api.RequestID(),
		api.Auth(opts.AuthToken),
		api.JSONContentType(),
		api.Logging(logger),
	)
}
