package admin

import (
	"fmt"
	"net/http"

	"github.com/johnwards/teasaloon/internal/api"
	"github.com/johnwards/teasaloon/internal/seed"
	"github.com/johnwards/teasaloon/internal/store"
)

// Handler serves the admin API at /_admin/.
type Handler struct {
	store  *store.Store
	loader *seed.Loader
}

type seedResponse struct {
	Status  string      `json:"status"`
	Results seed.Report `json:"results"`
}

// Reset drops all data from all tables and re-runs the seed loader.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Truncate(ctx); err != nil {
		corrID := api.CorrelationID(ctx)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(
			fmt.Sprintf("failed to clear tables: %s", err), corrID,
		))
		return
	}

	api.WriteJSON(w, http.StatusOK, seedResponse{Status: "ok", Results: h.loader.Run(ctx)})
}

// SeedData runs the seed loader without dropping existing data first. Tables
// that already hold rows are left untouched.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, seedResponse{Status: "ok", Results: h.loader.Run(r.Context())})
}

// Stats returns the row count of every data table.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Counts(r.Context())
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(
			fmt.Sprintf("count rows: %s", err), corrID,
		))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"tables": counts})
}
