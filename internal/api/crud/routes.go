package crud

import (
	"net/http"

	"github.com/johnwards/teasaloon/internal/store"
)

// Register adds the CRUD endpoints for repo under /api/{Resource}.
func Register[T any](mux *http.ServeMux, repo store.Repository[T]) {
	h := NewHandler(repo)
	base := h.basePath()

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

// RegisterRoutes adds the CRUD endpoints for every entity type in s.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	Register(mux, s.Categories)
	Register(mux, s.Ingredients)
	Register(mux, s.Products)
	Register(mux, s.Teas)
	Register(mux, s.Users)
	Register(mux, s.Orders)
	Register(mux, s.OrderLines)
}
