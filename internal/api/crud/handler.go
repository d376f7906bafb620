package crud

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/johnwards/teasaloon/internal/api"
	"github.com/johnwards/teasaloon/internal/domain"
	"github.com/johnwards/teasaloon/internal/store"
)

// Handler serves the CRUD endpoints for one entity type.
type Handler[T any] struct {
	repo   store.Repository[T]
	schema *store.Schema[T]
}

// NewHandler creates a Handler backed by repo.
func NewHandler[T any](repo store.Repository[T]) *Handler[T] {
	return &Handler[T]{repo: repo, schema: repo.Schema()}
}

func (h *Handler[T]) basePath() string {
	return "/api/" + h.schema.Resource
}

// List handles GET /api/{Resource}.
func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		writeStoreError(w, r, h.schema.Entity, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/{Resource}/{id}.
func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, h.schema.Entity, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /api/{Resource}.
func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	item := new(T)
	if err := api.DecodeJSON(r, item); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON: "+err.Error(), corrID, nil))
		return
	}

	if err := h.repo.Create(r.Context(), item); err != nil {
		writeStoreError(w, r, h.schema.Entity, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.basePath(), *h.schema.ID(item)))
	api.WriteJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/{Resource}/{id}. The body is a full replacement and
// must carry the same identifier as the path.
func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item := new(T)
	if err := api.DecodeJSON(r, item); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON: "+err.Error(), corrID, nil))
		return
	}

	if bodyID := *h.schema.ID(item); bodyID != id {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("%s id %d in body does not match id %d in path", h.schema.Entity, bodyID, id),
			corrID, nil,
		))
		return
	}

	if err := h.repo.Update(r.Context(), item); err != nil {
		writeStoreError(w, r, h.schema.Entity, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/{Resource}/{id}.
func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, h.schema.Entity, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		corrID := api.CorrelationID(r.Context())
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("invalid id %q", raw), corrID, nil,
		))
		return 0, false
	}
	return id, true
}

// writeStoreError translates store and validation errors into HTTP responses.
func writeStoreError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	corrID := api.CorrelationID(r.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		api.WriteError(w, http.StatusBadRequest, api.NewFieldValidationError(verr, corrID))
	case errors.Is(err, store.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(entity+" not found", corrID))
	case errors.Is(err, store.ErrConflict):
		api.WriteError(w, http.StatusConflict, api.NewConflictError(
			entity+" was modified by another request; reload it and retry", api.SubCategoryStaleVersion, corrID,
		))
	case errors.Is(err, store.ErrInUse):
		api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), api.SubCategoryInUse, corrID))
	default:
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
	}
}
