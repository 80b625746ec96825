package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maya/media-user-api/internal/api/middleware"
	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/service"
)

// ListHandler serves both favourites and history; the route wiring picks
// the kind, the semantics are identical.
type ListHandler struct {
	listService *service.ListService
}

func NewListHandler(listService *service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

func (h *ListHandler) Get(kind domain.ListKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := h.listService.Get(r.Context(), identity.ID, kind)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func (h *ListHandler) Add(kind domain.ListKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := h.listService.Add(r.Context(), identity.ID, kind, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func (h *ListHandler) Remove(kind domain.ListKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.GetIdentity(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := h.listService.Remove(r.Context(), identity.ID, kind, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}
