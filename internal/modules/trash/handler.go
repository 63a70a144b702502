package trash

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/httpx"
	"github.com/ranimhaddad/tijara-backend/internal/modules/account"
)

// Handler exposes trash HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/trash", func(r chi.Router) {
		r.Get("/", h.list)                        // GET    /api/v1/trash
		r.Post("/{type}/{id}/restore", h.restore) // POST   /api/v1/trash/{type}/{id}/restore
		r.Delete("/{type}/{id}", h.purge)         // DELETE /api/v1/trash/{type}/{id}
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.List(r.Context(), account.OwnerID(r.Context()))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	entity, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}
	if err := h.service.Restore(r.Context(), account.OwnerID(r.Context()), entity, id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *Handler) purge(w http.ResponseWriter, r *http.Request) {
	entity, id, ok := h.pathParams(w, r)
	if !ok {
		return
	}
	if err := h.service.Purge(r.Context(), account.OwnerID(r.Context()), entity, id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": "deleted permanently"})
}

func (h *Handler) pathParams(w http.ResponseWriter, r *http.Request) (EntityType, uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, apperr.Validation("id", "must be a valid UUID"))
		return "", uuid.Nil, false
	}
	return EntityType(chi.URLParam(r, "type")), id, true
}
