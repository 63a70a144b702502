package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/httpx"
	"github.com/ranimhaddad/tijara-backend/internal/modules/account"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.placeOrder)               // POST   /api/v1/orders
		r.Get("/", h.listOrders)                // GET    /api/v1/orders?status=&q=
		r.Get("/{id}", h.getOrder)              // GET    /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus) // PATCH  /api/v1/orders/{id}/status
		r.Delete("/{id}", h.softDeleteOrder)    // DELETE /api/v1/orders/{id}
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	o, err := h.service.PlaceOrder(r.Context(), account.OwnerID(r.Context()), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status: Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}
	orders, err := h.service.ListOrders(r.Context(), account.OwnerID(r.Context()), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.service.GetOrder(r.Context(), account.OwnerID(r.Context()), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), account.OwnerID(r.Context()), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) softDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.SoftDelete(r.Context(), account.OwnerID(r.Context()), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": "moved to trash"})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, apperr.Validation("id", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
