package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/httpx"
	"github.com/ranimhaddad/tijara-backend/internal/modules/account"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.addProduct)              // POST   /api/v1/products
		r.Get("/", h.listProducts)             // GET    /api/v1/products?kind=&q=
		r.Get("/{id}", h.getProduct)           // GET    /api/v1/products/{id}
		r.Patch("/{id}", h.updateProduct)      // PATCH  /api/v1/products/{id}
		r.Post("/{id}/stock", h.adjustStock)   // POST   /api/v1/products/{id}/stock
		r.Delete("/{id}", h.softDeleteProduct) // DELETE /api/v1/products/{id}
	})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	p, err := h.service.AddProduct(r.Context(), account.OwnerID(r.Context()), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Kind:   ProductKind(r.URL.Query().Get("kind")),
		Search: r.URL.Query().Get("q"),
	}
	products, err := h.service.ListProducts(r.Context(), account.OwnerID(r.Context()), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(r.Context(), account.OwnerID(r.Context()), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), account.OwnerID(r.Context()), id, req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	p, err := h.service.AdjustStock(r.Context(), account.OwnerID(r.Context()), id, req.Delta)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

func (h *Handler) softDeleteProduct(w http.ResponseWriter, r *http.Request) {
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
