package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/apperr"
	"github.com/ranimhaddad/tijara-backend/internal/httpx"
	"github.com/ranimhaddad/tijara-backend/internal/modules/account"
)

// Handler exposes ledger HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/transactions", func(r chi.Router) {
		r.Post("/", h.recordTransaction)           // POST   /api/v1/transactions
		r.Get("/", h.listTransactions)             // GET    /api/v1/transactions?type=
		r.Delete("/{id}", h.softDeleteTransaction) // DELETE /api/v1/transactions/{id}
	})
	r.Get("/api/v1/balance", h.getBalance) // GET /api/v1/balance
}

func (h *Handler) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var req RecordTransactionRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	t, err := h.service.RecordTransaction(r.Context(), account.OwnerID(r.Context()), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, t)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	typ := TransactionType(r.URL.Query().Get("type"))
	transactions, err := h.service.ListTransactions(r.Context(), account.OwnerID(r.Context()), typ)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, transactions)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBalance(r.Context(), account.OwnerID(r.Context()))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, b)
}

func (h *Handler) softDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, apperr.Validation("id", "must be a valid UUID"))
		return
	}
	if err := h.service.SoftDelete(r.Context(), account.OwnerID(r.Context()), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": "moved to trash"})
}
