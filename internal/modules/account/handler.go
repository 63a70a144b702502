package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ranimhaddad/tijara-backend/internal/httpx"
)

// Handler exposes auth and profile HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterPublicRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/api/v1/auth/register", h.register)
	r.Post("/api/v1/auth/login", h.login)
}

// RegisterRoutes mounts the owner-scoped profile endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/profile", h.getProfile)
	r.Patch("/api/v1/profile", h.updateProfile)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	o, err := h.service.Register(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, o)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		httpx.Respond(w, http.StatusUnauthorized, map[string]string{"detail": "invalid email or password"})
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetProfile(r.Context(), OwnerID(r.Context()))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !httpx.Bind(w, r, &req) {
		return
	}
	o, err := h.service.UpdateProfile(r.Context(), OwnerID(r.Context()), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}
