package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
	"github.com/pagebound/bookstore-backend/internal/modules/user"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct {
	service Service
	users   user.Service
	mw      *httpauth.Middleware
}

func NewHandler(service Service, users user.Service, mw *httpauth.Middleware) *Handler {
	return &Handler{service: service, users: users, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.register) // POST /api/v1/auth/register
		r.Post("/login", h.login)       // POST /api/v1/auth/login
		r.Post("/admin", h.createAdmin) // POST /api/v1/auth/admin (first-admin bootstrap)
		r.With(h.mw.Authenticate).Get("/profile", h.profile)
	})
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	creds, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, user.ErrEmailTaken) || err.Error() == "name, email and password are required" {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, creds)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	creds, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidCredentials) {
			code = http.StatusUnauthorized
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, creds)
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	creds, err := h.service.CreateAdmin(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, creds)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetUser(r.Context(), httpauth.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
