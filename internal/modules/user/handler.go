package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
)

type Handler struct {
	service Service
	mw      *httpauth.Middleware
}

func NewHandler(service Service, mw *httpauth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(h.mw.Authenticate)

		r.Get("/profile", h.getProfile)    // GET /api/v1/users/profile
		r.Put("/profile", h.updateProfile) // PUT /api/v1/users/profile

		r.Group(func(r chi.Router) {
			r.Use(h.mw.RequireAdmin)
			r.Get("/", h.listUsers)          // GET    /api/v1/users
			r.Delete("/{id}", h.deleteUser)  // DELETE /api/v1/users/{id}
		})
	})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), httpauth.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), httpauth.UserID(r.Context()), req.Name, req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrEmailTaken) {
			code = http.StatusBadRequest
		} else if errors.Is(err, ErrUserNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListCustomers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if users == nil {
		users = []*User{}
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrUserNotFound) {
			code = http.StatusNotFound
		} else if err.Error() == "cannot delete admin user" {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "user removed"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
