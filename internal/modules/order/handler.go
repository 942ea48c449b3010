package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	mw      *httpauth.Middleware
}

func NewHandler(service Service, mw *httpauth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(h.mw.Authenticate)

		r.Post("/", h.createOrder) // POST /api/v1/orders
		r.Get("/mine", h.listMyOrders)
		r.Get("/{id}", h.getOrder) // owner or admin

		r.Group(func(r chi.Router) {
			r.Use(h.mw.RequireAdmin)
			r.Get("/", h.listAllOrders)           // GET /api/v1/orders
			r.Put("/{id}/status", h.updateStatus) // PUT /api/v1/orders/{id}/status
		})
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CreateOrder(r.Context(), httpauth.UserID(r.Context()), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListUserOrders(r.Context(), httpauth.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAllOrders(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	ctx := r.Context()
	if !httpauth.IsAdmin(ctx) && o.UserID.String() != httpauth.UserID(ctx) {
		respond(w, http.StatusForbidden, map[string]string{"error": "access denied"})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

// statusFor maps the engine's typed errors to HTTP codes.
func statusFor(err error) int {
	var bookNotFound catalog.ErrBookNotFound
	var noStock catalog.ErrInsufficientStock
	var orderNotFound ErrOrderNotFound
	var invalidStatus ErrInvalidStatus
	var invalidInput ErrValidation
	switch {
	case errors.Is(err, ErrEmptyOrder), errors.As(err, &invalidStatus), errors.As(err, &invalidInput):
		return http.StatusBadRequest
	case errors.As(err, &bookNotFound):
		return http.StatusNotFound
	case errors.As(err, &orderNotFound):
		return http.StatusNotFound
	case errors.As(err, &noStock):
		return http.StatusConflict
	case errors.Is(err, ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
