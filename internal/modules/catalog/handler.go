package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pagebound/bookstore-backend/internal/httpauth"
)

// Handler exposes catalog HTTP endpoints. Reads are public; writes are
// admin-only.
type Handler struct {
	service Service
	mw      *httpauth.Middleware
}

func NewHandler(service Service, mw *httpauth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/books", func(r chi.Router) {
		r.Get("/", h.listBooks)                // GET /api/v1/books?category=&minPrice=&maxPrice=&search=
		r.Get("/categories", h.listCategories) // GET /api/v1/books/categories
		r.Get("/{id}", h.getBook)              // GET /api/v1/books/{id}

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
			r.Post("/", h.createBook)            // POST   /api/v1/books
			r.Put("/{id}", h.updateBook)         // PUT    /api/v1/books/{id}
			r.Delete("/{id}", h.deleteBook)      // DELETE /api/v1/books/{id}
			r.Post("/{id}/stock", h.adjustStock) // POST   /api/v1/books/{id}/stock
		})
	})
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v := q.Get("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	books, err := h.service.ListBooks(r.Context(), filter)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if books == nil {
		books = []*Book{}
	}
	respond(w, http.StatusOK, books)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.CreateBook(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.UpdateBook(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "book removed"})
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Delta int `json:"delta"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func statusFor(err error) int {
	var notFound ErrBookNotFound
	var noStock ErrInsufficientStock
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &noStock):
		return http.StatusConflict
	case err.Error() == "title and author are required",
		err.Error() == "price must not be negative",
		err.Error() == "stock must not be negative":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
