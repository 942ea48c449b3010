package order

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"empty order", ErrEmptyOrder, http.StatusBadRequest},
		{"validation", ErrValidation{Msg: "address is required"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create order: %w", ErrValidation{Msg: "phone is required"}), http.StatusBadRequest},
		{"invalid status", ErrInvalidStatus{Status: "refunded"}, http.StatusBadRequest},
		{"book not found", catalog.ErrBookNotFound{BookID: "b"}, http.StatusNotFound},
		{"order not found", ErrOrderNotFound{OrderID: "o"}, http.StatusNotFound},
		{"insufficient stock", catalog.ErrInsufficientStock{BookID: "b"}, http.StatusConflict},
		{"concurrent modification", ErrConcurrentModification, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
