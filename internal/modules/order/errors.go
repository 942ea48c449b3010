package order

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder is returned when checkout is attempted with no line items.
var ErrEmptyOrder = errors.New("no items in order")

// ErrConcurrentModification is returned once a stock reservation has lost
// its race more times than the engine is willing to retry.
var ErrConcurrentModification = errors.New("order could not be processed due to concurrent stock updates, please retry")

// ErrValidation reports a checkout request rejected before any stock is
// touched: a blank address or phone, a non-positive quantity, or an
// unparseable id.
type ErrValidation struct {
	Msg string
}

func (e ErrValidation) Error() string {
	return e.Msg
}

// ErrOrderNotFound reports a lookup for an order that does not exist.
type ErrOrderNotFound struct {
	OrderID string
}

func (e ErrOrderNotFound) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// ErrInvalidStatus reports a status outside the five-member enumeration.
type ErrInvalidStatus struct {
	Status string
}

func (e ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}
