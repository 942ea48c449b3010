package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the five order statuses. Any
// transition between valid statuses is permitted; the only status-dependent
// side effect is the one-shot restock on first entry into cancelled.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a customer's purchase: an immutable set of line items priced at
// creation time. Only Status changes after creation.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []*LineItem `json:"items"`
	Amount    float64     `json:"amount"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// LineItem is one book-and-quantity entry within an order. UnitPrice is the
// catalog price captured when the order was created; later price changes do
// not touch it. BookID is a weak reference: the book may since have been
// deleted, in which case the display fields fall back to a placeholder.
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	BookID    uuid.UUID `json:"book_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`

	// Display snapshot joined from the catalog at read time.
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Image  string `json:"image,omitempty"`
}

// CartItem describes one requested book at checkout.
type CartItem struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items   []CartItem `json:"items"`
	Address string     `json:"address"`
	Phone   string     `json:"phone"`
}

// UpdateStatusRequest is the payload for moving an order to a new status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
