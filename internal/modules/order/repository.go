package order

import "context"

// Repository defines data access for orders. Implementations own the
// transaction boundaries: CreateOrder and UpdateStatus must be atomic with
// respect to the book stock they touch.
type Repository interface {
	// CreateOrder reserves stock for every line item and persists the order
	// in one all-or-nothing transaction. On success it fills each item's
	// UnitPrice (the catalog price at reservation time), the order Amount
	// and the creation timestamp. On any failure no stock is left reserved.
	// Returns catalog.ErrBookNotFound or catalog.ErrInsufficientStock for
	// the first offending item, in input order.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items, joined with catalog
	// display fields. Returns ErrOrderNotFound if absent.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrdersByUser returns a user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error)

	// ListAllOrders returns every order, newest first.
	ListAllOrders(ctx context.Context) ([]*Order, error)

	// UpdateStatus sets the order's status. Iff the order enters cancelled
	// from a non-cancelled status, every line item's stock is restored in
	// the same transaction; items whose book has been deleted are skipped.
	// Returns the updated order.
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
