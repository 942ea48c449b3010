package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pagebound/bookstore-backend/internal/events"
	"github.com/pagebound/bookstore-backend/internal/modules/catalog"
)

// Service is the order lifecycle engine: the sole authority for creating
// orders and transitioning their status. It is transport-agnostic; handlers
// translate its typed errors to HTTP responses.
type Service interface {
	// CreateOrder validates the cart, reserves stock and persists the order
	// atomically. The returned order carries catalog display fields.
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with its items.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListUserOrders returns all orders placed by a user, newest first.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// ListAllOrders returns every order, newest first.
	ListAllOrders(ctx context.Context) ([]*Order, error)

	// UpdateStatus moves an order to a new status, restocking line items on
	// the first transition into cancelled.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

// maxAttempts bounds retries when the storage layer reports a serialization
// failure on the stock rows.
const maxAttempts = 3

type service struct {
	repo      Repository
	publisher events.Publisher
	cache     catalog.Invalidator
}

// NewService creates a new order service. The repository writes stock rows
// directly, so the service drops the catalog's cached entries for the
// affected books once those writes commit.
func NewService(repo Repository, publisher events.Publisher, cache catalog.Invalidator) Service {
	return &service{repo: repo, publisher: publisher, cache: cache}
}

func (s *service) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if req.Address == "" {
		return nil, ErrValidation{Msg: "address is required"}
	}
	if req.Phone == "" {
		return nil, ErrValidation{Msg: "phone is required"}
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrValidation{Msg: fmt.Sprintf("invalid user id: %v", err)}
	}

	o := &Order{
		ID:      uuid.New(),
		UserID:  uid,
		Status:  StatusPending,
		Address: req.Address,
		Phone:   req.Phone,
	}
	for _, ci := range req.Items {
		if ci.Quantity < 1 {
			return nil, ErrValidation{Msg: fmt.Sprintf("quantity must be at least 1 for book %s", ci.BookID)}
		}
		bookID, err := uuid.Parse(ci.BookID)
		if err != nil {
			return nil, ErrValidation{Msg: fmt.Sprintf("invalid book_id %q: %v", ci.BookID, err)}
		}
		o.Items = append(o.Items, &LineItem{
			ID:       uuid.New(),
			OrderID:  o.ID,
			BookID:   bookID,
			Quantity: ci.Quantity,
		})
	}

	if err := s.withRetry(func() error { return s.repo.CreateOrder(ctx, o) }); err != nil {
		return nil, err
	}
	s.invalidateBooks(ctx, o)

	s.publisher.Publish(events.TopicOrderCreated, map[string]interface{}{
		"order_id": o.ID.String(),
		"user_id":  o.UserID.String(),
		"amount":   o.Amount,
	})

	// Re-read for the catalog display join, mirroring what the web client
	// expects from checkout.
	return s.repo.GetOrderByID(ctx, o.ID.String())
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAllOrders(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	status := Status(req.Status)
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus{Status: req.Status}
	}

	var o *Order
	err := s.withRetry(func() error {
		var err error
		o, err = s.repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCancelled {
		s.invalidateBooks(ctx, o)
	}

	s.publisher.Publish(events.TopicOrderStatusChanged, map[string]interface{}{
		"order_id": o.ID.String(),
		"status":   string(o.Status),
	})
	return o, nil
}

// invalidateBooks drops the cached catalog entries for every book whose stock
// the order just changed, so reads do not serve the pre-checkout value.
func (s *service) invalidateBooks(ctx context.Context, o *Order) {
	for _, item := range o.Items {
		s.cache.InvalidateBook(ctx, item.BookID.String())
	}
}

// withRetry re-runs op a bounded number of times when Postgres reports a
// serialization failure or deadlock on the contended stock rows, then
// surfaces ErrConcurrentModification.
func (s *service) withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = op()
		if !isSerializationFailure(err) {
			return err
		}
	}
	return ErrConcurrentModification
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
