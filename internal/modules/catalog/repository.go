package catalog

import "context"

// Repository defines the interface for book catalog storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error

	// GetByID retrieves a book by UUID. Returns ErrBookNotFound if absent.
	GetByID(ctx context.Context, id string) (*Book, error)

	// List returns books matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Book, error)

	// Categories returns the distinct categories present in the catalog.
	Categories(ctx context.Context) ([]string, error)

	Update(ctx context.Context, b *Book) error

	Delete(ctx context.Context, id string) error

	// AdjustStock applies stock += delta as a single atomic check-and-write.
	// Returns ErrInsufficientStock if the adjustment would make stock
	// negative, ErrBookNotFound if the book does not exist.
	AdjustStock(ctx context.Context, id string, delta int) (*Book, error)
}
