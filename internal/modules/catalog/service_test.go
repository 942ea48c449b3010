package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository honoring the atomic AdjustStock
// contract.
type fakeRepo struct {
	mu    sync.Mutex
	books map[uuid.UUID]*Book
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{books: make(map[uuid.UUID]*Book)}
}

func (r *fakeRepo) Create(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookNotFound{BookID: id}
	}
	b, ok := r.books[uid]
	if !ok {
		return nil, ErrBookNotFound{BookID: id}
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter ListFilter) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var books []*Book
	for _, b := range r.books {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		copied := *b
		books = append(books, &copied)
	}
	return books, nil
}

func (r *fakeRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var categories []string
	for _, b := range r.books {
		if !seen[b.Category] {
			seen[b.Category] = true
			categories = append(categories, b.Category)
		}
	}
	return categories, nil
}

func (r *fakeRepo) Update(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return ErrBookNotFound{BookID: b.ID.String()}
	}
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrBookNotFound{BookID: id}
	}
	if _, ok := r.books[uid]; !ok {
		return ErrBookNotFound{BookID: id}
	}
	delete(r.books, uid)
	return nil
}

func (r *fakeRepo) AdjustStock(_ context.Context, id string, delta int) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookNotFound{BookID: id}
	}
	b, ok := r.books[uid]
	if !ok {
		return nil, ErrBookNotFound{BookID: id}
	}
	if b.Stock+delta < 0 {
		return nil, ErrInsufficientStock{BookID: id}
	}
	b.Stock += delta
	copied := *b
	return &copied, nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	t.Run("requires title and author", func(t *testing.T) {
		_, err := svc.CreateBook(ctx, BookRequest{Title: "Dune"})
		assert.EqualError(t, err, "title and author are required")
	})

	t.Run("rejects negative price and stock", func(t *testing.T) {
		_, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Author: "Frank Herbert", Price: ptr(-1.0)})
		assert.EqualError(t, err, "price must not be negative")

		_, err = svc.CreateBook(ctx, BookRequest{Title: "Dune", Author: "Frank Herbert", Stock: ptr(-1)})
		assert.EqualError(t, err, "stock must not be negative")
	})

	t.Run("defaults the image", func(t *testing.T) {
		b, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Author: "Frank Herbert", Price: ptr(9.99), Stock: ptr(4)})
		require.NoError(t, err)
		assert.Equal(t, "default-book.jpg", b.Image)
		assert.Equal(t, 4, b.Stock)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	b, err := svc.CreateBook(ctx, BookRequest{
		Title: "Dune", Author: "Frank Herbert", Price: ptr(9.99), Stock: ptr(4), Category: "Science Fiction",
	})
	require.NoError(t, err)

	t.Run("empty fields keep the stored value", func(t *testing.T) {
		got, err := svc.UpdateBook(ctx, b.ID.String(), BookRequest{Price: ptr(12.50)})
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, "Frank Herbert", got.Author)
		assert.Equal(t, 12.50, got.Price)
		assert.Equal(t, 4, got.Stock)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := svc.UpdateBook(ctx, uuid.New().String(), BookRequest{Title: "x"})
		var notFound ErrBookNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	b, err := svc.CreateBook(ctx, BookRequest{Title: "Dune", Author: "Frank Herbert", Stock: ptr(3)})
	require.NoError(t, err)

	got, err := svc.AdjustStock(ctx, b.ID.String(), -2)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	_, err = svc.AdjustStock(ctx, b.ID.String(), -2)
	var noStock ErrInsufficientStock
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, b.ID.String(), noStock.BookID)

	got, err = svc.AdjustStock(ctx, b.ID.String(), 5)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)
}
