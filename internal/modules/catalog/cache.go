package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops a book's cached entry after its stock is written outside
// the catalog's own repository methods, such as an order reserving or
// restoring stock.
type Invalidator interface {
	InvalidateBook(ctx context.Context, id string)
}

// NoopInvalidator is used when no cache is configured.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateBook(context.Context, string) {}

// CachedRepository decorates a Repository with a Redis read-through cache for
// book-by-id lookups. Writes invalidate the cached entry; list queries always
// hit the primary store.
type CachedRepository struct {
	primary Repository
	client  *redis.Client
	ttl     time.Duration
}

func NewCachedRepository(primary Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{primary: primary, client: client, ttl: ttl}
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*Book, error) {
	key := "book:" + id

	cached, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var b Book
		if err := json.Unmarshal(cached, &b); err == nil {
			return &b, nil
		}
	}

	b, err := r.primary.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(b); err == nil {
		r.client.Set(ctx, key, data, r.ttl)
	}
	return b, nil
}

func (r *CachedRepository) Create(ctx context.Context, b *Book) error {
	return r.primary.Create(ctx, b)
}

func (r *CachedRepository) List(ctx context.Context, filter ListFilter) ([]*Book, error) {
	return r.primary.List(ctx, filter)
}

func (r *CachedRepository) Categories(ctx context.Context) ([]string, error) {
	return r.primary.Categories(ctx)
}

func (r *CachedRepository) Update(ctx context.Context, b *Book) error {
	defer r.client.Del(ctx, "book:"+b.ID.String())
	return r.primary.Update(ctx, b)
}

func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	defer r.client.Del(ctx, "book:"+id)
	return r.primary.Delete(ctx, id)
}

func (r *CachedRepository) AdjustStock(ctx context.Context, id string, delta int) (*Book, error) {
	defer r.client.Del(ctx, "book:"+id)
	return r.primary.AdjustStock(ctx, id, delta)
}

func (r *CachedRepository) InvalidateBook(ctx context.Context, id string) {
	r.client.Del(ctx, "book:"+id)
}
