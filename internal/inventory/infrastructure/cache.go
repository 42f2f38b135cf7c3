package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/inventory/domain"
	"storefront/internal/pkg/logger"
)

// ProductCache is the read-side cache in front of the product repository.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool)
	Set(ctx context.Context, product *domain.Product)
	Invalidate(ctx context.Context, id string)
}

// RedisProductCache caches product snapshots in Redis. Cache problems are
// never surfaced to callers; a miss or a Redis error just falls through to
// the repository.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func cacheKey(id string) string {
	return fmt.Sprintf("inventory:product:%s", id)
}

func (c *RedisProductCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *RedisProductCache) Set(ctx context.Context, product *domain.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(product.ID), raw, c.ttl).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("product_id", product.ID).Msg("product cache write failed")
	}
}

func (c *RedisProductCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

// CachedProductRepository decorates a ProductRepository with a read-through
// cache on FindByID. Every stock mutation invalidates the entry first so
// the ledger's quantities stay the source of truth; the cache only ever
// shortens the read path.
type CachedProductRepository struct {
	inner domain.ProductRepository
	cache ProductCache
}

func NewCachedProductRepository(inner domain.ProductRepository, cache ProductCache) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, cache: cache}
}

func (r *CachedProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.inner.List(ctx)
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if product, ok := r.cache.Get(ctx, id); ok {
		return product, nil
	}
	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, product)
	return product, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.inner.Create(ctx, product)
}

func (r *CachedProductRepository) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	r.cache.Invalidate(ctx, id)
	return r.inner.DecrementStock(ctx, id, qty)
}
