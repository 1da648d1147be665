package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// ProductCacheTTL bounds how stale a cached product can get. The catalog is
// read-mostly, so a few minutes is acceptable.
const ProductCacheTTL = 5 * time.Minute

const productCachePrefix = "cache:product:"

// CachedProduct represents a cached catalog entry.
type CachedProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Stock    int     `json:"stock"`
}

// GetProduct retrieves a product from cache. Returns nil on a miss.
func (s *CacheStore) GetProduct(ctx context.Context, productID string) (*CachedProduct, error) {
	key := productCachePrefix + productID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var product CachedProduct
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SetProduct stores a product in cache.
func (s *CacheStore) SetProduct(ctx context.Context, product *CachedProduct) error {
	key := productCachePrefix + product.ID
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ProductCacheTTL).Err()
}

// InvalidateProduct removes a product from cache.
func (s *CacheStore) InvalidateProduct(ctx context.Context, productID string) error {
	key := productCachePrefix + productID
	return s.client.Del(ctx, key).Err()
}
