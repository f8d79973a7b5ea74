package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chainflow-engine/internal/core/cache"
	"chainflow-engine/internal/features/verification/domain"
)

const resultKeyPrefix = "verification:"

// CacheResultRepository implements ports.ResultCache on top of a cache.Cache.
type CacheResultRepository struct {
	cache cache.Cache
}

// NewCacheResultRepository creates a new CacheResultRepository.
func NewCacheResultRepository(c cache.Cache) *CacheResultRepository {
	return &CacheResultRepository{
		cache: c,
	}
}

// Get retrieves the result cached for productID.
func (r *CacheResultRepository) Get(ctx context.Context, productID string) (domain.Result, error) {
	data, err := r.cache.Get(ctx, resultKey(productID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return domain.Result{}, fmt.Errorf("%w: %s", domain.ErrResultNotCached, productID)
		}
		return domain.Result{}, fmt.Errorf("failed to get verification from cache: %w", err)
	}

	var result domain.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.Result{}, fmt.Errorf("failed to unmarshal verification: %w", err)
	}
	return result, nil
}

// Save stores result under its product id for ttl.
func (r *CacheResultRepository) Save(ctx context.Context, result domain.Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal verification: %w", err)
	}

	if err := r.cache.Set(ctx, resultKey(result.ProductID), data, ttl); err != nil {
		return fmt.Errorf("failed to save verification to cache: %w", err)
	}
	return nil
}

func resultKey(productID string) string {
	return resultKeyPrefix + productID
}
