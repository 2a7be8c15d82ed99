package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"phantoms-store/logger"
	"phantoms-store/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCacheVersionKey = "products:list:version"
	productCacheTTL        = 5 * time.Minute
	productCacheOpTimeout  = 500 * time.Millisecond
)

// CachedProductList is one page of the public catalogue.
type CachedProductList struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

// ProductCache stores public product listings. Implementations must treat
// every failure as a miss.
//
// GetList returns the version it looked under. A page loaded after a miss must
// be written back with that version, so an invalidation that lands between
// the read and the write retires the page instead of republishing it.
// A negative version means the page must not be written.
type ProductCache interface {
	GetList(ctx context.Context, params models.ListParams) (*CachedProductList, int64, bool)
	SetList(ctx context.Context, version int64, params models.ListParams, list CachedProductList)
	Invalidate(ctx context.Context)
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache returns a Redis backed cache, or a no-op one when client is nil.
func NewProductCache(client *redis.Client) ProductCache {
	if client == nil {
		return NoopProductCache{}
	}
	return &redisProductCache{client: client, ttl: productCacheTTL}
}

// listCacheKey namespaces entries by the current version so a single INCR
// retires every cached page.
func listCacheKey(version int64, params models.ListParams) string {
	return fmt.Sprintf("products:list:v%d:c=%s:q=%s:p=%d:l=%d",
		version, params.Category, params.Search, params.Page, params.Limit)
}

func (c *redisProductCache) version(ctx context.Context) (int64, error) {
	raw, err := c.client.Get(ctx, productCacheVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (c *redisProductCache) GetList(ctx context.Context, params models.ListParams) (*CachedProductList, int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, productCacheOpTimeout)
	defer cancel()

	version, err := c.version(ctx)
	if err != nil {
		logger.Warn(ctx, "product cache version lookup failed", zap.Error(err))
		return nil, -1, false
	}

	raw, err := c.client.Get(ctx, listCacheKey(version, params)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx, "product cache read failed", zap.Error(err))
		}
		return nil, version, false
	}

	var list CachedProductList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, version, false
	}
	return &list, version, true
}

func (c *redisProductCache) SetList(ctx context.Context, version int64, params models.ListParams, list CachedProductList) {
	if version < 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), productCacheOpTimeout)
	defer cancel()

	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listCacheKey(version, params), payload, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "product cache write failed", zap.Error(err))
	}
}

func (c *redisProductCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), productCacheOpTimeout)
	defer cancel()

	if err := c.client.Incr(ctx, productCacheVersionKey).Err(); err != nil {
		logger.Warn(ctx, "product cache invalidation failed", zap.Error(err))
	}
}

type NoopProductCache struct{}

func (NoopProductCache) GetList(context.Context, models.ListParams) (*CachedProductList, int64, bool) {
	return nil, -1, false
}

func (NoopProductCache) SetList(context.Context, int64, models.ListParams, CachedProductList) {}

func (NoopProductCache) Invalidate(context.Context) {}
