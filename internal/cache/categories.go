// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// categories.go provides a Valkey-backed cache for the backend's category
// list. Categories are read-only reference data, so a short TTL keeps
// the post form responsive without any invalidation protocol. Posts are
// never cached — views always fetch them fresh.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"blogfront/internal/models"
)

const (
	// categoriesKey is the Valkey key holding the cached category list.
	categoriesKey = "categories"

	// DefaultCategoryTTL is how long the category list stays cached.
	DefaultCategoryTTL = 5 * time.Minute
)

// CategoryCache holds the backend's category list in Valkey.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache creates a category cache backed by the given Valkey client.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	if ttl == 0 {
		ttl = DefaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Get retrieves the cached category list. Returns false on miss or any
// cache error — callers fall through to the backend.
func (cc *CategoryCache) Get(ctx context.Context) ([]models.Category, bool) {
	val, err := cc.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("category cache get error", "error", err)
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(val, &categories); err != nil {
		slog.Warn("category cache decode error", "error", err)
		return nil, false
	}

	slog.Debug("category cache hit", "count", len(categories))
	return categories, true
}

// Set stores the category list with the configured TTL. Errors are logged
// and swallowed — caching is best-effort.
func (cc *CategoryCache) Set(ctx context.Context, categories []models.Category) {
	payload, err := json.Marshal(categories)
	if err != nil {
		slog.Warn("category cache encode error", "error", err)
		return
	}
	if err := cc.client.Set(ctx, categoriesKey, payload, cc.ttl).Err(); err != nil {
		slog.Warn("category cache set error", "error", err)
	}
}

// Invalidate drops the cached list.
func (cc *CategoryCache) Invalidate(ctx context.Context) {
	if err := cc.client.Del(ctx, categoriesKey).Err(); err != nil {
		slog.Warn("category cache invalidate error", "error", err)
	}
}
