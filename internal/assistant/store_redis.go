// Copyright (c) 2026 Lumo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/lumo/internal/platform/constants"
)

// RedisSuggestionCache implements the SuggestionCache interface on Redis.
//
// Keys are namespaced under [constants.RedisPrefixSuggestion] so cache
// entries are identifiable and flushable as a group.
type RedisSuggestionCache struct {
	client *redis.Client
}

// NewRedisSuggestionCache creates a new Redis-backed suggestion cache.
func NewRedisSuggestionCache(client *redis.Client) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client}
}

func suggestionKey(userID string) string {
	return constants.RedisPrefixSuggestion + userID
}

/*
Get returns the cached suggestion for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Cached suggestion text (empty on miss)
  - bool: Whether a cached entry exists
  - error: Connectivity errors (a miss is not an error)
*/
func (cache *RedisSuggestionCache) Get(context context.Context, userID string) (string, bool, error) {
	value, err := cache.client.Get(context, suggestionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_suggestion_cache_get_failed: %w", err)
	}
	return value, true, nil
}

/*
Set stores a suggestion for a user with the given TTL.

Parameters:
  - context: context.Context
  - userID: string
  - suggestion: string
  - ttl: time.Duration (expiry; must be positive)

Returns:
  - error: Connectivity errors
*/
func (cache *RedisSuggestionCache) Set(context context.Context, userID string, suggestion string, ttl time.Duration) error {
	if err := cache.client.Set(context, suggestionKey(userID), suggestion, ttl).Err(); err != nil {
		return fmt.Errorf("redis_suggestion_cache_set_failed: %w", err)
	}
	return nil
}
