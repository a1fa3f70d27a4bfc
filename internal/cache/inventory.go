package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%s"

	// UserTTL bounds staleness of cached user records.
	UserTTL = 5 * time.Minute
)

// UserKey returns the cache key for a user record.
func UserKey(userID string) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// Invalidate removes a key from the cache, if a client is configured.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a user record from the cache.
func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}
