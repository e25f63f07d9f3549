package api

import (
	"context"                       // Context for Redis operations
	"health_tracker/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache namespaces
const (
	usersNamespace   = "users"
	entriesNamespace = "entries"
)

// readCache looks up a cached list. It returns the key to fill on a miss, or
// an empty key when caching is off or redis is unreachable.
func readCache(c *gin.Context, rdb *redis.Client, namespace, suffix string, dest any) (string, bool) {
	if rdb == nil {
		return "", false // Cache disabled
	}
	ctx := c.Request.Context()
	gen, err := utils.Generation(ctx, rdb, namespace)
	if err != nil {
		logrus.WithError(err).Warn("Cache generation lookup failed")
		return "", false
	}
	key := utils.GenerationKey(namespace, gen, suffix)
	found, err := utils.GetCache(ctx, rdb, key, dest)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
		return key, false
	}
	return key, found
}

// writeCache stores a list under a key returned by readCache
func writeCache(ctx context.Context, rdb *redis.Client, key string, value any) {
	if rdb == nil || key == "" {
		return
	}
	if err := utils.SetCache(ctx, rdb, key, value, utils.DefaultCacheTTL); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// invalidate drops every cached list of the given namespaces
func invalidate(ctx context.Context, rdb *redis.Client, namespaces ...string) {
	if rdb == nil {
		return
	}
	if err := utils.BumpGeneration(ctx, rdb, namespaces...); err != nil {
		logrus.WithError(err).WithField("namespaces", namespaces).Warn("Cache invalidation failed")
	}
}
