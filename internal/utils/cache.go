package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultCacheTTL bounds how long a cached list survives without a mutation
const DefaultCacheTTL = 5 * time.Minute

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

func generationKey(namespace string) string {
	return "gen:" + namespace
}

// Generation returns the current generation of a cache namespace. Keys built
// with GenerationKey go stale as soon as the generation moves.
func Generation(ctx context.Context, rdb *redis.Client, namespace string) (int64, error) {
	gen, err := rdb.Get(ctx, generationKey(namespace)).Int64()
	if err == redis.Nil {
		return 0, nil // Never bumped
	}
	return gen, err
}

// BumpGeneration invalidates every key of a namespace at once
func BumpGeneration(ctx context.Context, rdb *redis.Client, namespaces ...string) error {
	pipe := rdb.TxPipeline()
	for _, ns := range namespaces {
		pipe.Incr(ctx, generationKey(ns))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GenerationKey builds a cache key scoped to a namespace generation
func GenerationKey(namespace string, gen int64, suffix string) string {
	return fmt.Sprintf("%s:v%d:%s", namespace, gen, suffix)
}
