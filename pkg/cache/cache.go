// Package cache stores image similarity scores between runs.
//
// Scores are addressed by the content of both images, so renaming or
// touching a file does not invalidate them while editing a pixel does.
// Two implementations are provided: FileCache for the CLI and NullCache
// for --no-cache.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key; ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// ScoreKey returns the key for the similarity score of two images, given
// their raw contents. The order of the images matters.
func ScoreKey(first, second []byte) string {
	return hashKey("ssim", Hash(first), Hash(second))
}

// GetScore reads a score stored with SetScore.
func GetScore(ctx context.Context, c Cache, key string) (int, bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	score, err := strconv.Atoi(string(data))
	if err != nil {
		// corrupt entry, recompute
		_ = c.Delete(ctx, key)
		return 0, false, nil
	}
	return score, true, nil
}

// SetScore stores score under key without expiration.
func SetScore(ctx context.Context, c Cache, key string, score int) error {
	return c.Set(ctx, key, []byte(strconv.Itoa(score)), 0)
}
