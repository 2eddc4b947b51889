// Package cache holds embedded vectors so repeated matching passes do not
// re-embed the same report text. Keys are derived from the model name and
// the exact input text, so a model switch never serves stale vectors.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for vector caching.
type Cache interface {
	Get(key string) ([]float32, bool)
	Set(key string, vector []float32, ttl time.Duration)
	Clear()
}

// Key generates a cache key for a text embedded with the given model.
func Key(model, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return "refind:v1:" + hex.EncodeToString(hash[:])
}
