// Package cache stores named-entity recognition results so repeated
// audits of the same text skip the provider call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from document text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "anoncheck:v1:" + hex.EncodeToString(hash[:])
}
