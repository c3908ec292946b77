// Package cache stores oracle responses so re-runs of the correction
// loop never repeat a paid request for the same record.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResponseKey generates a cache key for a record's oracle response
func ResponseKey(recordID string) string {
	hash := sha256.Sum256([]byte(recordID))
	return "silsila:v1:" + hex.EncodeToString(hash[:])
}
