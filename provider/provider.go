// Package provider defines the key-value store used by bundlecache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation).
//
// Keys are "<prefix><language>" with no separator. Any other value stored under
// the configured prefix is read as a cache record, and deleted if it does not
// decode as one.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrRejected is returned by Set when the store refused the write under
// pressure (admission policy, full buffer) without an I/O failure.
var ErrRejected = errors.New("provider: write rejected")

// Provider is a minimal byte store with optional per-key TTL.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value. ttl <= 0 means no expiry; stores without per-key
	// expiry may ignore it. A nil error means the value is readable by Get.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
