// Package redis wraps redigo behind a Service interface so callers never
// touch raw connections or reply conversion.
package redis

import (
	"fmt"
	"time"

	"github.com/motorline/goapi/base/ctx"
)

// Forever marks a key without expiry
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = fmt.Errorf("redis key not found")

	// ErrExpireNotExistOrTimeout is returned by Expire when the key does not
	// exist or the timeout could not be set
	ErrExpireNotExistOrTimeout = fmt.Errorf("key not exist or timeout not set")

	// ErrNotSet is returned by SetNX when the key already exists
	ErrNotSet = fmt.Errorf("redis key already set")
)

// MVal is one element of an MGet reply. Valid is false for missing keys.
type MVal struct {
	Valid bool
	Value []byte
}

// Service provides the redis commands used across the module
type Service interface {
	// Get returns the value at key, or ErrNotFound
	Get(context ctx.Ctx, key string) (val []byte, err error)

	// MGet returns the values for keys in order, marking missing keys invalid
	MGet(context ctx.Ctx, keys []string) ([]MVal, error)

	// Set stores val at key with the given expiry. Use Forever to skip expiry.
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// SetNX stores val only when the key does not exist yet, returning
	// ErrNotSet when it does
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// Del removes the given keys and returns how many existed
	Del(context ctx.Ctx, keys ...string) (int, error)

	// Expire resets the expiry of an existing key
	Expire(context ctx.Ctx, key string, ttl time.Duration) error

	// Incr increments the integer at key by one, initializing missing keys to 0
	Incr(context ctx.Ctx, key string) (int64, error)

	// TTL returns the remaining time to live of a key in seconds.
	// -1 means no expiry, ErrNotFound means no key.
	TTL(context ctx.Ctx, key string) (int64, error)
}
