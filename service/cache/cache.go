package cache

import (
	"errors"
	"time"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/service/cache/provider"
)

var (
	ErrNotFound = errors.New("cache not found")
)

type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service is a typed cache over a raw byte provider
type Service interface {
	// GetByFunc returns the cached value, falling back to getter on a miss
	// and filling the cache with its result
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}
