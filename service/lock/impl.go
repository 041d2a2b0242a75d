package lock

import (
	"bytes"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motorline/goapi/base/backoff"
	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/keylock"
	"github.com/motorline/goapi/domain/keys"
	"github.com/motorline/goapi/service/redis"
)

const (
	// leaseTTL caps how long a crashed holder can block the key for
	// everyone else
	leaseTTL = 10 * time.Second

	// retryInterval paces the SETNX loop while another process holds
	// the lease
	retryInterval = 25 * time.Millisecond
)

type impl struct {
	red redis.Service
	// local keeps same-process waiters queued off redis, so only one
	// goroutine per process polls a contended lease
	local *keylock.KeyLock
}

func New(red redis.Service) Service {
	return &impl{
		red:   red,
		local: keylock.New(),
	}
}

func (im *impl) Acquire(context ctx.Ctx, key string) (release func(), err error) {
	releaseLocal, err := im.local.Acquire(context, key)
	if err != nil {
		return nil, ErrAcquireTimeout
	}

	id, err := uuid.NewRandom()
	if err != nil {
		releaseLocal()
		return nil, err
	}
	token := []byte(id.String())
	leaseKey := keys.RedisKey(keys.PfxAdmissionLock, key)

	bo := backoff.NewConstantBackoff(retryInterval)
	for {
		err := im.red.SetNX(context, leaseKey, token, leaseTTL)
		if err == nil {
			break
		}
		if err != redis.ErrNotSet {
			context.WithField("err", err).Error("lease SetNX failed")
			releaseLocal()
			return nil, err
		}
		if err := bo.Backoff(context); err != nil {
			releaseLocal()
			return nil, ErrAcquireTimeout
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// only our own token may be cleared; a lease that expired
			// and was re-acquired elsewhere stays untouched
			held, err := im.red.Get(context, leaseKey)
			if err == nil && bytes.Equal(held, token) {
				if _, err := im.red.Del(context, leaseKey); err != nil {
					context.WithField("err", err).Warn("lease Del failed")
				}
			}
			releaseLocal()
		})
	}, nil
}
