package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain/keys"
	"github.com/motorline/goapi/service/redis"
	mRedis "github.com/motorline/goapi/service/redis/mocks"
)

type lockSuite struct {
	suite.Suite

	mu   sync.Mutex
	held map[string][]byte

	mRedis *mRedis.Service
}

func TestLockSuite(t *testing.T) {
	suite.Run(t, new(lockSuite))
}

// SetupTest backs the redis mock with a map so leases behave like real
// SETNX keys shared by every Service built from the same mock
func (s *lockSuite) SetupTest() {
	s.held = map[string][]byte{}
	s.mRedis = new(mRedis.Service)

	s.mRedis.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, key string, val []byte, expire time.Duration) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.held[key]; ok {
				return redis.ErrNotSet
			}
			s.held[key] = val
			return nil
		})
	s.mRedis.On("Get", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, key string) []byte {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.held[key]
		},
		func(c ctx.Ctx, key string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.held[key]; !ok {
				return redis.ErrNotFound
			}
			return nil
		})
	s.mRedis.On("Del", mock.Anything, mock.Anything).Return(
		func(c ctx.Ctx, ks ...string) int {
			s.mu.Lock()
			defer s.mu.Unlock()
			n := 0
			for _, k := range ks {
				if _, ok := s.held[k]; ok {
					delete(s.held, k)
					n++
				}
			}
			return n
		},
		func(c ctx.Ctx, ks ...string) error { return nil })
}

func (s *lockSuite) leaseKey(key string) string {
	return keys.RedisKey(keys.PfxAdmissionLock, key)
}

func (s *lockSuite) holder(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[s.leaseKey(key)]
}

func (s *lockSuite) TestAcquireRelease() {
	l := New(s.mRedis)

	release, err := l.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)
	s.NotNil(s.holder("auction-1"))

	release()
	s.Nil(s.holder("auction-1"))
}

// one lease per key, even for Services built in different processes
func (s *lockSuite) TestExcludesAcrossInstances() {
	api := New(s.mRedis)
	closer := New(s.mRedis)

	release, err := api.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)

	waitCtx, cancel := ctx.WithTimeout(ctx.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = closer.Acquire(waitCtx, "auction-1")
	s.Require().ErrorIs(err, ErrAcquireTimeout)

	release()
	release2, err := closer.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)
	release2()
}

func (s *lockSuite) TestWaiterProceedsAfterRelease() {
	api := New(s.mRedis)
	closer := New(s.mRedis)

	release, err := api.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)

	acquired := make(chan struct{})
	go func() {
		waitCtx, cancel := ctx.WithTimeout(ctx.Background(), 2*time.Second)
		defer cancel()
		release2, err := closer.Acquire(waitCtx, "auction-1")
		s.NoError(err)
		if err == nil {
			release2()
		}
		close(acquired)
	}()

	time.Sleep(50 * time.Millisecond)
	release()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		s.Fail("waiter never acquired the released lease")
	}
}

func (s *lockSuite) TestIndependentKeysDoNotContend() {
	l := New(s.mRedis)

	release1, err := l.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)
	defer release1()

	waitCtx, cancel := ctx.WithTimeout(ctx.Background(), 100*time.Millisecond)
	defer cancel()
	release2, err := l.Acquire(waitCtx, "auction-2")
	s.Require().NoError(err)
	release2()
}

// a lease that expired and was taken over elsewhere must not be cleared
// by the previous holder's release
func (s *lockSuite) TestReleaseKeepsForeignLease() {
	l := New(s.mRedis)

	release, err := l.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)

	s.mu.Lock()
	s.held[s.leaseKey("auction-1")] = []byte("someone-else")
	s.mu.Unlock()

	release()
	s.Equal([]byte("someone-else"), s.holder("auction-1"))
}

func (s *lockSuite) TestReleaseIdempotent() {
	l := New(s.mRedis)

	release, err := l.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)
	release()

	release2, err := l.Acquire(ctx.Background(), "auction-1")
	s.Require().NoError(err)

	// the stale release must not clear the new holder's lease
	release()
	s.NotNil(s.holder("auction-1"))
	release2()
}
