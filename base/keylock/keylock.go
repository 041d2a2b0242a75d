// Package keylock provides mutual exclusion keyed by an arbitrary string,
// one independent critical section per key. Locks for distinct keys never
// contend with each other. Exclusion holds within a single process only.
package keylock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"
)

// ErrAcquireTimeout is returned when the context expires before the lock
// for the key could be acquired.
var ErrAcquireTimeout = xerrors.New("keylock: acquire timed out")

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

func (l *KeyLock) get(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *KeyLock) put(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Acquire blocks until the lock for key is held or ctx is done. The
// returned release function is idempotent.
func (l *KeyLock) Acquire(ctx context.Context, key string) (release func(), err error) {
	e := l.get(key)
	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.put(key, e)
		return nil, ErrAcquireTimeout
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.put(key, e)
		})
	}, nil
}
