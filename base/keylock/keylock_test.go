package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutualExclusionPerKey(t *testing.T) {
	l := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "auction-1")
			require.NoError(t, err)
			defer release()
			// data race here would be caught by -race
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestIndependentKeysDoNotContend(t *testing.T) {
	l := New()

	release1, err := l.Acquire(context.Background(), "auction-1")
	require.NoError(t, err)
	defer release1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	release2, err := l.Acquire(ctx, "auction-2")
	require.NoError(t, err)
	release2()
}

func TestAcquireTimeout(t *testing.T) {
	l := New()

	release, err := l.Acquire(context.Background(), "auction-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "auction-1")
	assert.ErrorIs(t, err, ErrAcquireTimeout)

	// entry must be reusable after the holder releases
	release()
	release2, err := l.Acquire(context.Background(), "auction-1")
	require.NoError(t, err)
	release2()
}

func TestReleaseIsIdempotent(t *testing.T) {
	l := New()

	release, err := l.Acquire(context.Background(), "auction-1")
	require.NoError(t, err)
	release()
	release()

	release2, err := l.Acquire(context.Background(), "auction-1")
	require.NoError(t, err)
	release2()
}
