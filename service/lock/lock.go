// Package lock provides per-key mutual exclusion that holds across
// processes. The api and closer binaries serialize on the same auction
// through a shared redis lease, so an admission in one process and a
// closure sweep in another can never interleave on one auction.
package lock

import (
	"golang.org/x/xerrors"

	"github.com/motorline/goapi/base/ctx"
)

// ErrAcquireTimeout is returned when the context expires before the lease
// for the key could be acquired.
var ErrAcquireTimeout = xerrors.New("lock: acquire timed out")

// Service hands out exclusive leases keyed by an arbitrary string
type Service interface {
	// Acquire blocks until the lease for key is held or the context ends.
	// The returned release function is idempotent.
	Acquire(context ctx.Ctx, key string) (release func(), err error)
}
