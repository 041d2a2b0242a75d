// Package observer is a client-side view of one auction. It refreshes its
// local highest bid and history from the read API on a fixed interval and
// reconciles the snapshot with what the observer itself has done in the
// meantime, so a stale poll never walks the suggested floor backwards past
// the observer's own accepted bid.
package observer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
)

const defaultInterval = 30 * time.Second

// Fetcher pulls the read-side state of one auction. service/marketclient
// is the HTTP implementation.
type Fetcher interface {
	Snapshot(c ctx.Ctx, auctionId domain.AuctionId) (*bid.Snapshot, error)
}

// View is what an observer sees between polls.
type View struct {
	AuctionId domain.AuctionId
	Highest   *bid.Bid
	History   []*bid.Bid
	// SuggestedMin is the lowest amount worth submitting. Zero until the
	// first poll or rejection teaches us a floor.
	SuggestedMin decimal.Decimal
	// Terminal is set once the market answers AuctionNotOpen. No further
	// submissions will be attempted.
	Terminal bool
	// RefreshedAt is the time of the last applied snapshot.
	RefreshedAt time.Time
}

// Observer keeps the view for one auction current.
type Observer interface {
	// Start launches the poll loop. Stop with the returned func.
	Start(c ctx.Ctx) (stop func())

	// Refresh polls once and reconciles.
	Refresh(c ctx.Ctx) error

	// View returns a copy of the current view.
	View() View

	// NoteAccepted records our own accepted bid. The floor moves up
	// immediately and survives snapshots that do not include the bid yet.
	NoteAccepted(b *bid.Bid)

	// NoteRejection folds a PlaceBid rejection into the view. BidTooLow
	// raises the suggested minimum to the reported floor, AuctionNotOpen
	// makes the view terminal. Other errors leave the view untouched.
	NoteRejection(err error)
}

type ObserverCfg struct {
	AuctionId domain.AuctionId
	Fetcher   Fetcher
	// Interval between polls, defaultInterval when zero.
	Interval time.Duration
}
