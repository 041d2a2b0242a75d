package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	"github.com/motorline/goapi/domain/bid"
	"github.com/motorline/goapi/service/alert"
	"github.com/motorline/goapi/service/cache"
	"github.com/motorline/goapi/service/lock"
)

const (
	// lockTimeout bounds how long one placeBid waits behind others on the
	// same auction before giving up with ErrUnavailable
	lockTimeout = 5 * time.Second
)

var timeNow = time.Now

type BidUseCaseCfg struct {
	Ledger  bid.Ledger
	Auction auction.Usecase
	Locks   lock.Service
	// Cache holds observer snapshots, keyed by auctionId
	Cache cache.Service
	Alert alert.Service
}

type impl struct {
	ledger  bid.Ledger
	auction auction.Usecase
	locks   lock.Service
	cache   cache.Service
	alert   alert.Service
	met     metrics.Service
}

func New(cfg *BidUseCaseCfg) bid.Usecase {
	return &impl{
		ledger:  cfg.Ledger,
		auction: cfg.Auction,
		locks:   cfg.Locks,
		cache:   cfg.Cache,
		alert:   cfg.Alert,
		met:     metrics.New("bid"),
	}
}

// PlaceBid admits one bid. The floor check and the ledger append happen
// under the auction's lease so no two admissions for the same auction
// interleave, in this process or any other; reads and bids on other
// auctions are never blocked. Cache invalidation and alerts run after the
// lease is released.
func (im *impl) PlaceBid(c ctx.Ctx, auctionId domain.AuctionId, bidderId domain.BidderId, amount decimal.Decimal, now time.Time) (*bid.Bid, error) {
	defer im.met.BumpTime("placeBid.time").End()

	if bidderId == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !amount.IsPositive() {
		im.met.BumpSum("placeBid.rejected", 1, "reason", "invalidAmount")
		return nil, domain.ErrInvalidAmount
	}

	id, err := uuid.NewRandom()
	if err != nil {
		c.WithField("err", err).Error("uuid.NewRandom failed")
		return nil, domain.ErrUnavailable
	}
	candidate := &bid.Bid{
		BidId:     domain.BidId(id.String()),
		AuctionId: auctionId,
		BidderId:  bidderId,
		Amount:    amount.String(),
	}

	lockCtx, cancel := ctx.WithTimeout(c, lockTimeout)
	defer cancel()
	release, err := im.locks.Acquire(lockCtx, auctionId.String())
	if err != nil {
		im.met.BumpSum("placeBid.err", 1, "reason", "lockTimeout")
		c.WithField("err", err).Warn("admission lease acquire timed out")
		return nil, domain.ErrUnavailable
	}
	defer release()

	stored, err := im.admit(c, candidate, amount, now)
	release()

	if err != nil {
		if err == domain.ErrLedgerCorrupt {
			detail := fmt.Sprintf("duplicate ledger sequence while appending bid %s", candidate.BidId)
			if alertErr := im.alert.NotifyInvariantViolation(c, auctionId, detail); alertErr != nil {
				c.WithField("err", alertErr).Error("NotifyInvariantViolation failed")
			}
			return nil, domain.ErrUnavailable
		}
		return nil, err
	}

	if err := im.cache.Del(c, auctionId.String()); err != nil {
		c.WithField("err", err).Warn("snapshot cache invalidation failed")
	}

	return stored, nil
}

// admit is the exclusive section of PlaceBid. The caller holds the
// auction's lease; nothing in here may call out past the ledger and the
// auction store. ErrLedgerCorrupt passes through raw so the caller can
// page after releasing.
func (im *impl) admit(c ctx.Ctx, candidate *bid.Bid, amount decimal.Decimal, now time.Time) (*bid.Bid, error) {
	a, err := im.auction.Get(c, candidate.AuctionId)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		c.WithField("err", err).Error("auction.Get failed")
		return nil, domain.ErrUnavailable
	}

	if !a.CurrentState(now).AdmitsBids() {
		im.met.BumpSum("placeBid.rejected", 1, "reason", "notOpen")
		return nil, domain.ErrAuctionNotOpen
	}

	highest, err := im.ledger.HighestBid(c, candidate.AuctionId)
	if err != nil {
		c.WithField("err", err).Error("ledger.HighestBid failed")
		return nil, domain.ErrUnavailable
	}

	// every bid must clear the increment, the opening one included
	floor := a.StartingPriceDecimal().Add(a.MinIncrementDecimal())
	if highest != nil {
		floor = highest.AmountDecimal().Add(a.MinIncrementDecimal())
	}
	if amount.LessThan(floor) {
		im.met.BumpSum("placeBid.rejected", 1, "reason", "tooLow")
		return nil, &domain.BidTooLowError{Floor: floor}
	}

	stored, err := im.ledger.Append(c, candidate)
	if err != nil {
		c.WithField("err", err).Error("ledger.Append failed")
		if err == domain.ErrLedgerCorrupt {
			return nil, err
		}
		return nil, domain.ErrUnavailable
	}
	im.met.BumpSum("placeBid.accepted", 1)

	if a.ExtendForBid(now) {
		// the bid already stands; a failed extension write is retried by
		// the next qualifying bid inside the window
		if err := im.auction.ApplyExtension(c, a); err != nil {
			c.WithField("err", err).Error("auction.ApplyExtension failed")
		}
	}

	return stored, nil
}

func (im *impl) GetHighestBid(c ctx.Ctx, auctionId domain.AuctionId) (*bid.Bid, error) {
	highest, err := im.ledger.HighestBid(c, auctionId)
	if err != nil {
		c.WithField("err", err).Error("ledger.HighestBid failed")
		return nil, err
	}
	if highest == nil {
		return nil, domain.ErrNotFound
	}
	return highest, nil
}

func (im *impl) GetBidHistory(c ctx.Ctx, auctionId domain.AuctionId, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	history, err := im.ledger.History(c, auctionId, opts...)
	if err != nil {
		c.WithField("err", err).Error("ledger.History failed")
		return nil, err
	}
	return history, nil
}

func (im *impl) GetSnapshot(c ctx.Ctx, auctionId domain.AuctionId) (*bid.Snapshot, error) {
	res := bid.Snapshot{}
	if err := im.cache.GetByFunc(c, auctionId.String(), &res, func() (interface{}, error) {
		return im.takeSnapshot(c, auctionId)
	}); err != nil {
		c.WithField("err", err).Error("GetSnapshot failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) takeSnapshot(c ctx.Ctx, auctionId domain.AuctionId) (*bid.Snapshot, error) {
	history, err := im.ledger.History(c, auctionId)
	if err != nil {
		return nil, err
	}
	var highest *bid.Bid
	if len(history) > 0 {
		highest = history[len(history)-1]
	}
	return &bid.Snapshot{
		AuctionId: auctionId,
		Highest:   highest,
		History:   history,
		TakenAt:   timeNow().UTC(),
	}, nil
}

// FinalizeAuction closes one auction under the same lease admissions take,
// so a closure sweep in the closer binary can never interleave with an
// admission extending the deadline. Notifications and cache invalidation
// run after the lease is released.
func (im *impl) FinalizeAuction(c ctx.Ctx, auctionId domain.AuctionId, now time.Time) error {
	defer im.met.BumpTime("finalize.time").End()

	lockCtx, cancel := ctx.WithTimeout(c, lockTimeout)
	defer cancel()
	release, err := im.locks.Acquire(lockCtx, auctionId.String())
	if err != nil {
		c.WithField("err", err).Warn("admission lease acquire timed out")
		return domain.ErrUnavailable
	}
	defer release()

	closed, winning, err := im.close(c, auctionId, now)
	release()

	if err != nil {
		return err
	}
	if closed == nil {
		return nil
	}

	if winning != nil {
		if err := im.alert.NotifySold(c, closed, winning); err != nil {
			c.WithField("err", err).Error("NotifySold failed")
		}
	}

	if err := im.cache.Del(c, auctionId.String()); err != nil {
		c.WithField("err", err).Warn("snapshot cache invalidation failed")
	}

	return nil
}

// close is the exclusive section of FinalizeAuction. A nil auction means
// the closure was already recorded and there is nothing left to do.
func (im *impl) close(c ctx.Ctx, auctionId domain.AuctionId, now time.Time) (*auction.Auction, *bid.Bid, error) {
	a, err := im.auction.Get(c, auctionId)
	if err != nil {
		c.WithField("err", err).Error("auction.Get failed")
		return nil, nil, err
	}
	if a.Closed {
		return nil, nil, nil
	}

	closed, err := im.auction.Finalize(c, auctionId, now)
	if err != nil {
		c.WithField("err", err).Error("auction.Finalize failed")
		return nil, nil, err
	}
	im.met.BumpSum("finalize.closed", 1, "outcome", string(closed.Outcome))

	var winning *bid.Bid
	if closed.Outcome == auction.OutcomeSold {
		winning, err = im.ledger.HighestBid(c, auctionId)
		if err != nil {
			c.WithField("err", err).Error("ledger.HighestBid failed")
			winning = nil
		}
	}

	return closed, winning, nil
}
