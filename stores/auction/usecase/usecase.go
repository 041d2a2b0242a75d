package usecase

import (
	"time"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/base/ptr"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	"github.com/motorline/goapi/domain/bid"
	"github.com/motorline/goapi/domain/listing"
)

var timeNow = time.Now

type AuctionUseCaseCfg struct {
	Auction auction.Repo
	Listing listing.Repo
	Ledger  bid.Ledger
}

type impl struct {
	auction auction.Repo
	listing listing.Repo
	ledger  bid.Ledger
	met     metrics.Service
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	return &impl{
		auction: cfg.Auction,
		listing: cfg.Listing,
		ledger:  cfg.Ledger,
		met:     metrics.New("auction"),
	}
}

// Get returns the runtime record, bootstrapping it from the listing
// collaborator on first access. A concurrent bootstrap loses the insert
// race and rereads, so both callers see the same document.
func (im *impl) Get(c ctx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	a, err := im.auction.FindOne(c, id)
	if err == nil {
		return a, nil
	}
	if err != domain.ErrNotFound {
		c.WithField("err", err).Error("auction.FindOne failed")
		return nil, err
	}

	cfg, err := im.listing.Get(c, id)
	if err != nil {
		c.WithField("err", err).Error("listing.Get failed")
		return nil, domain.ErrNotFound
	}

	now := timeNow().UTC()
	a = &auction.Auction{
		Id:              cfg.AuctionId,
		VehicleId:       cfg.VehicleId,
		StartingPrice:   cfg.StartingPrice,
		MinIncrement:    cfg.MinIncrement,
		ReserveAmount:   cfg.ReserveAmount,
		ScheduledStart:  cfg.ScheduledStart,
		ScheduledEnd:    cfg.ScheduledEnd,
		ExtensionWindow: cfg.ExtensionWindow,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := im.auction.Create(c, a); err != nil {
		if err == domain.ErrConflict {
			return im.auction.FindOne(c, id)
		}
		c.WithField("err", err).Error("auction.Create failed")
		return nil, err
	}
	im.met.BumpSum("bootstrapped", 1)
	return a, nil
}

func (im *impl) ApplyExtension(c ctx.Ctx, value *auction.Auction) error {
	patchable := auction.Patchable{
		ScheduledEnd: ptr.Time(value.ScheduledEnd),
		UpdatedAt:    ptr.Time(timeNow().UTC()),
	}
	if err := im.auction.Patch(c, value.Id, patchable); err != nil {
		c.WithField("err", err).Error("auction.Patch failed")
		return err
	}
	im.met.BumpSum("extended", 1)
	return nil
}

// Finalize resolves the outcome of an ended auction: noBids when the ledger
// is empty, reserveNotMet when a reserve is set and unmet, sold otherwise.
// Idempotent: a closed auction is returned as-is.
func (im *impl) Finalize(c ctx.Ctx, id domain.AuctionId, now time.Time) (*auction.Auction, error) {
	a, err := im.auction.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	if a.Closed {
		return a, nil
	}
	if now.Before(a.ScheduledEnd) {
		return nil, domain.ErrConflict
	}

	outcome := auction.OutcomeNoBids
	var winningBidId *domain.BidId

	highest, err := im.ledger.HighestBid(c, id)
	if err != nil {
		c.WithField("err", err).Error("ledger.HighestBid failed")
		return nil, err
	}
	if highest != nil {
		if reserve, ok := a.ReserveDecimal(); ok && highest.AmountDecimal().LessThan(reserve) {
			outcome = auction.OutcomeReserveNotMet
		} else {
			outcome = auction.OutcomeSold
			winningBidId = &highest.BidId
		}
	}

	patchable := auction.Patchable{
		Closed:       ptr.Bool(true),
		ClosedAt:     ptr.Time(now),
		Outcome:      &outcome,
		WinningBidId: winningBidId,
		UpdatedAt:    ptr.Time(timeNow().UTC()),
	}
	if err := im.auction.Patch(c, id, patchable); err != nil {
		c.WithField("err", err).Error("auction.Patch failed")
		return nil, err
	}

	a.Closed = true
	a.ClosedAt = &now
	a.Outcome = outcome
	a.WinningBidId = winningBidId
	return a, nil
}

func (im *impl) ListEndedOpen(c ctx.Ctx, now time.Time, limit int32) ([]*auction.Auction, error) {
	res, err := im.auction.FindAll(c,
		auction.WithClosed(false),
		auction.WithEndedBefore(now),
		auction.WithPagination(0, limit),
	)
	if err != nil {
		c.WithField("err", err).Error("auction.FindAll failed")
		return nil, err
	}
	return res, nil
}
