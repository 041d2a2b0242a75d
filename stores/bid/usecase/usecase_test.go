package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	mAuction "github.com/motorline/goapi/domain/auction/mocks"
	"github.com/motorline/goapi/domain/bid"
	mBid "github.com/motorline/goapi/domain/bid/mocks"
	"github.com/motorline/goapi/domain/keys"
	mAlert "github.com/motorline/goapi/service/alert/mocks"
	"github.com/motorline/goapi/service/cache"
	"github.com/motorline/goapi/service/cache/provider/primitive"
	"github.com/motorline/goapi/service/lock"
	"github.com/motorline/goapi/service/redis"
	mRedis "github.com/motorline/goapi/service/redis/mocks"
)

const auctionId = domain.AuctionId("auction-1")

type placeBidSuite struct {
	suite.Suite

	c       bCtx.Ctx
	ledger  *mBid.Ledger
	auction *mAuction.Usecase
	alert   *mAlert.Service
	locks   lock.Service
	uc      bid.Usecase

	leaseMu sync.Mutex
	leases  map[string][]byte

	start time.Time
	end   time.Time
}

func TestPlaceBidSuite(t *testing.T) {
	suite.Run(t, new(placeBidSuite))
}

func (s *placeBidSuite) SetupTest() {
	s.c = bCtx.Background()
	s.ledger = &mBid.Ledger{}
	s.auction = &mAuction.Usecase{}
	s.alert = &mAlert.Service{}
	s.locks = lock.New(s.newLeaseRedis())
	s.uc = New(&BidUseCaseCfg{
		Ledger:  s.ledger,
		Auction: s.auction,
		Locks:   s.locks,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Second,
			Pfx:   keys.PfxBidSnapshot,
			Cache: primitive.NewPrimitive("test", 1),
		}),
		Alert: s.alert,
	})

	s.start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.end = s.start.Add(time.Hour)
}

// newLeaseRedis backs the lease redis with a map so admissions contend on
// real SETNX semantics
func (s *placeBidSuite) newLeaseRedis() *mRedis.Service {
	s.leases = map[string][]byte{}
	m := &mRedis.Service{}
	m.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(
		func(c bCtx.Ctx, key string, val []byte, expire time.Duration) error {
			s.leaseMu.Lock()
			defer s.leaseMu.Unlock()
			if _, ok := s.leases[key]; ok {
				return redis.ErrNotSet
			}
			s.leases[key] = val
			return nil
		})
	m.On("Get", mock.Anything, mock.Anything).Return(
		func(c bCtx.Ctx, key string) []byte {
			s.leaseMu.Lock()
			defer s.leaseMu.Unlock()
			return s.leases[key]
		},
		func(c bCtx.Ctx, key string) error {
			s.leaseMu.Lock()
			defer s.leaseMu.Unlock()
			if _, ok := s.leases[key]; !ok {
				return redis.ErrNotFound
			}
			return nil
		})
	m.On("Del", mock.Anything, mock.Anything).Return(
		func(c bCtx.Ctx, ks ...string) int {
			s.leaseMu.Lock()
			defer s.leaseMu.Unlock()
			n := 0
			for _, k := range ks {
				if _, ok := s.leases[k]; ok {
					delete(s.leases, k)
					n++
				}
			}
			return n
		},
		func(c bCtx.Ctx, ks ...string) error { return nil })
	return m
}

func (s *placeBidSuite) newAuction() *auction.Auction {
	return &auction.Auction{
		Id:              auctionId,
		VehicleId:       "vehicle-1",
		StartingPrice:   "10000",
		MinIncrement:    "500",
		ScheduledStart:  s.start,
		ScheduledEnd:    s.end,
		ExtensionWindow: 2 * time.Minute,
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func (s *placeBidSuite) TestUnauthenticated() {
	_, err := s.uc.PlaceBid(s.c, auctionId, "", dec("10500"), s.start.Add(time.Minute))
	s.Equal(domain.ErrUnauthenticated, err)
}

func (s *placeBidSuite) TestInvalidAmount() {
	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("0"), s.start.Add(time.Minute))
	s.Equal(domain.ErrInvalidAmount, err)

	_, err = s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("-5"), s.start.Add(time.Minute))
	s.Equal(domain.ErrInvalidAmount, err)
}

func (s *placeBidSuite) TestNotOpenBeforeStart() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(-time.Second))
	s.Equal(domain.ErrAuctionNotOpen, err)
}

func (s *placeBidSuite) TestNotOpenAfterEnd() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("99999"), s.end.Add(time.Second))
	s.Equal(domain.ErrAuctionNotOpen, err)
}

// a bid landing at the exact scheduledEnd instant is judged against the
// still-open auction and extends it
func (s *placeBidSuite) TestAcceptedAtExactScheduledEnd() {
	a := s.newAuction()
	s.auction.On("Get", mock.Anything, auctionId).Return(a, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(func(c bCtx.Ctx, candidate *bid.Bid) *bid.Bid {
		return candidate
	}, nil)
	s.auction.On("ApplyExtension", mock.Anything, a).Return(nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.end)
	s.NoError(err)
	s.Equal(s.end.Add(2*time.Minute), a.ScheduledEnd)
}

func (s *placeBidSuite) TestUnknownAuction() {
	s.auction.On("Get", mock.Anything, auctionId).Return(nil, domain.ErrNotFound)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(time.Minute))
	s.Equal(domain.ErrNotFound, err)
}

// an empty ledger floors at startingPrice plus one increment, and matching
// the bare startingPrice is not enough
func (s *placeBidSuite) TestTooLowAgainstStartingPrice() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("9000"), s.start.Add(time.Minute))
	tooLow, ok := domain.AsBidTooLow(err)
	s.True(ok)
	s.Equal("10500", tooLow.Floor.String())

	_, err = s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10000"), s.start.Add(time.Minute))
	tooLow, ok = domain.AsBidTooLow(err)
	s.True(ok)
	s.Equal("10500", tooLow.Floor.String())
	s.ledger.AssertNotCalled(s.T(), "Append", mock.Anything, mock.Anything)
}

func (s *placeBidSuite) TestTooLowAgainstHighestPlusIncrement() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(&bid.Bid{
		BidId: "bid-1", AuctionId: auctionId, Amount: "10000", Sequence: 1,
	}, nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-2", dec("10200"), s.start.Add(time.Minute))
	tooLow, ok := domain.AsBidTooLow(err)
	s.True(ok)
	s.Equal("10500", tooLow.Floor.String())
}

func (s *placeBidSuite) TestAcceptedAtExactFloor() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(func(c bCtx.Ctx, candidate *bid.Bid) *bid.Bid {
		stored := *candidate
		stored.Sequence = 1
		return &stored
	}, nil)

	res, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(time.Minute))
	s.NoError(err)
	s.Equal("10500", res.Amount)
	s.Equal(int64(1), res.Sequence)
	s.Equal(domain.BidderId("bidder-1"), res.BidderId)
	s.NotEmpty(res.BidId)
}

func (s *placeBidSuite) TestAcceptedInsideWindowExtends() {
	a := s.newAuction()
	s.auction.On("Get", mock.Anything, auctionId).Return(a, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(func(c bCtx.Ctx, candidate *bid.Bid) *bid.Bid {
		return candidate
	}, nil)
	s.auction.On("ApplyExtension", mock.Anything, a).Return(nil)

	now := s.end.Add(-time.Minute)
	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), now)
	s.NoError(err)
	s.Equal(now.Add(2*time.Minute), a.ScheduledEnd)
	s.auction.AssertCalled(s.T(), "ApplyExtension", mock.Anything, a)
}

func (s *placeBidSuite) TestLedgerCorruptAlerts() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(nil, domain.ErrLedgerCorrupt)
	s.alert.On("NotifyInvariantViolation", mock.Anything, auctionId, mock.Anything).Return(nil)

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(time.Minute))
	s.Equal(domain.ErrUnavailable, err)
	s.alert.AssertCalled(s.T(), "NotifyInvariantViolation", mock.Anything, auctionId, mock.Anything)
}

// the invariant page goes out after the admission lease is back, so a slow
// alert channel never blocks other bids on the same auction
func (s *placeBidSuite) TestAlertRunsOutsideAdmissionLease() {
	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(nil, domain.ErrLedgerCorrupt)
	s.alert.On("NotifyInvariantViolation", mock.Anything, auctionId, mock.Anything).Return(
		func(c bCtx.Ctx, id domain.AuctionId, detail string) error {
			waitCtx, cancel := bCtx.WithTimeout(s.c, 500*time.Millisecond)
			defer cancel()
			release, err := s.locks.Acquire(waitCtx, id.String())
			s.NoError(err)
			if err == nil {
				release()
			}
			return nil
		})

	_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(time.Minute))
	s.Equal(domain.ErrUnavailable, err)
	s.alert.AssertCalled(s.T(), "NotifyInvariantViolation", mock.Anything, auctionId, mock.Anything)
}

// Concurrent attempts at the same amount: exactly one is admitted, the rest
// observe the new floor and are rejected.
func (s *placeBidSuite) TestConcurrentSameAmount() {
	var mu sync.Mutex
	stored := []*bid.Bid{}

	s.auction.On("Get", mock.Anything, auctionId).Return(s.newAuction(), nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(func(c bCtx.Ctx, id domain.AuctionId) *bid.Bid {
		mu.Lock()
		defer mu.Unlock()
		if len(stored) == 0 {
			return nil
		}
		return stored[len(stored)-1]
	}, nil)
	s.ledger.On("Append", mock.Anything, mock.Anything).Return(func(c bCtx.Ctx, candidate *bid.Bid) *bid.Bid {
		mu.Lock()
		defer mu.Unlock()
		b := *candidate
		b.Sequence = int64(len(stored) + 1)
		stored = append(stored, &b)
		return &b
	}, nil)

	const attempts = 20
	accepted := 0
	tooLow := 0
	var resMu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.uc.PlaceBid(s.c, auctionId, "bidder-1", dec("10500"), s.start.Add(time.Minute))
			resMu.Lock()
			defer resMu.Unlock()
			if err == nil {
				accepted++
			} else if _, ok := domain.AsBidTooLow(err); ok {
				tooLow++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, accepted)
	s.Equal(attempts-1, tooLow)
	s.Len(stored, 1)
}

func (s *placeBidSuite) TestGetHighestBidEmpty() {
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)

	_, err := s.uc.GetHighestBid(s.c, auctionId)
	s.Equal(domain.ErrNotFound, err)
}

func (s *placeBidSuite) TestGetSnapshot() {
	history := []*bid.Bid{
		{BidId: "bid-1", AuctionId: auctionId, Amount: "10500", Sequence: 1},
		{BidId: "bid-2", AuctionId: auctionId, Amount: "11000", Sequence: 2},
	}
	s.ledger.On("History", mock.Anything, auctionId).Return(history, nil).Once()

	snap, err := s.uc.GetSnapshot(s.c, auctionId)
	s.NoError(err)
	s.Equal(auctionId, snap.AuctionId)
	s.Len(snap.History, 2)
	s.Equal(domain.BidId("bid-2"), snap.Highest.BidId)

	// served from cache, ledger is not read again
	snap, err = s.uc.GetSnapshot(s.c, auctionId)
	s.NoError(err)
	s.Equal(domain.BidId("bid-2"), snap.Highest.BidId)
	s.ledger.AssertNumberOfCalls(s.T(), "History", 1)
}

func (s *placeBidSuite) TestFinalizeSoldNotifies() {
	a := s.newAuction()
	s.auction.On("Get", mock.Anything, auctionId).Return(a, nil)

	winning := &bid.Bid{BidId: "bid-9", AuctionId: auctionId, BidderId: "bidder-1", Amount: "15500", Sequence: 9}
	closedAt := s.end.Add(time.Second)
	closed := s.newAuction()
	closed.Closed = true
	closed.ClosedAt = &closedAt
	closed.Outcome = auction.OutcomeSold
	closed.WinningBidId = &winning.BidId

	s.auction.On("Finalize", mock.Anything, auctionId, closedAt).Return(closed, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(winning, nil)
	s.alert.On("NotifySold", mock.Anything, closed, winning).Return(nil)

	s.NoError(s.uc.FinalizeAuction(s.c, auctionId, closedAt))
	s.alert.AssertCalled(s.T(), "NotifySold", mock.Anything, closed, winning)
}

// the sale announcement goes out after the lease is back
func (s *placeBidSuite) TestFinalizeNotifiesOutsideLease() {
	a := s.newAuction()
	s.auction.On("Get", mock.Anything, auctionId).Return(a, nil)

	winning := &bid.Bid{BidId: "bid-9", AuctionId: auctionId, BidderId: "bidder-1", Amount: "15500", Sequence: 9}
	closedAt := s.end.Add(time.Second)
	closed := s.newAuction()
	closed.Closed = true
	closed.ClosedAt = &closedAt
	closed.Outcome = auction.OutcomeSold
	closed.WinningBidId = &winning.BidId

	s.auction.On("Finalize", mock.Anything, auctionId, closedAt).Return(closed, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(winning, nil)
	s.alert.On("NotifySold", mock.Anything, closed, winning).Return(
		func(c bCtx.Ctx, _ *auction.Auction, _ *bid.Bid) error {
			waitCtx, cancel := bCtx.WithTimeout(s.c, 500*time.Millisecond)
			defer cancel()
			release, err := s.locks.Acquire(waitCtx, auctionId.String())
			s.NoError(err)
			if err == nil {
				release()
			}
			return nil
		})

	s.NoError(s.uc.FinalizeAuction(s.c, auctionId, closedAt))
	s.alert.AssertCalled(s.T(), "NotifySold", mock.Anything, closed, winning)
}

func (s *placeBidSuite) TestFinalizeAlreadyClosedIsNoop() {
	a := s.newAuction()
	a.Closed = true
	s.auction.On("Get", mock.Anything, auctionId).Return(a, nil)

	s.NoError(s.uc.FinalizeAuction(s.c, auctionId, s.end.Add(time.Second)))
	s.auction.AssertNotCalled(s.T(), "Finalize", mock.Anything, mock.Anything, mock.Anything)
}
