package observer

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
)

const auctionId = domain.AuctionId("auction-1")

type fetcherStub struct {
	snap *bid.Snapshot
	err  error
}

func (f *fetcherStub) Snapshot(c bCtx.Ctx, id domain.AuctionId) (*bid.Snapshot, error) {
	return f.snap, f.err
}

type observerSuite struct {
	suite.Suite

	c       bCtx.Ctx
	fetcher *fetcherStub
	ob      Observer
}

func TestObserverSuite(t *testing.T) {
	suite.Run(t, new(observerSuite))
}

func (s *observerSuite) SetupTest() {
	s.c = bCtx.Background()
	s.fetcher = &fetcherStub{}
	s.ob = New(&ObserverCfg{AuctionId: auctionId, Fetcher: s.fetcher})
}

func mkBid(seq int64, amount string) *bid.Bid {
	return &bid.Bid{
		BidId:     domain.BidId(fmt.Sprintf("bid-%d", seq)),
		AuctionId: auctionId,
		Amount:    amount,
		Sequence:  seq,
	}
}

func (s *observerSuite) snapshotOf(bids ...*bid.Bid) *bid.Snapshot {
	snap := &bid.Snapshot{
		AuctionId: auctionId,
		History:   bids,
		TakenAt:   time.Now().UTC(),
	}
	if len(bids) > 0 {
		snap.Highest = bids[len(bids)-1]
	}
	return snap
}

func (s *observerSuite) TestRefreshReplacesView() {
	s.fetcher.snap = s.snapshotOf(mkBid(1, "10000"), mkBid(2, "10500"))

	s.NoError(s.ob.Refresh(s.c))

	v := s.ob.View()
	s.Len(v.History, 2)
	s.Equal(int64(2), v.Highest.Sequence)
	s.True(v.SuggestedMin.Equal(decimal.RequireFromString("10500")))
	s.False(v.Terminal)
}

func (s *observerSuite) TestSnapshotNeverRegressesBelowOwnBid() {
	s.fetcher.snap = s.snapshotOf(mkBid(1, "10000"))
	s.NoError(s.ob.Refresh(s.c))

	// our bid lands but the next poll still serves the older snapshot
	s.ob.NoteAccepted(mkBid(2, "10500"))
	s.NoError(s.ob.Refresh(s.c))

	v := s.ob.View()
	s.Equal(int64(2), v.Highest.Sequence)
	s.True(v.SuggestedMin.Equal(decimal.RequireFromString("10500")))
}

func (s *observerSuite) TestSnapshotRetiresSeenOwnBid() {
	s.ob.NoteAccepted(mkBid(2, "10500"))

	// snapshot caught up and someone outbid us
	s.fetcher.snap = s.snapshotOf(mkBid(1, "10000"), mkBid(2, "10500"), mkBid(3, "11000"))
	s.NoError(s.ob.Refresh(s.c))

	v := s.ob.View()
	s.Equal(int64(3), v.Highest.Sequence)
	s.True(v.SuggestedMin.Equal(decimal.RequireFromString("11000")))
}

func (s *observerSuite) TestTooLowRejectionRaisesMinImmediately() {
	s.ob.NoteRejection(&domain.BidTooLowError{Floor: decimal.RequireFromString("12000")})

	v := s.ob.View()
	s.True(v.SuggestedMin.Equal(decimal.RequireFromString("12000")))
	s.False(v.Terminal)
}

func (s *observerSuite) TestNotOpenRejectionIsTerminal() {
	s.ob.NoteRejection(domain.ErrAuctionNotOpen)
	s.True(s.ob.View().Terminal)

	// other errors do not flip the flag back or touch the floor
	s.ob.NoteRejection(domain.ErrUnavailable)
	s.True(s.ob.View().Terminal)
}

func (s *observerSuite) TestNoteAcceptedMovesHighestOptimistically() {
	s.ob.NoteAccepted(mkBid(1, "10000"))

	v := s.ob.View()
	s.Equal(int64(1), v.Highest.Sequence)
	s.True(v.SuggestedMin.Equal(decimal.RequireFromString("10000")))
}
