package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	mAuction "github.com/motorline/goapi/domain/auction/mocks"
	"github.com/motorline/goapi/domain/bid"
	mBid "github.com/motorline/goapi/domain/bid/mocks"
	"github.com/motorline/goapi/domain/listing"
	mListing "github.com/motorline/goapi/domain/listing/mocks"
)

const auctionId = domain.AuctionId("auction-1")

type auctionSuite struct {
	suite.Suite

	c       bCtx.Ctx
	repo    *mAuction.Repo
	listing *mListing.Repo
	ledger  *mBid.Ledger
	uc      auction.Usecase

	start time.Time
	end   time.Time
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.c = bCtx.Background()
	s.repo = &mAuction.Repo{}
	s.listing = &mListing.Repo{}
	s.ledger = &mBid.Ledger{}
	s.uc = New(&AuctionUseCaseCfg{
		Auction: s.repo,
		Listing: s.listing,
		Ledger:  s.ledger,
	})

	s.start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.end = s.start.Add(time.Hour)
}

func (s *auctionSuite) newAuction() *auction.Auction {
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

func (s *auctionSuite) TestGetExisting() {
	a := s.newAuction()
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)

	res, err := s.uc.Get(s.c, auctionId)
	s.NoError(err)
	s.Equal(a, res)
	s.listing.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestGetBootstrapsFromListing() {
	s.repo.On("FindOne", mock.Anything, auctionId).Return(nil, domain.ErrNotFound)
	s.listing.On("Get", mock.Anything, auctionId).Return(&listing.Listing{
		AuctionId:       auctionId,
		VehicleId:       "vehicle-1",
		StartingPrice:   "10000",
		MinIncrement:    "500",
		ScheduledStart:  s.start,
		ScheduledEnd:    s.end,
		ExtensionWindow: 2 * time.Minute,
	}, nil)
	s.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := s.uc.Get(s.c, auctionId)
	s.NoError(err)
	s.Equal(auctionId, res.Id)
	s.Equal("10000", res.StartingPrice)
	s.Equal(s.end, res.ScheduledEnd)
	s.repo.AssertCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestGetUnknownListing() {
	s.repo.On("FindOne", mock.Anything, auctionId).Return(nil, domain.ErrNotFound)
	s.listing.On("Get", mock.Anything, auctionId).Return(nil, domain.ErrNotFound)

	_, err := s.uc.Get(s.c, auctionId)
	s.Equal(domain.ErrNotFound, err)
}

func (s *auctionSuite) TestFinalizeNoBids() {
	a := s.newAuction()
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(nil, nil)
	s.repo.On("Patch", mock.Anything, auctionId, mock.Anything).Return(nil)

	res, err := s.uc.Finalize(s.c, auctionId, s.end.Add(time.Second))
	s.NoError(err)
	s.True(res.Closed)
	s.Equal(auction.OutcomeNoBids, res.Outcome)
	s.Nil(res.WinningBidId)
}

func (s *auctionSuite) TestFinalizeReserveNotMet() {
	a := s.newAuction()
	a.ReserveAmount = "20000"
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(&bid.Bid{
		BidId: "bid-1", AuctionId: auctionId, Amount: "15000", Sequence: 3,
	}, nil)
	s.repo.On("Patch", mock.Anything, auctionId, mock.Anything).Return(nil)

	res, err := s.uc.Finalize(s.c, auctionId, s.end.Add(time.Second))
	s.NoError(err)
	s.Equal(auction.OutcomeReserveNotMet, res.Outcome)
	s.Nil(res.WinningBidId)
}

func (s *auctionSuite) TestFinalizeSold() {
	a := s.newAuction()
	a.ReserveAmount = "12000"
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)
	s.ledger.On("HighestBid", mock.Anything, auctionId).Return(&bid.Bid{
		BidId: "bid-7", AuctionId: auctionId, Amount: "15000", Sequence: 7,
	}, nil)
	s.repo.On("Patch", mock.Anything, auctionId, mock.Anything).Return(nil)

	res, err := s.uc.Finalize(s.c, auctionId, s.end.Add(time.Second))
	s.NoError(err)
	s.Equal(auction.OutcomeSold, res.Outcome)
	s.Equal(domain.BidId("bid-7"), *res.WinningBidId)
}

func (s *auctionSuite) TestFinalizeAlreadyClosed() {
	a := s.newAuction()
	a.Closed = true
	a.Outcome = auction.OutcomeNoBids
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)

	res, err := s.uc.Finalize(s.c, auctionId, s.end.Add(time.Second))
	s.NoError(err)
	s.Equal(a, res)
	s.repo.AssertNotCalled(s.T(), "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionSuite) TestFinalizeBeforeEnd() {
	a := s.newAuction()
	s.repo.On("FindOne", mock.Anything, auctionId).Return(a, nil)

	_, err := s.uc.Finalize(s.c, auctionId, s.end.Add(-time.Second))
	s.Equal(domain.ErrConflict, err)
}
