package bid

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
)

// Bid is one accepted bid in an auction's ledger. Sequence is assigned at
// acceptance time and defines the canonical total order; PlacedAt is
// server-assigned and informational only.
type Bid struct {
	BidId     domain.BidId     `json:"bidId" bson:"bidId"`
	AuctionId domain.AuctionId `json:"auctionId" bson:"auctionId"`
	BidderId  domain.BidderId  `json:"bidderId" bson:"bidderId"`
	Amount    string           `json:"amount" bson:"amount"`
	PlacedAt  time.Time        `json:"placedAt" bson:"placedAt"`
	Sequence  int64            `json:"sequence" bson:"sequence"`
}

func (b *Bid) AmountDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(b.Amount)
	return d
}

type FindAllOptions struct {
	Offset *int32
	Limit  *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Ledger is the authoritative, append-only record of accepted bids for one
// auction. Append is the sole mutator; callers must serialize Append per
// auctionId (the admission usecase holds a per-auction lock).
type Ledger interface {
	// HighestBid returns the bid with the highest sequence, or (nil, nil)
	// when the auction has no accepted bids yet
	HighestBid(c ctx.Ctx, auctionId domain.AuctionId) (*Bid, error)

	// History returns accepted bids ordered by sequence ascending
	History(c ctx.Ctx, auctionId domain.AuctionId, opts ...FindAllOptionsFunc) ([]*Bid, error)

	// Count returns the number of accepted bids for the auction
	Count(c ctx.Ctx, auctionId domain.AuctionId) (int, error)

	// Append assigns sequence and placedAt to the candidate, stores it and
	// returns the stored record. Returns domain.ErrLedgerCorrupt when the
	// assigned sequence collides with an existing bid, which indicates a
	// broken exclusion upstream.
	Append(c ctx.Ctx, candidate *Bid) (*Bid, error)
}

// Snapshot is what the observer-facing read API serves: the current
// highest bid plus full ordered history, taken from the same ledger read.
type Snapshot struct {
	AuctionId domain.AuctionId `json:"auctionId"`
	Highest   *Bid             `json:"highestBid"`
	History   []*Bid           `json:"history"`
	TakenAt   time.Time        `json:"takenAt"`
}

// Usecase is the bid admission service plus the observer-facing reads
type Usecase interface {
	// PlaceBid validates and applies one bid attempt atomically against
	// the ledger and the auction lifecycle. Typed rejections:
	// domain.ErrAuctionNotOpen, *domain.BidTooLowError,
	// domain.ErrInvalidAmount, domain.ErrUnavailable.
	PlaceBid(c ctx.Ctx, auctionId domain.AuctionId, bidderId domain.BidderId, amount decimal.Decimal, now time.Time) (*Bid, error)

	GetHighestBid(c ctx.Ctx, auctionId domain.AuctionId) (*Bid, error)
	GetBidHistory(c ctx.Ctx, auctionId domain.AuctionId, opts ...FindAllOptionsFunc) ([]*Bid, error)
	GetSnapshot(c ctx.Ctx, auctionId domain.AuctionId) (*Snapshot, error)

	// FinalizeAuction closes an ended auction under the same per-auction
	// exclusion bids are admitted under, so a bid arriving at the closing
	// instant is resolved before the transition applies.
	FinalizeAuction(c ctx.Ctx, auctionId domain.AuctionId, now time.Time) error
}
