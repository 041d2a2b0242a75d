package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/metrics"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
	"github.com/motorline/goapi/service/query"
)

var timeNow = time.Now

// bidCounter backs sequence assignment, one document per auction
type bidCounter struct {
	AuctionId domain.AuctionId `bson:"auctionId"`
	Seq       int64            `bson:"seq"`
}

type ledgerImpl struct {
	q   query.Mongo
	met metrics.Service
}

// NewLedger requires a unique index on (auctionId, sequence) in the bids
// collection. A duplicate key on insert means two appends raced past the
// per-auction exclusion, which Append surfaces as domain.ErrLedgerCorrupt.
func NewLedger(q query.Mongo) bid.Ledger {
	return &ledgerImpl{q, metrics.New("bidledger")}
}

func (im *ledgerImpl) HighestBid(c ctx.Ctx, auctionId domain.AuctionId) (*bid.Bid, error) {
	res := []*bid.Bid{}
	qry := bson.M{"auctionId": auctionId}
	if err := im.q.Search(c, domain.TableBids, 0, 1, "-sequence", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res[0], nil
}

func (im *ledgerImpl) History(c ctx.Ctx, auctionId domain.AuctionId, optFns ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	opts, err := bid.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("bid.GetFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*bid.Bid{}
	qry := bson.M{"auctionId": auctionId}
	if err := im.q.Search(c, domain.TableBids, offset, limit, "sequence", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *ledgerImpl) Count(c ctx.Ctx, auctionId domain.AuctionId) (int, error) {
	n, err := im.q.Count(c, domain.TableBids, bson.M{"auctionId": auctionId})
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}

func (im *ledgerImpl) Append(c ctx.Ctx, candidate *bid.Bid) (*bid.Bid, error) {
	counter := bidCounter{}
	selector := bson.M{"auctionId": candidate.AuctionId}
	if err := im.q.Increment(c, domain.TableBidcounters, selector, &counter, "seq", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return nil, err
	}

	stored := *candidate
	stored.Sequence = counter.Seq
	stored.PlacedAt = timeNow().UTC()

	if err := im.q.Insert(c, domain.TableBids, &stored); err != nil {
		if err == query.ErrDuplicateKey {
			im.met.BumpSum("corrupt", 1)
			c.WithField("sequence", stored.Sequence).Error("duplicate sequence in ledger")
			return nil, domain.ErrLedgerCorrupt
		}
		c.WithField("err", err).Error("q.Insert failed")
		return nil, err
	}
	return &stored, nil
}
