package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
	"github.com/motorline/goapi/service/query"
)

type auctionImpl struct {
	q query.Mongo
}

func New(q query.Mongo) auction.Repo {
	return &auctionImpl{q}
}

func (im *auctionImpl) FindOne(c ctx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	res := auction.Auction{}
	if err := im.q.FindOne(c, domain.TableAuctions, bson.M{"auctionId": id}, &res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *auctionImpl) FindAll(c ctx.Ctx, optFns ...auction.FindAllOptionsFunc) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindAllOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if opts.Closed != nil {
		qry["closed"] = *opts.Closed
	}
	if opts.EndedBefore != nil {
		qry["scheduledEnd"] = bson.M{"$lte": *opts.EndedBefore}
	}

	offset := 0
	limit := 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*auction.Auction{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, "scheduledEnd", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionImpl) Create(c ctx.Ctx, value *auction.Auction) error {
	if err := im.q.Insert(c, domain.TableAuctions, value); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *auctionImpl) Patch(c ctx.Ctx, id domain.AuctionId, patchable auction.Patchable) error {
	if err := im.q.Patch(c, domain.TableAuctions, bson.M{"auctionId": id}, patchable); err != nil {
		if err == query.ErrNotFound {
			return domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.Patch failed")
		return err
	}
	return nil
}
