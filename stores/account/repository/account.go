package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/account"
	"github.com/motorline/goapi/service/query"
)

type accountImpl struct {
	q query.Mongo
}

func New(q query.Mongo) account.Repo {
	return &accountImpl{q}
}

func (im *accountImpl) Get(c ctx.Ctx, bidderId domain.BidderId) (*account.Account, error) {
	res := account.Account{}
	if err := im.q.FindOne(c, domain.TableAccounts, bson.M{"bidderId": bidderId}, &res); err != nil {
		if err == query.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		c.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *accountImpl) Create(c ctx.Ctx, value *account.Account) error {
	if err := im.q.Insert(c, domain.TableAccounts, value); err != nil && err != query.ErrDuplicateKey {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}
