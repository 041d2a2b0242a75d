package usecase

import (
	"time"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/account"
)

type impl struct {
	repo account.Repo
}

// New creates account usecase
func New(repo account.Repo) account.Usecase {
	return &impl{repo}
}

func (im *impl) Get(c ctx.Ctx, bidderId domain.BidderId) (*account.Account, error) {
	return im.repo.Get(c, bidderId)
}

func (im *impl) Create(c ctx.Ctx, bidderId domain.BidderId) (*account.Account, error) {
	value := &account.Account{
		BidderId:  bidderId,
		CreatedAt: time.Now().UTC(),
	}
	if err := im.repo.Create(c, value); err != nil {
		c.WithField("err", err).Error("repo.Create failed")
		return nil, err
	}
	return value, nil
}
