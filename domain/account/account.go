package account

import (
	"time"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
)

// Account is the minimal bidder record kept by the bidding core. Profile
// data lives with the identity collaborator.
type Account struct {
	BidderId  domain.BidderId `json:"bidderId" bson:"bidderId"`
	FullName  string          `json:"fullName" bson:"fullName"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	Get(c ctx.Ctx, bidderId domain.BidderId) (*Account, error)
	Create(c ctx.Ctx, value *Account) error
}

type Usecase interface {
	Get(c ctx.Ctx, bidderId domain.BidderId) (*Account, error)
	Create(c ctx.Ctx, bidderId domain.BidderId) (*Account, error)
}
