package listing

import (
	"time"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
)

// Listing is the auction configuration owned by the listing/vehicle
// collaborator. The bidding core treats it as read-only, fetched once per
// auction and cached.
type Listing struct {
	AuctionId       domain.AuctionId `json:"auctionId"`
	VehicleId       domain.VehicleId `json:"vehicleId"`
	StartingPrice   string           `json:"startingPrice"`
	MinIncrement    string           `json:"minIncrement"`
	ReserveAmount   string           `json:"reserveAmount,omitempty"`
	ScheduledStart  time.Time        `json:"scheduledStart"`
	ScheduledEnd    time.Time        `json:"scheduledEnd"`
	ExtensionWindow time.Duration    `json:"extensionWindow"`
}

// Repo resolves auction configuration from the listing collaborator
type Repo interface {
	Get(c ctx.Ctx, auctionId domain.AuctionId) (*Listing, error)
}
