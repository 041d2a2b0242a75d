package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/domain"
)

// State of one auction. Transitions are driven by time, except that a
// qualifying bid inside the extension window pushes scheduledEnd forward.
type State string

const (
	StateScheduled  State = "scheduled"
	StateLive       State = "live"
	StateEndingSoon State = "endingSoon"
	StateClosed     State = "closed"
)

// AdmitsBids reports whether the ledger accepts bids in this state
func (s State) AdmitsBids() bool {
	return s == StateLive || s == StateEndingSoon
}

// Outcome of a closed auction
type Outcome string

const (
	OutcomeSold          Outcome = "sold"
	OutcomeReserveNotMet Outcome = "reserveNotMet"
	OutcomeNoBids        Outcome = "noBids"
)

// Auction is the runtime record of one auction. Immutable configuration
// (prices, windows) is seeded from the listing collaborator; ScheduledEnd and
// the closure fields are the only parts that ever change, and only under the
// same per-auction exclusion bid admission runs in.
type Auction struct {
	Id            domain.AuctionId `json:"auctionId" bson:"auctionId"`
	VehicleId     domain.VehicleId `json:"vehicleId" bson:"vehicleId"`
	StartingPrice string           `json:"startingPrice" bson:"startingPrice"`
	MinIncrement  string           `json:"minIncrement" bson:"minIncrement"`
	// ReserveAmount does not gate admission, only the Closed outcome.
	// Empty means no reserve.
	ReserveAmount   string        `json:"reserveAmount,omitempty" bson:"reserveAmount,omitempty"`
	ScheduledStart  time.Time     `json:"scheduledStart" bson:"scheduledStart"`
	ScheduledEnd    time.Time     `json:"scheduledEnd" bson:"scheduledEnd"`
	ExtensionWindow time.Duration `json:"extensionWindow" bson:"extensionWindow"`

	Closed       bool          `json:"closed" bson:"closed"`
	ClosedAt     *time.Time    `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
	Outcome      Outcome       `json:"outcome,omitempty" bson:"outcome,omitempty"`
	WinningBidId *domain.BidId `json:"winningBidId,omitempty" bson:"winningBidId,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Auction) StartingPriceDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(a.StartingPrice)
	return d
}

func (a *Auction) MinIncrementDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(a.MinIncrement)
	return d
}

// ReserveDecimal returns the reserve amount and whether one is set
func (a *Auction) ReserveDecimal() (decimal.Decimal, bool) {
	if a.ReserveAmount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(a.ReserveAmount)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CurrentState resolves the time-driven state at the given instant. A
// recorded closure always wins; otherwise the instant is compared against
// scheduledStart / scheduledEnd / the extension window. The instant equal
// to scheduledEnd is still endingSoon, so a bid landing exactly then is
// judged against the pre-closure state.
func (a *Auction) CurrentState(now time.Time) State {
	if a.Closed {
		return StateClosed
	}
	if now.Before(a.ScheduledStart) {
		return StateScheduled
	}
	if now.After(a.ScheduledEnd) {
		return StateClosed
	}
	if !now.Before(a.ScheduledEnd.Add(-a.ExtensionWindow)) {
		return StateEndingSoon
	}
	return StateLive
}

// ExtendForBid applies the soft-close rule for a qualifying bid placed at
// now: inside the extension window, scheduledEnd moves to now + window.
// Idempotent for a repeated now, and scheduledEnd never decreases. Returns
// whether scheduledEnd changed.
func (a *Auction) ExtendForBid(now time.Time) bool {
	if a.Closed {
		return false
	}
	if now.Before(a.ScheduledEnd.Add(-a.ExtensionWindow)) || now.After(a.ScheduledEnd) {
		return false
	}
	newEnd := now.Add(a.ExtensionWindow)
	if !newEnd.After(a.ScheduledEnd) {
		return false
	}
	a.ScheduledEnd = newEnd
	return true
}

type Patchable struct {
	ScheduledEnd *time.Time    `bson:"scheduledEnd,omitempty"`
	Closed       *bool         `bson:"closed,omitempty"`
	ClosedAt     *time.Time    `bson:"closedAt,omitempty"`
	Outcome      *Outcome      `bson:"outcome,omitempty"`
	WinningBidId *domain.BidId `bson:"winningBidId,omitempty"`
	UpdatedAt    *time.Time    `bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	Closed      *bool
	EndedBefore *time.Time
	Offset      *int32
	Limit       *int32
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

func WithClosed(closed bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Closed = &closed
		return nil
	}
}

func WithEndedBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EndedBefore = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, id domain.AuctionId) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Auction, error)
	Create(c ctx.Ctx, value *Auction) error
	Patch(c ctx.Ctx, id domain.AuctionId, patchable Patchable) error
}

type Usecase interface {
	// Get returns the runtime auction record, bootstrapping it from the
	// listing collaborator on first access.
	Get(c ctx.Ctx, id domain.AuctionId) (*Auction, error)

	// ApplyExtension persists the soft-close extension triggered by a
	// qualifying bid. Must only be called while holding the auction's
	// admission exclusion.
	ApplyExtension(c ctx.Ctx, value *Auction) error

	// Finalize closes an auction whose scheduledEnd has passed, resolving
	// the winner and reserve outcome. Must only be called while holding
	// the auction's admission exclusion.
	Finalize(c ctx.Ctx, id domain.AuctionId, now time.Time) (*Auction, error)

	// ListEndedOpen lists auctions past their scheduledEnd not yet closed
	ListEndedOpen(c ctx.Ctx, now time.Time, limit int32) ([]*Auction, error)
}
