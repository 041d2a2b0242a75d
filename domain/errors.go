package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInternalServerError will throw if any Internal Server Error happens
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrAuctionNotOpen rejects bids against an auction outside Live/EndingSoon.
	// Not retryable with the same inputs.
	ErrAuctionNotOpen = errors.New("auction is not open for bidding")
	// ErrInvalidAmount rejects non-positive or non-finite bid amounts
	ErrInvalidAmount = errors.New("invalid bid amount")
	// ErrUnauthenticated rejects bids without a verified bidder identity
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnavailable covers exclusion timeouts and storage failures; callers
	// may retry the whole placeBid call, which re-evaluates the floor.
	ErrUnavailable = errors.New("bidding temporarily unavailable")
	// ErrLedgerCorrupt marks an invariant violation inside the bid ledger.
	// It indicates a bug in the exclusion mechanism, never a caller mistake.
	ErrLedgerCorrupt = errors.New("bid ledger invariant violated")
)

// BidTooLowError rejects a bid below the current floor and reports the
// minimum amount the next bid must reach.
type BidTooLowError struct {
	Floor decimal.Decimal
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid too low, floor is %s", e.Floor.String())
}

// AsBidTooLow extracts a BidTooLowError if err is one
func AsBidTooLow(err error) (*BidTooLowError, bool) {
	var e *BidTooLowError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
