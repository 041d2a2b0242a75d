package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/delivery"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
	authMiddleware "github.com/motorline/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	bid bid.Usecase
}

// New registers the bid routes. Writes require a verified bidder identity,
// reads are public.
func New(e *echo.Echo, authM *authMiddleware.AuthMiddleware, bid bid.Usecase) {
	h := &handler{bid}

	g := e.Group("/auctions/:auctionId/bids")

	g.GET("", h.getBidHistory)
	g.GET("/highest", h.getHighestBid)
	g.GET("/snapshot", h.getSnapshot)
	g.POST("", h.placeBid, authM.Auth())
}

type placeBidPayload struct {
	Amount string `json:"amount" validate:"required"`
}

type bidTooLowResp struct {
	Message string `json:"message"`
	Floor   string `json:"floor"`
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	auctionId := domain.AuctionId(c.Param("auctionId"))

	bidderId, ok := c.Get("bidderId").(domain.BidderId)
	if !ok || bidderId == "" {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthenticated)
	}

	p := placeBidPayload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAmount)
	}

	res, err := h.bid.PlaceBid(ctx, auctionId, bidderId, amount, time.Now().UTC())
	if err != nil {
		return makeBidErrResp(c, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

// makeBidErrResp maps admission rejections onto HTTP statuses. BidTooLow
// carries the floor so observers can adjust without waiting for a poll.
func makeBidErrResp(c echo.Context, err error) error {
	if tooLow, ok := domain.AsBidTooLow(err); ok {
		return delivery.MakeJsonResp(c, http.StatusConflict, bidTooLowResp{
			Message: tooLow.Error(),
			Floor:   tooLow.Floor.String(),
		})
	}
	switch err {
	case domain.ErrAuctionNotOpen:
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	case domain.ErrInvalidAmount:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	case domain.ErrUnauthenticated:
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	case domain.ErrUnavailable:
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err)
	case domain.ErrNotFound:
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func (h *handler) getHighestBid(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	auctionId := domain.AuctionId(c.Param("auctionId"))

	res, err := h.bid.GetHighestBid(ctx, auctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSnapshot(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	auctionId := domain.AuctionId(c.Param("auctionId"))

	res, err := h.bid.GetSnapshot(ctx, auctionId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

type historyParams struct {
	Offset int32 `query:"offset"`
	Limit  int32 `query:"limit"`
}

func (h *handler) getBidHistory(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	auctionId := domain.AuctionId(c.Param("auctionId"))

	p := historyParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []bid.FindAllOptionsFunc{}
	if p.Limit > 0 {
		opts = append(opts, bid.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.bid.GetBidHistory(ctx, auctionId, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
