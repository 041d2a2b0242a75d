package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/delivery"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/auction"
)

type handler struct {
	auction auction.Usecase
}

func New(e *echo.Echo, auction auction.Usecase) {
	h := &handler{auction}

	e.GET("/auctions/:auctionId", h.getAuction)
}

func (h *handler) getAuction(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	auctionId := domain.AuctionId(c.Param("auctionId"))

	res, err := h.auction.Get(ctx, auctionId)
	if err != nil {
		if err == domain.ErrNotFound {
			return delivery.MakeJsonResp(c, http.StatusNotFound, err)
		}
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
