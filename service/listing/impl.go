// Package listing talks to the listing service owning vehicle listings and
// their auction configuration. Responses are cached in-process since a
// listing's auction parameters never change after publication.
package listing

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/log"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/keys"
	"github.com/motorline/goapi/domain/listing"
	"github.com/motorline/goapi/service/cache"
	"github.com/motorline/goapi/service/cache/provider/primitive"
)

const cacheSizeMb = 4

// listingResp is the wire shape of the listing service response. The
// extension window comes over as seconds.
type listingResp struct {
	AuctionId           string    `json:"auctionId"`
	VehicleId           string    `json:"vehicleId"`
	StartingPrice       string    `json:"startingPrice"`
	MinIncrement        string    `json:"minIncrement"`
	ReserveAmount       string    `json:"reserveAmount,omitempty"`
	ScheduledStart      time.Time `json:"scheduledStart"`
	ScheduledEnd        time.Time `json:"scheduledEnd"`
	ExtensionWindowSecs int64     `json:"extensionWindowSecs"`
}

type client struct {
	client  http.Client
	url     string
	apikey  string
	timeout time.Duration
	cache   cache.Service
}

// NewClient builds a listing.Repo backed by the listing service
func NewClient(cfg *ClientCfg) listing.Repo {
	return &client{
		client:  cfg.HttpClient,
		url:     cfg.Url,
		apikey:  cfg.Apikey,
		timeout: cfg.Timeout,
		cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Hour,
			Pfx:   keys.PfxListing,
			Cache: primitive.NewPrimitive(keys.PfxListing, cacheSizeMb),
		}),
	}
}

func (c *client) Get(ctx bCtx.Ctx, auctionId domain.AuctionId) (*listing.Listing, error) {
	key := keys.RedisKey(string(auctionId))
	res := listing.Listing{}
	if err := c.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		return c.get(ctx, auctionId)
	}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) get(ctx bCtx.Ctx, auctionId domain.AuctionId) (*listing.Listing, error) {
	url := fmt.Sprintf("%s/listings/%s/auction", c.url, auctionId)
	data, err := c.fetch(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.fetch failed")
		return nil, err
	}

	resp := listingResp{}
	if err := json.Unmarshal(data, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}

	return &listing.Listing{
		AuctionId:       domain.AuctionId(resp.AuctionId),
		VehicleId:       domain.VehicleId(resp.VehicleId),
		StartingPrice:   resp.StartingPrice,
		MinIncrement:    resp.MinIncrement,
		ReserveAmount:   resp.ReserveAmount,
		ScheduledStart:  resp.ScheduledStart,
		ScheduledEnd:    resp.ScheduledEnd,
		ExtensionWindow: time.Duration(resp.ExtensionWindowSecs) * time.Second,
	}, nil
}

func (c *client) fetch(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	if c.apikey != "" {
		req.Header.Add("X-API-KEY", c.apikey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrListingNotFound
	}
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
