package marketclient

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/motorline/goapi/base/ctx"
	"github.com/motorline/goapi/base/log"
	"github.com/motorline/goapi/domain"
	"github.com/motorline/goapi/domain/bid"
	"github.com/motorline/goapi/service/observer"
)

// snapshotResp unwraps the api's response envelope
type snapshotResp struct {
	Data bid.Snapshot `json:"data"`
}

type client struct {
	client  http.Client
	url     string
	timeout time.Duration
}

// NewClient builds an observer.Fetcher over the bidding read api
func NewClient(cfg *ClientCfg) observer.Fetcher {
	return &client{
		client:  cfg.HttpClient,
		url:     cfg.Url,
		timeout: cfg.Timeout,
	}
}

func (c *client) Snapshot(ctx bCtx.Ctx, auctionId domain.AuctionId) (*bid.Snapshot, error) {
	url := fmt.Sprintf("%s/auctions/%s/bids/snapshot", c.url, auctionId)
	data, err := c.fetch(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.fetch failed")
		return nil, err
	}

	resp := snapshotResp{}
	if err := json.Unmarshal(data, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return &resp.Data, nil
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
		return nil, ErrAuctionNotFound
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
