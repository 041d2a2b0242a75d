package listing

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/motorline/goapi/base/ctx"
)

func Test_ListingGet(t *testing.T) {
	req := require.New(t)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/listings/auction-1/auction", r.URL.Path)
		req.Equal("test-key", r.Header.Get("X-API-KEY"))
		hits++
		w.Write([]byte(`{
			"auctionId": "auction-1",
			"vehicleId": "vehicle-1",
			"startingPrice": "10000",
			"minIncrement": "500",
			"scheduledStart": "2024-03-01T12:00:00Z",
			"scheduledEnd": "2024-03-01T13:00:00Z",
			"extensionWindowSecs": 120
		}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Url:        srv.URL,
		Apikey:     "test-key",
		Timeout:    10 * time.Second,
	})
	ctx := bCtx.Background()

	res, err := c.Get(ctx, "auction-1")
	req.NoError(err)
	req.Equal("10000", res.StartingPrice)
	req.Equal("500", res.MinIncrement)
	req.Equal(2*time.Minute, res.ExtensionWindow)

	// second read is served from the in-process cache
	_, err = c.Get(ctx, "auction-1")
	req.NoError(err)
	req.Equal(1, hits)
}

func Test_ListingNotFound(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Url:        srv.URL,
		Timeout:    10 * time.Second,
	})

	_, err := c.Get(bCtx.Background(), "missing")
	req.Equal(ErrListingNotFound, err)
}
