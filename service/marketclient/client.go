// Package marketclient is the HTTP client side of the observer-facing read
// API, the Fetcher used by service/observer.
package marketclient

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrAuctionNotFound = errors.New("auction not found")
)

// ClientCfg configures the client for the bidding read api
type ClientCfg struct {
	HttpClient http.Client
	Url        string
	Timeout    time.Duration
}
