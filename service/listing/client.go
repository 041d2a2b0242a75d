package listing

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrListingNotFound = errors.New("listing not found")
)

// ClientCfg configures the client for the listing service
type ClientCfg struct {
	HttpClient http.Client
	Url        string
	Apikey     string
	Timeout    time.Duration
}
