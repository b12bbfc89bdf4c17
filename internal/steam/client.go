// Package steam is the gateway to the four remote Steam/Valve data feeds:
// account inventories, market prices, player profiles, and server stats.
// Every operation is independent and converts its provider's failure modes
// into sentinel values at this boundary; callers never see a raised fault,
// and no operation retries on its own.
package steam

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultInventoryURL = "https://steamcommunity.com/inventory"
	defaultPriceURL     = "https://steamcommunity.com/market/priceoverview/"
	defaultProfileURL   = "https://api.steampowered.com/ISteamUser/GetPlayerSummaries/v2/"
	defaultStatsURL     = "https://www.valvesoftware.com/about/statsajax"

	appID     = "730" // CS2
	contextID = "2"
	currency  = "1" // USD
)

// Client talks to the Steam and Valve HTTP feeds.
type Client struct {
	http   *http.Client
	apiKey string
	log    *zap.Logger

	inventoryURL string
	priceURL     string
	profileURL   string
	statsURL     string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURLs overrides the provider endpoints, mainly for tests.
func WithBaseURLs(inventory, price, profile, stats string) Option {
	return func(c *Client) {
		c.inventoryURL = inventory
		c.priceURL = price
		c.profileURL = profile
		c.statsURL = stats
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a gateway client. apiKey may be empty; profile lookups
// then always return nil (the caller is expected to have logged the missing
// key as a configuration error at startup).
func NewClient(apiKey string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		http:         &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		log:          log,
		inventoryURL: defaultInventoryURL,
		priceURL:     defaultPriceURL,
		profileURL:   defaultProfileURL,
		statsURL:     defaultStatsURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
