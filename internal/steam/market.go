package steam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// PriceQuote is the market price overview for one item.
type PriceQuote struct {
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
	Volume      string `json:"volume"`
}

type priceResponse struct {
	Success bool `json:"success"`
	PriceQuote
}

// FetchPrice looks up the market price overview for an exact market name.
// It returns nil on every failure class; callers render one uniform
// "unavailable" message and never learn which class it was.
func (c *Client) FetchPrice(ctx context.Context, itemName string) *PriceQuote {
	params := url.Values{
		"appid":            {appID},
		"currency":         {currency},
		"market_hash_name": {itemName},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.priceURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("building price request", zap.Error(err))
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("price request failed", zap.String("item", itemName), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn("price feed rate limited")
		return nil
	case resp.StatusCode != http.StatusOK:
		c.log.Error("price feed error", zap.Int("status", resp.StatusCode), zap.String("item", itemName))
		return nil
	}

	var data priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log.Error("undecodable price payload", zap.String("item", itemName), zap.Error(err))
		return nil
	}

	// An absent or false success flag means "no price available", which is
	// provider-reported failure, not a transport error.
	if !data.Success {
		c.log.Warn("price feed reported failure", zap.String("item", itemName))
		return nil
	}

	return &data.PriceQuote
}
