package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// User-facing sentinel messages for the distinct inventory failure classes.
// The state machine displays whichever one comes back verbatim.
const (
	MsgInventoryEmpty        = "This inventory is empty."
	MsgInventoryNoMarketable = "This inventory contains no marketable items."
	MsgInventoryPrivate      = "This profile is private or Steam is busy. Try again later."
	MsgInventoryUnreadable   = "This inventory is private or does not exist."
)

type inventoryResponse struct {
	Assets       []inventoryAsset       `json:"assets"`
	Descriptions []inventoryDescription `json:"descriptions"`
}

type inventoryAsset struct {
	ClassID string `json:"classid"`
}

type inventoryDescription struct {
	ClassID        string `json:"classid"`
	MarketHashName string `json:"market_hash_name"`
	Marketable     int    `json:"marketable"`
}

// FetchHoldings loads the account's CS2 inventory and returns the market
// names of its marketable items in asset order. On failure the second return
// carries the user-facing message and the list is nil. The four failure
// classes (empty, nothing marketable, access denied or rate limited,
// unreadable payload) each map to their own message.
func (c *Client) FetchHoldings(ctx context.Context, accountID string) ([]string, string) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.inventoryURL, accountID, appID, contextID)
	params := url.Values{"l": {"english"}, "count": {"2000"}}

	c.log.Info("fetching inventory", zap.String("account_id", accountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("building inventory request", zap.Error(err))
		return nil, fmt.Sprintf("An unexpected error occurred: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("inventory request failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, fmt.Sprintf("An unexpected error occurred: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		c.log.Warn("inventory access forbidden", zap.String("account_id", accountID),
			zap.Int("status", resp.StatusCode))
		return nil, MsgInventoryPrivate
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Sprintf("Unknown error. Status: %d", resp.StatusCode)
	}

	var data inventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// Private inventories come back as a non-JSON body with status 200.
		c.log.Warn("undecodable inventory payload", zap.String("account_id", accountID), zap.Error(err))
		return nil, MsgInventoryUnreadable
	}

	if len(data.Assets) == 0 {
		return nil, MsgInventoryEmpty
	}

	marketable := make(map[string]string, len(data.Descriptions))
	for _, d := range data.Descriptions {
		if d.Marketable == 1 {
			marketable[d.ClassID] = d.MarketHashName
		}
	}

	var holdings []string
	for _, asset := range data.Assets {
		if name, ok := marketable[asset.ClassID]; ok {
			holdings = append(holdings, name)
		}
	}

	if len(holdings) == 0 {
		return nil, MsgInventoryNoMarketable
	}
	return holdings, ""
}
