package steam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// ProfileSummary is one player record from the official profile feed. The
// gateway either fills it completely from the provider response or returns
// nil; it never partially populates one.
type ProfileSummary struct {
	PersonaName              string `json:"personaname"`
	PersonaState             int    `json:"personastate"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	GameExtraInfo            string `json:"gameextrainfo"`
	RealName                 string `json:"realname"`
	TimeCreated              int64  `json:"timecreated"`
	ProfileURL               string `json:"profileurl"`
	AvatarFull               string `json:"avatarfull"`
}

type profileResponse struct {
	Response struct {
		Players []ProfileSummary `json:"players"`
	} `json:"response"`
}

// FetchProfile looks up a player summary by account id. It returns nil when
// the API key is unset, the lookup matches no player, or the call fails.
func (c *Client) FetchProfile(ctx context.Context, accountID string) *ProfileSummary {
	if c.apiKey == "" {
		c.log.Error("profile lookup without a Steam API key")
		return nil
	}

	params := url.Values{"key": {c.apiKey}, "steamids": {accountID}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("building profile request", zap.Error(err))
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("profile request failed", zap.String("account_id", accountID), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("profile feed error", zap.Int("status", resp.StatusCode))
		return nil
	}

	var data profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log.Error("undecodable profile payload", zap.Error(err))
		return nil
	}

	if len(data.Response.Players) == 0 {
		c.log.Warn("no player found", zap.String("account_id", accountID))
		return nil
	}
	return &data.Response.Players[0]
}
