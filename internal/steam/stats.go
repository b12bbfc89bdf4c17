package steam

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ServerStats holds the two platform-wide player counters, already formatted
// with thousands separators for display.
type ServerStats struct {
	Online string
	InGame string
}

type statsResponse struct {
	Online int64 `json:"online"`
	InGame int64 `json:"ingame"`
}

// FetchServerStats reads the Valve stats counters. Returns nil on failure.
func (c *Client) FetchServerStats(ctx context.Context) *ServerStats {
	c.log.Info("fetching server stats")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statsURL+"?l=english", nil)
	if err != nil {
		c.log.Error("building stats request", zap.Error(err))
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("stats request failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("stats feed error", zap.Int("status", resp.StatusCode))
		return nil
	}

	var data statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log.Error("undecodable stats payload", zap.Error(err))
		return nil
	}

	return &ServerStats{
		Online: humanize.Comma(data.Online),
		InGame: humanize.Comma(data.InGame),
	}
}
