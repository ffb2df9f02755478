package backend

import (
	"context"
	"net/http"
)

// Activities returns the account's activity log, newest first as the
// backend orders it.
func (c *Client) Activities(ctx context.Context, token string) ([]Activity, error) {
	var out struct {
		Activities []Activity `json:"activities"`
	}
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/activity", token: token}, &out)
	return out.Activities, err
}

func (c *Client) Statistics(ctx context.Context, token string) (Stats, error) {
	var s Stats
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/statistics", token: token}, &s)
	return s, err
}

// LatestBinaries returns the download links of the newest desktop client.
func (c *Client) LatestBinaries(ctx context.Context) (Binaries, error) {
	var b Binaries
	_, err := c.send(ctx, call{method: http.MethodGet, path: "/binaries/macos_client/latest"}, &b)
	return b, err
}
