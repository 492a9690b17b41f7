package client

import (
	"context"

	"github.com/jgranda1999/agentic-sade/internal/api"
	"github.com/jgranda1999/agentic-sade/internal/buildinfo"
)

// Info fetches build information from the server.
func (c *Client) Info(ctx context.Context) (*buildinfo.Info, string, error) {
	var info buildinfo.Info
	correlation, err := c.get(ctx, c.url().
		setPath(api.InfoRoute).
		build(), &info)
	if err != nil {
		return nil, correlation, err
	}
	return &info, correlation, nil
}
