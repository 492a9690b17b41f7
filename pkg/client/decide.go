package client

import (
	"context"

	"github.com/jgranda1999/agentic-sade/internal/api"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

// Decide submits an entry request and returns the decision result
// with its full visibility echo.
func (c *Client) Decide(ctx context.Context, req *core.EntryRequest) (*core.Result, string, error) {
	var result core.Result
	correlation, err := c.post(ctx, c.url().
		setPath(api.DecideEntryRoute).
		build(), req, &result)
	if err != nil {
		return nil, correlation, err
	}
	return &result, correlation, nil
}
