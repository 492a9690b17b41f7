package client

import (
	"context"

	"github.com/jgranda1999/agentic-sade/internal/api"
	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/service"
)

type ListAuditsOpts struct {
	Limit uint

	CorrelationID string
	PilotID       string
	DroneID       string
	Decision      string
}

// ListAudits retrieves the latest audit entries from the server, limited to the specified number.
func (c *Client) ListAudits(ctx context.Context, opts ListAuditsOpts) ([]core.AuditEntry, string, error) {
	ub := c.url().setPath(api.ListAuditsRoute)
	if opts.Limit > 0 {
		ub = ub.addQueryParam("limit", opts.Limit)
	}
	if opts.CorrelationID != "" {
		ub = ub.addQueryParam("correlation_id", opts.CorrelationID)
	}
	if opts.PilotID != "" {
		ub = ub.addQueryParam("pilot_id", opts.PilotID)
	}
	if opts.DroneID != "" {
		ub = ub.addQueryParam("drone_id", opts.DroneID)
	}
	if opts.Decision != "" {
		ub = ub.addQueryParam("decision", opts.Decision)
	}
	var resp []core.AuditEntry
	correlation, err := c.get(ctx, ub.build(), &resp)
	return resp, correlation, err
}

// Replay asks the server to recompute a past decision from its audit
// entry and report whether the stored verdict reproduces.
func (c *Client) Replay(ctx context.Context, replayID string) (*service.ReplayReport, string, error) {
	var report service.ReplayReport
	correlation, err := c.post(ctx, c.url().
		setPath(api.ReplayAuditRoute).
		addQueryParam("replay_id", replayID).
		build(), nil, &report)
	if err != nil {
		return nil, correlation, err
	}
	return &report, correlation, nil
}
