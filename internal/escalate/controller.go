// Package escalate owns the single claims-verification call a request
// is allowed. The at-most-once invariant is structural: a Controller
// counts its invocations and refuses a second call outright.
package escalate

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

// ErrEscalationConsumed means Escalate was called twice for one
// request. That is a programming error, never a decision path.
var ErrEscalationConsumed = errors.New("escalation already consumed for this request")

// NewActionID mints a fresh action identifier.
func NewActionID() string {
	return "ACT-" + strings.ToUpper(xid.New().String())
}

// Controller mediates one request's escalation. Create one per
// request; it must not be reused.
type Controller struct {
	verifier core.ClaimsVerifier
	calls    atomic.Int32
}

func NewController(verifier core.ClaimsVerifier) *Controller {
	return &Controller{verifier: verifier}
}

// Calls returns how many times the claims collaborator was invoked.
func (c *Controller) Calls() int {
	return int(c.calls.Load())
}

// Escalate sends the required actions to the claims collaborator and
// returns its verdict together with the freshly minted action id. A
// collaborator failure is not retried; it degrades to "no actions
// satisfied" so the re-evaluation table resolves it fail-closed.
func (c *Controller) Escalate(
	ctx context.Context,
	req *core.EntryRequest,
	requiredActions []string,
	set core.SignalSet,
) (string, *core.ClaimsResult, error) {
	if c.calls.Add(1) > 1 {
		return "", nil, ErrEscalationConsumed
	}

	actionID := NewActionID()

	claimsReq := &core.ClaimsRequest{
		ActionID:        actionID,
		ZoneID:          req.ZoneID,
		PilotID:         req.PilotID,
		OrgID:           req.OrgID,
		DroneID:         req.DroneID,
		EntryTime:       req.EntryTime,
		RequiredActions: slices.Clone(requiredActions),
		IncidentCodes:   slices.Clone(set.IncidentCodes),
		WindContext: core.WindContext{
			WindNowKt:       core.FloatOf(set.SteadyWindKt),
			GustNowKt:       core.FloatOf(set.GustWindKt),
			DemoSteadyMaxKt: core.FloatOf(set.DemoSteadyMaxKt),
			DemoGustMaxKt:   core.FloatOf(set.DemoGustMaxKt),
		},
	}

	result, err := c.verifier.Verify(ctx, claimsReq)
	if err != nil || result == nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("verifier", c.verifier.Name()).
			Str("action_id", actionID).
			Msg("claims verification failed, treating as no actions satisfied")
		return actionID, &core.ClaimsResult{
			Satisfied:          false,
			UnsatisfiedActions: slices.Clone(requiredActions),
			Why:                []string{"claims collaborator unavailable; no actions verified"},
		}, nil
	}

	return actionID, result, nil
}
