// Package service orchestrates one admission run: validation, signal
// collection, envelope computation, the rule tables, at most one
// escalation, and emission. Every run writes an audit entry, even
// when a stage fails.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/decision"
	"github.com/jgranda1999/agentic-sade/internal/envelope"
	"github.com/jgranda1999/agentic-sade/internal/escalate"
	"github.com/jgranda1999/agentic-sade/internal/rules"
	"github.com/jgranda1999/agentic-sade/internal/signals"
	"github.com/jgranda1999/agentic-sade/internal/validation"
)

// AdmissionService is the main service that handles entry decisions.
type AdmissionService struct {
	gateway *signals.Gateway
	claims  core.ClaimsVerifier
	auditor core.Auditor
	emitter *decision.Emitter
	timeout time.Duration
}

func NewAdmissionService(
	env core.EnvironmentSource,
	rep core.ReputationSource,
	claims core.ClaimsVerifier,
	auditor core.Auditor,
	emitter *decision.Emitter,
	timeout time.Duration,
) *AdmissionService {
	return &AdmissionService{
		gateway: signals.NewGateway(env, rep),
		claims:  claims,
		auditor: auditor,
		emitter: emitter,
		timeout: timeout,
	}
}

// Decide runs the full admission pipeline for one entry request. A
// policy outcome (including denial and degraded signal retrieval) is
// a nil-error result; a non-nil error means the engine itself failed.
func (s *AdmissionService) Decide(ctx context.Context, req *core.EntryRequest) (*core.Result, error) {
	logger := log.Ctx(ctx)
	reqID, _ := ctx.Value("correlation_id").(string)

	auditEntry := core.AuditEntry{
		ID:     reqID,
		Time:   time.Now(),
		Action: "entry.decide",
	}
	if req != nil {
		auditEntry.ZoneID = req.ZoneID
		auditEntry.PilotID = req.PilotID
		auditEntry.OrgID = req.OrgID
		auditEntry.DroneID = req.DroneID
	}
	defer func() {
		if err := s.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for entry decision")
		}
	}()

	if err := validation.ValidateEntryRequest(req); err != nil {
		auditEntry.Error = err.Error()
		return s.finish(&auditEntry, req, nil, rules.Candidate{
			Rule:    "invalid-entry-request",
			Type:    core.DecisionActionRequired,
			Actions: []string{core.ActionFixInvalidEntryRequest},
		}, emitOverrides{actionID: escalate.NewActionID(), reason: err.Error()})
	}

	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("pilot_id", req.PilotID).Str("drone_id", req.DroneID)
	})

	collectCtx, cancel := s.stageContext(ctx)
	collected, err := s.gateway.Collect(collectCtx, req)
	cancel()
	if err != nil {
		auditEntry.Error = err.Error()
		return s.finish(&auditEntry, req, nil, rules.Candidate{
			Rule:    "signal-retrieval-failed",
			Type:    core.DecisionActionRequired,
			Actions: []string{core.ActionRetrySignalRetrieval},
		}, emitOverrides{actionID: escalate.NewActionID(), reason: err.Error()})
	}

	flags := envelope.Compute(collected.Set)
	candidate := rules.EvaluateInitial(rules.Input{Signals: collected.Set, Flags: flags})
	logger.Debug().Str("rule", candidate.Rule).Str("type", string(candidate.Type)).Msg("initial rule matched")

	if candidate.Type != core.DecisionActionRequired {
		// Terminal denial or direct approval: the claims collaborator
		// is never consulted.
		return s.finish(&auditEntry, req, collected, candidate, emitOverrides{})
	}

	controller := escalate.NewController(s.claims)
	escalateCtx, cancel := s.stageContext(ctx)
	actionID, claimsResult, err := controller.Escalate(escalateCtx, req, candidate.Actions, collected.Set)
	cancel()
	if err != nil {
		auditEntry.Error = err.Error()
		return nil, httpError(http.StatusInternalServerError, err)
	}

	final := rules.EvaluateFinal(*claimsResult, flags)
	logger.Debug().Str("rule", final.Rule).Str("type", string(final.Type)).Msg("re-evaluation rule matched")
	if final.Type == core.DecisionActionRequired && len(final.Actions) == 0 {
		// Inconsistent claims verdicts surface the originally required
		// actions rather than an empty list.
		final.Actions = candidate.Actions
	}

	return s.finish(&auditEntry, req, collected, final, emitOverrides{
		actionID:     actionID,
		initialRule:  candidate.Rule,
		claimsResult: claimsResult,
	})
}

type emitOverrides struct {
	actionID     string
	reason       string
	initialRule  string
	claimsResult *core.ClaimsResult
}

// finish emits the decision, assembles the visibility echo, and fills
// the audit entry.
func (s *AdmissionService) finish(
	auditEntry *core.AuditEntry,
	req *core.EntryRequest,
	collected *signals.Collected,
	candidate rules.Candidate,
	ov emitOverrides,
) (*core.Result, error) {
	in := decision.Input{
		Candidate: candidate,
		ActionID:  ov.actionID,
		Reason:    ov.reason,
		Claims:    ov.claimsResult,
	}
	if collected != nil {
		in.Signals = collected.Set
		in.Flags = envelope.Compute(collected.Set)
	}

	d, err := s.emitter.Emit(in)
	if err != nil {
		auditEntry.Error = err.Error()
		return nil, httpError(http.StatusInternalServerError, err)
	}

	visibility := core.Visibility{
		RuleTrace: []string{},
	}
	if req != nil {
		visibility.EntryRequest = *req
	}
	if collected != nil {
		visibility.Environment = collected.Environment
		visibility.Reputation = collected.Reputation
	}
	if ov.initialRule != "" {
		visibility.RuleTrace = append(visibility.RuleTrace, ov.initialRule)
	}
	visibility.RuleTrace = append(visibility.RuleTrace, candidate.Rule)
	if ov.claimsResult != nil {
		visibility.Claims = core.ClaimsVisibility{
			Called:       true,
			ClaimsResult: *ov.claimsResult,
		}
	}

	result := &core.Result{Decision: d, Visibility: visibility}

	auditEntry.DecisionType = d.Type
	auditEntry.DenialCode = d.DenialCode
	auditEntry.Actions = d.Actions
	auditEntry.RuleTrace = visibility.RuleTrace
	auditEntry.ClaimsCalled = visibility.Claims.Called
	auditEntry.Result = result

	return result, nil
}

func (s *AdmissionService) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
