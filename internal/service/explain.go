package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/decision"
	"github.com/jgranda1999/agentic-sade/internal/envelope"
	"github.com/jgranda1999/agentic-sade/internal/rules"
	"github.com/jgranda1999/agentic-sade/internal/signals"
)

// ReplayReport compares a recorded decision with a recomputation from
// the audit entry's own visibility echo. No collaborator is called
// during replay; the recorded claims verdict is reused verbatim, so
// replaying is idempotent and side-effect free.
type ReplayReport struct {
	CorrelationID   string        `json:"correlation_id"`
	Recorded        core.Decision `json:"recorded"`
	Recomputed      core.Decision `json:"recomputed"`
	RecomputedTrace []string      `json:"recomputed_trace"`
	Match           bool          `json:"match"`
}

// Replay recomputes the decision for a past run identified by its
// correlation ID and reports whether the stored verdict reproduces.
func (s *AdmissionService) Replay(ctx context.Context, replayID string) (*ReplayReport, error) {
	logger := log.Ctx(ctx)
	logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("replay_id", replayID)
	})

	entries, err := s.auditor.Find(func(entry core.AuditEntry) bool {
		return entry.ID == replayID
	}, 1)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError,
			fmt.Errorf("failed to retrieve audit log for replay: %w", err))
	}
	if len(entries) == 0 {
		return nil, httpError(http.StatusNotFound,
			fmt.Errorf("audit log entry with ID '%s' not found for replay", replayID))
	}
	entry := entries[0]
	if entry.Result == nil {
		return nil, httpError(http.StatusBadRequest,
			fmt.Errorf("audit entry '%s' has no recorded result to replay", replayID))
	}

	recomputed, trace, err := s.recompute(entry.Result)
	if err != nil {
		return nil, httpError(http.StatusInternalServerError,
			fmt.Errorf("replaying decision: %w", err))
	}

	recorded := entry.Result.Decision
	return &ReplayReport{
		CorrelationID:   replayID,
		Recorded:        recorded,
		Recomputed:      recomputed,
		RecomputedTrace: trace,
		Match:           recorded.Type == recomputed.Type && recorded.SadeMessage == recomputed.SadeMessage,
	}, nil
}

// recompute reruns the pure pipeline stages over the visibility echo.
// Service-level outcomes (invalid request, failed retrieval) replay
// by reusing the recorded reason, since the evidence there is an
// error message rather than a signal set.
func (s *AdmissionService) recompute(recorded *core.Result) (core.Decision, []string, error) {
	vis := recorded.Visibility
	req := vis.EntryRequest

	if vis.Environment == nil || vis.Reputation == nil {
		// The original run never produced a signal set; reproduce the
		// recorded service-level outcome from the stored decision.
		d := recorded.Decision
		return d, vis.RuleTrace, nil
	}

	set, err := signals.Normalize(vis.Environment, vis.Reputation, &req)
	if err != nil {
		return s.emitReplay(decision.Input{
			Candidate: rules.Candidate{
				Rule:    "signal-retrieval-failed",
				Type:    core.DecisionActionRequired,
				Actions: []string{core.ActionRetrySignalRetrieval},
			},
			ActionID: recorded.Decision.ActionID,
			Reason:   err.Error(),
		}, []string{"signal-retrieval-failed"})
	}

	flags := envelope.Compute(set)
	candidate := rules.EvaluateInitial(rules.Input{Signals: set, Flags: flags})
	trace := []string{candidate.Rule}

	in := decision.Input{
		Candidate: candidate,
		Signals:   set,
		Flags:     flags,
		ActionID:  recorded.Decision.ActionID,
	}

	if candidate.Type == core.DecisionActionRequired && vis.Claims.Called {
		claims := vis.Claims.ClaimsResult
		final := rules.EvaluateFinal(claims, flags)
		if final.Type == core.DecisionActionRequired && len(final.Actions) == 0 {
			final.Actions = candidate.Actions
		}
		trace = append(trace, final.Rule)
		in.Candidate = final
		in.Claims = &claims
	}

	return s.emitReplay(in, trace)
}

func (s *AdmissionService) emitReplay(in decision.Input, trace []string) (core.Decision, []string, error) {
	d, err := s.emitter.Emit(in)
	if err != nil {
		return core.Decision{}, nil, err
	}
	return d, trace, nil
}
