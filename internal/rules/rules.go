// Package rules holds the two ordered rule tables of the admission
// engine: the initial verdict table and the post-escalation
// re-evaluation table. Both are fixed slices evaluated first match
// wins; the order is a safety invariant, so the tables live in code
// rather than configuration.
package rules

import "github.com/jgranda1999/agentic-sade/internal/core"

// Input is everything the initial table may consult.
type Input struct {
	Signals core.SignalSet
	Flags   core.RiskFlags
}

// Candidate is the outcome of one table walk. For the initial table a
// DENIED candidate is terminal (escalation must not run); an
// ACTION-REQUIRED candidate feeds the escalation path.
type Candidate struct {
	// Rule is the identifier of the rule that fired, for the trace.
	Rule string

	Type       core.DecisionType
	DenialCode string
	Actions    []string
}

// Terminal reports whether this candidate forbids escalation.
func (c Candidate) Terminal() bool {
	return c.Type == core.DecisionDenied
}

type rule struct {
	name string
	// eval returns nil when the rule does not apply.
	eval func(in Input) *Candidate
}

func deny(code string) *Candidate {
	return &Candidate{Type: core.DecisionDenied, DenialCode: code}
}

func actionRequired(actions ...string) *Candidate {
	return &Candidate{Type: core.DecisionActionRequired, Actions: actions}
}

var initialTable = []rule{
	{
		name: "mfc-data-unavailable",
		eval: func(in Input) *Candidate {
			if !in.Signals.MFCWindKt.Valid || !in.Signals.MFCPayloadKg.Valid {
				return deny(core.DenyMFCDataUnavailable)
			}
			return nil
		},
	},
	{
		name: "invalid-payload-weight",
		eval: func(in Input) *Candidate {
			if !in.Flags.PayloadValid {
				return deny(core.DenyInvalidPayloadWeight)
			}
			return nil
		},
	},
	{
		name: "payload-exceeds-mfc-max",
		eval: func(in Input) *Candidate {
			if in.Flags.PayloadKg > in.Signals.MFCPayloadKg.Value {
				return deny(core.DenyPayloadExceedsMFCMax)
			}
			return nil
		},
	},
	{
		name: "wind-exceeds-mfc-max",
		eval: func(in Input) *Candidate {
			max := in.Signals.MFCWindKt.Value
			if in.Signals.SteadyWindKt > max || in.Signals.GustWindKt > max {
				return deny(core.DenyWindExceedsMFCMax)
			}
			return nil
		},
	},
	{
		name: "wind-exceeds-demonstrated",
		eval: func(in Input) *Candidate {
			if in.Flags.ExceedsLarge {
				return deny(core.DenyWindExceedsDemonstrated)
			}
			return nil
		},
	},
	{
		name: "high-severity-incidents",
		eval: func(in Input) *Candidate {
			if in.Flags.HasHighSeverity {
				return actionRequired(core.ActionResolveHighSeverity)
			}
			return nil
		},
	},
	{
		name: "low-severity-followups",
		eval: func(in Input) *Candidate {
			if in.Flags.HasOnlyLowSeverity {
				return actionRequired(core.ActionSubmitFollowupReports)
			}
			return nil
		},
	},
	{
		name: "medium-family-incidents",
		eval: func(in Input) *Candidate {
			if !in.Flags.HasMediumFamily {
				return nil
			}
			switch {
			case in.Flags.ExceedsEnvelope || in.Flags.NearEnvelope:
				return actionRequired(core.ActionResolveMediumAndWind)
			case in.Flags.PatternPresent:
				return actionRequired(core.ActionResolveMediumPattern)
			default:
				return &Candidate{Type: core.DecisionApprovedConstraints}
			}
		},
	},
	{
		name: "wind-capability-unproven",
		eval: func(in Input) *Candidate {
			if in.Flags.ExceedsEnvelope {
				return actionRequired(core.ActionProveWindCapability)
			}
			return nil
		},
	},
	{
		name: "near-envelope-constraints",
		eval: func(in Input) *Candidate {
			if in.Flags.NearEnvelope {
				return &Candidate{Type: core.DecisionApprovedConstraints}
			}
			return nil
		},
	},
	{
		name: "approve-default",
		eval: func(in Input) *Candidate {
			return &Candidate{Type: core.DecisionApproved}
		},
	},
}

// EvaluateInitial walks the initial table in order and returns the
// first matching rule's candidate. The default rule always matches,
// so a candidate is always produced.
func EvaluateInitial(in Input) Candidate {
	for _, r := range initialTable {
		if c := r.eval(in); c != nil {
			c.Rule = r.name
			return *c
		}
	}
	// unreachable; approve-default matches everything
	return Candidate{Rule: "approve-default", Type: core.DecisionApproved}
}
