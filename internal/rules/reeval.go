package rules

import (
	"slices"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

// EvaluateFinal derives the final verdict strictly from the claims
// collaborator's result plus the already-computed envelope flags. It
// consumes the claims fields verbatim; no path here recomputes or
// overrides them. First match wins, as with the initial table.
func EvaluateFinal(claims core.ClaimsResult, flags core.RiskFlags) Candidate {
	if hasHighSeverityPrefix(claims.UnresolvedPrefixes) {
		return Candidate{
			Rule:       "reeval-unresolved-high-severity",
			Type:       core.DecisionDenied,
			DenialCode: core.DenyUnresolvedHighSeverity,
		}
	}

	if slices.Contains(claims.UnsatisfiedActions, core.ActionSubmitFollowupReports) {
		return Candidate{
			Rule:       "reeval-missing-followups",
			Type:       core.DecisionDenied,
			DenialCode: core.DenyMissingFollowupReports,
		}
	}

	if slices.Contains(claims.UnsatisfiedActions, core.ActionProveWindCapability) && flags.ExceedsEnvelope {
		return Candidate{
			Rule:       "reeval-wind-capability-not-proven",
			Type:       core.DecisionDenied,
			DenialCode: core.DenyWindCapabilityNotProven,
		}
	}

	if len(claims.UnsatisfiedActions) > 0 {
		// Residual actions surface verbatim; nothing is invented here.
		return Candidate{
			Rule:    "reeval-residual-actions",
			Type:    core.DecisionActionRequired,
			Actions: slices.Clone(claims.UnsatisfiedActions),
		}
	}

	// Claims satisfied: only the envelope constraint rule re-applies.
	if claims.Satisfied {
		if flags.NearEnvelope {
			return Candidate{
				Rule: "reeval-claims-satisfied",
				Type: core.DecisionApprovedConstraints,
			}
		}
		return Candidate{
			Rule: "reeval-claims-satisfied",
			Type: core.DecisionApproved,
		}
	}

	// Unsatisfied with no listed actions is an inconsistent verdict
	// from the collaborator. Uncertainty never resolves to approval.
	return Candidate{
		Rule: "reeval-claims-inconsistent",
		Type: core.DecisionActionRequired,
	}
}

func hasHighSeverityPrefix(prefixes []string) bool {
	for _, p := range prefixes {
		if core.HighSeverityPrefix(p) {
			return true
		}
	}
	return false
}
