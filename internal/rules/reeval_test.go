package rules

import (
	"slices"
	"testing"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

func TestEvaluateFinal(t *testing.T) {
	tests := []struct {
		name        string
		claims      core.ClaimsResult
		flags       core.RiskFlags
		wantRule    string
		wantType    core.DecisionType
		wantDenial  string
		wantActions []string
	}{
		{
			name: "unresolved high severity prefix denies",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnresolvedPrefixes: []string{"0001"},
				UnsatisfiedActions: []string{core.ActionResolveHighSeverity},
			},
			wantRule:   "reeval-unresolved-high-severity",
			wantType:   core.DecisionDenied,
			wantDenial: core.DenyUnresolvedHighSeverity,
		},
		{
			name: "unresolved medium prefix does not trigger high rule",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnresolvedPrefixes: []string{"0100"},
				UnsatisfiedActions: []string{"SOME_OTHER_ACTION"},
			},
			wantRule:    "reeval-residual-actions",
			wantType:    core.DecisionActionRequired,
			wantActions: []string{"SOME_OTHER_ACTION"},
		},
		{
			name: "missing followup reports denies",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnsatisfiedActions: []string{core.ActionSubmitFollowupReports},
			},
			wantRule:   "reeval-missing-followups",
			wantType:   core.DecisionDenied,
			wantDenial: core.DenyMissingFollowupReports,
		},
		{
			name: "wind capability unproven while exceeding denies",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnsatisfiedActions: []string{core.ActionProveWindCapability},
			},
			flags:      core.RiskFlags{ExceedsEnvelope: true},
			wantRule:   "reeval-wind-capability-not-proven",
			wantType:   core.DecisionDenied,
			wantDenial: core.DenyWindCapabilityNotProven,
		},
		{
			name: "wind capability unproven without exceeding stays pending",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnsatisfiedActions: []string{core.ActionProveWindCapability},
			},
			wantRule:    "reeval-residual-actions",
			wantType:    core.DecisionActionRequired,
			wantActions: []string{core.ActionProveWindCapability},
		},
		{
			name: "residual actions surface verbatim",
			claims: core.ClaimsResult{
				Satisfied:          false,
				UnsatisfiedActions: []string{core.ActionResolveMediumPattern, core.ActionResolveMediumAndWind},
			},
			wantRule:    "reeval-residual-actions",
			wantType:    core.DecisionActionRequired,
			wantActions: []string{core.ActionResolveMediumPattern, core.ActionResolveMediumAndWind},
		},
		{
			name:     "satisfied near envelope approves with constraints",
			claims:   core.ClaimsResult{Satisfied: true},
			flags:    core.RiskFlags{NearEnvelope: true},
			wantRule: "reeval-claims-satisfied",
			wantType: core.DecisionApprovedConstraints,
		},
		{
			name:     "satisfied clear of envelope approves",
			claims:   core.ClaimsResult{Satisfied: true},
			wantRule: "reeval-claims-satisfied",
			wantType: core.DecisionApproved,
		},
		{
			name:     "unsatisfied with empty actions never approves",
			claims:   core.ClaimsResult{Satisfied: false},
			wantRule: "reeval-claims-inconsistent",
			wantType: core.DecisionActionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateFinal(tt.claims, tt.flags)

			if got.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.wantRule)
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.DenialCode != tt.wantDenial {
				t.Errorf("DenialCode = %q, want %q", got.DenialCode, tt.wantDenial)
			}
			if !slices.Equal(got.Actions, tt.wantActions) {
				t.Errorf("Actions = %v, want %v", got.Actions, tt.wantActions)
			}
		})
	}
}

// The high-severity denial outranks everything else in the table.
func TestEvaluateFinal_Order(t *testing.T) {
	claims := core.ClaimsResult{
		Satisfied:          false,
		UnresolvedPrefixes: []string{"0110"},
		UnsatisfiedActions: []string{core.ActionSubmitFollowupReports, core.ActionProveWindCapability},
	}
	got := EvaluateFinal(claims, core.RiskFlags{ExceedsEnvelope: true})
	if got.DenialCode != core.DenyUnresolvedHighSeverity {
		t.Fatalf("DenialCode = %q, want %q", got.DenialCode, core.DenyUnresolvedHighSeverity)
	}
}
