// Package decision turns a rule-table candidate into the final tagged
// Decision: canonical status line, variant-legal fields only, and an
// explanation that cites the evidence the verdict rests on.
package decision

import (
	"fmt"
	"strings"

	"github.com/jgranda1999/agentic-sade/internal/constraints"
	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/rules"
)

// Emitter builds decisions. It is safe for concurrent use.
type Emitter struct {
	profile *constraints.Profile
}

func NewEmitter(profile *constraints.Profile) *Emitter {
	if profile == nil {
		profile = constraints.Default()
	}
	return &Emitter{profile: profile}
}

// Input is everything the emitter may cite as evidence.
type Input struct {
	Candidate rules.Candidate
	Signals   core.SignalSet
	Flags     core.RiskFlags

	// ActionID must be set when the candidate is ACTION-REQUIRED.
	ActionID string

	// Claims is the collaborator verdict, nil when escalation never ran.
	Claims *core.ClaimsResult

	// Reason, when set, replaces the generated explanation. Used for
	// the service-level outcomes (invalid request, signal retrieval
	// failure) where the evidence is an error, not a signal set.
	Reason string
}

// Emit builds the Decision for a candidate and verifies the variant
// shape invariants before returning it. A shape violation is a
// programming error and surfaces as a non-nil error, never as a
// malformed decision.
func (e *Emitter) Emit(in Input) (core.Decision, error) {
	d := core.Decision{Type: in.Candidate.Type}

	switch in.Candidate.Type {
	case core.DecisionApproved:
		d.SadeMessage = string(core.DecisionApproved)

	case core.DecisionApprovedConstraints:
		d.Constraints = e.profile.For(in.Signals, in.Flags)
		d.SadeMessage = fmt.Sprintf("%s,(%s)", core.DecisionApprovedConstraints, strings.Join(d.Constraints, ","))

	case core.DecisionActionRequired:
		d.ActionID = in.ActionID
		d.Actions = in.Candidate.Actions
		d.SadeMessage = fmt.Sprintf("%s,ACTION-REQUIRED,(%s)", in.ActionID, strings.Join(d.Actions, ","))

	case core.DecisionDenied:
		d.DenialCode = in.Candidate.DenialCode
	}

	d.Explanation = in.Reason
	if d.Explanation == "" {
		d.Explanation = explain(in)
	}

	if in.Candidate.Type == core.DecisionDenied {
		d.SadeMessage = fmt.Sprintf("DENIED,%s,%s", d.DenialCode, d.Explanation)
	}

	if err := validate(d); err != nil {
		return core.Decision{}, err
	}

	// both fields marshal as [] on the wire, never null
	if d.Constraints == nil {
		d.Constraints = []string{}
	}
	if d.Actions == nil {
		d.Actions = []string{}
	}
	return d, nil
}

// validate enforces the tagged-variant shape invariants.
func validate(d core.Decision) error {
	if d.Explanation == "" {
		return fmt.Errorf("decision %s has empty explanation", d.Type)
	}
	switch d.Type {
	case core.DecisionApproved:
		if len(d.Constraints) != 0 || d.ActionID != "" || len(d.Actions) != 0 || d.DenialCode != "" {
			return fmt.Errorf("APPROVED decision carries variant fields of another type")
		}
	case core.DecisionApprovedConstraints:
		if len(d.Constraints) == 0 {
			return fmt.Errorf("APPROVED-CONSTRAINTS decision has no constraints")
		}
		if d.ActionID != "" || len(d.Actions) != 0 || d.DenialCode != "" {
			return fmt.Errorf("APPROVED-CONSTRAINTS decision carries variant fields of another type")
		}
	case core.DecisionActionRequired:
		if d.ActionID == "" {
			return fmt.Errorf("ACTION-REQUIRED decision has no action id")
		}
		if len(d.Actions) == 0 {
			return fmt.Errorf("ACTION-REQUIRED decision has no actions")
		}
		if len(d.Constraints) != 0 || d.DenialCode != "" {
			return fmt.Errorf("ACTION-REQUIRED decision carries variant fields of another type")
		}
	case core.DecisionDenied:
		if d.DenialCode == "" {
			return fmt.Errorf("DENIED decision has no denial code")
		}
		if len(d.Constraints) != 0 || d.ActionID != "" || len(d.Actions) != 0 {
			return fmt.Errorf("DENIED decision carries variant fields of another type")
		}
	default:
		return fmt.Errorf("unknown decision type %q", d.Type)
	}
	return nil
}

func explain(in Input) string {
	s, f := in.Signals, in.Flags

	switch in.Candidate.Type {
	case core.DecisionDenied:
		return explainDenial(in)

	case core.DecisionActionRequired:
		var b strings.Builder
		b.WriteString("entry cannot be approved until remedial actions are completed: ")
		b.WriteString(strings.Join(in.Candidate.Actions, ", "))
		if len(s.IncidentCodes) > 0 {
			fmt.Fprintf(&b, "; incident codes on record: %s", strings.Join(s.IncidentCodes, ", "))
		}
		if in.Claims != nil && len(in.Claims.Why) > 0 {
			fmt.Fprintf(&b, "; claims verification: %s", strings.Join(in.Claims.Why, "; "))
		}
		return b.String()

	case core.DecisionApprovedConstraints:
		return fmt.Sprintf(
			"wind %.1f kt steady / %.1f kt gust is within 90%% of the demonstrated capability (steady cap %.1f kt, gust cap %.1f kt); approved with operating constraints",
			s.SteadyWindKt, s.GustWindKt, f.SteadyCapKt, f.GustCapKt)

	default: // APPROVED
		return fmt.Sprintf(
			"payload %.1f kg within manufacturer maximum %.1f kg; wind %.1f kt steady / %.1f kt gust within demonstrated capability (steady cap %.1f kt, gust cap %.1f kt); no disqualifying incidents",
			f.PayloadKg, s.MFCPayloadKg.Value, s.SteadyWindKt, s.GustWindKt, f.SteadyCapKt, f.GustCapKt)
	}
}

func explainDenial(in Input) string {
	s, f := in.Signals, in.Flags

	switch in.Candidate.DenialCode {
	case core.DenyMFCDataUnavailable:
		return "manufacturer flight card limits for this drone model are unavailable or non-numeric"
	case core.DenyInvalidPayloadWeight:
		return fmt.Sprintf("declared payload weight %q is not a valid non-negative number", s.PayloadRaw)
	case core.DenyPayloadExceedsMFCMax:
		return fmt.Sprintf("declared payload %.1f kg exceeds the manufacturer maximum %.1f kg", f.PayloadKg, s.MFCPayloadKg.Value)
	case core.DenyWindExceedsMFCMax:
		return fmt.Sprintf("wind %.1f kt steady / %.1f kt gust exceeds the manufacturer wind maximum %.1f kt", s.SteadyWindKt, s.GustWindKt, s.MFCWindKt.Value)
	case core.DenyWindExceedsDemonstrated:
		return fmt.Sprintf("wind %.1f kt steady / %.1f kt gust exceeds 120%% of the demonstrated capability (steady cap %.1f kt, gust cap %.1f kt)", s.SteadyWindKt, s.GustWindKt, f.SteadyCapKt, f.GustCapKt)
	case core.DenyUnresolvedHighSeverity:
		prefixes := "high-severity incident prefixes"
		if in.Claims != nil && len(in.Claims.UnresolvedPrefixes) > 0 {
			prefixes = strings.Join(in.Claims.UnresolvedPrefixes, ", ")
		}
		return fmt.Sprintf("claims verification left high-severity incidents unresolved: %s", prefixes)
	case core.DenyMissingFollowupReports:
		return "required follow-up reports for incidents on record were not submitted"
	case core.DenyWindCapabilityNotProven:
		return fmt.Sprintf("wind %.1f kt steady / %.1f kt gust exceeds the demonstrated capability (steady cap %.1f kt, gust cap %.1f kt) and the capability claim was not proven", s.SteadyWindKt, s.GustWindKt, f.SteadyCapKt, f.GustCapKt)
	default:
		return fmt.Sprintf("entry denied with code %s", in.Candidate.DenialCode)
	}
}
