package core

// DecisionType is the admission verdict variant.
type DecisionType string

const (
	DecisionApproved            DecisionType = "APPROVED"
	DecisionApprovedConstraints DecisionType = "APPROVED-CONSTRAINTS"
	DecisionActionRequired      DecisionType = "ACTION-REQUIRED"
	DecisionDenied              DecisionType = "DENIED"
)

// Denial codes. The first five come from the initial rule table and
// terminate the run before any claims verification; the last three
// are only reachable from a claims-collaborator verdict.
const (
	DenyMFCDataUnavailable      = "MFC_DATA_UNAVAILABLE"
	DenyInvalidPayloadWeight    = "INVALID_PAYLOAD_WEIGHT"
	DenyPayloadExceedsMFCMax    = "PAYLOAD_EXCEEDS_MFC_MAX"
	DenyWindExceedsMFCMax       = "WIND_EXCEEDS_MFC_MAX"
	DenyWindExceedsDemonstrated = "WIND_EXCEEDS_DEMONSTRATED_CAPABILITY"
	DenyUnresolvedHighSeverity  = "UNRESOLVED_HIGH_SEVERITY_INCIDENT"
	DenyMissingFollowupReports  = "MISSING_FOLLOWUP_REPORTS"
	DenyWindCapabilityNotProven = "WIND_CAPABILITY_NOT_PROVEN"
)

// Required-action identifiers carried by ACTION-REQUIRED decisions.
const (
	ActionFixInvalidEntryRequest = "FIX_INVALID_ENTRY_REQUEST"
	ActionRetrySignalRetrieval   = "RETRY_SIGNAL_RETRIEVAL"
	ActionResolveHighSeverity    = "RESOLVE_HIGH_SEVERITY_INCIDENTS"
	ActionSubmitFollowupReports  = "SUBMIT_REQUIRED_FOLLOWUP_REPORTS"
	ActionResolveMediumAndWind   = "RESOLVE_0100_0101_INCIDENTS_AND_MITIGATE_WIND_RISK"
	ActionResolveMediumPattern   = "RESOLVE_PATTERN_OF_0100_0101"
	ActionProveWindCapability    = "PROVE_WIND_CAPABILITY"
)

// Decision is the tagged admission verdict. Exactly the fields legal
// for the variant are populated: Constraints only for
// APPROVED-CONSTRAINTS, ActionID+Actions only for ACTION-REQUIRED,
// DenialCode only for DENIED. Explanation is always present and
// non-empty. The emitter enforces this shape before a Decision leaves
// the engine.
type Decision struct {
	Type DecisionType `json:"type"`

	// SadeMessage is the canonical status string, one of:
	//   APPROVED
	//   APPROVED-CONSTRAINTS,(c1,c2,...)
	//   <action-id>,ACTION-REQUIRED,(a1,a2,...)
	//   DENIED,<code>,<explanation>
	SadeMessage string `json:"sade_message"`

	Constraints []string `json:"constraints"`
	ActionID    string   `json:"action_id,omitempty"`
	Actions     []string `json:"actions"`
	DenialCode  string   `json:"denial_code,omitempty"`
	Explanation string   `json:"explanation"`
}

// ClaimsVisibility records whether the claims collaborator was
// consulted and, if so, its full verdict.
type ClaimsVisibility struct {
	Called bool `json:"called"`
	ClaimsResult
}

// Visibility is the audit side of a decision: verbatim echoes of
// every collaborator response consulted plus the ordered rule trace.
// Together with the entry request it is sufficient to reproduce the
// decision exactly.
type Visibility struct {
	EntryRequest EntryRequest       `json:"entry_request"`
	Environment  *EnvironmentReport `json:"environment_agent,omitempty"`
	Reputation   *ReputationReport  `json:"reputation_agent,omitempty"`
	Claims       ClaimsVisibility   `json:"claims_agent"`
	RuleTrace    []string           `json:"rule_trace"`
}

// Result is the complete output of one admission run.
type Result struct {
	Decision   Decision   `json:"decision"`
	Visibility Visibility `json:"visibility"`
}
