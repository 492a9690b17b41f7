package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "entry.decide")
	Action string `json:"action"`

	// Request identifiers
	ZoneID  string `json:"sade_zone_id,omitempty"`
	PilotID string `json:"pilot_id,omitempty"`
	OrgID   string `json:"organization_id,omitempty"`
	DroneID string `json:"drone_id,omitempty"`

	// Decision details
	DecisionType DecisionType `json:"decision_type,omitempty"`
	DenialCode   string       `json:"denial_code,omitempty"`
	Actions      []string     `json:"actions,omitempty"`
	RuleTrace    []string     `json:"rule_trace,omitempty"`
	ClaimsCalled bool         `json:"claims_called"`
	Error        string       `json:"error,omitempty"`

	// Result is the full decision + visibility echo, kept so an audit
	// entry alone is enough to replay the run.
	Result *Result `json:"result,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
	Close() error
}
