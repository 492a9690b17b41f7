package core

// WindContext gives the claims collaborator the numbers it needs to
// verify a wind-capability claim without re-fetching signals.
type WindContext struct {
	WindNowKt       Float `json:"wind_now_kt"`
	GustNowKt       Float `json:"gust_now_kt"`
	DemoSteadyMaxKt Float `json:"demo_steady_max_kt"`
	DemoGustMaxKt   Float `json:"demo_gust_max_kt"`
}

// ClaimsRequest asks the claims collaborator to verify that the
// required remedial actions have been satisfied with real evidence.
type ClaimsRequest struct {
	ActionID        string      `json:"action_id"`
	ZoneID          string      `json:"sade_zone_id"`
	PilotID         string      `json:"pilot_id"`
	OrgID           string      `json:"organization_id"`
	DroneID         string      `json:"drone_id"`
	EntryTime       string      `json:"requested_entry_time"`
	RequiredActions []string    `json:"required_actions"`
	IncidentCodes   []string    `json:"incident_codes"`
	WindContext     WindContext `json:"wind_context"`
}

// ClaimsResult is the claims collaborator's verdict. It is ground
// truth: the re-evaluation engine consumes these fields verbatim and
// has no code path that recomputes or overrides them.
type ClaimsResult struct {
	Satisfied          bool     `json:"satisfied"`
	ResolvedPrefixes   []string `json:"resolved_incident_prefixes"`
	UnresolvedPrefixes []string `json:"unresolved_incident_prefixes"`
	SatisfiedActions   []string `json:"satisfied_actions"`
	UnsatisfiedActions []string `json:"unsatisfied_actions"`
	Why                []string `json:"why,omitempty"`
}
