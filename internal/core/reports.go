package core

// ManufacturerFC are the manufacturer flight constraints for the
// requesting airframe. The limit fields are sourced verbatim from the
// environment collaborator; absence or a non-numeric value is a
// policy denial (MFC data unavailable), never a transport failure.
type ManufacturerFC struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Category     string `json:"category,omitempty"`
	MaxPayloadKg Float  `json:"mfc_payload_max_kg"`
	MaxWindKt    Float  `json:"mfc_max_wind_kt"`
}

// SpatialConstraints describe the airspace around the requested zone.
type SpatialConstraints struct {
	AirspaceClass   string   `json:"airspace_class,omitempty"`
	NoFlyZones      []string `json:"no_fly_zones,omitempty"`
	RestrictedAreas []string `json:"restricted_areas,omitempty"`
}

// RawConditions are the measured environmental conditions at the
// requested entry time. Wind and WindGust are the only fields the
// rule table consumes; the rest is advisory context.
type RawConditions struct {
	Wind            Float              `json:"wind"`
	WindGust        Float              `json:"wind_gust"`
	Precipitation   string             `json:"precipitation,omitempty"`
	VisibilityKm    Float              `json:"visibility,omitempty"`
	LightConditions string             `json:"light_conditions,omitempty"`
	Spatial         SpatialConstraints `json:"spatial_constraints,omitempty"`
}

// EnvironmentReport is the environment collaborator's full response:
// manufacturer limits, current conditions, and advisory risk fields
// the engine echoes into the audit trail but never branches on.
type EnvironmentReport struct {
	ManufacturerFC ManufacturerFC `json:"manufacturer_fc"`
	RawConditions  RawConditions  `json:"raw_conditions"`

	// Advisory-only fields.
	RiskLevel             string   `json:"risk_level,omitempty"`
	BlockingFactors       []string `json:"blocking_factors,omitempty"`
	MarginalFactors       []string `json:"marginal_factors,omitempty"`
	ConstraintSuggestions []string `json:"constraint_suggestions,omitempty"`
	Recommendation        string   `json:"recommendation,omitempty"`
	Why                   []string `json:"why,omitempty"`
}

// ReputationReport is the reputation collaborator's full response:
// the demonstrated wind envelope, the incident record, and advisory
// risk fields.
type ReputationReport struct {
	SessionsCount  int        `json:"drp_sessions_count"`
	DemoSteadyMax  Float      `json:"demo_steady_max_kt"`
	DemoGustMax    Float      `json:"demo_gust_max_kt"`
	IncidentCodes  []string   `json:"incident_codes"`
	MediumFamilyN  int        `json:"n_0100_0101"`
	Incidents      []Incident `json:"incidents,omitempty"`
	UnresolvedSeen bool       `json:"unresolved_incidents_present,omitempty"`

	// Advisory-only fields.
	RiskLevel         string   `json:"risk_level,omitempty"`
	BlockingFactors   []string `json:"blocking_factors,omitempty"`
	ConfidenceFactors []string `json:"confidence_factors,omitempty"`
	Recommendation    string   `json:"recommendation,omitempty"`
	Why               []string `json:"why,omitempty"`
}
