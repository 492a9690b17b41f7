package core

// RequestType is the spatial shape of an entry request.
type RequestType string

const (
	RequestTypeZone   RequestType = "ZONE"
	RequestTypeRegion RequestType = "REGION"
	RequestTypeRoute  RequestType = "ROUTE"
)

// KnownRequestType reports whether t is one of the accepted request types.
func KnownRequestType(t RequestType) bool {
	switch t {
	case RequestTypeZone, RequestTypeRegion, RequestTypeRoute:
		return true
	}
	return false
}

// EntryRequest is the record an admission decision is computed about.
// It identifies the Drone|Pilot|Organization (DPO) trio and the zone,
// and is immutable once it passes validation.
type EntryRequest struct {
	// ZoneID is the SADE zone the DPO requests entry into.
	ZoneID string `json:"sade_zone_id"`

	// PilotID is the pilot registration (e.g. FA-01234567).
	PilotID string `json:"pilot_id"`

	// OrgID is the operating organization.
	OrgID string `json:"organization_id"`

	// DroneID identifies the airframe.
	DroneID string `json:"drone_id"`

	// Payload is the declared payload weight in kg, carried as a string
	// on the wire. Parsing happens in the risk computer so that an
	// unparseable value reaches the rule table and yields the correct
	// denial code instead of an error.
	Payload string `json:"payload"`

	// EntryTime is the requested entry time (RFC 3339).
	EntryTime string `json:"requested_entry_time"`

	// Type is ZONE, REGION or ROUTE.
	Type RequestType `json:"request_type"`

	// RequestPayload carries the type-specific geometry (REGION polygon
	// with ceiling/floor, ROUTE waypoints). The engine never branches on
	// it; it is echoed verbatim in the visibility object.
	RequestPayload map[string]any `json:"request_payload,omitempty"`
}
