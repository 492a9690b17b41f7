package core

import "strings"

// Severity is the incident severity family.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Incident codes have the form "hhhh-sss": a 4-digit category prefix
// and a subtype. The prefix alone determines the severity family.
var severityByPrefix = map[string]Severity{
	"0001": SeverityHigh,   // injury-related
	"0011": SeverityHigh,   // mid-air collision / near-miss
	"0110": SeverityHigh,   // security & law enforcement
	"0010": SeverityMedium, // property damage
	"0100": SeverityMedium, // loss of control / malfunction
	"0101": SeverityMedium, // airspace violation
	"1111": SeverityLow,    // incomplete flight log
}

var categoryByPrefix = map[string]string{
	"0001": "Injury-Related Incidents",
	"0010": "Property Damage",
	"0011": "Mid-Air Collisions / Near-Misses",
	"0100": "Loss of Control / Malfunctions",
	"0101": "Airspace Violations",
	"0110": "Security & Law Enforcement Events",
	"1111": "Incomplete Flight Log",
}

// IncidentPrefix returns the 4-digit category prefix of an incident
// code, or "" if the code does not have the hhhh-sss shape.
func IncidentPrefix(code string) string {
	prefix, _, found := strings.Cut(code, "-")
	if !found {
		return ""
	}
	return prefix
}

// SeverityOfPrefix classifies a category prefix. Unknown prefixes
// classify LOW so that a stray code still routes through the
// follow-up-reports path instead of being silently ignored.
func SeverityOfPrefix(prefix string) Severity {
	if sev, ok := severityByPrefix[prefix]; ok {
		return sev
	}
	return SeverityLow
}

// CategoryOfPrefix returns the human-readable incident category.
func CategoryOfPrefix(prefix string) string {
	if cat, ok := categoryByPrefix[prefix]; ok {
		return cat
	}
	return "Unknown"
}

// HighSeverityPrefix reports whether prefix is in the High family.
func HighSeverityPrefix(prefix string) bool {
	return severityByPrefix[prefix] == SeverityHigh
}

// MediumFamilyPrefix reports whether prefix is 0100 or 0101, the
// medium family tracked for repeat-pattern detection.
func MediumFamilyPrefix(prefix string) bool {
	return prefix == "0100" || prefix == "0101"
}

// Incident is one historical incident attached to a DPO session.
type Incident struct {
	Code      string   `json:"incident_code"`
	Category  string   `json:"incident_category,omitempty"`
	Severity  Severity `json:"severity"`
	Resolved  bool     `json:"resolved"`
	SessionID string   `json:"session_id,omitempty"`
	Date      string   `json:"date,omitempty"`
}
