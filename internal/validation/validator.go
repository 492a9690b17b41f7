package validation

import (
	"fmt"
	"time"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

// ValidateEntryRequest checks presence and shape of an entry request
// before any collaborator is consulted. The payload field is
// deliberately not checked here: an unparseable payload must reach
// the rule table so the correct denial code is chosen.
func ValidateEntryRequest(req *core.EntryRequest) error {
	if req == nil {
		return fmt.Errorf("entry request is empty")
	}
	if req.ZoneID == "" {
		return fmt.Errorf("missing sade_zone_id")
	}
	if req.PilotID == "" {
		return fmt.Errorf("missing pilot_id")
	}
	if req.OrgID == "" {
		return fmt.Errorf("missing organization_id")
	}
	if req.DroneID == "" {
		return fmt.Errorf("missing drone_id")
	}
	if req.EntryTime == "" {
		return fmt.Errorf("missing requested_entry_time")
	}
	if _, err := time.Parse(time.RFC3339, req.EntryTime); err != nil {
		return fmt.Errorf("parsing requested_entry_time %q: %w", req.EntryTime, err)
	}
	if req.Type == "" {
		return fmt.Errorf("missing request_type")
	}
	if !core.KnownRequestType(req.Type) {
		return fmt.Errorf("unknown request_type %q", req.Type)
	}
	return nil
}
