package validation

import (
	"testing"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

func validRequest() core.EntryRequest {
	return core.EntryRequest{
		ZoneID:    "ZONE-123",
		PilotID:   "FA-01234567",
		OrgID:     "ORG-789",
		DroneID:   "DRONE-001",
		Payload:   "2",
		EntryTime: "2026-01-26T14:00:00Z",
		Type:      core.RequestTypeRegion,
	}
}

func TestValidateEntryRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *core.EntryRequest)
		wantErr bool
	}{
		{"valid region request", nil, false},
		{"valid zone request", func(r *core.EntryRequest) { r.Type = core.RequestTypeZone }, false},
		{"valid route request", func(r *core.EntryRequest) { r.Type = core.RequestTypeRoute }, false},
		{"missing zone id", func(r *core.EntryRequest) { r.ZoneID = "" }, true},
		{"missing pilot id", func(r *core.EntryRequest) { r.PilotID = "" }, true},
		{"missing org id", func(r *core.EntryRequest) { r.OrgID = "" }, true},
		{"missing drone id", func(r *core.EntryRequest) { r.DroneID = "" }, true},
		{"missing entry time", func(r *core.EntryRequest) { r.EntryTime = "" }, true},
		{"garbage entry time", func(r *core.EntryRequest) { r.EntryTime = "tomorrow" }, true},
		{"missing request type", func(r *core.EntryRequest) { r.Type = "" }, true},
		{"unknown request type", func(r *core.EntryRequest) { r.Type = "ORBIT" }, true},
		// payload is not this stage's concern
		{"empty payload passes validation", func(r *core.EntryRequest) { r.Payload = "" }, false},
		{"garbage payload passes validation", func(r *core.EntryRequest) { r.Payload = "heavy" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := ValidateEntryRequest(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntryRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEntryRequest_Nil(t *testing.T) {
	if err := ValidateEntryRequest(nil); err == nil {
		t.Error("ValidateEntryRequest(nil) = nil, want error")
	}
}
