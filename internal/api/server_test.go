package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jgranda1999/agentic-sade/internal/audit"
	"github.com/jgranda1999/agentic-sade/internal/core"
	"github.com/jgranda1999/agentic-sade/internal/decision"
	"github.com/jgranda1999/agentic-sade/internal/service"
)

type stubEnv struct{}

func (stubEnv) Name() string { return "stub" }
func (stubEnv) Fetch(context.Context, *core.EntryRequest) (*core.EnvironmentReport, error) {
	return &core.EnvironmentReport{
		ManufacturerFC: core.ManufacturerFC{
			MaxPayloadKg: core.FloatOf(5),
			MaxWindKt:    core.FloatOf(25),
		},
		RawConditions: core.RawConditions{
			Wind:     core.FloatOf(10),
			WindGust: core.FloatOf(14),
		},
	}, nil
}

type stubRep struct{}

func (stubRep) Name() string { return "stub" }
func (stubRep) Fetch(context.Context, *core.EntryRequest) (*core.ReputationReport, error) {
	return &core.ReputationReport{
		DemoSteadyMax: core.FloatOf(20),
		DemoGustMax:   core.FloatOf(24),
	}, nil
}

type stubClaims struct{}

func (stubClaims) Name() string { return "stub" }
func (stubClaims) Verify(context.Context, *core.ClaimsRequest) (*core.ClaimsResult, error) {
	return &core.ClaimsResult{Satisfied: true}, nil
}

var testSigningKey = []byte("test-signing-key")

func testServer(t *testing.T) (http.Handler, *audit.InMemoryAuditor) {
	t.Helper()
	auditor := audit.NewInMemoryAuditor()
	svc := service.NewAdmissionService(stubEnv{}, stubRep{}, stubClaims{}, auditor, decision.NewEmitter(nil), 0)
	return NewServer(svc, auditor).Routes(testSigningKey), auditor
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSigningKey)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

const entryBody = `{
  "sade_zone_id": "SADE-12",
  "pilot_id": "FA-01234567",
  "organization_id": "ORG-7",
  "drone_id": "DRN-42",
  "payload": "2.0",
  "requested_entry_time": "2026-09-01T10:00:00Z",
  "request_type": "ZONE"
}`

func TestHandleDecide(t *testing.T) {
	handler, auditor := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, DecideEntryRoute, strings.NewReader(entryBody))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Correlation-ID") == "" {
		t.Error("correlation id header missing")
	}

	var result core.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Decision.Type != core.DecisionApproved {
		t.Errorf("decision = %s (%s)", result.Decision.Type, result.Decision.Explanation)
	}

	entries, _ := auditor.Find(func(core.AuditEntry) bool { return true }, 1)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	if entries[0].ID != rec.Header().Get("X-Correlation-ID") {
		t.Error("audit entry not linked to correlation id")
	}
}

func TestHandleDecide_BadBody(t *testing.T) {
	handler, _ := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, DecideEntryRoute, strings.NewReader("{not json"))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	handler, _ := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, ListAuditsRoute, nil)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated audit list status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, ListAuditsRoute, nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestAdminAudit_RejectsBadLimit(t *testing.T) {
	handler, _ := testServer(t)
	token := adminToken(t)

	for _, limit := range []string{"-1", "many"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, ListAuditsRoute+"?limit="+limit, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestAdminAuditAndReplay(t *testing.T) {
	handler, _ := testServer(t)
	token := adminToken(t)

	// produce one decision to audit
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, DecideEntryRoute, strings.NewReader(entryBody))
	handler.ServeHTTP(rec, req)
	correlationID := rec.Header().Get("X-Correlation-ID")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, ListAuditsRoute+"?pilot_id=FA-01234567", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit list status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var entries []core.AuditEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != correlationID {
		t.Errorf("entries = %+v", entries)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, ReplayAuditRoute+"?replay_id="+correlationID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("replay status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report service.ReplayReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if !report.Match {
		t.Errorf("replay mismatch: %+v", report)
	}
}

func TestHealthAndInfo(t *testing.T) {
	handler, _ := testServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthCheckRoute, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, InfoRoute, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("info status = %d", rec.Code)
	}
	var info map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info["service"] != "SADE" {
		t.Errorf("info = %v", info)
	}
}
