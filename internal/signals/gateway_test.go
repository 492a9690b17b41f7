package signals

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

type fakeEnv struct {
	report *core.EnvironmentReport
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (f *fakeEnv) Name() string { return "fake-env" }

func (f *fakeEnv) Fetch(ctx context.Context, _ *core.EntryRequest) (*core.EnvironmentReport, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.report, f.err
}

type fakeRep struct {
	report *core.ReputationReport
	err    error
	calls  atomic.Int32
}

func (f *fakeRep) Name() string { return "fake-rep" }

func (f *fakeRep) Fetch(ctx context.Context, _ *core.EntryRequest) (*core.ReputationReport, error) {
	f.calls.Add(1)
	return f.report, f.err
}

func goodEnvReport() *core.EnvironmentReport {
	return &core.EnvironmentReport{
		ManufacturerFC: core.ManufacturerFC{
			MaxPayloadKg: core.FloatOf(5),
			MaxWindKt:    core.FloatOf(30),
		},
		RawConditions: core.RawConditions{
			Wind:     core.FloatOf(5),
			WindGust: core.FloatOf(7),
		},
	}
}

func goodRepReport() *core.ReputationReport {
	return &core.ReputationReport{
		SessionsCount: 4,
		DemoSteadyMax: core.FloatOf(20),
		DemoGustMax:   core.FloatOf(25),
		IncidentCodes: []string{"1111-001"},
		MediumFamilyN: 0,
	}
}

func request() *core.EntryRequest {
	return &core.EntryRequest{
		ZoneID: "ZONE-123", PilotID: "FA-1", OrgID: "ORG-1", DroneID: "DRONE-1",
		Payload: "2", EntryTime: "2026-01-26T14:00:00Z", Type: core.RequestTypeZone,
	}
}

func TestGateway_Collect(t *testing.T) {
	env := &fakeEnv{report: goodEnvReport()}
	rep := &fakeRep{report: goodRepReport()}
	g := NewGateway(env, rep)

	got, err := g.Collect(context.Background(), request())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got.Set.SteadyWindKt != 5 || got.Set.GustWindKt != 7 {
		t.Errorf("wind = (%v, %v), want (5, 7)", got.Set.SteadyWindKt, got.Set.GustWindKt)
	}
	if got.Set.DemoSteadyMaxKt != 20 || got.Set.DemoGustMaxKt != 25 {
		t.Errorf("demo envelope = (%v, %v), want (20, 25)", got.Set.DemoSteadyMaxKt, got.Set.DemoGustMaxKt)
	}
	if got.Set.PayloadRaw != "2" {
		t.Errorf("PayloadRaw = %q, want %q", got.Set.PayloadRaw, "2")
	}
	if got.Environment == nil || got.Reputation == nil {
		t.Error("collaborator echoes missing from Collected")
	}
	if env.calls.Load() != 1 || rep.calls.Load() != 1 {
		t.Errorf("call counts = (%d, %d), want (1, 1)", env.calls.Load(), rep.calls.Load())
	}
}

func TestGateway_CollectFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		env  *fakeEnv
		rep  *fakeRep
	}{
		{
			name: "environment call fails",
			env:  &fakeEnv{err: fmt.Errorf("connection refused")},
			rep:  &fakeRep{report: goodRepReport()},
		},
		{
			name: "reputation call fails",
			env:  &fakeEnv{report: goodEnvReport()},
			rep:  &fakeRep{err: fmt.Errorf("timeout")},
		},
		{
			name: "missing wind",
			env: &fakeEnv{report: func() *core.EnvironmentReport {
				r := goodEnvReport()
				r.RawConditions.Wind = core.Float{}
				return r
			}()},
			rep: &fakeRep{report: goodRepReport()},
		},
		{
			name: "missing wind gust",
			env: &fakeEnv{report: func() *core.EnvironmentReport {
				r := goodEnvReport()
				r.RawConditions.WindGust = core.Float{}
				return r
			}()},
			rep: &fakeRep{report: goodRepReport()},
		},
		{
			name: "missing demo steady max",
			env:  &fakeEnv{report: goodEnvReport()},
			rep: &fakeRep{report: func() *core.ReputationReport {
				r := goodRepReport()
				r.DemoSteadyMax = core.Float{}
				return r
			}()},
		},
		{
			name: "missing demo gust max",
			env:  &fakeEnv{report: goodEnvReport()},
			rep: &fakeRep{report: func() *core.ReputationReport {
				r := goodRepReport()
				r.DemoGustMax = core.Float{}
				return r
			}()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(tt.env, tt.rep)
			_, err := g.Collect(context.Background(), request())
			if !errors.Is(err, ErrSignalRetrieval) {
				t.Errorf("Collect() error = %v, want ErrSignalRetrieval", err)
			}
		})
	}
}

// Absent manufacturer limits must pass through the gateway; they are
// a rule-table denial, not a retrieval failure.
func TestGateway_MissingMFCIsNotAGatewayFailure(t *testing.T) {
	env := &fakeEnv{report: func() *core.EnvironmentReport {
		r := goodEnvReport()
		r.ManufacturerFC.MaxWindKt = core.Float{}
		r.ManufacturerFC.MaxPayloadKg = core.Float{}
		return r
	}()}
	g := NewGateway(env, &fakeRep{report: goodRepReport()})

	got, err := g.Collect(context.Background(), request())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if got.Set.MFCWindKt.Valid || got.Set.MFCPayloadKg.Valid {
		t.Error("missing MFC limits should stay invalid in the signal set")
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	env := &fakeEnv{report: goodEnvReport(), delay: time.Second}
	g := NewGateway(env, &fakeRep{report: goodRepReport()})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := g.Collect(ctx, request())
	if !errors.Is(err, ErrSignalRetrieval) {
		t.Errorf("Collect() with expired context error = %v, want ErrSignalRetrieval", err)
	}
}
