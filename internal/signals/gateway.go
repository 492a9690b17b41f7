// Package signals implements the Signal Gateway: it fans out to the
// environment and reputation collaborators, waits for both, and
// normalizes their responses into a flat signal set.
package signals

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

// ErrSignalRetrieval marks a fail-closed gateway outcome: a
// collaborator call failed or a mandatory scalar was missing. The
// run resolves to ACTION-REQUIRED / RETRY_SIGNAL_RETRIEVAL, and no
// further stage runs.
var ErrSignalRetrieval = errors.New("signal retrieval failed")

// Collected is the gateway's output: the normalized signal set plus
// the verbatim collaborator responses for the audit trail.
type Collected struct {
	Set         core.SignalSet
	Environment *core.EnvironmentReport
	Reputation  *core.ReputationReport
}

type Gateway struct {
	env core.EnvironmentSource
	rep core.ReputationSource
}

func NewGateway(env core.EnvironmentSource, rep core.ReputationSource) *Gateway {
	return &Gateway{env: env, rep: rep}
}

// Collect issues both collaborator calls concurrently and blocks
// until both have returned or failed. The calls are independent;
// neither consumes the other's result.
func (g *Gateway) Collect(ctx context.Context, req *core.EntryRequest) (*Collected, error) {
	var (
		wg      sync.WaitGroup
		envRep  *core.EnvironmentReport
		repRep  *core.ReputationReport
		envErr  error
		repErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		envRep, envErr = g.env.Fetch(ctx, req)
	}()
	go func() {
		defer wg.Done()
		repRep, repErr = g.rep.Fetch(ctx, req)
	}()
	wg.Wait()

	if envErr != nil {
		log.Ctx(ctx).Warn().Err(envErr).Str("source", g.env.Name()).Msg("environment retrieval failed")
		return nil, fmt.Errorf("%w: environment collaborator %q: %v", ErrSignalRetrieval, g.env.Name(), envErr)
	}
	if repErr != nil {
		log.Ctx(ctx).Warn().Err(repErr).Str("source", g.rep.Name()).Msg("reputation retrieval failed")
		return nil, fmt.Errorf("%w: reputation collaborator %q: %v", ErrSignalRetrieval, g.rep.Name(), repErr)
	}

	set, err := Normalize(envRep, repRep, req)
	if err != nil {
		return nil, err
	}

	return &Collected{
		Set:         set,
		Environment: envRep,
		Reputation:  repRep,
	}, nil
}

// Normalize flattens the two reports into a SignalSet. The four wind
// and envelope scalars are mandatory; a missing or non-numeric value
// fails closed. The manufacturer limits pass through raw because
// their absence is a rule-table denial, not a retrieval failure.
func Normalize(env *core.EnvironmentReport, rep *core.ReputationReport, req *core.EntryRequest) (core.SignalSet, error) {
	if env == nil {
		return core.SignalSet{}, fmt.Errorf("%w: empty environment response", ErrSignalRetrieval)
	}
	if rep == nil {
		return core.SignalSet{}, fmt.Errorf("%w: empty reputation response", ErrSignalRetrieval)
	}

	if !env.RawConditions.Wind.Valid {
		return core.SignalSet{}, fmt.Errorf("%w: environment response missing wind", ErrSignalRetrieval)
	}
	if !env.RawConditions.WindGust.Valid {
		return core.SignalSet{}, fmt.Errorf("%w: environment response missing wind_gust", ErrSignalRetrieval)
	}
	if !rep.DemoSteadyMax.Valid {
		return core.SignalSet{}, fmt.Errorf("%w: reputation response missing demo_steady_max_kt", ErrSignalRetrieval)
	}
	if !rep.DemoGustMax.Valid {
		return core.SignalSet{}, fmt.Errorf("%w: reputation response missing demo_gust_max_kt", ErrSignalRetrieval)
	}

	return core.SignalSet{
		SteadyWindKt:      env.RawConditions.Wind.Value,
		GustWindKt:        env.RawConditions.WindGust.Value,
		DemoSteadyMaxKt:   rep.DemoSteadyMax.Value,
		DemoGustMaxKt:     rep.DemoGustMax.Value,
		MFCWindKt:         env.ManufacturerFC.MaxWindKt,
		MFCPayloadKg:      env.ManufacturerFC.MaxPayloadKg,
		PayloadRaw:        req.Payload,
		IncidentCodes:     rep.IncidentCodes,
		MediumFamilyCount: rep.MediumFamilyN,
	}, nil
}
