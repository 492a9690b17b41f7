// Package collab holds the collaborator backends: the environment,
// reputation and claims sources the decision service consults. Each
// backend is built from its inline config section the same way a
// plugin would be, so deployments can mix static, file-backed and
// HTTP collaborators freely.
package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

type StaticEnvironmentConfig struct {
	// Drones maps drone id to its manufacturer flight card. A request
	// for an unlisted drone gets a report without MFC limits, which
	// the rule table denies as MFC data unavailable.
	Drones map[string]StaticDroneConfig `mapstructure:"drones"`

	Conditions StaticConditionsConfig `mapstructure:"conditions"`
}

type StaticDroneConfig struct {
	Manufacturer string   `mapstructure:"manufacturer"`
	Model        string   `mapstructure:"model"`
	Category     string   `mapstructure:"category"`
	MaxPayloadKg *float64 `mapstructure:"mfc_payload_max_kg"`
	MaxWindKt    *float64 `mapstructure:"mfc_max_wind_kt"`
}

type StaticConditionsConfig struct {
	WindKt        *float64 `mapstructure:"wind"`
	WindGustKt    *float64 `mapstructure:"wind_gust"`
	Precipitation string   `mapstructure:"precipitation"`
	VisibilityNm  *float64 `mapstructure:"visibility"`
	AirspaceClass string   `mapstructure:"airspace_class"`
}

// StaticEnvironment serves fixed conditions and a configured
// manufacturer flight card table. Light conditions are derived from
// the requested entry hour.
type StaticEnvironment struct {
	drones     map[string]StaticDroneConfig
	conditions StaticConditionsConfig
}

func NewStaticEnvironment(cfg config.CollaboratorConfig) (*StaticEnvironment, error) {
	var conf StaticEnvironmentConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for static environment: %w", err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("failed to decode static environment config: %w", err)
	}
	return &StaticEnvironment{drones: conf.Drones, conditions: conf.Conditions}, nil
}

func (s *StaticEnvironment) Name() string { return "static" }

func (s *StaticEnvironment) Fetch(_ context.Context, req *core.EntryRequest) (*core.EnvironmentReport, error) {
	wind := 12.5
	if s.conditions.WindKt != nil {
		wind = *s.conditions.WindKt
	}
	gust := 18.0
	if s.conditions.WindGustKt != nil {
		gust = *s.conditions.WindGustKt
	}
	visibility := 10.0
	if s.conditions.VisibilityNm != nil {
		visibility = *s.conditions.VisibilityNm
	}
	precipitation := s.conditions.Precipitation
	if precipitation == "" {
		precipitation = "none"
	}
	airspace := s.conditions.AirspaceClass
	if airspace == "" {
		airspace = "Class E"
	}
	light := lightConditions(req.EntryTime)

	report := &core.EnvironmentReport{
		RawConditions: core.RawConditions{
			Wind:            core.FloatOf(wind),
			WindGust:        core.FloatOf(gust),
			Precipitation:   precipitation,
			VisibilityKm:    core.FloatOf(visibility),
			LightConditions: light,
			Spatial: core.SpatialConstraints{
				AirspaceClass: airspace,
			},
		},
	}

	if spec, ok := s.drones[req.DroneID]; ok {
		report.ManufacturerFC = core.ManufacturerFC{
			Manufacturer: spec.Manufacturer,
			Model:        spec.Model,
			Category:     spec.Category,
		}
		if spec.MaxPayloadKg != nil {
			report.ManufacturerFC.MaxPayloadKg = core.FloatOf(*spec.MaxPayloadKg)
		}
		if spec.MaxWindKt != nil {
			report.ManufacturerFC.MaxWindKt = core.FloatOf(*spec.MaxWindKt)
		}
	}

	assessRisk(report)
	return report, nil
}

// lightConditions maps the entry hour to a light band. An unparseable
// entry time defaults to daylight; validation already rejected it
// upstream for the decision path.
func lightConditions(entryTime string) string {
	t, err := time.Parse(time.RFC3339, entryTime)
	if err != nil {
		return "daylight"
	}
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 18:
		return "daylight"
	case hour == 18:
		return "dusk"
	default:
		return "night"
	}
}

// assessRisk fills the advisory risk fields from the raw conditions.
// The engine never branches on these; they surface in the audit trail.
func assessRisk(r *core.EnvironmentReport) {
	level := "LOW"
	var blocking, marginal, suggestions []string

	gust := r.RawConditions.WindGust.Value
	switch {
	case gust > 25:
		level = "HIGH"
		blocking = append(blocking, "high_wind_gusts")
	case gust > 20:
		level = "MEDIUM"
		marginal = append(marginal, "elevated_wind_gusts")
	}

	if vis := r.RawConditions.VisibilityKm; vis.Valid {
		switch {
		case vis.Value < 3:
			level = "HIGH"
			blocking = append(blocking, "low_visibility")
		case vis.Value < 5:
			if level == "LOW" {
				level = "MEDIUM"
			}
			marginal = append(marginal, "reduced_visibility")
		}
	}

	if r.RawConditions.LightConditions == "night" {
		marginal = append(marginal, "night_operations")
	}

	if gust > 20 {
		suggestions = append(suggestions, "SPEED_LIMIT(7 m/s)")
	}
	if gust > 15 {
		suggestions = append(suggestions, "MAX_ALTITUDE(300 m)")
	}

	r.RiskLevel = level
	r.BlockingFactors = blocking
	r.MarginalFactors = marginal
	r.ConstraintSuggestions = suggestions
}
