package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

type FileReputationConfig struct {
	// Path to the reputation session log (JSON array).
	Path string `mapstructure:"path"`
}

// FileReputation reads the DPO session log from a JSON file and
// aggregates it into a reputation report. The file is re-read on
// every fetch so operators can update it without a restart.
type FileReputation struct {
	path string
}

func NewFileReputation(cfg config.CollaboratorConfig) (*FileReputation, error) {
	var conf FileReputationConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for file reputation: %w", err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("failed to decode file reputation config: %w", err)
	}
	if conf.Path == "" {
		return nil, fmt.Errorf("file reputation requires a path")
	}
	return &FileReputation{path: conf.Path}, nil
}

func (f *FileReputation) Name() string { return "file" }

// session is one entry of the reputation session log. Wind fields
// arrive as numbers or strings depending on the producer, so they
// decode through core.Float.
type session struct {
	SessionID    string     `json:"session_id"`
	PilotID      string     `json:"pilot_id"`
	DroneID      string     `json:"drone_id"`
	TimeIn       string     `json:"time_in"`
	TimeOut      string     `json:"time_out"`
	RecordType   string     `json:"record_type"`
	WindSteadyKt core.Float `json:"wind_steady_kt"`
	WindGustsKt  core.Float `json:"wind_gusts_kt"`
	Incidents    []string   `json:"incidents"`
}

// followupRecordType marks a session as a follow-up record; an
// incident is resolved once a follow-up session lists its code.
const followupRecordType = "010"

func (f *FileReputation) Fetch(_ context.Context, req *core.EntryRequest) (*core.ReputationReport, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading reputation sessions: %w", err)
	}
	var all []session
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing reputation sessions: %w", err)
	}

	var sessions []session
	for _, s := range all {
		if s.PilotID == req.PilotID && s.DroneID == req.DroneID {
			sessions = append(sessions, s)
		}
	}

	report := &core.ReputationReport{
		SessionsCount: len(sessions),
		IncidentCodes: []string{},
	}

	var demoSteady, demoGust float64
	for _, s := range sessions {
		if s.WindSteadyKt.Valid && s.WindSteadyKt.Value > demoSteady {
			demoSteady = s.WindSteadyKt.Value
		}
		if s.WindGustsKt.Valid && s.WindGustsKt.Value > demoGust {
			demoGust = s.WindGustsKt.Value
		}
		report.IncidentCodes = append(report.IncidentCodes, s.Incidents...)
	}
	report.DemoSteadyMax = core.FloatOf(demoSteady)
	report.DemoGustMax = core.FloatOf(demoGust)

	for _, code := range report.IncidentCodes {
		if core.MediumFamilyPrefix(core.IncidentPrefix(code)) {
			report.MediumFamilyN++
		}
	}

	report.Incidents = collectIncidents(sessions)
	for _, inc := range report.Incidents {
		if !inc.Resolved {
			report.UnresolvedSeen = true
		}
	}

	assessReputationRisk(report)
	return report, nil
}

// collectIncidents dedupes incident codes across sessions, keeping
// the first occurrence. An incident counts as resolved when any
// follow-up session lists its code.
func collectIncidents(sessions []session) []core.Incident {
	var incidents []core.Incident
	seen := map[string]bool{}
	for _, s := range sessions {
		for _, code := range s.Incidents {
			if seen[code] {
				continue
			}
			seen[code] = true

			resolved := false
			for _, other := range sessions {
				if other.RecordType != followupRecordType {
					continue
				}
				for _, c := range other.Incidents {
					if c == code {
						resolved = true
					}
				}
			}

			prefix := core.IncidentPrefix(code)
			incidents = append(incidents, core.Incident{
				Code:      code,
				Category:  core.CategoryOfPrefix(prefix),
				Severity:  core.SeverityOfPrefix(prefix),
				Resolved:  resolved,
				SessionID: s.SessionID,
				Date:      s.TimeIn,
			})
		}
	}
	return incidents
}

func assessReputationRisk(r *core.ReputationReport) {
	level := "LOW"
	var blocking, confidence []string

	if r.UnresolvedSeen {
		highUnresolved := false
		for _, inc := range r.Incidents {
			if !inc.Resolved && inc.Severity == core.SeverityHigh {
				highUnresolved = true
			}
		}
		if highUnresolved {
			level = "HIGH"
			blocking = append(blocking, "unresolved_high_severity_incident")
		} else {
			level = "MEDIUM"
			blocking = append(blocking, "unresolved_incidents_present")
		}
	} else if len(r.Incidents) > 0 {
		confidence = append(confidence, "all_incidents_resolved")
	}

	r.RiskLevel = level
	r.BlockingFactors = blocking
	r.ConfidenceFactors = confidence
	r.Recommendation = level
	r.Why = []string{
		fmt.Sprintf("drp_sessions_count=%d", r.SessionsCount),
		fmt.Sprintf("demo_steady_max_kt=%g", r.DemoSteadyMax.Value),
		fmt.Sprintf("demo_gust_max_kt=%g", r.DemoGustMax.Value),
		fmt.Sprintf("n_0100_0101=%d", r.MediumFamilyN),
		fmt.Sprintf("unresolved_incidents_present=%t", r.UnresolvedSeen),
	}
}
