package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

type FileClaimsConfig struct {
	// Path to the follow-up record file (JSON array).
	Path string `mapstructure:"path"`
}

// FileClaims verifies required actions against a DPO follow-up record
// file. Records are matched to incident codes chronologically: the
// i-th incident aligns with the i-th record for that drone.
type FileClaims struct {
	path string
}

func NewFileClaims(cfg config.CollaboratorConfig) (*FileClaims, error) {
	var conf FileClaimsConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for file claims: %w", err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("failed to decode file claims config: %w", err)
	}
	if conf.Path == "" {
		return nil, fmt.Errorf("file claims requires a path")
	}
	return &FileClaims{path: conf.Path}, nil
}

func (f *FileClaims) Name() string { return "file" }

type followupRecord struct {
	Drones string `json:"drones"`
	Date   string `json:"date"` // MM/DD/YYYY
	Status string `json:"status"`
}

const recordDateLayout = "01/02/2006"

func (f *FileClaims) loadRecords(droneID string) ([]followupRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading follow-up records: %w", err)
	}
	var all []followupRecord
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing follow-up records: %w", err)
	}

	var records []followupRecord
	for _, r := range all {
		if r.Drones == droneID {
			records = append(records, r)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return recordDate(records[i]).Before(recordDate(records[j]))
	})
	return records, nil
}

func recordDate(r followupRecord) time.Time {
	t, err := time.Parse(recordDateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// alignResolution pairs incident codes with follow-up records in
// chronological order. A prefix is resolved when at least one aligned
// record has status "Resolved"; a resolved prefix is dropped from the
// unresolved list even if another code of the same prefix lacks one.
func alignResolution(incidentCodes []string, records []followupRecord) (resolved, unresolved []string) {
	resolvedSet := map[string]bool{}
	var unresolvedOrder []string

	for i, code := range incidentCodes {
		prefix := core.IncidentPrefix(code)
		if prefix == "" {
			continue
		}
		if i < len(records) && records[i].Status == "Resolved" {
			if !resolvedSet[prefix] {
				resolvedSet[prefix] = true
				resolved = append(resolved, prefix)
			}
		} else {
			unresolvedOrder = append(unresolvedOrder, prefix)
		}
	}

	seen := map[string]bool{}
	for _, p := range unresolvedOrder {
		if !resolvedSet[p] && !seen[p] {
			seen[p] = true
			unresolved = append(unresolved, p)
		}
	}
	return resolved, unresolved
}

func (f *FileClaims) Verify(_ context.Context, req *core.ClaimsRequest) (*core.ClaimsResult, error) {
	records, err := f.loadRecords(req.DroneID)
	if err != nil {
		return nil, err
	}

	resolved, unresolved := alignResolution(req.IncidentCodes, records)

	var allPrefixes []string
	for _, code := range req.IncidentCodes {
		if p := core.IncidentPrefix(code); p != "" && !slices.Contains(allPrefixes, p) {
			allPrefixes = append(allPrefixes, p)
		}
	}

	result := &core.ClaimsResult{
		ResolvedPrefixes:   resolved,
		UnresolvedPrefixes: unresolved,
	}

	for _, action := range req.RequiredActions {
		switch action {
		case core.ActionResolveHighSeverity:
			f.checkHighSeverity(result, action, allPrefixes, resolved)

		case core.ActionSubmitFollowupReports:
			if len(records) >= len(req.IncidentCodes) {
				if len(unresolved) > 0 {
					f.unsatisfied(result, action, fmt.Sprintf("follow-up not resolved for prefix(es) %v", unresolved))
				} else {
					f.satisfied(result, action, fmt.Sprintf("follow-up reports found for %d incident(s)", len(req.IncidentCodes)))
				}
			} else {
				f.unsatisfied(result, action, fmt.Sprintf("%d records for %d incident(s); missing follow-ups", len(records), len(req.IncidentCodes)))
			}

		case core.ActionResolveMediumAndWind, core.ActionResolveMediumPattern:
			f.checkMediumFamily(result, action, allPrefixes, resolved)

		case core.ActionProveWindCapability:
			f.checkWindCapability(result, action, req.WindContext)

		default:
			f.satisfied(result, action, fmt.Sprintf("action %q has no verification rule", action))
		}
	}

	result.Satisfied = len(result.UnsatisfiedActions) == 0
	return result, nil
}

func (f *FileClaims) satisfied(r *core.ClaimsResult, action, why string) {
	r.SatisfiedActions = append(r.SatisfiedActions, action)
	r.Why = append(r.Why, why)
}

func (f *FileClaims) unsatisfied(r *core.ClaimsResult, action, why string) {
	r.UnsatisfiedActions = append(r.UnsatisfiedActions, action)
	r.Why = append(r.Why, why)
}

func (f *FileClaims) checkHighSeverity(r *core.ClaimsResult, action string, allPrefixes, resolved []string) {
	var highAny, highResolved []string
	for _, p := range allPrefixes {
		if core.HighSeverityPrefix(p) {
			highAny = append(highAny, p)
		}
	}
	for _, p := range resolved {
		if core.HighSeverityPrefix(p) {
			highResolved = append(highResolved, p)
		}
	}
	switch {
	case len(highAny) > 0 && len(highResolved) == 0:
		f.unsatisfied(r, action, "high-severity incident(s) lack a verified follow-up")
	case len(highAny) > 0:
		f.satisfied(r, action, fmt.Sprintf("verified follow-up for high-severity prefix(es) %v", highResolved))
	default:
		f.satisfied(r, action, "no high-severity incidents on record")
	}
}

func (f *FileClaims) checkMediumFamily(r *core.ClaimsResult, action string, allPrefixes, resolved []string) {
	var family, familyResolved []string
	for _, p := range allPrefixes {
		if core.MediumFamilyPrefix(p) {
			family = append(family, p)
		}
	}
	for _, p := range resolved {
		if core.MediumFamilyPrefix(p) {
			familyResolved = append(familyResolved, p)
		}
	}
	switch {
	case len(family) > 0 && len(familyResolved) != len(family):
		f.unsatisfied(r, action, fmt.Sprintf("0100/0101 incidents not all resolved: resolved %v of %v", familyResolved, family))
	case len(family) > 0:
		f.satisfied(r, action, fmt.Sprintf("0100/0101 incidents resolved: %v", familyResolved))
	default:
		f.satisfied(r, action, "no 0100/0101 incidents on record")
	}
}

func (f *FileClaims) checkWindCapability(r *core.ClaimsResult, action string, wc core.WindContext) {
	if !wc.WindNowKt.Valid || !wc.GustNowKt.Valid || !wc.DemoSteadyMaxKt.Valid || !wc.DemoGustMaxKt.Valid {
		f.unsatisfied(r, action, "wind context incomplete; cannot verify wind capability")
		return
	}
	if wc.WindNowKt.Value <= wc.DemoSteadyMaxKt.Value && wc.GustNowKt.Value <= wc.DemoGustMaxKt.Value {
		f.satisfied(r, action, "wind within demonstrated envelope")
	} else {
		f.unsatisfied(r, action, "wind exceeds demonstrated envelope; no proof record")
	}
}
