// Package envelope derives risk flags from a normalized signal set.
// It is a pure function of its input: no I/O, no clock, no logging.
package envelope

import (
	"math"
	"strconv"
	"strings"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

const (
	nearFactor  = 0.9
	largeFactor = 1.2

	// patternThreshold is the number of medium-family (0100/0101)
	// incidents that counts as a repeat pattern.
	patternThreshold = 3
)

// Compute derives the capability caps, proximity flags and severity
// flags for one run. The payload string is parsed here; a failure is
// recorded as a flag so the rule table can choose the denial code.
func Compute(set core.SignalSet) core.RiskFlags {
	flags := core.RiskFlags{
		PatternPresent: set.MediumFamilyCount >= patternThreshold,
	}

	flags.PayloadKg, flags.PayloadValid = parsePayload(set.PayloadRaw)

	// Caps only exist once the manufacturer wind limit is known; when
	// it is missing, rule 1 fires before any cap is consulted.
	if set.MFCWindKt.Valid {
		flags.SteadyCapKt = math.Min(set.DemoSteadyMaxKt, set.MFCWindKt.Value)
		flags.GustCapKt = math.Min(set.DemoGustMaxKt, set.MFCWindKt.Value)

		flags.NearEnvelope = set.SteadyWindKt >= nearFactor*flags.SteadyCapKt ||
			set.GustWindKt >= nearFactor*flags.GustCapKt
		flags.ExceedsEnvelope = set.SteadyWindKt > flags.SteadyCapKt ||
			set.GustWindKt > flags.GustCapKt
		flags.ExceedsLarge = set.SteadyWindKt > largeFactor*flags.SteadyCapKt ||
			set.GustWindKt > largeFactor*flags.GustCapKt
	}

	low, medium, high := classify(set.IncidentCodes)
	flags.HasHighSeverity = high
	flags.HasMediumFamily = medium
	flags.HasOnlyLowSeverity = low && !medium && !high

	return flags
}

func classify(codes []string) (low, medium, high bool) {
	for _, code := range codes {
		prefix := core.IncidentPrefix(code)
		if prefix == "" {
			continue
		}
		switch core.SeverityOfPrefix(prefix) {
		case core.SeverityHigh:
			high = true
		case core.SeverityMedium:
			medium = true
		default:
			low = true
		}
	}
	return low, medium, high
}

// parsePayload accepts a finite, non-negative kg value.
func parsePayload(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
