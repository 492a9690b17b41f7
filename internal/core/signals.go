package core

// SignalSet is the Signal Gateway's flat, normalized view of both
// collaborator responses. The four wind/envelope scalars are
// guaranteed present (the gateway fails closed otherwise); the MFC
// limits and the payload string stay raw because their absence or
// unparseability selects specific denial rules downstream.
type SignalSet struct {
	SteadyWindKt    float64
	GustWindKt      float64
	DemoSteadyMaxKt float64
	DemoGustMaxKt   float64

	MFCWindKt    Float
	MFCPayloadKg Float

	PayloadRaw        string
	IncidentCodes     []string
	MediumFamilyCount int
}

// RiskFlags are derived from a SignalSet each run; they are never
// persisted. Caps are the demonstrated envelope clipped to the
// manufacturer wind limit; the graduated flags compare current wind
// against 90%, 100% and 120% of those caps.
type RiskFlags struct {
	SteadyCapKt float64
	GustCapKt   float64

	NearEnvelope    bool
	ExceedsEnvelope bool
	ExceedsLarge    bool
	PatternPresent  bool

	HasHighSeverity    bool
	HasOnlyLowSeverity bool
	HasMediumFamily    bool

	PayloadKg    float64
	PayloadValid bool
}
