package core

import "context"

// EnvironmentSource retrieves current conditions and manufacturer
// flight constraints for a request.
// Implementations: static (config-backed), http.
type EnvironmentSource interface {
	// Name returns the identifier of this source (as used in config).
	Name() string

	Fetch(ctx context.Context, req *EntryRequest) (*EnvironmentReport, error)
}

// ReputationSource retrieves the historical reliability and incident
// record for a DPO trio.
// Implementations: file (session-log backed), http.
type ReputationSource interface {
	Name() string

	Fetch(ctx context.Context, req *EntryRequest) (*ReputationReport, error)
}

// ClaimsVerifier checks whether required remedial actions are backed
// by real evidence. It is consulted at most once per request.
// Implementations: file (follow-up-record backed), http.
type ClaimsVerifier interface {
	Name() string

	Verify(ctx context.Context, req *ClaimsRequest) (*ClaimsResult, error)
}
