package collab

import (
	"fmt"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

// BuildEnvironmentSource constructs the configured environment backend.
func BuildEnvironmentSource(cfg config.CollaboratorConfig) (core.EnvironmentSource, error) {
	switch cfg.Type {
	case "static":
		return NewStaticEnvironment(cfg)
	case "http":
		return NewHTTPEnvironment(cfg)
	default:
		return nil, fmt.Errorf("unknown environment collaborator type '%s'", cfg.Type)
	}
}

// BuildReputationSource constructs the configured reputation backend.
func BuildReputationSource(cfg config.CollaboratorConfig) (core.ReputationSource, error) {
	switch cfg.Type {
	case "file":
		return NewFileReputation(cfg)
	case "http":
		return NewHTTPReputation(cfg)
	default:
		return nil, fmt.Errorf("unknown reputation collaborator type '%s'", cfg.Type)
	}
}

// BuildClaimsVerifier constructs the configured claims backend.
func BuildClaimsVerifier(cfg config.CollaboratorConfig) (core.ClaimsVerifier, error) {
	switch cfg.Type {
	case "file":
		return NewFileClaims(cfg)
	case "http":
		return NewHTTPClaims(cfg)
	default:
		return nil, fmt.Errorf("unknown claims collaborator type '%s'", cfg.Type)
	}
}
