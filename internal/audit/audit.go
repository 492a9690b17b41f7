// Package audit persists per-decision audit entries. A decision's
// audit entry carries the full result and visibility echo, so replay
// needs nothing but the entry itself.
package audit

import (
	"fmt"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

// FromConfig builds the configured auditor. Disabled audit yields the
// noop auditor.
func FromConfig(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "file":
		return NewFileAuditor(cfg.Path)
	case "memory", "":
		return NewInMemoryAuditor(), nil
	default:
		return nil, fmt.Errorf("unknown auditor type '%s'", cfg.Type)
	}
}
