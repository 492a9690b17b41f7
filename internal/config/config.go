package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jgranda1999/agentic-sade/internal/constraints"
)

type Config struct {
	Server        ServerConfig      `yaml:"server"`
	Collaborators Collaborators     `yaml:"collaborators"`
	Audit         AuditConfig       `yaml:"audit"`
	Constraints   ConstraintsConfig `yaml:"constraints"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// AdminSigningKey is the HMAC key for admin JWTs. Admin endpoints
	// are disabled when empty.
	AdminSigningKey string `yaml:"admin_signing_key"`
}

// Collaborators configures the three external signal sources.
type Collaborators struct {
	Environment CollaboratorConfig `yaml:"environment"`
	Reputation  CollaboratorConfig `yaml:"reputation"`
	Claims      CollaboratorConfig `yaml:"claims"`

	// Timeout bounds each collaborator call. Zero means 10s.
	Timeout time.Duration `yaml:"timeout"`
}

// CollaboratorConfig holds configuration for one collaborator backend.
type CollaboratorConfig struct {
	Type   string         `yaml:"type"`    // e.g. "static", "file", "http"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"
}

// ConstraintsConfig configures the APPROVED-CONSTRAINTS profile.
type ConstraintsConfig struct {
	// Defaults replaces the built-in constraint pair when non-empty.
	Defaults []string `yaml:"defaults"`

	// Extras are conditional constraints added when `when` matches.
	Extras []ExtraConstraint `yaml:"extras"`
}

type ExtraConstraint struct {
	When string   `yaml:"when"`
	Add  []string `yaml:"add"`

	compiled constraints.Extra
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Collaborators.Timeout == 0 {
		c.Collaborators.Timeout = 10 * time.Second
	}

	for name, cc := range map[string]CollaboratorConfig{
		"environment": c.Collaborators.Environment,
		"reputation":  c.Collaborators.Reputation,
		"claims":      c.Collaborators.Claims,
	} {
		if cc.Type == "" {
			return fmt.Errorf("collaborator '%s' has empty type", name)
		}
	}

	for i := range c.Constraints.Extras {
		e := &c.Constraints.Extras[i]
		if e.When == "" {
			return fmt.Errorf("constraint extra at index %d has empty 'when'", i)
		}
		if len(e.Add) == 0 {
			return fmt.Errorf("constraint extra '%s' adds no constraints", e.When)
		}
		// compile and validate expression
		prog, err := constraints.Compile(e.When)
		if err != nil {
			return fmt.Errorf("compiling constraint extra at index %d: %w", i, err)
		}
		e.compiled = constraints.Extra{When: e.When, Add: e.Add, Compiled: prog}
	}

	if c.Audit.Enabled && c.Audit.Type == "file" && c.Audit.Path == "" {
		return fmt.Errorf("audit type 'file' requires a path")
	}

	return nil
}

// ConstraintProfile builds the compiled constraint profile. Validate
// must have run first; Load does that.
func (c *Config) ConstraintProfile() *constraints.Profile {
	extras := make([]constraints.Extra, 0, len(c.Constraints.Extras))
	for _, e := range c.Constraints.Extras {
		extras = append(extras, e.compiled)
	}
	return constraints.New(c.Constraints.Defaults, extras)
}
