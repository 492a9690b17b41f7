package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jgranda1999/agentic-sade/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
collaborators:
  environment:
    type: static
    conditions:
      wind: 12.5
  reputation:
    type: file
    path: /tmp/sessions.json
  claims:
    type: file
    path: /tmp/records.json
  timeout: 5s
audit:
  enabled: true
  type: file
  path: /tmp/audit.jsonl
constraints:
  extras:
    - when: flags.NearEnvelope
      add: ["DAYLIGHT_ONLY"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Collaborators.Environment.Type != "static" {
		t.Errorf("environment type = %q", cfg.Collaborators.Environment.Type)
	}
	if _, ok := cfg.Collaborators.Environment.Config["conditions"]; !ok {
		t.Error("inline collaborator config not captured")
	}
	if cfg.Collaborators.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Collaborators.Timeout)
	}

	profile := cfg.ConstraintProfile()
	got := profile.For(core.SignalSet{}, core.RiskFlags{NearEnvelope: true})
	found := false
	for _, c := range got {
		if c == "DAYLIGHT_ONLY" {
			found = true
		}
	}
	if !found {
		t.Errorf("extra constraint not applied: %v", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
collaborators:
  environment:
    type: static
  reputation:
    type: static
  claims:
    type: static
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Collaborators.Timeout != 10*time.Second {
		t.Errorf("default timeout = %v", cfg.Collaborators.Timeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name: "missing collaborator type",
			yaml: `
collaborators:
  environment:
    type: static
  reputation:
    type: static
  claims: {}
`,
			errPart: "empty type",
		},
		{
			name: "bad constraint expression",
			yaml: `
collaborators:
  environment: {type: static}
  reputation: {type: static}
  claims: {type: static}
constraints:
  extras:
    - when: "flags.NoSuchFlag"
      add: ["X"]
`,
			errPart: "compiling constraint extra",
		},
		{
			name: "file audit without path",
			yaml: `
collaborators:
  environment: {type: static}
  reputation: {type: static}
  claims: {type: static}
audit:
  enabled: true
  type: file
`,
			errPart: "requires a path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not contain %q", err, tt.errPart)
			}
		})
	}
}
