package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/jgranda1999/agentic-sade/internal/config"
	"github.com/jgranda1999/agentic-sade/internal/core"
)

type HTTPCollaboratorConfig struct {
	URL string `mapstructure:"url"`

	// Token is sent as a bearer token when set.
	Token string `mapstructure:"token"`
}

// httpCollaborator is the shared transport for the HTTP-backed
// collaborator variants. Each request is a single JSON POST; any
// non-200 response is a retrieval failure.
type httpCollaborator struct {
	url    string
	token  string
	client *http.Client
}

func newHTTPCollaborator(kind string, cfg config.CollaboratorConfig) (*httpCollaborator, error) {
	var conf HTTPCollaboratorConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &conf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for http %s collaborator: %w", kind, err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("failed to decode http %s collaborator config: %w", kind, err)
	}
	if conf.URL == "" {
		return nil, fmt.Errorf("http %s collaborator requires a url", kind)
	}
	return &httpCollaborator{
		url:    conf.URL,
		token:  conf.Token,
		client: http.DefaultClient,
	}, nil
}

func (h *httpCollaborator) post(ctx context.Context, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// HTTPEnvironment fetches the environment report from a remote agent.
type HTTPEnvironment struct {
	*httpCollaborator
}

func NewHTTPEnvironment(cfg config.CollaboratorConfig) (*HTTPEnvironment, error) {
	h, err := newHTTPCollaborator("environment", cfg)
	if err != nil {
		return nil, err
	}
	return &HTTPEnvironment{h}, nil
}

func (h *HTTPEnvironment) Name() string { return "http" }

func (h *HTTPEnvironment) Fetch(ctx context.Context, req *core.EntryRequest) (*core.EnvironmentReport, error) {
	var report core.EnvironmentReport
	if err := h.post(ctx, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// HTTPReputation fetches the reputation report from a remote agent.
type HTTPReputation struct {
	*httpCollaborator
}

func NewHTTPReputation(cfg config.CollaboratorConfig) (*HTTPReputation, error) {
	h, err := newHTTPCollaborator("reputation", cfg)
	if err != nil {
		return nil, err
	}
	return &HTTPReputation{h}, nil
}

func (h *HTTPReputation) Name() string { return "http" }

func (h *HTTPReputation) Fetch(ctx context.Context, req *core.EntryRequest) (*core.ReputationReport, error) {
	var report core.ReputationReport
	if err := h.post(ctx, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// HTTPClaims verifies claims through a remote agent.
type HTTPClaims struct {
	*httpCollaborator
}

func NewHTTPClaims(cfg config.CollaboratorConfig) (*HTTPClaims, error) {
	h, err := newHTTPCollaborator("claims", cfg)
	if err != nil {
		return nil, err
	}
	return &HTTPClaims{h}, nil
}

func (h *HTTPClaims) Name() string { return "http" }

func (h *HTTPClaims) Verify(ctx context.Context, req *core.ClaimsRequest) (*core.ClaimsResult, error) {
	var result core.ClaimsResult
	if err := h.post(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
