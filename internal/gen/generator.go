// Package gen defines the contract for the AI template-generation
// collaborator. The service treats the collaborator as opaque: it sends
// extracted document text and validates whatever criteria come back.
package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the collaborator's answer. Template carries the candidate
// criteria document when Success is true; Error carries the remote
// failure reason otherwise.
type Result struct {
	Success  bool            `json:"success"`
	Template json.RawMessage `json:"template,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Generator produces a candidate criteria document from document text.
type Generator interface {
	// Generate honors ctx for cancellation. A transport failure returns
	// an error; a remote refusal returns Success=false with a reason.
	Generate(ctx context.Context, documentText string) (Result, error)
}

// Default HTTP client configuration.
const defaultTimeout = 30 * time.Second

// Option applies a configuration option to the HTTPGenerator.
type Option func(*HTTPGenerator)

// WithTimeout bounds each generation call.
func WithTimeout(d time.Duration) Option {
	return func(g *HTTPGenerator) {
		if d > 0 {
			g.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client, used by tests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGenerator) {
		if c != nil {
			g.client = c
		}
	}
}

// HTTPGenerator calls a remote generation endpoint.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGenerator creates a generator posting to the given endpoint.
func NewHTTPGenerator(endpoint string, opts ...Option) *HTTPGenerator {
	g := &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type generateRequest struct {
	DocumentText string `json:"document_text"`
}

// Generate posts the document text and decodes the collaborator result.
func (g *HTTPGenerator) Generate(ctx context.Context, documentText string) (Result, error) {
	body, err := json.Marshal(generateRequest{DocumentText: documentText})
	if err != nil {
		return Result{}, fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}
	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("decode generator response: %w", err)
	}
	return out, nil
}
