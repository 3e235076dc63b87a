// Package gemini implements llm.Client on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
)

const (
	// DefaultModel is used when Options.Model is empty.
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

// ErrUnavailable is returned while the circuit breaker rejects calls.
var ErrUnavailable = errors.New("gemini temporarily unavailable")

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API endpoint.
	BaseURL string
	Breaker BreakerOptions
}

// BreakerOptions tune when the breaker opens. While closed, counts are
// cleared every Interval, so the failure ratio covers recent calls only.
// MinRequests consecutive failures also open it.
type BreakerOptions struct {
	FailureRatio float64
	MinRequests  uint32
	Interval     time.Duration
	OpenTimeout  time.Duration
}

// Client implements llm.Client with google.golang.org/genai.
type Client struct {
	models  *genai.Models
	model   string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// NewClient constructs a Gemini client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &Client{
		models:  cli.Models,
		model:   model,
		timeout: timeout,
		cb:      newBreaker(model, opts.Breaker),
	}, nil
}

func newBreaker(name string, opts BreakerOptions) *gobreaker.CircuitBreaker {
	ratio := opts.FailureRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.6
	}
	minReq := opts.MinRequests
	if minReq == 0 {
		minReq = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini:" + name,
		MaxRequests: 1,
		Interval:    interval,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= minReq {
				return true
			}
			if counts.Requests < minReq {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			telemetry.Warn("llm.breaker.state", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
}

// Name identifies the provider and model.
func (c *Client) Name() string { return "gemini:" + c.model }

// GenerateContent sends the parts as one user turn and returns the concatenated
// text of the first candidate.
func (c *Client) GenerateContent(ctx context.Context, req llm.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	parts, err := toParts(req.Parts)
	if err != nil {
		return "", err
	}
	var cfg *genai.GenerateContentConfig
	if req.JSON {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.models.GenerateContent(ctx, c.model,
			[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
			cfg,
		)
		if err != nil {
			return nil, err
		}
		return responseText(resp)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return "", err
	}
	return out.(string), nil
}

func toParts(in []llm.Part) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(in))
	for _, p := range in {
		if p.Media != nil {
			raw, err := p.Media.Bytes()
			if err != nil {
				return nil, err
			}
			parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: raw, MIMEType: p.Media.MIMEType}})
			continue
		}
		parts = append(parts, &genai.Part{Text: p.Text})
	}
	return parts, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

var _ llm.Client = (*Client)(nil)
