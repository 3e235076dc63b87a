package llm

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
)

// Client abstracts the generative model endpoint.
type Client interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// Part is one element of a request: inline media or text.
type Part struct {
	Media *media.Media
	Text  string
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// MediaPart builds an inline media part.
func MediaPart(m media.Media) Part {
	return Part{Media: &m}
}

// Request is a single generate call. JSON forces a JSON response body.
type Request struct {
	Parts []Part
	JSON  bool
}

// Validate rejects requests the endpoint would refuse anyway.
func (r Request) Validate() error {
	if len(r.Parts) == 0 {
		return ErrEmptyRequest
	}
	for _, p := range r.Parts {
		if p.Media == nil && strings.TrimSpace(p.Text) == "" {
			return ErrEmptyRequest
		}
		if p.Media != nil && p.Media.IsZero() {
			return ErrEmptyRequest
		}
	}
	return nil
}

var (
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("LLM provider not configured")
	// ErrEmptyRequest means a request had no usable parts.
	ErrEmptyRequest = errors.New("LLM request has no content")
	// ErrEmptyResponse means the endpoint returned no candidates.
	ErrEmptyResponse = errors.New("LLM response has no content")
)

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// GenerateContent returns ErrNotConfigured.
func (PlaceholderClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

// StaticClient replies with a fixed body, or Err when set. It records the last request.
type StaticClient struct {
	Reply string
	Err   error
	Last  Request
	Calls int

	mu sync.Mutex
}

// GenerateContent returns the configured reply.
func (s *StaticClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.Last = req
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}
