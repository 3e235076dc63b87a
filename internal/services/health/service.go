// Package health reports whether the library store and model endpoint are usable.
package health

import (
	"context"
	"errors"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv"
)

const probeTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	Store kv.Store
	LLM   llm.Client
}

// Report is the health payload. OK is false only when the store is unreachable;
// an unconfigured model degrades analyses but not the library.
type Report struct {
	OK    bool   `json:"ok"`
	Store string `json:"store"`
	LLM   string `json:"llm"`
}

// NewService constructs a new health service.
func NewService(store kv.Store, client llm.Client) *Service {
	return &Service{Store: store, LLM: client}
}

// Status probes the store and reports the model configuration.
func (s *Service) Status(ctx context.Context) Report {
	r := Report{OK: true, Store: "ok", LLM: "configured"}

	switch {
	case s == nil || s.Store == nil:
		r.Store = "absent"
	default:
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if _, err := s.Store.Get(ctx, library.StorageKey); err != nil && !errors.Is(err, kv.ErrNotFound) {
			r.OK = false
			r.Store = "unreachable"
		}
	}

	if s == nil || s.LLM == nil {
		r.LLM = "absent"
	} else if _, ok := s.LLM.(llm.PlaceholderClient); ok {
		r.LLM = "not_configured"
	}
	return r
}
