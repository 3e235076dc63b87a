package session

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nessydroid1192/may-tejiarte/internal/assistant"
	"github.com/nessydroid1192/may-tejiarte/internal/culture"
	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// DefaultCacheSize bounds the number of live sessions.
const DefaultCacheSize = 512

// Deps are shared by every session's controllers.
type Deps struct {
	Adapter *mediation.Adapter
	Library *library.Repository
	Options viewstate.Options
}

// Registry keeps the most recently used sessions. Evicting a session drops
// its journal and analysis results; the library lives in shared storage.
//
// Sessions minted for a request without a usable X-Session-Id start in a
// smaller provisional cache and move to the main cache once the client sends
// the id back. Header-less traffic can only churn the provisional cache.
type Registry struct {
	deps Deps
	now  func() time.Time

	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
	fresh *lru.Cache[string, *Session]
}

// NewRegistry returns a registry holding up to size sessions.
func NewRegistry(size int, deps Deps) (*Registry, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.NewWithEvict[string, *Session](size, func(id string, _ *Session) {
		telemetry.Info("session.evicted", map[string]any{"session_id": id})
	})
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	fresh, err := lru.New[string, *Session](provisionalSize(size))
	if err != nil {
		return nil, fmt.Errorf("provisional session cache: %w", err)
	}
	return &Registry{deps: deps, now: time.Now, cache: cache, fresh: fresh}, nil
}

func provisionalSize(size int) int {
	if n := size / 4; n > 0 {
		return n
	}
	return 1
}

// Get returns the session for an id the client sent, creating it on first use.
// A provisional session is promoted to the main cache.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache.Get(id); ok {
		return s
	}
	if s, ok := r.fresh.Peek(id); ok {
		r.fresh.Remove(id)
		r.cache.Add(id, s)
		return s
	}
	s := r.newSession(id)
	r.cache.Add(id, s)
	telemetry.Info("session.created", map[string]any{"session_id": id})
	return s
}

// Provision creates a session for an id minted by the server.
func (r *Registry) Provision(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache.Get(id); ok {
		return s
	}
	if s, ok := r.fresh.Get(id); ok {
		return s
	}
	s := r.newSession(id)
	r.fresh.Add(id, s)
	telemetry.Info("session.created", map[string]any{"session_id": id, "provisional": true})
	return s
}

// Peek returns an existing session without creating or touching it.
func (r *Registry) Peek(id string) (*Session, bool) {
	if s, ok := r.cache.Peek(id); ok {
		return s, true
	}
	return r.fresh.Peek(id)
}

// Len reports the number of live sessions, provisional ones included.
func (r *Registry) Len() int {
	return r.cache.Len() + r.fresh.Len()
}

func (r *Registry) newSession(id string) *Session {
	opts := r.deps.Options
	j := journal.NewController(r.deps.Adapter)
	if opts.Timeout > 0 {
		j.Timeout = opts.Timeout
	}
	return &Session{
		ID:        id,
		CreatedAt: r.now(),
		Assistant: assistant.NewController(r.deps.Adapter).Configure(opts),
		Culture:   culture.NewController(r.deps.Adapter).Configure(opts),
		Journal:   j,
		Library:   library.NewController(r.deps.Library),
		view:      ViewDashboard,
	}
}
