package viewstate

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
)

// DefaultTimeout bounds a detached model call.
const DefaultTimeout = 90 * time.Second

// AnalyzeFunc performs the model call for one image.
type AnalyzeFunc[T any] func(ctx context.Context, image media.Media) (T, error)

// Analysis runs the analysis-kind lifecycle for a single-image feature.
type Analysis[T any] struct {
	Name     string
	Messages Messages
	Timeout  time.Duration
	MaxBytes int64
	// Attach places a successful payload into the result.
	Attach func(*AnalysisResult, T)

	mu      sync.Mutex
	machine *Machine
	result  AnalysisResult
}

// NewAnalysis returns an idle analysis lifecycle.
func NewAnalysis[T any](name string, msgs Messages, attach func(*AnalysisResult, T)) *Analysis[T] {
	return &Analysis[T]{
		Name:     name,
		Messages: msgs,
		Timeout:  DefaultTimeout,
		Attach:   attach,
		machine:  New(KindAnalysis),
		result:   idleResult(),
	}
}

// Result returns a snapshot of the current result.
func (a *Analysis[T]) Result() AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Loading reports whether an analysis is in flight.
func (a *Analysis[T]) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.machine.Loading()
}

// Reset clears the result. An in-flight call completes into nothing.
func (a *Analysis[T]) Reset() AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	from := a.machine.Status()
	_ = a.machine.Reset()
	a.result = idleResult()
	a.logTransition(from)
	return a.result
}

// Run encodes the upload and calls fn on a context detached from ctx's
// cancellation. It returns ErrBusy while another run is loading and ErrStale
// when a reset or newer run superseded this one. On failure the returned
// result is the error state.
func (a *Analysis[T]) Run(ctx context.Context, r io.Reader, mimeType string, fn AnalyzeFunc[T]) (AnalysisResult, error) {
	a.mu.Lock()
	from := a.machine.Status()
	tok, err := a.machine.Start()
	if err != nil {
		res := a.result
		a.mu.Unlock()
		return res, err
	}
	a.result = AnalysisResult{Status: StatusLoading, Message: a.Messages.Loading}
	a.logTransition(from)
	a.mu.Unlock()

	image, err := media.Encode(r, mimeType, a.MaxBytes)
	if err != nil {
		return a.finish(tok, err, a.Messages.Encoding, nil)
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout())
	defer cancel()
	payload, err := fn(callCtx, image)
	if err != nil {
		return a.finish(tok, err, a.Messages.Error, nil)
	}
	return a.finish(tok, nil, a.Messages.Success, &payload)
}

func (a *Analysis[T]) finish(tok Token, cause error, message string, payload *T) (AnalysisResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ev := EventSucceed
	if cause != nil {
		ev = EventFail
	}
	if err := a.machine.Complete(tok, ev); err != nil {
		if errors.Is(err, ErrStale) {
			telemetry.Info(a.Name+".stale", map[string]any{"event": string(ev)})
		}
		return a.result, err
	}

	next := AnalysisResult{Status: a.machine.Status(), Message: message}
	if payload != nil && a.Attach != nil {
		a.Attach(&next, *payload)
	}
	a.result = next
	a.logTransition(StatusLoading)
	return a.result, cause
}

func (a *Analysis[T]) timeout() time.Duration {
	if a.Timeout <= 0 {
		return DefaultTimeout
	}
	return a.Timeout
}

func (a *Analysis[T]) logTransition(from Status) {
	telemetry.Info(a.Name+".status", map[string]any{
		"status_transition": string(from) + "->" + string(a.machine.Status()),
	})
}

// Options tune a controller's detached calls.
type Options struct {
	Timeout  time.Duration
	MaxBytes int64
}

// Apply sets non-zero options.
func (a *Analysis[T]) Apply(opts Options) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if opts.Timeout > 0 {
		a.Timeout = opts.Timeout
	}
	if opts.MaxBytes > 0 {
		a.MaxBytes = opts.MaxBytes
	}
}
