// Package viewstate holds the idle/loading/success/error lifecycle shared by
// the feature controllers.
package viewstate

import (
	"errors"
	"fmt"
)

// Status is the externally visible state of a controller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Kind selects a transition table.
type Kind int

const (
	// KindAnalysis ends in success or error and can be reset.
	KindAnalysis Kind = iota
	// KindForm returns to idle once the submission settles.
	KindForm
)

func (k Kind) String() string {
	switch k {
	case KindAnalysis:
		return "analysis"
	case KindForm:
		return "form"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event drives a transition.
type Event string

const (
	EventStart   Event = "start"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventSettle  Event = "settle"
	EventReset   Event = "reset"
)

var (
	// ErrBusy is returned when starting while loading.
	ErrBusy = errors.New("operation already in progress")
	// ErrStale is returned for a completion whose action was superseded.
	ErrStale = errors.New("stale completion")
	// ErrInvalidTransition is returned for an event the table does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Token identifies one started action.
type Token uint64

type edge struct {
	kind  Kind
	from  Status
	event Event
}

var transitions = map[edge]Status{
	{KindAnalysis, StatusIdle, EventStart}:      StatusLoading,
	{KindAnalysis, StatusSuccess, EventStart}:   StatusLoading,
	{KindAnalysis, StatusError, EventStart}:     StatusLoading,
	{KindAnalysis, StatusLoading, EventSucceed}: StatusSuccess,
	{KindAnalysis, StatusLoading, EventFail}:    StatusError,

	{KindAnalysis, StatusIdle, EventReset}:    StatusIdle,
	{KindAnalysis, StatusLoading, EventReset}: StatusIdle,
	{KindAnalysis, StatusSuccess, EventReset}: StatusIdle,
	{KindAnalysis, StatusError, EventReset}:   StatusIdle,

	{KindForm, StatusIdle, EventStart}:     StatusLoading,
	{KindForm, StatusLoading, EventSettle}: StatusIdle,
}

// Machine tracks status and the current generation. It is not safe for
// concurrent use; controllers guard it with their own mutex.
type Machine struct {
	kind   Kind
	status Status
	gen    Token
}

// New returns an idle machine of the given kind.
func New(kind Kind) *Machine {
	return &Machine{kind: kind, status: StatusIdle}
}

// Kind returns the machine's transition table selector.
func (m *Machine) Kind() Kind { return m.kind }

// Status returns the current status.
func (m *Machine) Status() Status { return m.status }

// Loading reports whether an action is in flight.
func (m *Machine) Loading() bool { return m.status == StatusLoading }

// Start moves to loading and returns the token for the new action.
func (m *Machine) Start() (Token, error) {
	if m.status == StatusLoading {
		return 0, ErrBusy
	}
	if err := m.apply(EventStart); err != nil {
		return 0, err
	}
	m.gen++
	return m.gen, nil
}

// Complete applies a completion event for tok. Completions for a superseded
// token return ErrStale and leave the machine untouched.
func (m *Machine) Complete(tok Token, ev Event) error {
	if tok != m.gen || m.status != StatusLoading {
		return ErrStale
	}
	switch ev {
	case EventSucceed, EventFail, EventSettle:
	default:
		return fmt.Errorf("%w: %s is not a completion", ErrInvalidTransition, ev)
	}
	return m.apply(ev)
}

// Reset returns to idle and invalidates any in-flight token.
func (m *Machine) Reset() error {
	if err := m.apply(EventReset); err != nil {
		return err
	}
	m.gen++
	return nil
}

func (m *Machine) apply(ev Event) error {
	next, ok := transitions[edge{m.kind, m.status, ev}]
	if !ok {
		return fmt.Errorf("%w: %s %s on %s", ErrInvalidTransition, m.kind, ev, m.status)
	}
	m.status = next
	return nil
}
