// Package journal keeps a session's reflective journal. Entries live in
// memory only.
package journal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/util"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// ErrEmptyEntry is returned for whitespace-only text.
var ErrEmptyEntry = errors.New("journal entry text is required")

// Analyzer is the slice of the mediation adapter this controller needs.
type Analyzer interface {
	AnalyzeJournal(ctx context.Context, text string, audio *media.Media) (mediation.JournalAnalysis, error)
}

// Controller owns one session's journal.
type Controller struct {
	Analyzer Analyzer
	Timeout  time.Duration
	Now      func() time.Time

	ids       util.TimestampIDs
	mu        sync.Mutex
	machine   *viewstate.Machine
	entries   []Entry
	recording bool
	draft     string
}

// NewController returns an empty journal.
func NewController(analyzer Analyzer) *Controller {
	c := &Controller{
		Analyzer: analyzer,
		Timeout:  viewstate.DefaultTimeout,
		machine:  viewstate.New(viewstate.KindForm),
	}
	c.ids.Now = c.now
	return c
}

// Save analyses text (or the pending draft when text is blank) and prepends
// the resulting entry. Audio, when given, is sent ahead of the text.
func (c *Controller) Save(ctx context.Context, text string, audio *media.Media) (Entry, error) {
	c.mu.Lock()
	if strings.TrimSpace(text) == "" {
		text = c.draft
	}
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return Entry{}, ErrEmptyEntry
	}
	tok, err := c.machine.Start()
	if err != nil {
		c.mu.Unlock()
		return Entry{}, err
	}
	c.mu.Unlock()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = viewstate.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	analysis, callErr := c.Analyzer.AnalyzeJournal(callCtx, text, audio)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.machine.Complete(tok, viewstate.EventSettle); err != nil {
		return Entry{}, err
	}
	if callErr != nil {
		telemetry.Warn("journal.save_failed", map[string]any{"error": callErr})
		return Entry{}, callErr
	}

	entryType := TypeText
	if audio != nil && !audio.IsZero() {
		entryType = TypeAudio
	}
	now := c.now()
	entry := Entry{
		ID:           c.ids.Next(),
		Date:         util.JournalDate(now),
		Type:         entryType,
		Content:      text,
		Emotions:     analysis.Emotions,
		Tags:         analysis.Tags,
		AIReflection: analysis.Reflection,
	}
	c.entries = append([]Entry{entry}, c.entries...)
	c.draft = ""
	return entry, nil
}

// Entries returns the entries, newest first.
func (c *Controller) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ToggleRecording starts or stops the simulated voice memo. Starting clears
// the draft; stopping fills it with the simulated transcript.
func (c *Controller) ToggleRecording() Recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording {
		c.recording = false
		c.draft = SimulatedTranscript
	} else {
		c.recording = true
		c.draft = ""
	}
	return Recording{Recording: c.recording, Draft: c.draft}
}

// Recording returns the simulated recording state.
func (c *Controller) Recording() Recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Recording{Recording: c.recording, Draft: c.draft}
}

// Loading reports whether a save is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Loading()
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
