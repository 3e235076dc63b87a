// Package library is the virtual library of woven pieces and their stories.
package library

import (
	"context"
	"sync"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/util"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// Controller is one session's view of the shared library: the gallery
// snapshot plus the create form's simulated recording.
type Controller struct {
	Repo *Repository
	Now  func() time.Time

	mu        sync.Mutex
	machine   *viewstate.Machine
	items     []Item
	recording bool
	hasAudio  bool
}

// NewController returns a controller over repo.
func NewController(repo *Repository) *Controller {
	return &Controller{
		Repo:    repo,
		machine: viewstate.New(viewstate.KindForm),
		items:   []Item{},
	}
}

// Items refreshes and returns the gallery.
func (c *Controller) Items(ctx context.Context) []Item {
	items := c.Repo.List(ctx)
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return items
}

// Item returns one item for the detail view.
func (c *Controller) Item(ctx context.Context, id string) (Item, error) {
	return c.Repo.Get(ctx, id)
}

// Save validates d, stores it and refreshes the gallery. An invalid draft
// never reaches the repository. A finished simulated recording marks the
// item as having audio.
func (c *Controller) Save(ctx context.Context, d Draft) (Item, error) {
	if err := ValidateDraft(d); err != nil {
		return Item{}, err
	}

	c.mu.Lock()
	tok, err := c.machine.Start()
	if err != nil {
		c.mu.Unlock()
		return Item{}, err
	}
	if c.hasAudio {
		d.HasAudio = true
	}
	c.mu.Unlock()

	if d.Date == "" {
		d.Date = util.LibraryDate(c.now())
	}
	item, saveErr := c.Repo.Save(ctx, d)

	var items []Item
	if saveErr == nil {
		items = c.Repo.List(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.machine.Complete(tok, viewstate.EventSettle); err != nil {
		return Item{}, err
	}
	if saveErr != nil {
		return Item{}, saveErr
	}
	c.items = items
	c.recording = false
	c.hasAudio = false
	return item, nil
}

// Delete removes id and returns the remaining gallery.
func (c *Controller) Delete(ctx context.Context, id string) ([]Item, error) {
	items, err := c.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return items, nil
}

// ToggleRecording starts or stops the simulated recording. Stopping marks
// the pending draft as having audio.
func (c *Controller) ToggleRecording() Recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording {
		c.recording = false
		c.hasAudio = true
	} else {
		c.recording = true
	}
	return Recording{Recording: c.recording, HasAudio: c.hasAudio}
}

// Recording returns the simulated recording state.
func (c *Controller) Recording() Recording {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Recording{Recording: c.recording, HasAudio: c.hasAudio}
}

// Loading reports whether a save is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Loading()
}

// Snapshot returns the last loaded gallery without touching storage.
func (c *Controller) Snapshot() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
