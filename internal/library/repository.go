package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/metrics"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/util"
)

var (
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("library item not found")
	// ErrStorageCorruption means the stored collection could not be parsed.
	ErrStorageCorruption = errors.New("library storage is corrupt")
)

// Repository persists the collection as one JSON array under StorageKey.
// Read-modify-write is serialized within this process only.
type Repository struct {
	Store kv.Store
	IDs   *util.TimestampIDs

	mu sync.Mutex
}

// NewRepository returns a repository over store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{Store: store, IDs: &util.TimestampIDs{}}
}

// List returns the collection, newest first. Unreadable or corrupt storage
// yields an empty collection.
func (r *Repository) List(ctx context.Context) []Item {
	metrics.IncLibraryOp("list")
	items, err := r.load(ctx)
	if err != nil {
		telemetry.Warn("library.list_degraded", map[string]any{"error": err})
		return []Item{}
	}
	return items
}

// Get returns the item with id.
func (r *Repository) Get(ctx context.Context, id string) (Item, error) {
	metrics.IncLibraryOp("get")
	items, err := r.load(ctx)
	if err != nil {
		telemetry.Warn("library.get_degraded", map[string]any{"error": err, "id": id})
		return Item{}, ErrNotFound
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// Save assigns a fresh id, prepends the item and writes the whole collection.
func (r *Repository) Save(ctx context.Context, d Draft) (Item, error) {
	metrics.IncLibraryOp("save")
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.loadForWrite(ctx)
	if err != nil {
		return Item{}, err
	}

	taken := make(map[string]struct{}, len(items))
	for _, it := range items {
		taken[it.ID] = struct{}{}
	}
	id := r.ids().Next()
	for {
		if _, dup := taken[id]; !dup {
			break
		}
		id = r.ids().Next()
	}

	item := d.withID(id)
	updated := make([]Item, 0, len(items)+1)
	updated = append(updated, item)
	updated = append(updated, items...)
	if err := r.write(ctx, updated); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes the item with id and returns the remaining collection.
// Deleting an unknown id changes nothing.
func (r *Repository) Delete(ctx context.Context, id string) ([]Item, error) {
	metrics.IncLibraryOp("delete")
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	remaining := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			remaining = append(remaining, it)
		}
	}
	if len(remaining) == len(items) {
		return remaining, nil
	}
	if err := r.write(ctx, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (r *Repository) ids() *util.TimestampIDs {
	if r.IDs == nil {
		r.IDs = &util.TimestampIDs{}
	}
	return r.IDs
}

func (r *Repository) load(ctx context.Context) ([]Item, error) {
	raw, err := r.Store.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorruption, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// loadForWrite treats a corrupt value as empty so the next write repairs it.
// Other read failures abort the write.
func (r *Repository) loadForWrite(ctx context.Context) ([]Item, error) {
	items, err := r.load(ctx)
	if errors.Is(err, ErrStorageCorruption) {
		telemetry.Warn("library.corrupt_overwritten", map[string]any{"error": err})
		return []Item{}, nil
	}
	return items, err
}

func (r *Repository) write(ctx context.Context, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := r.Store.Put(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("write library: %w", err)
	}
	return nil
}
