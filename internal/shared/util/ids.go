package util

import (
	"strconv"
	"sync"
	"time"
)

// TimestampIDs issues Unix-millisecond ids that never repeat within one process,
// even when two ids are requested in the same millisecond.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
	Now  func() time.Time
}

// Next returns the next id.
func (g *TimestampIDs) Next() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
