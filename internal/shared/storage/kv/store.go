// Package kv defines the key-value port that backs browser-style local storage
// on the server. Values are opaque byte slices; callers own their encoding.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store reads and writes whole values by key. A Put replaces the previous
// value in a single write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
