package health

import (
	"context"
	"errors"
	"testing"

	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/memory"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenStore) Put(context.Context, string, []byte) error { return errors.New("down") }

func TestStatusHealthy(t *testing.T) {
	r := NewService(memory.New(), &llm.StaticClient{}).Status(context.Background())
	if !r.OK || r.Store != "ok" || r.LLM != "configured" {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestStatusPlaceholderModel(t *testing.T) {
	r := NewService(memory.New(), llm.PlaceholderClient{}).Status(context.Background())
	if !r.OK || r.LLM != "not_configured" {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestStatusUnreachableStore(t *testing.T) {
	r := NewService(brokenStore{}, llm.PlaceholderClient{}).Status(context.Background())
	if r.OK || r.Store != "unreachable" {
		t.Fatalf("unexpected report: %+v", r)
	}
}
