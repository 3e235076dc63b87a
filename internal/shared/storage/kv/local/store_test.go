package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(filepath.Join(dir, "nested"))

	_, err := s.Get(ctx, "tejai_library_data")
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Put(ctx, "tejai_library_data", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Put(ctx, "tejai_library_data", []byte(`[]`)))

	got, err := s.Get(ctx, "tejai_library_data")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRejectsTraversalKeys(t *testing.T) {
	s := New(t.TempDir())
	assert.Error(t, s.Put(context.Background(), "../escape", []byte(`[]`)))
	_, err := s.Get(context.Background(), "../escape")
	assert.Error(t, err)
}

func TestRewrittenKeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	require.NoError(t, s.Put(ctx, "a/b", []byte(`"slash"`)))
	require.NoError(t, s.Put(ctx, "a_b", []byte(`"underscore"`)))

	got, err := s.Get(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, `"slash"`, string(got))
	got, err = s.Get(ctx, "a_b")
	require.NoError(t, err)
	assert.Equal(t, `"underscore"`, string(got))
}

func TestLongKeysSharingPrefixDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())
	prefix := strings.Repeat("k", 200)

	require.NoError(t, s.Put(ctx, prefix+"1", []byte(`1`)))
	require.NoError(t, s.Put(ctx, prefix+"2", []byte(`2`)))

	got, err := s.Get(ctx, prefix+"1")
	require.NoError(t, err)
	assert.Equal(t, `1`, string(got))
}
