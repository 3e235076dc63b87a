package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSaveEmptyTitleNeverTouchesStore(t *testing.T) {
	store := newCountingStore()
	c := NewController(NewRepository(store))

	_, err := c.Save(context.Background(), Draft{Title: "", Image: pixel})
	require.ErrorIs(t, err, ErrInvalidDraft)

	var derr *DraftError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, []FieldIssue{{Field: "title", Issue: "required"}}, derr.Issues)
	assert.Equal(t, 0, store.gets)
	assert.Equal(t, 0, store.puts)
	assert.False(t, c.Loading())
}

func TestSaveRequiresDataURLImage(t *testing.T) {
	c := NewController(NewRepository(newCountingStore()))

	_, err := c.Save(context.Background(), Draft{Title: "Manta"})
	assert.ErrorIs(t, err, ErrInvalidDraft)

	_, err = c.Save(context.Background(), Draft{Title: "Manta", Image: "https://example.test/manta.png"})
	var derr *DraftError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "must be a data URL", derr.Issues[0].Issue)
}

func TestSaveFillsDateAndRefreshesGallery(t *testing.T) {
	c := NewController(NewRepository(newCountingStore()))
	c.Now = func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }

	item, err := c.Save(context.Background(), Draft{Title: "Bufanda de Alpaca", Story: "Para mi abuela", Image: pixel})
	require.NoError(t, err)
	assert.Equal(t, "15 de octubre de 2026", item.Date)
	assert.False(t, item.HasAudio)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, item, snap[0])
}

func TestRecordingMarksNextSaveAsAudio(t *testing.T) {
	c := NewController(NewRepository(newCountingStore()))

	assert.Equal(t, Recording{Recording: true}, c.ToggleRecording())
	assert.Equal(t, Recording{Recording: false, HasAudio: true}, c.ToggleRecording())

	item, err := c.Save(context.Background(), Draft{Title: "Guantes", Image: pixel})
	require.NoError(t, err)
	assert.True(t, item.HasAudio)
	assert.Equal(t, Recording{}, c.Recording())
}

func TestDeleteRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	c := NewController(NewRepository(newCountingStore()))
	item, err := c.Save(ctx, Draft{Title: "a", Image: pixel})
	require.NoError(t, err)

	remaining, err := c.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Empty(t, c.Snapshot())

	_, err = c.Item(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
