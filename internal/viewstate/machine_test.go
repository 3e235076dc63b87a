package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisLifecycle(t *testing.T) {
	m := New(KindAnalysis)
	assert.Equal(t, StatusIdle, m.Status())

	tok, err := m.Start()
	require.NoError(t, err)
	assert.True(t, m.Loading())

	_, err = m.Start()
	assert.ErrorIs(t, err, ErrBusy)

	require.NoError(t, m.Complete(tok, EventSucceed))
	assert.Equal(t, StatusSuccess, m.Status())

	tok, err = m.Start()
	require.NoError(t, err)
	require.NoError(t, m.Complete(tok, EventFail))
	assert.Equal(t, StatusError, m.Status())

	require.NoError(t, m.Reset())
	assert.Equal(t, StatusIdle, m.Status())
}

func TestAnalysisRejectsSettle(t *testing.T) {
	m := New(KindAnalysis)
	tok, err := m.Start()
	require.NoError(t, err)
	assert.ErrorIs(t, m.Complete(tok, EventSettle), ErrInvalidTransition)
	assert.True(t, m.Loading())
}

func TestStaleCompletionAfterReset(t *testing.T) {
	m := New(KindAnalysis)
	tok, err := m.Start()
	require.NoError(t, err)
	require.NoError(t, m.Reset())

	assert.ErrorIs(t, m.Complete(tok, EventSucceed), ErrStale)
	assert.Equal(t, StatusIdle, m.Status())

	next, err := m.Start()
	require.NoError(t, err)
	assert.ErrorIs(t, m.Complete(tok, EventSucceed), ErrStale)
	require.NoError(t, m.Complete(next, EventSucceed))
}

func TestFormLifecycle(t *testing.T) {
	m := New(KindForm)
	tok, err := m.Start()
	require.NoError(t, err)

	_, err = m.Start()
	assert.ErrorIs(t, err, ErrBusy)

	assert.ErrorIs(t, m.Complete(tok, EventSucceed), ErrInvalidTransition)
	require.NoError(t, m.Complete(tok, EventSettle))
	assert.Equal(t, StatusIdle, m.Status())

	assert.ErrorIs(t, m.Reset(), ErrInvalidTransition)
	assert.ErrorIs(t, m.Complete(tok, EventSettle), ErrStale)
}

func TestCompleteRejectsNonCompletionEvents(t *testing.T) {
	m := New(KindAnalysis)
	tok, err := m.Start()
	require.NoError(t, err)
	assert.ErrorIs(t, m.Complete(tok, EventStart), ErrInvalidTransition)
	assert.ErrorIs(t, m.Complete(tok, EventReset), ErrInvalidTransition)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "analysis", KindAnalysis.String())
	assert.Equal(t, "form", KindForm.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
