package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/memory"
)

const fullReply = `{
  "tension": "pareja",
  "density": "media",
  "errors": ["hilo suelto"],
  "suggestions": ["ajustar la trama"],
  "symbolName": "Rombo",
  "meaning": "La tierra fértil",
  "accuracy": "Alta",
  "question": "¿Quién te enseñó este diseño?",
  "emotions": ["calma"],
  "tags": ["telar"],
  "reflection": "Buen avance."
}`

func execute(t *testing.T, client llm.Client, repo *library.Repository, args ...string) (string, error) {
	t.Helper()
	if repo == nil {
		repo = library.NewRepository(memory.New())
	}
	root := newRootCmd(func(context.Context) (*deps, error) {
		return &deps{Adapter: mediation.New(client), Library: repo, MaxBytes: 1 << 20}, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tejido.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	return path
}

func TestAnalyzeAllRunsBothAnalyses(t *testing.T) {
	client := &llm.StaticClient{Reply: fullReply}
	out, err := execute(t, client, nil, "analyze", "all", writeImage(t))
	require.NoError(t, err)

	var report fullReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Technique)
	require.NotNil(t, report.Symbol)
	assert.Equal(t, "pareja", report.Technique.Tension)
	assert.Equal(t, "Rombo", report.Symbol.SymbolName)
	assert.Equal(t, 2, client.Calls)
}

func TestAnalyzeTechniqueSendsImage(t *testing.T) {
	client := &llm.StaticClient{Reply: fullReply}
	_, err := execute(t, client, nil, "analyze", "technique", writeImage(t))
	require.NoError(t, err)

	require.Len(t, client.Last.Parts, 2)
	require.NotNil(t, client.Last.Parts[0].Media)
	assert.Equal(t, "image/png", client.Last.Parts[0].Media.MIMEType)
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := execute(t, &llm.StaticClient{Reply: fullReply}, nil, "analyze", "symbol", filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestJournalCommand(t *testing.T) {
	out, err := execute(t, &llm.StaticClient{Reply: fullReply}, nil, "journal", "Hoy terminé la faja.")
	require.NoError(t, err)

	var entry journal.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "Hoy terminé la faja.", entry.Content)
	assert.Equal(t, "Buen avance.", entry.AIReflection)
}

func TestJournalCommandRequiresText(t *testing.T) {
	_, err := execute(t, &llm.StaticClient{Reply: fullReply}, nil, "journal")
	assert.ErrorIs(t, err, journal.ErrEmptyEntry)
}

func TestLibraryListAndDelete(t *testing.T) {
	repo := library.NewRepository(memory.New())
	item, err := repo.Save(context.Background(), library.Draft{Title: "Faja", Image: "data:image/png;base64,AA=="})
	require.NoError(t, err)

	out, err := execute(t, nil, repo, "library", "list")
	require.NoError(t, err)
	var items []library.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)

	out, err = execute(t, nil, repo, "library", "delete", item.ID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Empty(t, items)
}
