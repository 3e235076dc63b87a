package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAnalyzeWithOneSuggestion(t *testing.T) {
	client := &llm.StaticClient{Reply: `{"tension":"firme","density":"apta para el frío","errors":[],"suggestions":["Aprieta la trama en el borde"]}`}
	c := NewController(mediation.New(client))

	res, err := c.Analyze(context.Background(), strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, viewstate.StatusSuccess, res.Status)
	assert.Equal(t, "¡Análisis listo!", res.Message)
	require.NotNil(t, res.TechnicalData)
	assert.Len(t, res.TechnicalData.Suggestions, 1)
	assert.NotNil(t, res.TechnicalData.Errors)
	assert.Nil(t, res.CulturalData)
}

func TestAnalyzeFailureShowsErrorMessage(t *testing.T) {
	c := NewController(mediation.New(&llm.StaticClient{Err: errors.New("network down")}))

	res, err := c.Analyze(context.Background(), strings.NewReader("jpeg-bytes"), "image/jpeg")
	assert.ErrorIs(t, err, mediation.ErrTransport)
	assert.Equal(t, viewstate.AnalysisResult{Status: viewstate.StatusError, Message: "Hubo un error. Inténtalo de nuevo."}, res)
	assert.Equal(t, res, c.Result())
}

func TestAnalyzeUnreadableFile(t *testing.T) {
	client := &llm.StaticClient{Reply: "{}"}
	c := NewController(mediation.New(client))

	res, err := c.Analyze(context.Background(), strings.NewReader(""), "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, "No se pudo procesar el archivo.", res.Message)
	assert.Equal(t, 0, client.Calls)
}

func TestResetReturnsIdle(t *testing.T) {
	client := &llm.StaticClient{Reply: `{"tension":"a","density":"b","errors":[],"suggestions":[]}`}
	c := NewController(mediation.New(client))
	_, err := c.Analyze(context.Background(), strings.NewReader("x"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, viewstate.AnalysisResult{Status: viewstate.StatusIdle}, c.Reset())
	assert.False(t, c.Loading())
}
