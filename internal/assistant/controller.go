// Package assistant is the technical assistant: one photo in, a technique
// critique out.
package assistant

import (
	"context"
	"io"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// Messages shown for each state.
var Messages = viewstate.Messages{
	Loading:  "El Maestro está observando...",
	Success:  "¡Análisis listo!",
	Error:    "Hubo un error. Inténtalo de nuevo.",
	Encoding: "No se pudo procesar el archivo.",
}

// Analyzer is the slice of the mediation adapter this controller needs.
type Analyzer interface {
	AnalyzeTechnique(ctx context.Context, image media.Media) (mediation.TechnicalData, error)
}

// Controller owns the technique analysis state for one session.
type Controller struct {
	Analyzer Analyzer
	state    *viewstate.Analysis[mediation.TechnicalData]
}

// NewController returns an idle controller.
func NewController(analyzer Analyzer) *Controller {
	return &Controller{
		Analyzer: analyzer,
		state: viewstate.NewAnalysis("assistant", Messages, func(r *viewstate.AnalysisResult, td mediation.TechnicalData) {
			r.TechnicalData = &td
		}),
	}
}

// Configure sets the call timeout and upload limit.
func (c *Controller) Configure(opts viewstate.Options) *Controller {
	c.state.Apply(opts)
	return c
}

// Analyze encodes the photo and asks for a technique critique.
func (c *Controller) Analyze(ctx context.Context, r io.Reader, mimeType string) (viewstate.AnalysisResult, error) {
	return c.state.Run(ctx, r, mimeType, c.Analyzer.AnalyzeTechnique)
}

// Result returns the current result.
func (c *Controller) Result() viewstate.AnalysisResult {
	return c.state.Result()
}

// Loading reports whether an analysis is in flight.
func (c *Controller) Loading() bool {
	return c.state.Loading()
}

// Reset clears the result and discards any in-flight reply.
func (c *Controller) Reset() viewstate.AnalysisResult {
	return c.state.Reset()
}
