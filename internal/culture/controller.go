// Package culture validates Andean symbols woven into a piece.
package culture

import (
	"context"
	"io"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// Messages shown for each state.
var Messages = viewstate.Messages{
	Loading:  "Consultando a los ancestros...",
	Success:  "Validación completada",
	Error:    "No se pudo identificar el símbolo.",
	Encoding: "No se pudo procesar el archivo.",
}

// Validator is the slice of the mediation adapter this controller needs.
type Validator interface {
	ValidateSymbol(ctx context.Context, image media.Media) (mediation.CulturalData, error)
}

// Controller owns the symbol validation state for one session.
type Controller struct {
	Validator Validator
	state     *viewstate.Analysis[mediation.CulturalData]
}

// NewController returns an idle controller.
func NewController(v Validator) *Controller {
	return &Controller{
		Validator: v,
		state: viewstate.NewAnalysis("culture", Messages, func(r *viewstate.AnalysisResult, cd mediation.CulturalData) {
			r.CulturalData = &cd
		}),
	}
}

// Configure sets the call timeout and upload limit.
func (c *Controller) Configure(opts viewstate.Options) *Controller {
	c.state.Apply(opts)
	return c
}

// Validate encodes the photo and asks for the symbol's identity and meaning.
func (c *Controller) Validate(ctx context.Context, r io.Reader, mimeType string) (viewstate.AnalysisResult, error) {
	return c.state.Run(ctx, r, mimeType, c.Validator.ValidateSymbol)
}

// Result returns the current result.
func (c *Controller) Result() viewstate.AnalysisResult { return c.state.Result() }

// Loading reports whether a validation is in flight.
func (c *Controller) Loading() bool { return c.state.Loading() }

// Reset clears the result and discards any in-flight reply.
func (c *Controller) Reset() viewstate.AnalysisResult { return c.state.Reset() }
