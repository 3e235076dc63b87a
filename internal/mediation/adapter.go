// Package mediation builds model requests for each feature and turns the
// replies into typed results.
package mediation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/metrics"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
)

// Adapter mediates the three generative calls.
type Adapter struct {
	Client  llm.Client
	Prompts llm.Prompts
}

// New returns an Adapter with the default prompt catalog.
func New(client llm.Client) *Adapter {
	return &Adapter{Client: client, Prompts: llm.DefaultPrompts()}
}

// AnalyzeTechnique critiques tension, density and visible errors in a weave photo.
func (a *Adapter) AnalyzeTechnique(ctx context.Context, image media.Media) (TechnicalData, error) {
	req := llm.Request{
		Parts: []llm.Part{llm.MediaPart(image), llm.TextPart(a.Prompts.Technique)},
		JSON:  true,
	}
	var out TechnicalData
	err := a.call(ctx, FeatureTechnique, req, func(reply string) error {
		var err error
		out, err = decodeTechnical(reply)
		return err
	})
	return out, err
}

// ValidateSymbol identifies an Andean symbol and judges its fidelity.
func (a *Adapter) ValidateSymbol(ctx context.Context, image media.Media) (CulturalData, error) {
	req := llm.Request{
		Parts: []llm.Part{llm.MediaPart(image), llm.TextPart(a.Prompts.Symbolism)},
		JSON:  true,
	}
	var out CulturalData
	err := a.call(ctx, FeatureSymbolism, req, func(reply string) error {
		var err error
		out, err = decodeCultural(reply)
		return err
	})
	return out, err
}

// AnalyzeJournal reads emotions and tags from a reflection. Audio, when
// present, precedes the text instruction.
func (a *Adapter) AnalyzeJournal(ctx context.Context, text string, audio *media.Media) (JournalAnalysis, error) {
	parts := make([]llm.Part, 0, 2)
	if audio != nil && !audio.IsZero() {
		parts = append(parts, llm.MediaPart(*audio))
	}
	parts = append(parts, llm.TextPart(a.Prompts.JournalPrompt(text)))

	var out JournalAnalysis
	err := a.call(ctx, FeatureJournal, llm.Request{Parts: parts, JSON: true}, func(reply string) error {
		var err error
		out, err = decodeJournal(reply)
		return err
	})
	return out, err
}

func (a *Adapter) call(ctx context.Context, feature string, req llm.Request, decode func(string) error) error {
	started := time.Now()
	metrics.IncAnalysisStarted(feature)

	err := a.generateAndDecode(ctx, req, decode)

	elapsed := time.Since(started)
	metrics.ObserveAnalysisDuration(feature, elapsed)
	fields := map[string]any{
		"feature":     feature,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}
	if err != nil {
		kind := FailureKind(err)
		metrics.IncAnalysisFailed(feature, kind)
		fields["kind"] = kind
		fields["error"] = err
		telemetry.Warn("mediation.failed", fields)
		return err
	}
	metrics.IncAnalysisCompleted(feature)
	telemetry.Info("mediation.completed", fields)
	return nil
}

func (a *Adapter) generateAndDecode(ctx context.Context, req llm.Request, decode func(string) error) error {
	if a.Client == nil {
		return fmt.Errorf("%w: %v", ErrTransport, llm.ErrNotConfigured)
	}
	reply, err := a.Client.GenerateContent(ctx, req)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return decode(reply)
}
