// Package advisor produces AI-backed tool recommendations from questionnaire
// answers, degrading to the rule-based scorer on any failure.
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/metrics"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/scoring"
)

const (
	analysisTemperature = 0.7
	analysisMaxTokens   = 2000
	maxToolsPerDomain   = 3
	minToolsPerDomain   = 2
)

// Fallback reasons, used as log attribute and metrics label
const (
	ReasonNotConfigured = "not_configured"
	ReasonUpstream      = "upstream"
	ReasonEmpty         = "empty_response"
	ReasonParse         = "parse"
	ReasonValidation    = "validation"
)

// CatalogSource provides the tool catalog used for enrichment
type CatalogSource interface {
	Load(ctx context.Context) catalog.Catalog
}

// Advisor turns answers into an AnalysisResult
type Advisor struct {
	completer llm.Completer
	catalog   CatalogSource
	model     string
	recorder  metrics.Recorder
	newRand   func() *rand.Rand
}

// Option configures an Advisor
type Option func(*Advisor)

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(a *Advisor) {
		a.recorder = r
	}
}

// WithRand sets the source of the sampling generator used for catalog enrichment.
// A func returning nil keeps catalog order.
func WithRand(fn func() *rand.Rand) Option {
	return func(a *Advisor) {
		a.newRand = fn
	}
}

// New creates an Advisor calling model through completer
func New(completer llm.Completer, source CatalogSource, model string, opts ...Option) *Advisor {
	a := &Advisor{
		completer: completer,
		catalog:   source,
		model:     model,
		recorder:  metrics.Nop(),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recommend returns the AI analysis of the answers, or the fallback scorer's
// result when the AI path fails for any reason. It never returns an error.
func (a *Advisor) Recommend(ctx context.Context, answers models.Answers) models.AnalysisResult {
	result, err := a.Analyze(ctx, answers)
	if err == nil {
		a.recorder.IncAnalysis(string(models.SourceAI), "")
		return result
	}

	reason := FailureReason(err)
	slog.Warn("ai analysis failed, using fallback scorer", "reason", reason, "error", err)
	a.recorder.IncAnalysis(string(models.SourceFallback), reason)

	return scoring.Score(answers)
}

// Analyze runs the AI path only and reports its failure instead of falling back.
func (a *Advisor) Analyze(ctx context.Context, answers models.Answers) (models.AnalysisResult, error) {
	tools := a.catalog.Load(ctx)

	resp, err := a.completer.Complete(ctx, llm.Request{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: SystemPrompt()},
			{Role: llm.RoleUser, Content: BuildPrompt(answers)},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return models.AnalysisResult{}, err
	}

	result, err := parseResult(resp.Content)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	a.enrich(&result, tools)
	result.Source = models.SourceAI

	slog.Info("ai analysis completed",
		"score", result.Score,
		"recommendations", len(result.Recommendations),
	)

	return result, nil
}

// enrich tops up recommendations with fewer than 2 tools from the catalog,
// then deduplicates and caps every recommendation at 3 tools.
func (a *Advisor) enrich(result *models.AnalysisResult, cat catalog.Catalog) {
	var rnd *rand.Rand
	if a.newRand != nil {
		rnd = a.newRand()
	}

	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		tools := rec.Tools
		if len(tools) < minToolsPerDomain {
			extra := cat.Lookup(rec.Domain, maxToolsPerDomain-len(tools), rnd)
			tools = append(tools, extra...)
		}
		tools = catalog.Dedupe(tools)
		if len(tools) > maxToolsPerDomain {
			tools = tools[:maxToolsPerDomain]
		}
		rec.Tools = tools
	}
}

// FailureReason classifies an AI path error into a fallback reason label
func FailureReason(err error) string {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return ReasonNotConfigured
	case errors.Is(err, llm.ErrEmptyResponse):
		return ReasonEmpty
	case errors.Is(err, ErrUnparseable):
		return ReasonParse
	case errors.Is(err, ErrInvalidResult):
		return ReasonValidation
	}
	return ReasonUpstream
}
