package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/llm"
)

// Generator asks the model for the narrative parts of an estimate
type Generator struct {
	client   llm.Client
	logger   *zap.Logger
	jsonMode bool
}

// Option configures a Generator
type Option func(*Generator)

// WithJSONMode toggles the provider's native JSON response mode. Some
// OpenAI-compatible servers reject it.
func WithJSONMode(enabled bool) Option {
	return func(g *Generator) { g.jsonMode = enabled }
}

// NewGenerator creates a Generator that makes one call on client per run
func NewGenerator(client llm.Client, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		client:   client,
		logger:   logger,
		jsonMode: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate makes exactly one model call. A failed call is wrapped with
// domain.ErrUpstreamUnavailable; an unusable answer is a *ContractError.
func (g *Generator) Generate(ctx context.Context, in domain.Inputs, totals domain.Totals, guess domain.LocationGuess) (domain.GenerationResult, error) {
	user, err := UserMessage(BuildRequestContext(in, totals, guess))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("failed to build generation request: %w", err)
	}

	text, err := g.client.Complete(ctx, llm.Request{
		System:      SystemPrompt(),
		User:        user,
		Temperature: Temperature,
		JSON:        g.jsonMode,
	})
	if err != nil {
		g.logger.Warn("model call failed", zap.Error(err))
		return domain.GenerationResult{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	result, err := ParseResponse(text)
	if err != nil {
		g.logger.Warn("model response rejected",
			zap.Error(err),
			zap.String("response", debugExcerpt(text)),
		)
		return domain.GenerationResult{}, err
	}

	g.logger.Debug("model response accepted",
		zap.Int("assumptions", len(result.Assumptions)),
		zap.Int("exclusions", len(result.Exclusions)),
		zap.Int("bom_items", len(result.BOM)),
	)
	return result, nil
}
