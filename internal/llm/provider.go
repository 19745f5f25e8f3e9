package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/logger"
)

const logPreviewLimit = 200

// Provider is the structured-text request surface: a prompt plus a schema
// hint in, raw JSON text out. Callers own timeouts through ctx.
type Provider interface {
	Request(ctx context.Context, prompt, schemaHint string) (string, error)
}

// ClientProvider adapts a Client to Provider.
type ClientProvider struct {
	client Client
	tier   ModelTier
	name   ProviderName
	logger *zap.Logger
}

// NewClientProvider wraps client, requesting JSON from the given tier.
func NewClientProvider(client Client, name ProviderName, tier ModelTier, log *zap.Logger) *ClientProvider {
	return &ClientProvider{
		client: client,
		tier:   tier,
		name:   name,
		logger: logger.WithFields(log, logger.ProviderFields(string(name), client.GetModel(tier))...),
	}
}

// Request implements Provider.
func (p *ClientProvider) Request(ctx context.Context, prompt, schemaHint string) (string, error) {
	full := BuildStructuredPrompt(prompt, schemaHint)
	p.logger.Debug("provider request", zap.String("prompt", logger.TruncateForLog(full, logPreviewLimit)))

	start := time.Now()
	text, err := p.client.GenerateJSON(ctx, full, p.tier)
	if err != nil {
		p.logger.Debug("provider request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%s request failed: %w", p.name, err)
	}

	text = CleanJSONBlock(text)
	p.logger.Debug("provider response",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("response", logger.TruncateForLog(text, logPreviewLimit)))
	return text, nil
}

// Close releases the wrapped client.
func (p *ClientProvider) Close() error {
	return p.client.Close()
}
