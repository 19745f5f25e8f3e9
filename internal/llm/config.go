// Package llm provides generative-text provider clients, model tier
// configuration, and helpers for structured JSON responses.
package llm

import "maps"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short structured answers
	TierLite ModelTier = "lite"
	// TierStandard is for recommendation narratives
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for longer multi-career plans
	TierAdvanced ModelTier = "advanced"
)

// ProviderName identifies a generative-text backend
type ProviderName string

// Supported providers
const (
	// ProviderGemini uses the github.com/google/generative-ai-go SDK
	ProviderGemini ProviderName = "gemini"
	// ProviderGenAI uses the unified google.golang.org/genai SDK
	ProviderGenAI ProviderName = "genai"
	// ProviderNone disables generation; callers fall back to rules
	ProviderNone ProviderName = "none"
)

// CounselorInstruction frames every request as guidance for a high-school
// student. Prompts add the student and career specifics.
const CounselorInstruction = "You are a high school career counselor. " +
	"Give concrete, age-appropriate next steps for the named career only. " +
	"Never mention tools, credentials or courses that belong to a different field. " +
	"Answer with JSON that follows the requested structure and nothing else."

// Config holds the model configuration for a provider
type Config struct {
	Provider          ProviderName
	Models            map[ModelTier]string
	Temperature       float32
	MaxOutputTokens   int32
	SystemInstruction string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration. A
// recommendation fits well under 2048 tokens.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:       0.4,
		MaxOutputTokens:   2048,
		SystemInstruction: CounselorInstruction,
	}
}

// GetModel returns the model name for tier, falling back to the standard
// and then the lite model.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

func (c *Config) clone() *Config {
	n := *c
	n.Models = maps.Clone(c.Models)
	if n.Models == nil {
		n.Models = make(map[ModelTier]string, 1)
	}
	return &n
}

// WithModel returns a copy of c using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	n := c.clone()
	n.Models[tier] = model
	return n
}

// WithProvider returns a copy of c using provider p.
func (c *Config) WithProvider(p ProviderName) *Config {
	n := c.clone()
	n.Provider = p
	return n
}
