// Package embed abstracts the sentence-embedding model behind a provider
// interface. The process holds one provider instance, created at startup
// and shared read-only by every caller; ranking embeds the query once and
// the candidate pool once, never pairwise.
package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// Provider generates vector embeddings from text.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// The result is ordered like the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Ping validates the provider is reachable with a lightweight call.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// Config holds embedding provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", "".
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama, Azure OpenAI).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int
}

// ConfigFromModel converts the engine configuration section.
func ConfigFromModel(mc model.EmbeddingConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}

// NewProvider creates an embedding provider based on configuration. An
// empty provider name disables semantic matching and returns nil: callers
// must treat a nil provider as the documented "model unavailable" state.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", config.Provider)
	}
}
