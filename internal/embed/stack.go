package embed

import (
	"time"

	"github.com/naveenkumar-devtech/refind/internal/cache"
	"github.com/naveenkumar-devtech/refind/internal/model"
)

// NewFromConfig assembles the configured provider with its throttling and
// caching decorators. Returns nil when no provider is configured.
func NewFromConfig(mc model.EmbeddingConfig) (Provider, error) {
	provider, err := NewProvider(ConfigFromModel(mc))
	if err != nil || provider == nil {
		return nil, err
	}

	if mc.RequestsPerSecond > 0 {
		provider = NewThrottledProvider(provider, mc.RequestsPerSecond)
	}

	if mc.CacheTTL > 0 {
		ttl := time.Duration(mc.CacheTTL) * time.Second
		mem := cache.NewMemoryCache(ttl, 10*time.Minute)
		provider = NewCachedProvider(provider, mem, mc.Model, ttl)
	}

	return provider, nil
}
