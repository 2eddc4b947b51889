package embed

import (
	"context"
	"time"

	"github.com/naveenkumar-devtech/refind/internal/cache"
)

// CachedProvider wraps a Provider with a vector cache. Batch requests only
// hit the upstream for the texts that miss, preserving input order in the
// result.
type CachedProvider struct {
	upstream Provider
	cache    cache.Cache
	model    string
	ttl      time.Duration
}

// NewCachedProvider wraps upstream with the given cache. The model name
// participates in cache keys.
func NewCachedProvider(upstream Provider, c cache.Cache, model string, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		cache:    c,
		model:    model,
		ttl:      ttl,
	}
}

// Name returns the upstream provider name.
func (p *CachedProvider) Name() string {
	return p.upstream.Name()
}

// Embed returns the cached vector for text or fetches it from upstream.
func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(p.model, text)
	if vec, found := p.cache.Get(key); found {
		return vec, nil
	}

	vec, err := p.upstream.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, vec, p.ttl)
	return vec, nil
}

// EmbedBatch embeds the texts, fetching only cache misses from upstream.
func (p *CachedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		if vec, found := p.cache.Get(cache.Key(p.model, text)); found {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) > 0 {
		fetched, err := p.upstream.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, vec := range fetched {
			i := missIdx[j]
			vectors[i] = vec
			p.cache.Set(cache.Key(p.model, texts[i]), vec, p.ttl)
		}
	}
	return vectors, nil
}

// Ping checks the upstream provider.
func (p *CachedProvider) Ping(ctx context.Context) error {
	return p.upstream.Ping(ctx)
}

// Close closes the upstream provider.
func (p *CachedProvider) Close() error {
	return p.upstream.Close()
}
