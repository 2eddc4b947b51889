package embed

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledProvider wraps a Provider with a rate limiter so bursts of
// background matching passes cannot exhaust the upstream API quota. One
// request costs one token regardless of batch size, matching how the
// embedding APIs bill per request plus tokens.
type ThrottledProvider struct {
	upstream Provider
	limiter  *rate.Limiter
}

// NewThrottledProvider wraps upstream, allowing requestsPerSecond with a
// small burst.
func NewThrottledProvider(upstream Provider, requestsPerSecond float64) *ThrottledProvider {
	burst := 2
	return &ThrottledProvider{
		upstream: upstream,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the upstream provider name.
func (p *ThrottledProvider) Name() string {
	return p.upstream.Name()
}

// Embed waits for rate-limit clearance, then delegates.
func (p *ThrottledProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.upstream.Embed(ctx, text)
}

// EmbedBatch waits for rate-limit clearance, then delegates.
func (p *ThrottledProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.upstream.EmbedBatch(ctx, texts)
}

// Ping checks the upstream provider without consuming rate budget.
func (p *ThrottledProvider) Ping(ctx context.Context) error {
	return p.upstream.Ping(ctx)
}

// Close closes the upstream provider.
func (p *ThrottledProvider) Close() error {
	return p.upstream.Close()
}
