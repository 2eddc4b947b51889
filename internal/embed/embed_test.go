package embed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/cache"
)

// fakeProvider counts upstream calls and returns a fixed vector per text
// length so tests can tell vectors apart.
type fakeProvider struct {
	batchCalls int
	embedded   []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		f.embedded = append(f.embedded, t)
		vecs[i] = []float32{float32(len(t)), 1}
	}
	return vecs, nil
}

func (f *fakeProvider) Ping(ctx context.Context) error { return nil }
func (f *fakeProvider) Close() error                   { return nil }

func TestNewProvider_Factory(t *testing.T) {
	t.Run("empty provider disables embeddings", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: ""})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(Config{Provider: "bert"})
		require.Error(t, err)
	})

	t.Run("openai requires api key", func(t *testing.T) {
		_, err := NewProvider(Config{Provider: "openai"})
		require.Error(t, err)
	})

	t.Run("ollama defaults", func(t *testing.T) {
		p, err := NewProvider(Config{Provider: "ollama"})
		require.NoError(t, err)
		assert.Equal(t, "ollama", p.Name())
	})
}

func TestCachedProvider_BatchOnlyFetchesMisses(t *testing.T) {
	upstream := &fakeProvider{}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedProvider(upstream, mem, "test-model", time.Minute)

	ctx := context.Background()

	first, err := cached.EmbedBatch(ctx, []string{"red umbrella", "blue backpack"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, upstream.batchCalls)

	// Second batch shares one text; only the new one goes upstream.
	second, err := cached.EmbedBatch(ctx, []string{"red umbrella", "silver laptop"})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 2, upstream.batchCalls)
	assert.Equal(t, []string{"red umbrella", "blue backpack", "silver laptop"}, upstream.embedded)

	// Cached vector is returned in the right slot.
	assert.Equal(t, first[0], second[0])
}

func TestCachedProvider_FullHitSkipsUpstream(t *testing.T) {
	upstream := &fakeProvider{}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	cached := NewCachedProvider(upstream, mem, "test-model", time.Minute)

	ctx := context.Background()
	_, err := cached.Embed(ctx, "red umbrella")
	require.NoError(t, err)
	_, err = cached.Embed(ctx, "red umbrella")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.batchCalls)
}

func TestCacheKey_DistinguishesModels(t *testing.T) {
	assert.NotEqual(t,
		cache.Key("model-a", "red umbrella"),
		cache.Key("model-b", "red umbrella"),
	)
}

func TestThrottledProvider_Delegates(t *testing.T) {
	upstream := &fakeProvider{}
	throttled := NewThrottledProvider(upstream, 100)

	vec, err := throttled.Embed(context.Background(), "red umbrella")
	require.NoError(t, err)
	assert.NotEmpty(t, vec)
	assert.Equal(t, "fake", throttled.Name())
}
