package match

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

func TestSemanticScorer_Score(t *testing.T) {
	provider := &vectorProvider{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {3, 4},
		"c": {-1, 0},
	}}
	scorer := NewSemanticScorer(provider)

	score, err := scorer.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, score, 1e-9)

	// Negative cosine clamps to zero.
	score, err = scorer.Score(context.Background(), "a", "c")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	// Identity scores 1.
	score, err = scorer.Score(context.Background(), "a", "a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestSemanticScorer_Unavailable(t *testing.T) {
	scorer := NewSemanticScorer(nil)
	assert.False(t, scorer.Available())

	score, err := scorer.Score(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrModelUnavailable))
	assert.Equal(t, 0.0, score)
}

func TestSemanticScorer_UpstreamFailure(t *testing.T) {
	scorer := NewSemanticScorer(&vectorProvider{fail: true})

	_, err := scorer.Score(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrModelUnavailable))
}
