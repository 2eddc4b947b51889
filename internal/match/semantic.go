package match

import (
	"context"
	"fmt"
	"math"

	"github.com/naveenkumar-devtech/refind/internal/embed"
	"github.com/naveenkumar-devtech/refind/internal/model"
)

// SemanticScorer computes semantic closeness between two free-text
// strings using the shared embedding provider. It holds no state beyond
// the provider reference and is safe for concurrent use.
type SemanticScorer struct {
	provider embed.Provider
}

// NewSemanticScorer creates a scorer over the given provider. A nil
// provider is the documented "model unavailable" state: Score then
// reports model.ErrModelUnavailable and callers treat the score as 0.
func NewSemanticScorer(provider embed.Provider) *SemanticScorer {
	return &SemanticScorer{provider: provider}
}

// Available reports whether a provider is configured.
func (s *SemanticScorer) Available() bool {
	return s.provider != nil
}

// Score embeds both strings and returns their cosine similarity clamped
// to [0, 1].
func (s *SemanticScorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	if s.provider == nil {
		return 0, model.ErrModelUnavailable
	}

	vectors, err := s.provider.EmbedBatch(ctx, []string{textA, textB})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: expected 2 vectors, got %d", model.ErrModelUnavailable, len(vectors))
	}
	return cosine(vectors[0], vectors[1]), nil
}

// cosine returns the cosine similarity of two vectors clamped to [0, 1].
// Negative cosine maps to 0: "opposite" text is no more a match than
// unrelated text.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
