// Package match scores and ranks found items against lost reports (and
// vice versa) and masks the results down to safe hints.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/naveenkumar-devtech/refind/internal/embed"
	"github.com/naveenkumar-devtech/refind/internal/model"
	"github.com/naveenkumar-devtech/refind/internal/similarity"
)

// descriptionHint is the generic, non-revealing description shown for
// every candidate.
const descriptionHint = "A potential match was found. Contact the reporter to verify details."

// Ranker ranks opposite-status candidates for a source report. Scoring
// combines the semantic closeness of title+description with a flat bonus
// for fuzzy-similar locations; candidates below the admission threshold
// never surface.
type Ranker struct {
	provider embed.Provider
	cfg      model.MatchingConfig
	log      *slog.Logger
}

// NewRanker creates a ranker over the shared embedding provider.
func NewRanker(provider embed.Provider, cfg model.MatchingConfig, log *slog.Logger) *Ranker {
	if log == nil {
		log = slog.Default()
	}
	return &Ranker{provider: provider, cfg: cfg, log: log}
}

// Rank filters the candidate pool down to eligible reports, scores them,
// and returns the admitted candidates sorted by score descending (ties
// broken by report ID ascending), truncated to limit.
//
// The query and the whole pool are embedded with one batched call each,
// so the cost grows linearly with the pool. Any embedding failure aborts
// the call: partial scores would silently rank some candidates on garbage,
// so the ranker fails closed and the caller sees an empty result with a
// model.ErrModelUnavailable to log.
func (r *Ranker) Rank(ctx context.Context, source *model.Report, pool []*model.Report, limit int) ([]model.MatchCandidate, error) {
	if limit <= 0 {
		limit = r.cfg.Limit
	}

	eligible := eligibleCandidates(source, pool)
	if len(eligible) == 0 {
		r.log.Debug("no eligible candidates", "report_id", source.ID, "pool", len(pool))
		return nil, nil
	}

	if r.provider == nil {
		return nil, fmt.Errorf("rank report %s: %w", source.ID, model.ErrModelUnavailable)
	}

	texts := make([]string, len(eligible))
	for i, c := range eligible {
		texts[i] = c.MatchText()
	}

	queryVec, err := r.provider.Embed(ctx, source.MatchText())
	if err != nil {
		return nil, fmt.Errorf("embed query for report %s: %w: %v", source.ID, model.ErrModelUnavailable, err)
	}
	poolVecs, err := r.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed pool for report %s: %w: %v", source.ID, model.ErrModelUnavailable, err)
	}

	var admitted []model.MatchCandidate
	for i, candidate := range eligible {
		semantic := cosine(queryVec, poolVecs[i])

		bonus := 0.0
		if r.locationSimilar(source.Location, candidate.Location) {
			bonus = r.cfg.LocationBonus
		}

		final := semantic*r.cfg.SemanticWeight + bonus
		if final < r.cfg.AdmissionThreshold {
			continue
		}

		admitted = append(admitted, model.MatchCandidate{
			ReportID:        candidate.ID,
			Score:           round2(final),
			TitleHint:       Mask(candidate.Title, r.cfg.MaskKeepTokens),
			LocationHint:    Mask(candidate.Location, r.cfg.MaskKeepTokens),
			DescriptionHint: descriptionHint,
			ImageRef:        candidate.ImageRef,
			OwnerID:         candidate.OwnerID,
		})
	}

	sort.Slice(admitted, func(i, j int) bool {
		if admitted[i].Score != admitted[j].Score {
			return admitted[i].Score > admitted[j].Score
		}
		return admitted[i].ReportID < admitted[j].ReportID
	})
	if len(admitted) > limit {
		admitted = admitted[:limit]
	}

	r.log.Debug("ranked candidates",
		"report_id", source.ID,
		"eligible", len(eligible),
		"admitted", len(admitted),
	)
	return admitted, nil
}

// eligibleCandidates keeps open reports with the opposite status,
// excluding the source itself.
func eligibleCandidates(source *model.Report, pool []*model.Report) []*model.Report {
	want := source.Status.Opposite()
	var out []*model.Report
	for _, c := range pool {
		if c.ID == source.ID || !c.Open() || c.Status != want {
			continue
		}
		out = append(out, c)
	}
	return out
}

// locationSimilar applies the token-set ratio with the configured
// threshold. A missing location on either side is simply no bonus, not an
// error: locations are optional on reports.
func (r *Ranker) locationSimilar(a, b string) bool {
	if similarity.Normalize(a) == "" || similarity.Normalize(b) == "" {
		return false
	}
	score, err := similarity.TokenSetScore(a, b)
	if err != nil {
		return false
	}
	return score >= r.cfg.LocationThreshold
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
