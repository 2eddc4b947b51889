package engine

import (
	"context"
	"time"

	"github.com/naveenkumar-devtech/refind/internal/model"
	"github.com/naveenkumar-devtech/refind/internal/worker"
)

// backgroundTimeout bounds a single fire-and-forget matching run,
// including embedding calls.
const backgroundTimeout = 2 * time.Minute

// Match ranks the eligible counterpart pool against the given report and
// returns the admitted candidates with masked hints.
func (e *Engine) Match(ctx context.Context, reportID string) ([]model.MatchCandidate, error) {
	report, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return e.Rematch(ctx, report)
}

// Rematch runs matching for an already-loaded report. It also satisfies
// worker.Matcher for batch rescans.
func (e *Engine) Rematch(ctx context.Context, report *model.Report) ([]model.MatchCandidate, error) {
	pool, err := e.store.FindEligible(ctx, report.Status.Opposite(), report.ID)
	if err != nil {
		return nil, err
	}
	return e.ranker.Rank(ctx, report, pool, e.cfg.Matching.Limit)
}

// Rescan re-matches every open report of the given status through the
// worker pool and returns the per-report results, errors included.
func (e *Engine) Rescan(ctx context.Context, status model.Status) ([]*worker.RescanResult, error) {
	reports, err := e.store.FindEligible(ctx, status, "")
	if err != nil {
		return nil, err
	}
	rescanner := worker.NewBatchRescanner(e, e.cfg.Concurrency.MatchWorkers)
	return rescanner.RescanAll(ctx, reports), nil
}

// matchInBackground runs matching for a freshly created report without
// blocking the caller. Panics and errors are logged and swallowed; the
// report itself is already persisted.
func (e *Engine) matchInBackground(report *model.Report) {
	e.bg.Add(1)
	go func() {
		defer e.bg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				e.log.Error("background matching panicked", "report", report.ID, "panic", rec)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		candidates, err := e.Rematch(ctx, report)
		if err != nil {
			e.log.Warn("background matching failed", "report", report.ID, "error", err)
			return
		}
		if len(candidates) == 0 {
			e.log.Debug("background matching found nothing", "report", report.ID)
			return
		}
		e.notifyMatches(ctx, report, candidates)
	}()
}

// notifyMatches tells the source owner how many candidates were admitted
// and pings each candidate owner, never the source owner about their own
// report. Delivery failures are logged only.
func (e *Engine) notifyMatches(ctx context.Context, report *model.Report, candidates []model.MatchCandidate) {
	if err := e.notifier.NotifyMatchesFound(ctx, report.OwnerID, report.Title, len(candidates)); err != nil {
		e.log.Warn("match notification failed", "user", report.OwnerID, "error", err)
	}
	for _, c := range candidates {
		if c.OwnerID == "" || c.OwnerID == report.OwnerID {
			continue
		}
		if err := e.notifier.NotifyPotentialMatch(ctx, c.OwnerID, c.TitleHint, c.Score); err != nil {
			e.log.Warn("match notification failed", "user", c.OwnerID, "error", err)
		}
	}
	e.log.Info("matching complete",
		"report", report.ID,
		"candidates", len(candidates),
		"top_score", candidates[0].Score)
}
