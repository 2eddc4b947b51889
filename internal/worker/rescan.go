// Package worker fans re-matching work out over a bounded set of
// goroutines. One result is produced per submitted report, errors
// included, so callers can always account for the whole batch.
package worker

import (
	"context"
	"sync"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// Matcher defines the interface for re-running matching for one report
type Matcher interface {
	Rematch(ctx context.Context, report *model.Report) ([]model.MatchCandidate, error)
}

// RescanResult represents the outcome of re-matching a single report
type RescanResult struct {
	ReportID   string
	Title      string
	Candidates []model.MatchCandidate
	Error      error
}

// GetError returns the error from the rescan result
func (r *RescanResult) GetError() error {
	return r.Error
}

// BatchRescanner re-matches multiple reports concurrently
type BatchRescanner struct {
	matcher     Matcher
	concurrency int
}

// NewBatchRescanner creates a new batch rescanner
func NewBatchRescanner(matcher Matcher, concurrency int) *BatchRescanner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchRescanner{
		matcher:     matcher,
		concurrency: concurrency,
	}
}

// RescanAll re-matches all given reports, at most concurrency at a time.
// Exactly one result per report comes back; reports not started before
// ctx is cancelled are reported with the context error.
func (b *BatchRescanner) RescanAll(ctx context.Context, reports []*model.Report) []*RescanResult {
	if len(reports) == 0 {
		return []*RescanResult{}
	}

	workers := b.concurrency
	if workers > len(reports) {
		workers = len(reports)
	}

	jobs := make(chan *model.Report)
	out := make(chan *RescanResult, len(reports))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for report := range jobs {
				out <- b.rescanOne(ctx, report)
			}
		}()
	}

	for _, report := range reports {
		select {
		case jobs <- report:
		case <-ctx.Done():
			out <- &RescanResult{ReportID: report.ID, Title: report.Title, Error: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]*RescanResult, 0, len(reports))
	for res := range out {
		results = append(results, res)
	}
	return results
}

func (b *BatchRescanner) rescanOne(ctx context.Context, report *model.Report) *RescanResult {
	candidates, err := b.matcher.Rematch(ctx, report)
	if err != nil {
		return &RescanResult{
			ReportID: report.ID,
			Title:    report.Title,
			Error:    err,
		}
	}
	return &RescanResult{
		ReportID:   report.ID,
		Title:      report.Title,
		Candidates: candidates,
	}
}
