package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// mockMatcher implements Matcher and records how hard it gets hit: total
// calls and the highest number of concurrent calls observed.
type mockMatcher struct {
	shouldErr bool
	delay     time.Duration

	calls   int32
	inline  int32
	maxSeen int32
}

func (m *mockMatcher) Rematch(ctx context.Context, report *model.Report) ([]model.MatchCandidate, error) {
	atomic.AddInt32(&m.calls, 1)
	cur := atomic.AddInt32(&m.inline, 1)
	for {
		seen := atomic.LoadInt32(&m.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&m.maxSeen, seen, cur) {
			break
		}
	}
	defer atomic.AddInt32(&m.inline, -1)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.shouldErr {
		return nil, errors.New("embedding backend down")
	}
	return []model.MatchCandidate{{ReportID: "cand-" + report.ID, Score: 0.8}}, nil
}

func makeReports(n int) []*model.Report {
	reports := make([]*model.Report, n)
	for i := range reports {
		reports[i] = &model.Report{
			ID:     fmt.Sprintf("r%02d", i),
			Title:  "item",
			Status: model.StatusLost,
		}
	}
	return reports
}

func TestBatchRescanner_RescanAll(t *testing.T) {
	matcher := &mockMatcher{delay: 5 * time.Millisecond}
	rescanner := NewBatchRescanner(matcher, 3)

	results := rescanner.RescanAll(context.Background(), makeReports(6))

	require.Len(t, results, 6)
	assert.Equal(t, int32(6), atomic.LoadInt32(&matcher.calls))
	for _, r := range results {
		require.NoError(t, r.GetError())
		assert.Len(t, r.Candidates, 1)
	}
}

func TestBatchRescanner_Empty(t *testing.T) {
	rescanner := NewBatchRescanner(&mockMatcher{}, 2)
	results := rescanner.RescanAll(context.Background(), nil)
	assert.Empty(t, results)
}

func TestBatchRescanner_ConcurrencyBound(t *testing.T) {
	matcher := &mockMatcher{delay: 10 * time.Millisecond}
	rescanner := NewBatchRescanner(matcher, 2)

	results := rescanner.RescanAll(context.Background(), makeReports(8))

	require.Len(t, results, 8)
	assert.LessOrEqual(t, atomic.LoadInt32(&matcher.maxSeen), int32(2))
}

func TestBatchRescanner_ZeroConcurrencyStillRuns(t *testing.T) {
	rescanner := NewBatchRescanner(&mockMatcher{}, 0)
	results := rescanner.RescanAll(context.Background(), makeReports(3))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.GetError())
	}
}

func TestBatchRescanner_ErrorsAreCollected(t *testing.T) {
	matcher := &mockMatcher{shouldErr: true}
	rescanner := NewBatchRescanner(matcher, 2)

	results := rescanner.RescanAll(context.Background(), makeReports(3))

	require.Len(t, results, 3)
	for _, r := range results {
		require.Error(t, r.GetError())
		assert.Equal(t, "item", r.Title)
	}
}

func TestBatchRescanner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	matcher := &mockMatcher{}
	rescanner := NewBatchRescanner(matcher, 2)
	results := rescanner.RescanAll(ctx, makeReports(5))

	// One result per report even when nothing ran to completion.
	require.Len(t, results, 5)
	for _, r := range results {
		require.Error(t, r.GetError())
		assert.True(t, errors.Is(r.GetError(), context.Canceled))
	}
}
