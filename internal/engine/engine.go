// Package engine orchestrates reports, matching and claims on top of the
// store, the ranker and the notification service.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/naveenkumar-devtech/refind/internal/claims"
	"github.com/naveenkumar-devtech/refind/internal/match"
	"github.com/naveenkumar-devtech/refind/internal/model"
	"github.com/naveenkumar-devtech/refind/internal/notify"
	"github.com/naveenkumar-devtech/refind/internal/store"
)

// Engine wires the persistence, matching and notification layers behind
// the operations the CLI exposes.
type Engine struct {
	store    *store.Store
	ranker   *match.Ranker
	verifier *claims.Verifier
	notifier notify.Service
	cfg      *model.Config
	log      *slog.Logger

	bg sync.WaitGroup
}

// New creates an engine. A nil notifier degrades to the noop service and
// a nil logger to the default one.
func New(st *store.Store, ranker *match.Ranker, verifier *claims.Verifier, notifier notify.Service, cfg *model.Config, log *slog.Logger) *Engine {
	if notifier == nil {
		notifier = notify.NewService(model.NotifyConfig{}, log)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:    st,
		ranker:   ranker,
		verifier: verifier,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// CreateReport validates and persists a new report, then kicks off
// matching in the background. Matching failures never surface here.
func (e *Engine) CreateReport(ctx context.Context, r *model.Report) error {
	if err := validateReport(r); err != nil {
		return err
	}
	if err := e.store.CreateReport(ctx, r); err != nil {
		return err
	}
	e.matchInBackground(r)
	return nil
}

// GetReport returns a single report by ID.
func (e *Engine) GetReport(ctx context.Context, id string) (*model.Report, error) {
	return e.store.GetReport(ctx, id)
}

// UpdateStatus changes a report's status on behalf of its owner.
func (e *Engine) UpdateStatus(ctx context.Context, reportID, actorID string, status model.Status) error {
	return e.store.UpdateReportStatus(ctx, reportID, actorID, status)
}

// DeleteReport removes a report unless live claims reference it.
func (e *Engine) DeleteReport(ctx context.Context, reportID, actorID string) error {
	return e.store.DeleteReport(ctx, reportID, actorID)
}

// ItemView pairs a report with the most recent claim against it, if any.
type ItemView struct {
	Report      *model.Report
	LatestClaim *model.ClaimAttempt
}

// MyItems lists a user's reports together with the latest claim on each.
func (e *Engine) MyItems(ctx context.Context, ownerID string) ([]ItemView, error) {
	reports, err := e.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]ItemView, 0, len(reports))
	for _, r := range reports {
		view := ItemView{Report: r}
		claim, err := e.store.LatestClaim(ctx, r.ID)
		switch {
		case err == nil:
			view.LatestClaim = claim
		case !errors.Is(err, model.ErrNotFound):
			return nil, fmt.Errorf("latest claim for %s: %w", r.ID, err)
		}
		items = append(items, view)
	}
	return items, nil
}

// Dashboard returns the aggregate counters.
func (e *Engine) Dashboard(ctx context.Context) (*store.Stats, error) {
	return e.store.Dashboard(ctx)
}

// WaitBackground blocks until all in-flight background matching is done.
func (e *Engine) WaitBackground() {
	e.bg.Wait()
}

func validateReport(r *model.Report) error {
	if r == nil {
		return fmt.Errorf("%w: nil report", model.ErrValidation)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		return fmt.Errorf("%w: owner is required", model.ErrValidation)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrValidation, r.Status)
	}
	return nil
}
