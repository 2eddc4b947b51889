package engine

import (
	"context"

	"github.com/naveenkumar-devtech/refind/internal/claims"
	"github.com/naveenkumar-devtech/refind/internal/model"
)

// SubmitClaim scores a claim note against the report's private note and
// records the attempt as pending. The score is advisory; the owner still
// decides.
func (e *Engine) SubmitClaim(ctx context.Context, reportID, claimantID, note string) (*model.ClaimAttempt, error) {
	report, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := claims.CanSubmit(report, claimantID); err != nil {
		return nil, err
	}
	score, err := e.verifier.NoteScore(note, report.PrivateNote)
	if err != nil {
		return nil, err
	}

	claim := &model.ClaimAttempt{
		ReportID:   report.ID,
		ClaimantID: claimantID,
		Note:       note,
		Score:      score,
	}
	if err := e.store.CreateClaim(ctx, claim); err != nil {
		return nil, err
	}

	if err := e.notifier.NotifyClaimSubmitted(ctx, report.OwnerID, report.Title, score); err != nil {
		e.log.Warn("claim notification failed", "user", report.OwnerID, "error", err)
	}
	e.log.Info("claim submitted", "report", report.ID, "claim", claim.ID, "score", score)
	return claim, nil
}

// ApproveClaim approves a pending claim on behalf of the report owner,
// closing the report and settling any rival pending claims.
func (e *Engine) ApproveClaim(ctx context.Context, reportID, claimID, actorID string) error {
	report, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	// Snapshot rivals before the transaction settles them, so the
	// rejected claimants can still be told.
	pending, err := e.pendingRivals(ctx, reportID, claimID)
	if err != nil {
		return err
	}

	if err := e.store.ApproveClaim(ctx, reportID, claimID, actorID); err != nil {
		return err
	}

	winner, err := e.store.GetClaim(ctx, claimID)
	if err == nil {
		if nerr := e.notifier.NotifyClaimDecided(ctx, winner.ClaimantID, report.Title, model.ClaimApproved); nerr != nil {
			e.log.Warn("claim notification failed", "user", winner.ClaimantID, "error", nerr)
		}
	}
	for _, rival := range pending {
		if nerr := e.notifier.NotifyClaimDecided(ctx, rival.ClaimantID, report.Title, model.ClaimRejected); nerr != nil {
			e.log.Warn("claim notification failed", "user", rival.ClaimantID, "error", nerr)
		}
	}
	e.log.Info("claim approved", "report", reportID, "claim", claimID, "rivals_rejected", len(pending))
	return nil
}

// RejectClaim rejects a pending claim on behalf of the report owner. The
// report stays open for other claimants.
func (e *Engine) RejectClaim(ctx context.Context, reportID, claimID, actorID string) error {
	report, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if err := e.store.RejectClaim(ctx, reportID, claimID, actorID); err != nil {
		return err
	}
	claim, err := e.store.GetClaim(ctx, claimID)
	if err == nil {
		if nerr := e.notifier.NotifyClaimDecided(ctx, claim.ClaimantID, report.Title, model.ClaimRejected); nerr != nil {
			e.log.Warn("claim notification failed", "user", claim.ClaimantID, "error", nerr)
		}
	}
	e.log.Info("claim rejected", "report", reportID, "claim", claimID)
	return nil
}

// ClaimsFor lists all claim attempts against a report, owner only.
func (e *Engine) ClaimsFor(ctx context.Context, reportID, actorID string) ([]*model.ClaimAttempt, error) {
	report, err := e.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerID != actorID {
		return nil, model.ErrUnauthorized
	}
	return e.store.ListClaimsForReport(ctx, reportID)
}

// MyClaims lists the claims a user has submitted.
func (e *Engine) MyClaims(ctx context.Context, claimantID string) ([]*model.ClaimAttempt, error) {
	return e.store.ListClaimsByClaimant(ctx, claimantID)
}

func (e *Engine) pendingRivals(ctx context.Context, reportID, claimID string) ([]*model.ClaimAttempt, error) {
	all, err := e.store.ListClaimsForReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	var rivals []*model.ClaimAttempt
	for _, c := range all {
		if c.ID != claimID && c.Status == model.ClaimPending {
			rivals = append(rivals, c)
		}
	}
	return rivals, nil
}
