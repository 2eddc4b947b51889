package claims

import (
	"fmt"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// The claim lifecycle is pending -> approved | rejected, both terminal.
// These checks are the single source of truth for transition
// preconditions; the store re-applies the pending check inside its
// transaction so concurrent approvals cannot both pass.

// CanSubmit reports whether a claim may be submitted against the report:
// the item must be found and not yet claimed, and claiming your own
// report makes no sense.
func CanSubmit(report *model.Report, claimantID string) error {
	if report.Status != model.StatusFound || !report.Open() {
		return fmt.Errorf("report %s is not available for claim: %w", report.ID, model.ErrPrecondition)
	}
	if report.OwnerID == claimantID {
		return fmt.Errorf("cannot claim your own report: %w", model.ErrPrecondition)
	}
	return nil
}

// CanDecide reports whether actorID may approve or reject the claim: only
// the report owner decides, only pending claims move, and the claim must
// belong to the report.
func CanDecide(report *model.Report, claim *model.ClaimAttempt, actorID string) error {
	if report.OwnerID != actorID {
		return fmt.Errorf("only the report owner may decide claims: %w", model.ErrUnauthorized)
	}
	if claim.ReportID != report.ID {
		return fmt.Errorf("claim %s does not belong to report %s: %w", claim.ID, report.ID, model.ErrPrecondition)
	}
	if claim.Status != model.ClaimPending {
		return fmt.Errorf("claim %s is already %s: %w", claim.ID, claim.Status, model.ErrPrecondition)
	}
	return nil
}

// ApplyApproval mutates the pair for an approval: the claim becomes
// approved and the report closes as claimed. Callers persist both records
// atomically or not at all.
func ApplyApproval(report *model.Report, claim *model.ClaimAttempt) {
	claim.Status = model.ClaimApproved
	report.Claimed = true
	report.Status = model.StatusClaimed
}

// ApplyRejection mutates only the claim; the report stays open for other
// claimants.
func ApplyRejection(claim *model.ClaimAttempt) {
	claim.Status = model.ClaimRejected
}
