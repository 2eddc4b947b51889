package claims

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name    string
		report  model.Report
		wantErr error
	}{
		{
			name:   "found and unclaimed",
			report: model.Report{ID: "r", Status: model.StatusFound, OwnerID: "finder"},
		},
		{
			name:    "lost report cannot be claimed",
			report:  model.Report{ID: "r", Status: model.StatusLost, OwnerID: "finder"},
			wantErr: model.ErrPrecondition,
		},
		{
			name:    "already claimed",
			report:  model.Report{ID: "r", Status: model.StatusFound, Claimed: true, OwnerID: "finder"},
			wantErr: model.ErrPrecondition,
		},
		{
			name:    "closed report",
			report:  model.Report{ID: "r", Status: model.StatusClaimed, Claimed: true, OwnerID: "finder"},
			wantErr: model.ErrPrecondition,
		},
		{
			name:    "own report",
			report:  model.Report{ID: "r", Status: model.StatusFound, OwnerID: "claimant"},
			wantErr: model.ErrPrecondition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSubmit(&tt.report, "claimant")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestCanDecide(t *testing.T) {
	report := model.Report{ID: "r", Status: model.StatusFound, OwnerID: "finder"}
	pending := model.ClaimAttempt{ID: "c", ReportID: "r", Status: model.ClaimPending}

	t.Run("owner decides pending claim", func(t *testing.T) {
		assert.NoError(t, CanDecide(&report, &pending, "finder"))
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		err := CanDecide(&report, &pending, "stranger")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrUnauthorized))
	})

	t.Run("claim for another report", func(t *testing.T) {
		other := pending
		other.ReportID = "different"
		err := CanDecide(&report, &other, "finder")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrPrecondition))
	})

	t.Run("terminal claim cannot move", func(t *testing.T) {
		for _, status := range []model.ClaimStatus{model.ClaimApproved, model.ClaimRejected} {
			done := pending
			done.Status = status
			err := CanDecide(&report, &done, "finder")
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrPrecondition))
		}
	})
}

func TestApplyApproval(t *testing.T) {
	report := model.Report{ID: "r", Status: model.StatusFound, OwnerID: "finder"}
	claim := model.ClaimAttempt{ID: "c", ReportID: "r", Status: model.ClaimPending}

	ApplyApproval(&report, &claim)

	assert.Equal(t, model.ClaimApproved, claim.Status)
	assert.Equal(t, model.StatusClaimed, report.Status)
	assert.True(t, report.Claimed)

	// A second approval attempt now fails the precondition and leaves
	// both records as they are.
	err := CanDecide(&report, &claim, "finder")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPrecondition))
	assert.Equal(t, model.ClaimApproved, claim.Status)
	assert.Equal(t, model.StatusClaimed, report.Status)
}

func TestApplyRejection(t *testing.T) {
	report := model.Report{ID: "r", Status: model.StatusFound, OwnerID: "finder"}
	claim := model.ClaimAttempt{ID: "c", ReportID: "r", Status: model.ClaimPending}

	ApplyRejection(&claim)

	assert.Equal(t, model.ClaimRejected, claim.Status)
	// The report stays open for other claimants.
	assert.Equal(t, model.StatusFound, report.Status)
	assert.False(t, report.Claimed)
}
