package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naveenkumar-devtech/refind/internal/claims"
	"github.com/naveenkumar-devtech/refind/internal/model"
)

// CreateClaim inserts a new claim attempt, assigning an ID and creation
// time when they are unset.
func (s *Store) CreateClaim(ctx context.Context, c *model.ClaimAttempt) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Status == "" {
		c.Status = model.ClaimPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO claim_attempts (id, report_id, claimant_id, note, score, status, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ReportID, c.ClaimantID, c.Note, c.Score, string(c.Status),
		c.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// GetClaim fetches a claim by ID.
func (s *Store) GetClaim(ctx context.Context, id string) (*model.ClaimAttempt, error) {
	row := s.db.QueryRowContext(ctx, selectClaim+` WHERE id = ?`, id)
	return scanClaim(row)
}

// ListClaimsByClaimant returns all claims a user has made, newest first.
func (s *Store) ListClaimsByClaimant(ctx context.Context, claimantID string) ([]*model.ClaimAttempt, error) {
	return s.queryClaims(ctx, selectClaim+` WHERE claimant_id = ? ORDER BY created_at DESC`, claimantID)
}

// ListClaimsForReport returns all claims against a report, newest first.
func (s *Store) ListClaimsForReport(ctx context.Context, reportID string) ([]*model.ClaimAttempt, error) {
	return s.queryClaims(ctx, selectClaim+` WHERE report_id = ? ORDER BY created_at DESC`, reportID)
}

// LatestClaim returns the most recent claim attempt on a report, the
// projection an owner sees when reviewing. model.ErrNotFound means no
// claim has been made.
func (s *Store) LatestClaim(ctx context.Context, reportID string) (*model.ClaimAttempt, error) {
	row := s.db.QueryRowContext(ctx,
		selectClaim+` WHERE report_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, reportID)
	return scanClaim(row)
}

// ApproveClaim approves a pending claim and closes the report, both in one
// transaction: the claim update is guarded by its pending status so two
// concurrent approvals cannot both succeed. Other pending claims on the
// same report are auto-rejected in the same transaction — once ownership
// is settled there is nothing left for them to win.
func (s *Store) ApproveClaim(ctx context.Context, reportID, claimID, actorID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		report, err := getReportTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		claim, err := getClaimTx(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if err := claims.CanDecide(report, claim, actorID); err != nil {
			return err
		}
		claims.ApplyApproval(report, claim)

		res, err := tx.ExecContext(ctx,
			`UPDATE claim_attempts SET status = ? WHERE id = ? AND status = ?`,
			string(claim.Status), claimID, string(model.ClaimPending),
		)
		if err != nil {
			return fmt.Errorf("approve claim: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("approve claim: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("claim %s is no longer pending: %w", claimID, model.ErrPrecondition)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE claim_attempts SET status = ? WHERE report_id = ? AND status = ?`,
			string(model.ClaimRejected), reportID, string(model.ClaimPending),
		); err != nil {
			return fmt.Errorf("reject other claims: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE reports SET status = ?, claimed = ? WHERE id = ?`,
			string(report.Status), boolToInt(report.Claimed), reportID,
		); err != nil {
			return fmt.Errorf("close report: %w", err)
		}
		return nil
	})
}

// RejectClaim rejects a pending claim; the report stays open.
func (s *Store) RejectClaim(ctx context.Context, reportID, claimID, actorID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		report, err := getReportTx(ctx, tx, reportID)
		if err != nil {
			return err
		}
		claim, err := getClaimTx(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if err := claims.CanDecide(report, claim, actorID); err != nil {
			return err
		}
		claims.ApplyRejection(claim)

		res, err := tx.ExecContext(ctx,
			`UPDATE claim_attempts SET status = ? WHERE id = ? AND status = ?`,
			string(claim.Status), claimID, string(model.ClaimPending),
		)
		if err != nil {
			return fmt.Errorf("reject claim: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reject claim: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("claim %s is no longer pending: %w", claimID, model.ErrPrecondition)
		}
		return nil
	})
}

// Stats is the dashboard projection over reports and claims.
type Stats struct {
	TotalLost      int     `json:"total_lost"`
	TotalFound     int     `json:"total_found"`
	ApprovedClaims int     `json:"approved_claims"`
	TotalClaims    int     `json:"total_claims"`
	SuccessRatio   float64 `json:"success_ratio"`
}

// Dashboard computes the open-report and claim counters.
func (s *Store) Dashboard(ctx context.Context) (*Stats, error) {
	var stats Stats
	queries := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.TotalLost, `SELECT COUNT(*) FROM reports WHERE status = ? AND claimed = 0`, []any{string(model.StatusLost)}},
		{&stats.TotalFound, `SELECT COUNT(*) FROM reports WHERE status = ? AND claimed = 0`, []any{string(model.StatusFound)}},
		{&stats.ApprovedClaims, `SELECT COUNT(*) FROM claim_attempts WHERE status = ?`, []any{string(model.ClaimApproved)}},
		{&stats.TotalClaims, `SELECT COUNT(*) FROM claim_attempts`, nil},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("dashboard counters: %w", err)
		}
	}
	if stats.TotalClaims > 0 {
		stats.SuccessRatio = float64(stats.ApprovedClaims) / float64(stats.TotalClaims) * 100
	}
	return &stats, nil
}

const selectClaim = `SELECT id, report_id, claimant_id, note, score, status, created_at FROM claim_attempts`

func (s *Store) queryClaims(ctx context.Context, query string, args ...any) ([]*model.ClaimAttempt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*model.ClaimAttempt
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan claims: %w", err)
	}
	return result, nil
}

func scanClaim(row rowScanner) (*model.ClaimAttempt, error) {
	var c model.ClaimAttempt
	var status, createdAt string
	err := row.Scan(&c.ID, &c.ReportID, &c.ClaimantID, &c.Note, &c.Score, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("claim: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan claim: %w", err)
	}
	c.Status = model.ClaimStatus(status)
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse claim timestamp: %w", err)
	}
	return &c, nil
}

func getClaimTx(ctx context.Context, tx *sql.Tx, id string) (*model.ClaimAttempt, error) {
	return scanClaim(tx.QueryRowContext(ctx, selectClaim+` WHERE id = ?`, id))
}
