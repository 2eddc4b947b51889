package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naveenkumar-devtech/refind/internal/model"
)

// CreateReport inserts a new report, assigning an ID and creation time
// when they are unset.
func (s *Store) CreateReport(ctx context.Context, r *model.Report) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if !r.Status.Valid() {
		return fmt.Errorf("invalid status %q: %w", r.Status, model.ErrValidation)
	}
	r.Claimed = r.Status == model.StatusClaimed

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (id, title, description, location, status, claimed, private_note, owner_id, image_ref, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, r.Location, string(r.Status), boolToInt(r.Claimed),
		r.PrivateNote, r.OwnerID, r.ImageRef, r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport fetches a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (*model.Report, error) {
	row := s.db.QueryRowContext(ctx, selectReport+` WHERE id = ?`, id)
	return scanReport(row)
}

// ListByOwner returns the owner's reports, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]*model.Report, error) {
	return s.queryReports(ctx, selectReport+` WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
}

// FindEligible returns the candidate pool for matching: reports with the
// given status that are not claimed, excluding excludeID. This is the
// snapshot a background matching pass ranks against.
func (s *Store) FindEligible(ctx context.Context, status model.Status, excludeID string) ([]*model.Report, error) {
	return s.queryReports(ctx,
		selectReport+` WHERE status = ? AND claimed = 0 AND id != ? ORDER BY id`,
		string(status), excludeID,
	)
}

// ListOpen returns unclaimed reports of the given status, newest first,
// capped at limit.
func (s *Store) ListOpen(ctx context.Context, status model.Status, limit int) ([]*model.Report, error) {
	return s.queryReports(ctx,
		selectReport+` WHERE status = ? AND claimed = 0 ORDER BY created_at DESC LIMIT ?`,
		string(status), limit,
	)
}

// UpdateReportStatus applies a direct owner edit of the report status.
// Setting status to claimed also sets the claimed flag, independent of
// any claim attempt.
func (s *Store) UpdateReportStatus(ctx context.Context, id, actorID string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q: %w", status, model.ErrValidation)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		report, err := getReportTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if report.OwnerID != actorID {
			return fmt.Errorf("report %s: %w", id, model.ErrUnauthorized)
		}

		claimed := report.Claimed
		if status == model.StatusClaimed {
			claimed = true
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE reports SET status = ?, claimed = ? WHERE id = ?`,
			string(status), boolToInt(claimed), id,
		); err != nil {
			return fmt.Errorf("update report status: %w", err)
		}
		return nil
	})
}

// DeleteReport removes an owner's report. A report referenced by a live
// (pending or approved) claim is never hard-deleted.
func (s *Store) DeleteReport(ctx context.Context, id, actorID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		report, err := getReportTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if report.OwnerID != actorID {
			return fmt.Errorf("report %s: %w", id, model.ErrUnauthorized)
		}

		var live int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM claim_attempts WHERE report_id = ? AND status IN (?, ?)`,
			id, string(model.ClaimPending), string(model.ClaimApproved),
		).Scan(&live)
		if err != nil {
			return fmt.Errorf("count live claims: %w", err)
		}
		if live > 0 {
			return fmt.Errorf("report %s has live claims: %w", id, model.ErrPrecondition)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM claim_attempts WHERE report_id = ?`, id); err != nil {
			return fmt.Errorf("delete claims: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		return nil
	})
}

const selectReport = `SELECT id, title, description, location, status, claimed, private_note, owner_id, image_ref, created_at FROM reports`

func (s *Store) queryReports(ctx context.Context, query string, args ...any) ([]*model.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []*model.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.Report, error) {
	var r model.Report
	var status, createdAt string
	var claimed int
	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Location, &status, &claimed,
		&r.PrivateNote, &r.OwnerID, &r.ImageRef, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}
	r.Status = model.Status(status)
	r.Claimed = claimed != 0
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse report timestamp: %w", err)
	}
	return &r, nil
}

func getReportTx(ctx context.Context, tx *sql.Tx, id string) (*model.Report, error) {
	return scanReport(tx.QueryRowContext(ctx, selectReport+` WHERE id = ?`, id))
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
