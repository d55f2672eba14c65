package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/the-notes-must-flow/internal/model"
)

// RelocationRecord is a journaled relocation.
type RelocationRecord struct {
	MovedAt        *time.Time
	File           string
	Folder         string
	Destination    string
	Source         string
	ClassifyReason string
	Error          string
	RunID          int64
}

// StartRun inserts a run row and returns its id.
func (s *SQLiteStorage) StartRun(ctx context.Context, info model.RunInfo) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, root, classifier, dry_run)
		VALUES (?, ?, ?, ?)`,
		info.StartedAt, info.Root, info.Classifier, info.DryRun)
	if err != nil {
		return 0, fmt.Errorf("failed to start run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// RecordRelocation journals one relocation attempt.
func (s *SQLiteStorage) RecordRelocation(ctx context.Context, runID int64, rel model.Relocation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}

	var movedAt sql.NullTime
	if !rel.MovedAt.IsZero() {
		movedAt = sql.NullTime{Time: rel.MovedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relocations (run_id, file, folder, destination, source, classify_reason, error, moved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rel.File, rel.Folder, rel.Destination, string(rel.Source),
		rel.ClassifyReason, errString(rel.Err), movedAt)
	if err != nil {
		return fmt.Errorf("failed to record relocation of %s: %w", rel.File, err)
	}
	return nil
}

// RecordSync journals the synchronization outcome of a run.
func (s *SQLiteStorage) RecordSync(ctx context.Context, runID int64, report model.SyncReport) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_results (run_id, step, clean, committed, pushed, message, output, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, string(report.Step), report.Clean, report.Committed, report.Pushed,
		report.Message, report.Output, errString(report.Err))
	if err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}
	return nil
}

// FinishRun stores the run's totals.
func (s *SQLiteStorage) FinishRun(ctx context.Context, runID int64, summary model.RunSummary) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunID(runID); err != nil {
		return err
	}

	finished := summary.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, scanned = ?, moved = ?, failed = ?, interrupted = ?
		WHERE id = ?`,
		finished, summary.Scanned, summary.Moved, summary.Failed, summary.Interrupted, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRun, runID)
	}
	return nil
}

// RecentRelocations returns the newest relocations first.
func (s *SQLiteStorage) RecentRelocations(ctx context.Context, limit int) ([]RelocationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, file, folder, COALESCE(destination, ''), source,
		       COALESCE(classify_reason, ''), COALESCE(error, ''), moved_at
		FROM relocations
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query relocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []RelocationRecord
	for rows.Next() {
		var (
			rec     RelocationRecord
			movedAt sql.NullTime
		)
		if err := rows.Scan(&rec.RunID, &rec.File, &rec.Folder, &rec.Destination, &rec.Source,
			&rec.ClassifyReason, &rec.Error, &movedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relocation: %w", err)
		}
		if movedAt.Valid {
			t := movedAt.Time
			rec.MovedAt = &t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
