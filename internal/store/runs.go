package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

// SaveRun archives a run and its results in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *domain.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source_dir, started_at, finished_at, total_posts)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(), run.SourceDir,
		run.StartedAt.UTC(), run.FinishedAt.UTC(), run.TotalPosts)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	for i, res := range run.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_results (run_id, position, name, rating, raw_score, post_count)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID.String(), i, res.Name, res.Rating, res.RawScore, res.PostCount)
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", res.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun loads a run by id. Returns domain.ErrRunNotFound when absent.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_dir, started_at, finished_at, total_posts
		 FROM runs WHERE id = ?`, id.String())

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	if err := s.loadResults(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// LatestRun loads the most recently started run.
// Returns domain.ErrNoRuns on an empty archive.
func (s *Store) LatestRun(ctx context.Context) (*domain.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_dir, started_at, finished_at, total_posts
		 FROM runs ORDER BY started_at DESC LIMIT 1`)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}

	if err := s.loadResults(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first, with results attached.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_dir, started_at, finished_at, total_posts
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		if err := s.loadResults(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// PruneRuns deletes runs started before the cutoff and returns how many
// were removed.
func (s *Store) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM run_results WHERE run_id IN
		 (SELECT id FROM runs WHERE started_at < ?)`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune run results: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}
	return pruned, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var id string
	if err := row.Scan(&id, &run.SourceDir, &run.StartedAt, &run.FinishedAt, &run.TotalPosts); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.ID = parsed
	return &run, nil
}

func (s *Store) loadResults(ctx context.Context, run *domain.Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, rating, raw_score, post_count
		 FROM run_results WHERE run_id = ? ORDER BY position`, run.ID.String())
	if err != nil {
		return fmt.Errorf("failed to load results for run %s: %w", run.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var res domain.ContestantResult
		if err := rows.Scan(&res.Name, &res.Rating, &res.RawScore, &res.PostCount); err != nil {
			return fmt.Errorf("failed to scan result for run %s: %w", run.ID, err)
		}
		run.Results = append(run.Results, res)
	}
	return rows.Err()
}
