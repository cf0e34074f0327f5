package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/LTE-Care-Plus-Inc/sc-dashboard/internal/model"
)

// ErrRunNotFound is returned when a report run id does not exist.
var ErrRunNotFound = errors.New("report run not found")

// InsertRun records a completed report generation.
func (s *Store) InsertRun(run *model.ReportRun) error {
	_, err := s.db.Exec(`
		INSERT INTO report_runs
			(id, created_at, appt_filename, roster_filename, appt_rows, pivot_rows, weeks, html_path, xlsx_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.ApptFilename, run.RosterFilename,
		run.ApptRows, run.PivotRows, run.Weeks, run.HTMLPath, run.XLSXPath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report run: %w", err)
	}
	return nil
}

// GetRun fetches one report run by id.
func (s *Store) GetRun(id string) (*model.ReportRun, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, appt_filename, roster_filename, appt_rows, pivot_rows, weeks, html_path, xlsx_path
		FROM report_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report run: %w", err)
	}
	return run, nil
}

// ListRuns returns report runs newest first. limit <= 0 means no limit.
func (s *Store) ListRuns(limit int) ([]*model.ReportRun, error) {
	query := `
		SELECT id, created_at, appt_filename, roster_filename, appt_rows, pivot_rows, weeks, html_path, xlsx_path
		FROM report_runs ORDER BY created_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// DeleteRun removes one report run and returns it, so the caller can delete
// the artifacts on disk as well.
func (s *Store) DeleteRun(id string) (*model.ReportRun, error) {
	run, err := s.GetRun(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(`DELETE FROM report_runs WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete report run: %w", err)
	}
	return run, nil
}

// CountRuns returns the number of recorded runs.
func (s *Store) CountRuns() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM report_runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count report runs: %w", err)
	}
	return count, nil
}

// PruneRuns drops the oldest runs past the keep limit and returns the pruned
// rows so the caller can remove their artifacts. keep <= 0 keeps everything.
func (s *Store) PruneRuns(keep int) ([]*model.ReportRun, error) {
	if keep <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, appt_filename, roster_filename, appt_rows, pivot_rows, weeks, html_path, xlsx_path
		FROM report_runs ORDER BY created_at DESC, id DESC LIMIT -1 OFFSET ?`, keep)
	if err != nil {
		return nil, fmt.Errorf("failed to query prunable runs: %w", err)
	}
	defer rows.Close()

	var pruned []*model.ReportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		pruned = append(pruned, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range pruned {
		if _, err := s.db.Exec(`DELETE FROM report_runs WHERE id = ?`, run.ID); err != nil {
			return pruned, fmt.Errorf("failed to prune report run %s: %w", run.ID, err)
		}
	}

	return pruned, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*model.ReportRun, error) {
	run := &model.ReportRun{}
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.ApptFilename, &run.RosterFilename,
		&run.ApptRows, &run.PivotRows, &run.Weeks, &run.HTMLPath, &run.XLSXPath,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}
