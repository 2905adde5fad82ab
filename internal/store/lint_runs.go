package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nomenlabs/nomen/internal/model/schema"
)

// LintRun records one pass of the check suite for later review.
type LintRun struct {
	ID         string
	Scope      string
	StartedAt  time.Time
	FinishedAt time.Time
	Checked    int
	WithIssues int
	Issues     int
	Fixed      int
}

// LintIssue is one persisted finding from a run.
type LintIssue struct {
	ID         int64
	RunID      string
	RecordKind schema.Kind
	RecordID   int64
	Issue      string
}

// CreateLintRun opens a new run over the given scope and returns it
// with a fresh id.
func (s *Store) CreateLintRun(scope string) (*LintRun, error) {
	run := &LintRun{
		ID:        uuid.NewString(),
		Scope:     scope,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO lint_runs (id, scope, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Scope, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lint run: %w", err)
	}
	return run, nil
}

// RecordLintIssue persists one finding against a run.
func (s *Store) RecordLintIssue(runID string, kind schema.Kind, recordID int64, issue string) error {
	_, err := s.db.Exec(
		`INSERT INTO lint_issues (run_id, record_kind, record_id, issue) VALUES (?, ?, ?, ?)`,
		runID, string(kind), recordID, issue,
	)
	if err != nil {
		return fmt.Errorf("failed to record lint issue: %w", err)
	}
	return nil
}

// FinishLintRun stamps the run with its end time and counters.
func (s *Store) FinishLintRun(run *LintRun) error {
	run.FinishedAt = time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE lint_runs SET finished_at = ?, checked = ?, with_issues = ?, issues = ?,
			fixed = ? WHERE id = ?`,
		run.FinishedAt, run.Checked, run.WithIssues, run.Issues, run.Fixed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish lint run: %w", err)
	}
	return nil
}

// ListLintRuns returns recent runs, newest first. Unfinished runs keep
// a zero FinishedAt.
func (s *Store) ListLintRuns(limit int) ([]*LintRun, error) {
	query := `SELECT id, scope, started_at, finished_at, checked, with_issues, issues, fixed
		FROM lint_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lint runs: %w", err)
	}
	defer rows.Close()

	var runs []*LintRun
	for rows.Next() {
		run := &LintRun{}
		var finished sql.NullTime
		if err := rows.Scan(&run.ID, &run.Scope, &run.StartedAt, &finished,
			&run.Checked, &run.WithIssues, &run.Issues, &run.Fixed); err != nil {
			return nil, fmt.Errorf("failed to scan lint run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LintIssuesByRun returns the findings persisted for a run.
func (s *Store) LintIssuesByRun(runID string) ([]*LintIssue, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, record_kind, record_id, issue FROM lint_issues
		 WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lint issues: %w", err)
	}
	defer rows.Close()

	var issues []*LintIssue
	for rows.Next() {
		li := &LintIssue{}
		var kind string
		if err := rows.Scan(&li.ID, &li.RunID, &kind, &li.RecordID, &li.Issue); err != nil {
			return nil, fmt.Errorf("failed to scan lint issue: %w", err)
		}
		li.RecordKind = schema.Kind(kind)
		issues = append(issues, li)
	}
	return issues, rows.Err()
}
