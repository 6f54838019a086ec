package database

import (
	"time"
)

// Run is a persisted summary of one completed analysis.
type Run struct {
	ID                  string    `json:"id"`
	Filename            string    `json:"filename"`
	Sequences           int       `json:"sequences"`
	TotalCandidates     int       `json:"total_candidates"`
	QualifiedCandidates int       `json:"qualified_candidates"`
	TopEfficiency       float64   `json:"top_efficiency"`
	DurationMS          int64     `json:"duration_ms"`
	CreatedAt           time.Time `json:"created_at"`
}

// Repository provides access to persisted runs.
type Repository struct {
	db *DB
}

// NewRepository creates a new run repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// InsertRun records a completed analysis.
func (r *Repository) InsertRun(run Run) error {
	_, err := r.db.Exec(
		`INSERT INTO analysis_runs (
			id, filename, sequences, total_candidates, qualified_candidates,
			top_efficiency, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Filename, run.Sequences, run.TotalCandidates,
		run.QualifiedCandidates, run.TopEfficiency, run.DurationMS, run.CreatedAt,
	)
	return err
}

// RecentRuns returns the most recent runs, newest first.
func (r *Repository) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, filename, sequences, total_candidates, qualified_candidates,
			top_efficiency, duration_ms, created_at
		FROM analysis_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.Filename, &run.Sequences, &run.TotalCandidates,
			&run.QualifiedCandidates, &run.TopEfficiency, &run.DurationMS, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
