package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/koba/schema-fix/internal/generator"
	"github.com/koba/schema-fix/internal/reconcile"
)

// Journal records reconciliation runs in a SQLite file
type Journal struct {
	db *sql.DB
}

// Run describes one reconciliation run
type Run struct {
	ID        int64
	StartedAt time.Time
	Reference string
	Target    string
	Mode      string
}

// Entry is one journaled statement
type Entry struct {
	Seq       int
	Table     string
	Action    generator.Action
	Statement string
	Error     string
}

// Open opens or creates the journal at path
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores a run and all of its statement results
func (j *Journal) Record(run Run, report *reconcile.Report) (int64, error) {
	tx, err := j.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO runs (started_at, reference, target, mode) VALUES (?, ?, ?, ?)",
		run.StartedAt.UTC().Format(time.RFC3339), run.Reference, run.Target, run.Mode,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO statements (run_id, seq, table_name, action, statement, error) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, result := range report.Results {
		var errText sql.NullString
		if result.Failed() {
			errText = sql.NullString{String: result.Err, Valid: true}
		}
		_, err := stmt.Exec(runID, i+1, result.Statement.Table, string(result.Statement.Action), result.Statement.Text, errText)
		if err != nil {
			return 0, fmt.Errorf("failed to insert statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return runID, nil
}

// Runs returns all journaled runs, oldest first
func (j *Journal) Runs() ([]Run, error) {
	rows, err := j.db.Query("SELECT id, started_at, reference, target, mode FROM runs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Reference, &run.Target, &run.Mode); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start time of run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Statements returns the statements of a run in execution order
func (j *Journal) Statements(runID int64) ([]Entry, error) {
	rows, err := j.db.Query("SELECT seq, table_name, action, statement, error FROM statements WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var action string
		var errText sql.NullString
		if err := rows.Scan(&entry.Seq, &entry.Table, &action, &entry.Statement, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		entry.Action = generator.Action(action)
		entry.Error = errText.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
