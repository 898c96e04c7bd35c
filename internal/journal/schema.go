package journal

import "database/sql"

const (
	// SQLite schema for storing run journals
	createRunsTable = `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			reference TEXT NOT NULL,
			target TEXT NOT NULL,
			mode TEXT NOT NULL
		);
	`

	createStatementsTable = `
		CREATE TABLE IF NOT EXISTS statements (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			table_name TEXT NOT NULL,
			action TEXT NOT NULL,
			statement TEXT NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, seq)
		);
	`
)

func initializeSchema(db *sql.DB) error {
	for _, stmt := range []string{createRunsTable, createStatementsTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
