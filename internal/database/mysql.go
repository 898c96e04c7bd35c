package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/koba/schema-fix/internal/schema"
)

// Session is one exclusive connection to a MySQL or MariaDB server
type Session struct {
	config Config
	db     *sql.DB
	conn   *sql.Conn
}

// Open connects to the server and reserves a single connection for the
// lifetime of the session
func Open(ctx context.Context, config Config) (*Session, error) {
	db, err := sql.Open("mysql", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL at %s: %w", config, err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire connection to %s: %w", config, err)
	}

	return &Session{config: config, db: db, conn: conn}, nil
}

// Schema returns the database named in the connection configuration
func (s *Session) Schema() string {
	return s.config.Database
}

// Close releases the connection
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// TableNames retrieves the base tables of a schema
func (s *Session) TableNames(ctx context.Context, schemaName string) ([]string, error) {
	query := `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`
	rows, err := s.conn.QueryContext(ctx, query, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables for %s: %w", schemaName, err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("failed to scan table name in %s: %w", schemaName, err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get tables for %s: %w", schemaName, err)
	}
	return tables, nil
}

type columnRow struct {
	name      string
	datatype  string
	isNumeric bool
	def       sql.NullString
	nullable  bool
	extra     sql.NullString
}

// Columns retrieves the columns of a table in ordinal position order
func (s *Session) Columns(ctx context.Context, schemaName, table string) (schema.Ordered[schema.Column], error) {
	var columns schema.Ordered[schema.Column]
	target := schema.Qualify(schemaName, table)

	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			NUMERIC_PRECISION IS NOT NULL,
			COLUMN_DEFAULT,
			IS_NULLABLE = 'YES',
			EXTRA
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`
	rows, err := s.conn.QueryContext(ctx, query, schemaName, table)
	if err != nil {
		return columns, fmt.Errorf("failed to get columns for %s: %w", target, err)
	}
	defer rows.Close()

	for rows.Next() {
		var row columnRow
		if err := rows.Scan(&row.name, &row.datatype, &row.isNumeric, &row.def, &row.nullable, &row.extra); err != nil {
			return columns, fmt.Errorf("failed to scan column of %s: %w", target, err)
		}
		columns.Set(row.name, columnFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return columns, fmt.Errorf("failed to get columns for %s: %w", target, err)
	}
	return columns, nil
}

func columnFromRow(row columnRow) schema.Column {
	var def *string
	if row.def.Valid {
		def = &row.def.String
	}
	return schema.NewColumn(row.datatype, row.isNumeric, def, row.nullable, normalizeExtra(row.extra))
}

// normalizeExtra drops the DEFAULT_GENERATED marker MySQL 8 adds to
// expression defaults. It cannot be used in a definition.
func normalizeExtra(extra sql.NullString) *string {
	if !extra.Valid {
		return nil
	}
	v := strings.TrimSpace(strings.ReplaceAll(extra.String, "DEFAULT_GENERATED", ""))
	if v == "" {
		return nil
	}
	return &v
}

type indexRow struct {
	name      string
	column    sql.NullString
	nonUnique bool
}

// Indexes retrieves the indexes of a table, one entry per index name
func (s *Session) Indexes(ctx context.Context, schemaName, table string) (schema.Ordered[schema.TableIndex], error) {
	target := schema.Qualify(schemaName, table)

	query := `
		SELECT
			INDEX_NAME,
			COLUMN_NAME,
			NON_UNIQUE
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY INDEX_NAME, SEQ_IN_INDEX
	`
	rows, err := s.conn.QueryContext(ctx, query, schemaName, table)
	if err != nil {
		return schema.Ordered[schema.TableIndex]{}, fmt.Errorf("failed to get indexes for %s: %w", target, err)
	}
	defer rows.Close()

	var indexRows []indexRow
	for rows.Next() {
		var row indexRow
		if err := rows.Scan(&row.name, &row.column, &row.nonUnique); err != nil {
			return schema.Ordered[schema.TableIndex]{}, fmt.Errorf("failed to scan index of %s: %w", target, err)
		}
		indexRows = append(indexRows, row)
	}
	if err := rows.Err(); err != nil {
		return schema.Ordered[schema.TableIndex]{}, fmt.Errorf("failed to get indexes for %s: %w", target, err)
	}
	return groupIndexes(indexRows), nil
}

// groupIndexes folds per-column membership rows into one index per name.
// Functional index parts have no column name and are skipped.
func groupIndexes(rows []indexRow) schema.Ordered[schema.TableIndex] {
	type group struct {
		columns []string
		unique  bool
	}
	var names []string
	groups := make(map[string]*group)

	for _, row := range rows {
		g, exists := groups[row.name]
		if !exists {
			g = &group{unique: !row.nonUnique}
			groups[row.name] = g
			names = append(names, row.name)
		}
		if row.column.Valid {
			g.columns = append(g.columns, row.column.String)
		}
	}

	var indexes schema.Ordered[schema.TableIndex]
	for _, name := range names {
		g := groups[name]
		if len(g.columns) == 0 {
			continue
		}
		indexes.Set(name, schema.NewTableIndex(strings.Join(g.columns, ","), g.unique, name == schema.PrimaryIndexName))
	}
	return indexes
}

// CreateStatement returns the table creation text with line breaks removed
func (s *Session) CreateStatement(ctx context.Context, schemaName, table string) (string, error) {
	query := fmt.Sprintf("SHOW CREATE TABLE %s.%s", quoteIdentifier(schemaName), quoteIdentifier(table))

	var name, text string
	if err := s.conn.QueryRowContext(ctx, query).Scan(&name, &text); err != nil {
		return "", fmt.Errorf("failed to get create statement for %s: %w", schema.Qualify(schemaName, table), err)
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(text), nil
}

// Exec runs one corrective statement
func (s *Session) Exec(ctx context.Context, statement string) error {
	_, err := s.conn.ExecContext(ctx, statement)
	return err
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
