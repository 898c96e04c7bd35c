package generator

import (
	"fmt"
	"strings"

	"github.com/koba/schema-fix/internal/schema"
)

// CreateTable replays a table creation text on the target. Line breaks are
// removed and the table name is qualified with the target schema.
func CreateTable(schemaName, table, createText string) Statement {
	text := strings.NewReplacer("\r", "", "\n", "").Replace(createText)
	text = qualifyCreate(text, schemaName, table)
	if !strings.HasSuffix(strings.TrimSpace(text), ";") {
		text += ";"
	}
	return Statement{Action: ActionAdd, Table: schema.Qualify(schemaName, table), Text: text}
}

func qualifyCreate(text, schemaName, table string) string {
	const prefix = "CREATE TABLE "
	if !strings.HasPrefix(strings.ToUpper(text), prefix) {
		return text
	}
	rest := text[len(prefix):]
	for _, name := range []string{quoteIdentifier(table), table} {
		if strings.HasPrefix(rest, name) {
			return prefix + quoteIdentifier(schemaName) + "." + rest
		}
	}
	return text
}

func DropTable(schemaName, table string) Statement {
	return Statement{
		Action: ActionDrop,
		Table:  schema.Qualify(schemaName, table),
		Text:   fmt.Sprintf("DROP TABLE %s;", schema.Qualify(schemaName, table)),
	}
}

func AddColumn(table, name string, col schema.Column) Statement {
	return Statement{Action: ActionAdd, Table: table, Text: col.AddStatement(name, table)}
}

func DropColumn(table, name string) Statement {
	return Statement{
		Action: ActionDrop,
		Table:  table,
		Text:   fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, name),
	}
}

func ModifyColumn(table, name string, col schema.Column) Statement {
	return Statement{Action: ActionModify, Table: table, Text: col.ModifyStatement(name, table)}
}

// Reposition is one MODIFY ... AFTER clause of a reorder statement
type Reposition struct {
	Name   string
	After  string
	Column schema.Column
}

// ReorderColumns combines every reposition into a single ALTER TABLE
func ReorderColumns(table string, moves []Reposition) Statement {
	clauses := make([]string, len(moves))
	for i, m := range moves {
		clauses[i] = fmt.Sprintf("MODIFY %s %s AFTER %s", m.Name, m.Column.Definition(), m.After)
	}
	return Statement{
		Action: ActionModify,
		Table:  table,
		Text:   fmt.Sprintf("ALTER TABLE %s %s;", table, strings.Join(clauses, ", ")),
	}
}

func AddIndex(table, name string, idx schema.TableIndex) Statement {
	var text string
	if idx.Primary() {
		text = fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT PRIMARY KEY (%s);", table, idx.Columns())
	} else {
		unique := ""
		if idx.Unique() {
			unique = "UNIQUE "
		}
		text = fmt.Sprintf("CREATE %sINDEX %s ON %s(%s);", unique, name, table, idx.Columns())
	}
	return Statement{Action: ActionAdd, Table: table, Text: text}
}

func DropIndex(table, name string, idx schema.TableIndex) Statement {
	text := fmt.Sprintf("ALTER TABLE %s DROP INDEX %s;", table, name)
	if idx.Primary() {
		text = fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY;", table)
	}
	return Statement{Action: ActionDrop, Table: table, Text: text}
}

// ModifyIndex drops and re-adds an index using the reference column list
func ModifyIndex(table, name string, idx schema.TableIndex) Statement {
	text := fmt.Sprintf("ALTER TABLE %s DROP INDEX %s, ADD INDEX %s(%s);", table, name, name, idx.Columns())
	if idx.Primary() {
		text = fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY, ADD PRIMARY KEY(%s);", table, idx.Columns())
	}
	return Statement{Action: ActionModify, Table: table, Text: text}
}

func quoteIdentifier(name string) string {
	return fmt.Sprintf("`%s`", name)
}
