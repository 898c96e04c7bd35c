package diff

import (
	"slices"

	"github.com/koba/schema-fix/internal/generator"
	"github.com/koba/schema-fix/internal/schema"
)

// Comparison is the input of every stage for a table present on both sides
type Comparison struct {
	// Table is the qualified target table used in generated statements
	Table     string
	Reference *schema.Table
	Target    *schema.Table
	Gates     Gates
}

// Stage is one step of the per-table comparison. Columns and Indexes tell
// the caller which metadata the stage reads.
type Stage struct {
	Name    string
	Columns bool
	Indexes bool
	Compare func(c Comparison) []generator.Statement
}

// Stages are run in this order for each shared table
var Stages = []Stage{
	{Name: "column existence", Columns: true, Compare: ColumnExistence},
	{Name: "column values", Columns: true, Compare: ColumnValues},
	{Name: "column order", Columns: true, Compare: ColumnOrder},
	{Name: "index existence", Indexes: true, Compare: IndexExistence},
	{Name: "index values", Indexes: true, Compare: IndexValues},
}

// CompareTable runs all stages against a single pair of snapshots
func CompareTable(c Comparison) []generator.Statement {
	var statements []generator.Statement
	for _, stage := range Stages {
		statements = append(statements, stage.Compare(c)...)
	}
	return statements
}

// ColumnExistence adds reference-only columns and drops target-only ones
func ColumnExistence(c Comparison) []generator.Statement {
	var statements []generator.Statement
	if c.Gates.Additive {
		for _, name := range schema.Missing(&c.Reference.Columns, &c.Target.Columns) {
			col, _ := c.Reference.Columns.Get(name)
			statements = append(statements, generator.AddColumn(c.Table, name, col))
		}
	}
	if c.Gates.Destructive {
		for _, name := range schema.Missing(&c.Target.Columns, &c.Reference.Columns) {
			statements = append(statements, generator.DropColumn(c.Table, name))
		}
	}
	return statements
}

// ColumnValues modifies shared columns whose definition differs. It is not
// gated: a modification is neither additive nor destructive.
func ColumnValues(c Comparison) []generator.Statement {
	var statements []generator.Statement
	for _, name := range c.Reference.Columns.Names() {
		refCol, _ := c.Reference.Columns.Get(name)
		targetCol, ok := c.Target.Columns.Get(name)
		if !ok || refCol.Equal(targetCol) {
			continue
		}
		statements = append(statements, generator.ModifyColumn(c.Table, name, refCol))
	}
	return statements
}

// ColumnOrder moves target columns so that each follows its reference
// predecessor. The first reference column cannot be anchored and is never
// moved. Clause bodies use the target's own definitions.
func ColumnOrder(c Comparison) []generator.Statement {
	refOrder := c.Reference.Columns.Order()
	if slices.Equal(refOrder, c.Target.Columns.Order()) {
		return nil
	}

	var moves []generator.Reposition
	for _, p := range refOrder {
		col, ok := c.Target.Columns.Get(p.Name)
		if !ok {
			continue
		}
		moves = append(moves, generator.Reposition{Name: p.Name, After: p.After, Column: col})
	}
	if len(moves) == 0 {
		return nil
	}
	return []generator.Statement{generator.ReorderColumns(c.Table, moves)}
}

// IndexExistence adds reference-only indexes and drops target-only ones
func IndexExistence(c Comparison) []generator.Statement {
	var statements []generator.Statement
	if c.Gates.Additive {
		for _, name := range schema.Missing(&c.Reference.Indexes, &c.Target.Indexes) {
			idx, _ := c.Reference.Indexes.Get(name)
			statements = append(statements, generator.AddIndex(c.Table, name, idx))
		}
	}
	if c.Gates.Destructive {
		for _, name := range schema.Missing(&c.Target.Indexes, &c.Reference.Indexes) {
			idx, _ := c.Target.Indexes.Get(name)
			statements = append(statements, generator.DropIndex(c.Table, name, idx))
		}
	}
	return statements
}

// IndexValues rebuilds shared indexes whose definition differs
func IndexValues(c Comparison) []generator.Statement {
	var statements []generator.Statement
	for _, name := range c.Reference.Indexes.Names() {
		refIdx, _ := c.Reference.Indexes.Get(name)
		targetIdx, ok := c.Target.Indexes.Get(name)
		if !ok || refIdx.Equal(targetIdx) {
			continue
		}
		statements = append(statements, generator.ModifyIndex(c.Table, name, refIdx))
	}
	return statements
}
