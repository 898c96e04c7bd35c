package diff

import (
	"strings"
	"testing"

	"github.com/koba/schema-fix/internal/generator"
	"github.com/koba/schema-fix/internal/schema"
)

func intColumn() schema.Column {
	return schema.NewColumn("int(11)", true, nil, false, nil)
}

func newTable(columns ...string) *schema.Table {
	tbl := schema.NewTable("t")
	for _, name := range columns {
		tbl.Columns.Set(name, intColumn())
	}
	return tbl
}

func comparison(ref, target *schema.Table, gates Gates) Comparison {
	return Comparison{Table: "fix.t", Reference: ref, Target: target, Gates: gates}
}

func countContaining(statements []generator.Statement, substr string) int {
	n := 0
	for _, s := range statements {
		if strings.Contains(s.Text, substr) {
			n++
		}
	}
	return n
}

func TestIdenticalTablesProduceNothing(t *testing.T) {
	ref := newTable("id", "name", "created_at")
	ref.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id", true, true))
	ref.Indexes.Set("ix_name", schema.NewTableIndex("name,created_at", false, false))

	target := newTable("id", "name", "created_at")
	target.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id", true, true))
	target.Indexes.Set("ix_name", schema.NewTableIndex("created_at, name", false, false))

	got := CompareTable(comparison(ref, target, ModeBoth.Gates()))
	if len(got) != 0 {
		t.Errorf("expected no statements, got %v", got)
	}
}

func TestColumnExistence(t *testing.T) {
	ref := newTable("id", "foo")
	target := newTable("id", "bar")

	t.Run("additive", func(t *testing.T) {
		got := ColumnExistence(comparison(ref, target, ModeAdditive.Gates()))
		if len(got) != 1 {
			t.Fatalf("expected 1 statement, got %v", got)
		}
		if want := "ALTER TABLE fix.t ADD COLUMN foo int(11) NOT NULL;"; got[0].Text != want {
			t.Errorf("expected %q, got %q", want, got[0].Text)
		}
	})

	t.Run("destructive", func(t *testing.T) {
		got := ColumnExistence(comparison(ref, target, ModeDestructive.Gates()))
		if len(got) != 1 {
			t.Fatalf("expected 1 statement, got %v", got)
		}
		if want := "ALTER TABLE fix.t DROP COLUMN bar;"; got[0].Text != want {
			t.Errorf("expected %q, got %q", want, got[0].Text)
		}
	})

	t.Run("both", func(t *testing.T) {
		got := ColumnExistence(comparison(ref, target, ModeBoth.Gates()))
		if countContaining(got, "ADD COLUMN foo") != 1 || countContaining(got, "DROP COLUMN bar") != 1 {
			t.Errorf("expected one add and one drop, got %v", got)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		if got := ColumnExistence(comparison(ref, target, Gates{})); len(got) != 0 {
			t.Errorf("expected no statements, got %v", got)
		}
	})
}

func TestColumnValuesIgnoresGates(t *testing.T) {
	ref := newTable("id")
	ref.Columns.Set("name", schema.NewColumn("varchar(64)", false, nil, true, nil))
	target := newTable("id")
	target.Columns.Set("name", schema.NewColumn("varchar(32)", false, nil, true, nil))

	got := ColumnValues(comparison(ref, target, Gates{}))
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %v", got)
	}
	if want := "ALTER TABLE fix.t MODIFY name varchar(64) DEFAULT NULL;"; got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
	if got[0].Action != generator.ActionModify {
		t.Errorf("expected MODIFY action, got %s", got[0].Action)
	}
}

func TestColumnOrder(t *testing.T) {
	ref := newTable("a", "b", "c")
	target := newTable("c", "a", "b")

	got := ColumnOrder(comparison(ref, target, Gates{}))
	if len(got) != 1 {
		t.Fatalf("expected a single combined statement, got %v", got)
	}

	text := got[0].Text
	if n := strings.Count(text, " AFTER "); n != 2 {
		t.Errorf("expected 2 AFTER clauses, got %d in %q", n, text)
	}
	if !strings.Contains(text, "MODIFY b int(11) NOT NULL AFTER a") || !strings.Contains(text, "MODIFY c int(11) NOT NULL AFTER b") {
		t.Errorf("missing expected clauses in %q", text)
	}
	if strings.Contains(text, "MODIFY a ") {
		t.Errorf("expected no clause for the first column, got %q", text)
	}
}

func TestColumnOrderUsesTargetDefinitionAndSkipsMissing(t *testing.T) {
	ref := newTable("a", "b", "c")
	target := schema.NewTable("t")
	target.Columns.Set("c", schema.NewColumn("varchar(8)", false, nil, true, nil))
	target.Columns.Set("a", intColumn())

	got := ColumnOrder(comparison(ref, target, Gates{}))
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %v", got)
	}
	if want := "ALTER TABLE fix.t MODIFY c varchar(8) DEFAULT NULL AFTER b;"; got[0].Text != want {
		t.Errorf("expected %q, got %q", want, got[0].Text)
	}
}

func TestColumnOrderSameOrder(t *testing.T) {
	if got := ColumnOrder(comparison(newTable("a", "b"), newTable("a", "b"), Gates{})); len(got) != 0 {
		t.Errorf("expected nothing, got %v", got)
	}
}

func TestIndexExistence(t *testing.T) {
	ref := newTable("id")
	ref.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id", true, true))
	ref.Indexes.Set("uq_email", schema.NewTableIndex("email", true, false))
	target := newTable("id")
	target.Indexes.Set("ix_old", schema.NewTableIndex("old", false, false))

	got := IndexExistence(comparison(ref, target, ModeBoth.Gates()))
	want := []string{
		"ALTER TABLE fix.t ADD CONSTRAINT PRIMARY KEY (id);",
		"CREATE UNIQUE INDEX uq_email ON fix.t(email);",
		"ALTER TABLE fix.t DROP INDEX ix_old;",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %v", len(want), got)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], got[i].Text)
		}
	}
}

func TestIndexExistenceDropsTargetPrimary(t *testing.T) {
	ref := newTable("id")
	target := newTable("id")
	target.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id", true, true))

	got := IndexExistence(comparison(ref, target, ModeDestructive.Gates()))
	if len(got) != 1 || got[0].Text != "ALTER TABLE fix.t DROP PRIMARY KEY;" {
		t.Errorf("expected DROP PRIMARY KEY, got %v", got)
	}
	if got := IndexExistence(comparison(ref, target, ModeAdditive.Gates())); len(got) != 0 {
		t.Errorf("expected nothing when destructive is disabled, got %v", got)
	}
}

func TestIndexValuesPrimaryKey(t *testing.T) {
	ref := newTable("id", "tenant_id")
	ref.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id", true, true))
	target := newTable("id", "tenant_id")
	target.Indexes.Set(schema.PrimaryIndexName, schema.NewTableIndex("id,tenant_id", true, true))

	got := IndexValues(comparison(ref, target, Gates{}))
	if len(got) != 1 {
		t.Fatalf("expected 1 statement, got %v", got)
	}
	if !strings.Contains(got[0].Text, "DROP PRIMARY KEY, ADD PRIMARY KEY(id)") {
		t.Errorf("unexpected statement %q", got[0].Text)
	}
}

func TestIndexValuesSecondary(t *testing.T) {
	ref := newTable("a", "b")
	ref.Indexes.Set("ix", schema.NewTableIndex("a,b", false, false))
	target := newTable("a", "b")
	target.Indexes.Set("ix", schema.NewTableIndex("a", false, false))

	got := IndexValues(comparison(ref, target, Gates{}))
	if len(got) != 1 || got[0].Text != "ALTER TABLE fix.t DROP INDEX ix, ADD INDEX ix(a,b);" {
		t.Errorf("unexpected statements %v", got)
	}
}
