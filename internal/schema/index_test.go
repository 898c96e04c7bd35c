package schema

import "testing"

func TestTableIndexNormalizesColumns(t *testing.T) {
	a := NewTableIndex("b,a", false, false)
	b := NewTableIndex("a, b", false, false)

	if !a.Equal(b) {
		t.Errorf("expected %q and %q to be equal", a.Columns(), b.Columns())
	}
	if a.Columns() != "a,b" {
		t.Errorf("expected columns a,b, got %s", a.Columns())
	}
}

func TestTableIndexEqual(t *testing.T) {
	base := NewTableIndex("id", true, true)

	if base.Equal(NewTableIndex("id", false, true)) {
		t.Error("expected uniqueness to matter")
	}
	if base.Equal(NewTableIndex("id", true, false)) {
		t.Error("expected primary flag to matter")
	}
	if base.Equal(NewTableIndex("id,tenant_id", true, true)) {
		t.Error("expected column set to matter")
	}
	if !base.Equal(NewTableIndex(" id ", true, true)) {
		t.Error("expected whitespace to be ignored")
	}
}
