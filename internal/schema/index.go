package schema

import (
	"slices"
	"strings"
)

// PrimaryIndexName is the name the engine reserves for the primary key
const PrimaryIndexName = "PRIMARY"

// TableIndex represents a named index. Columns are kept sorted so that
// the order reported by the engine does not matter.
type TableIndex struct {
	columns []string
	unique  bool
	primary bool
}

// NewTableIndex creates an index from a comma-separated column list
func NewTableIndex(columns string, unique, primary bool) TableIndex {
	parts := strings.Split(columns, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		cols = append(cols, strings.TrimSpace(p))
	}
	slices.Sort(cols)
	return TableIndex{columns: cols, unique: unique, primary: primary}
}

// Columns returns the sorted column list joined with commas
func (i TableIndex) Columns() string {
	return strings.Join(i.columns, ",")
}

func (i TableIndex) Unique() bool  { return i.unique }
func (i TableIndex) Primary() bool { return i.primary }

// Equal compares column set, uniqueness and primary flag
func (i TableIndex) Equal(other TableIndex) bool {
	return i.unique == other.unique &&
		i.primary == other.primary &&
		slices.Equal(i.columns, other.columns)
}
