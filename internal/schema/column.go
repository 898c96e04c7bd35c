package schema

import "strings"

// Column represents one declared table column as reported by the engine
type Column struct {
	datatype  string
	isNumeric bool
	isText    bool
	def       *string
	nullable  bool
	extra     *string
}

// NewColumn creates a column, stripping one layer of quotes from the default
func NewColumn(datatype string, isNumeric bool, def *string, nullable bool, extra *string) Column {
	col := Column{
		datatype:  datatype,
		isNumeric: isNumeric,
		isText:    strings.Contains(datatype, "char") || strings.Contains(datatype, "text"),
		nullable:  nullable,
		extra:     extra,
	}
	if def != nil {
		v := stripQuotes(*def)
		col.def = &v
	}
	return col
}

func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// MatchDefaults reports whether two default or extra clauses are the same
// once the renderings of different server versions are taken into account.
func MatchDefaults(a, b string) bool {
	if a == b {
		return true
	}
	return equivalentPair(a, b, "on update current_timestamp()", "on update CURRENT_TIMESTAMP") ||
		equivalentPair(a, b, "current_timestamp()", "CURRENT_TIMESTAMP")
}

func equivalentPair(a, b, x, y string) bool {
	return (a == x && b == y) || (a == y && b == x)
}

// Datatype returns the raw column type, e.g. varchar(32)
func (c Column) Datatype() string { return c.datatype }

// IsNumeric reports whether the engine reported a numeric precision
func (c Column) IsNumeric() bool { return c.isNumeric }

// IsText reports whether the type is a char or text type
func (c Column) IsText() bool { return c.isText }

// Nullable reports whether the column accepts NULL
func (c Column) Nullable() bool { return c.nullable }

// Extra returns the extra clause, if any
func (c Column) Extra() (string, bool) {
	if c.extra == nil {
		return "", false
	}
	return *c.extra, true
}

// RawDefault returns the stored default literal without rendering.
// An absent default is distinct from the literal NULL.
func (c Column) RawDefault() (string, bool) {
	if c.def == nil {
		return "", false
	}
	return *c.def, true
}

// Default returns the default value as it appears in a column definition.
// A missing default renders as NULL for nullable columns.
func (c Column) Default() (string, bool) {
	literal := "NULL"
	if c.def != nil {
		literal = *c.def
	}
	if literal == "NULL" {
		if !c.nullable {
			return "", false
		}
		return "NULL", true
	}
	if c.isText {
		return "'" + literal + "'", true
	}
	return literal, true
}

// Equal compares datatype, extra clause and default value
func (c Column) Equal(other Column) bool {
	return c.datatype == other.datatype &&
		c.equalExtra(other) &&
		c.equalDefault(other)
}

func (c Column) equalExtra(other Column) bool {
	a, okA := c.Extra()
	b, okB := other.Extra()
	if okA != okB {
		return false
	}
	return !okA || MatchDefaults(a, b)
}

func (c Column) equalDefault(other Column) bool {
	a, okA := c.Default()
	b, okB := other.Default()
	if okA != okB {
		return false
	}
	return !okA || MatchDefaults(a, b)
}

// Definition renders the column definition used in ADD and MODIFY clauses
func (c Column) Definition() string {
	var sb strings.Builder
	sb.WriteString(c.datatype)
	if !c.nullable {
		sb.WriteString(" NOT NULL")
	}
	if def, ok := c.Default(); ok {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(def)
	}
	if extra, ok := c.Extra(); ok {
		sb.WriteString(" ")
		sb.WriteString(extra)
	}
	return sb.String()
}

// AddStatement renders ALTER TABLE ... ADD COLUMN for this column
func (c Column) AddStatement(name, table string) string {
	return "ALTER TABLE " + table + " ADD COLUMN " + name + " " + c.Definition() + ";"
}

// ModifyStatement renders ALTER TABLE ... MODIFY for this column
func (c Column) ModifyStatement(name, table string) string {
	return "ALTER TABLE " + table + " MODIFY " + name + " " + c.Definition() + ";"
}
