package generator

import "strings"

// Action represents the kind of change a statement applies
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionDrop   Action = "DROP"
	ActionModify Action = "MODIFY"
)

// Statement is a corrective statement together with the table it targets
type Statement struct {
	Action Action
	Table  string
	Text   string
}

func (s Statement) String() string {
	return s.Text
}

// Script joins statements into one newline-separated script
func Script(statements []Statement) string {
	lines := make([]string, len(statements))
	for i, s := range statements {
		lines[i] = s.Text
	}
	return strings.Join(lines, "\n")
}
