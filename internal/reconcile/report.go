package reconcile

import (
	"context"

	"github.com/koba/schema-fix/internal/generator"
)

// Result is the outcome of one statement. Err is empty on success.
type Result struct {
	Statement generator.Statement
	Err       string
}

func (r Result) Failed() bool {
	return r.Err != ""
}

// Report collects every statement result of a run in execution order
type Report struct {
	Results []Result
}

// Applied counts the statements that succeeded
func (r *Report) Applied() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// Failed counts the statements that returned an error
func (r *Report) Failed() int {
	return len(r.Results) - r.Applied()
}

// Statements returns the statements of the run
func (r *Report) Statements() []generator.Statement {
	out := make([]generator.Statement, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Statement
	}
	return out
}

// DryRun accepts every statement without executing it
type DryRun struct{}

func (DryRun) Exec(context.Context, string) error {
	return nil
}
