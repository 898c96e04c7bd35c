package reconcile

import (
	"context"
	"fmt"

	"github.com/koba/schema-fix/internal/diff"
	"github.com/koba/schema-fix/internal/generator"
	"github.com/koba/schema-fix/internal/schema"
)

// Source reads schema metadata from one server
type Source interface {
	TableNames(ctx context.Context, schemaName string) ([]string, error)
	Columns(ctx context.Context, schemaName, table string) (schema.Ordered[schema.Column], error)
	Indexes(ctx context.Context, schemaName, table string) (schema.Ordered[schema.TableIndex], error)
	CreateStatement(ctx context.Context, schemaName, table string) (string, error)
}

// Executor applies corrective statements to the target
type Executor interface {
	Exec(ctx context.Context, statement string) error
}

// Options configures a run
type Options struct {
	ReferenceSchema string
	TargetSchema    string
	Gates           diff.Gates

	// OnTable is called before each planned table is processed
	OnTable func(step diff.PlannedTable)
	// OnResult is called right after each statement was executed
	OnResult func(result Result)
}

// Reconciler brings the target schema in line with the reference schema
type Reconciler struct {
	reference Source
	target    Source
	exec      Executor
	opts      Options
}

// New creates a reconciler over the two sessions
func New(reference, target Source, exec Executor, opts Options) *Reconciler {
	return &Reconciler{reference: reference, target: target, exec: exec, opts: opts}
}

// Plan lists both schemas and returns what will happen to each table
func (r *Reconciler) Plan(ctx context.Context) ([]diff.PlannedTable, error) {
	refTables, err := r.reference.TableNames(ctx, r.opts.ReferenceSchema)
	if err != nil {
		return nil, err
	}
	targetTables, err := r.target.TableNames(ctx, r.opts.TargetSchema)
	if err != nil {
		return nil, err
	}
	return diff.PlanTables(refTables, targetTables, r.opts.Gates), nil
}

// Run reconciles every table. Metadata errors abort the run and are
// returned together with the partial report. Statement failures are
// recorded and the run carries on.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	plan, err := r.Plan(ctx)
	if err != nil {
		return report, err
	}

	for _, step := range plan {
		if r.opts.OnTable != nil {
			r.opts.OnTable(step)
		}
		if err := r.runTable(ctx, report, step); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Reconciler) runTable(ctx context.Context, report *Report, step diff.PlannedTable) error {
	switch step.Action {
	case diff.TableCreate:
		text, err := r.reference.CreateStatement(ctx, r.opts.ReferenceSchema, step.Name)
		if err != nil {
			return err
		}
		r.apply(ctx, report, generator.CreateTable(r.opts.TargetSchema, step.Name, text))
	case diff.TableDrop:
		r.apply(ctx, report, generator.DropTable(r.opts.TargetSchema, step.Name))
	case diff.TableCompare:
		return r.compareTable(ctx, report, step.Name)
	default:
		return fmt.Errorf("unknown table action %q for %s", step.Action, step.Name)
	}
	return nil
}

// compareTable runs the comparison stages in order. Each stage re-reads the
// metadata it needs, so it sees the effect of the statements before it.
func (r *Reconciler) compareTable(ctx context.Context, report *Report, table string) error {
	c := diff.Comparison{
		Table:     schema.Qualify(r.opts.TargetSchema, table),
		Reference: schema.NewTable(table),
		Target:    schema.NewTable(table),
		Gates:     r.opts.Gates,
	}

	for _, stage := range diff.Stages {
		if stage.Columns {
			if err := r.loadColumns(ctx, c); err != nil {
				return err
			}
		}
		if stage.Indexes {
			if err := r.loadIndexes(ctx, c); err != nil {
				return err
			}
		}
		for _, stmt := range stage.Compare(c) {
			r.apply(ctx, report, stmt)
		}
	}
	return nil
}

func (r *Reconciler) loadColumns(ctx context.Context, c diff.Comparison) error {
	var err error
	if c.Reference.Columns, err = r.reference.Columns(ctx, r.opts.ReferenceSchema, c.Reference.Name); err != nil {
		return err
	}
	if c.Target.Columns, err = r.target.Columns(ctx, r.opts.TargetSchema, c.Target.Name); err != nil {
		return err
	}
	return nil
}

func (r *Reconciler) loadIndexes(ctx context.Context, c diff.Comparison) error {
	var err error
	if c.Reference.Indexes, err = r.reference.Indexes(ctx, r.opts.ReferenceSchema, c.Reference.Name); err != nil {
		return err
	}
	if c.Target.Indexes, err = r.target.Indexes(ctx, r.opts.TargetSchema, c.Target.Name); err != nil {
		return err
	}
	return nil
}

func (r *Reconciler) apply(ctx context.Context, report *Report, stmt generator.Statement) {
	result := Result{Statement: stmt}
	if err := r.exec.Exec(ctx, stmt.String()); err != nil {
		result.Err = err.Error()
	}
	report.Results = append(report.Results, result)
	if r.opts.OnResult != nil {
		r.opts.OnResult(result)
	}
}
