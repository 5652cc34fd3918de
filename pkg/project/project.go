// Package project implements column projection, choosing a subset
// (or reordering, or repetition) of a child operator's columns to
// appear in the output.
package project

import (
	"fmt"

	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/tuple"
)

// Project selects and reorders columns from its child's output. Projected
// columns may repeat a source column or reorder columns arbitrarily; they
// may not introduce a column index absent from the child's schema.
type Project struct {
	unary  *operator.Unary
	base   *operator.Base
	cols   []int
	schema operator.Schema
}

// New builds a Project over child, emitting exactly the columns named by
// cols (in order, repeats allowed) from each child tuple.
func New(child operator.Operator, cols []int) (*Project, error) {
	if len(cols) == 0 {
		return nil, opererr.New(opererr.KindSchemaMismatch, "Project.New", "project",
			"must project at least one column")
	}

	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}

	childSchema := child.Schema()
	schema := make(operator.Schema, len(cols))
	for i, c := range cols {
		if c < 0 || c >= len(childSchema) {
			return nil, opererr.New(opererr.KindIndexOutOfRange, "Project.New", "project",
				fmt.Sprintf("column index %d out of range (child has %d columns)", c, len(childSchema)))
		}
		schema[i] = childSchema[c]
	}

	p := &Project{unary: u, cols: cols, schema: schema}
	p.base = operator.NewBase("Project", p.readNext)
	return p, nil
}

func (p *Project) readNext() (*tuple.Tuple, error) {
	t, err := p.unary.FetchChild()
	if err != nil || t == nil {
		return nil, err
	}
	return t.Project(p.cols), nil
}

func (p *Project) Open() error {
	if err := p.unary.OpenChild(); err != nil {
		return err
	}
	p.base.MarkOpened()
	return nil
}

func (p *Project) Advance() (bool, error) { return p.base.Advance() }
func (p *Project) Output() *tuple.Tuple   { return p.base.Output() }

func (p *Project) Close() error {
	err := p.unary.CloseChild()
	p.base.MarkClosed()
	return err
}

func (p *Project) Schema() operator.Schema { return p.schema }
