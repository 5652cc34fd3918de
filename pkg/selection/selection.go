// Package selection implements row filtering by a single predicate of one
// of three shapes: a column compared to a constant, or two columns of the
// same child tuple compared to each other.
package selection

import (
	"fmt"

	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

// Op is a comparison operator usable by any predicate shape.
type Op int

const (
	EQ Op = iota
	NE
	LT
	LE
	GT
	GE
)

func (op Op) String() string {
	switch op {
	case EQ:
		return "="
	case NE:
		return "<>"
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	default:
		return "?"
	}
}

func (op Op) eval(cmp int) bool {
	switch op {
	case EQ:
		return cmp == 0
	case NE:
		return cmp != 0
	case LT:
		return cmp < 0
	case LE:
		return cmp <= 0
	case GT:
		return cmp > 0
	case GE:
		return cmp >= 0
	default:
		return false
	}
}

// Predicate is evaluated once per child tuple to decide whether it passes.
type Predicate interface {
	eval(t *tuple.Tuple) (bool, error)
	describe() string
}

// constantPredicate compares column col against a fixed Register operand.
// Covers both the integer-constant and string-constant shapes of §4.4: the
// shape is determined entirely by operand's Kind, checked against the
// child schema at construction time.
type constantPredicate struct {
	col     int
	op      Op
	operand register.Register
}

// NewConstant builds a column-vs-constant predicate. operand's Kind fixes
// whether this is the integer-constant or string-constant shape.
func NewConstant(col int, op Op, operand register.Register) Predicate {
	return &constantPredicate{col: col, op: op, operand: operand}
}

func (p *constantPredicate) eval(t *tuple.Tuple) (bool, error) {
	f := t.Field(p.col)
	return p.op.eval(f.Compare(p.operand)), nil
}

func (p *constantPredicate) describe() string {
	return fmt.Sprintf("col[%d] %s %s", p.col, p.op, p.operand)
}

// columnPairPredicate compares two columns of the same input tuple.
type columnPairPredicate struct {
	left  int
	right int
	op    Op
}

// NewColumnPair builds a column-vs-column predicate over a single tuple's
// left and right columns. Both columns must share a variant; New validates
// this against the child schema.
func NewColumnPair(left, right int, op Op) Predicate {
	return &columnPairPredicate{left: left, right: right, op: op}
}

func (p *columnPairPredicate) eval(t *tuple.Tuple) (bool, error) {
	l := t.Field(p.left)
	r := t.Field(p.right)
	return p.op.eval(l.Compare(r)), nil
}

func (p *columnPairPredicate) describe() string {
	return fmt.Sprintf("col[%d] %s col[%d]", p.left, p.op, p.right)
}

// Selection filters its child's output by a single Predicate, passing
// matching tuples through unchanged. Pipelining: one child Advance per own
// Advance, no materialization.
type Selection struct {
	unary *operator.Unary
	base  *operator.Base
	pred  Predicate
}

// New builds a Selection over child, filtering by pred. Returns an error
// if pred references columns incompatible with the child's schema (for
// constant predicates, a Kind mismatch with the operand; for column-pair
// predicates, a Kind mismatch between the two columns).
func New(child operator.Operator, pred Predicate) (*Selection, error) {
	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}
	if err := validate(child.Schema(), pred); err != nil {
		return nil, err
	}

	s := &Selection{unary: u, pred: pred}
	s.base = operator.NewBase("Selection", s.readNext)
	return s, nil
}

func validate(schema operator.Schema, pred Predicate) error {
	switch p := pred.(type) {
	case *constantPredicate:
		if p.col < 0 || p.col >= len(schema) {
			return opererr.New(opererr.KindIndexOutOfRange, "Selection.New", "selection",
				fmt.Sprintf("column index %d out of range", p.col))
		}
		if schema[p.col] != p.operand.Kind() {
			return opererr.New(opererr.KindTypeMismatch, "Selection.New", "selection",
				fmt.Sprintf("column %d kind %v does not match operand kind %v", p.col, schema[p.col], p.operand.Kind()))
		}
	case *columnPairPredicate:
		if p.left < 0 || p.left >= len(schema) || p.right < 0 || p.right >= len(schema) {
			return opererr.New(opererr.KindIndexOutOfRange, "Selection.New", "selection",
				"column-pair index out of range")
		}
		if schema[p.left] != schema[p.right] {
			return opererr.New(opererr.KindTypeMismatch, "Selection.New", "selection",
				fmt.Sprintf("column-pair kinds differ (%v vs %v)", schema[p.left], schema[p.right]))
		}
	}
	return nil
}

func (s *Selection) readNext() (*tuple.Tuple, error) {
	for {
		t, err := s.unary.FetchChild()
		if err != nil || t == nil {
			return nil, err
		}
		ok, err := s.pred.eval(t)
		if err != nil {
			return nil, err
		}
		if ok {
			return t, nil
		}
	}
}

func (s *Selection) Open() error {
	if err := s.unary.OpenChild(); err != nil {
		return err
	}
	s.base.MarkOpened()
	return nil
}

func (s *Selection) Advance() (bool, error) { return s.base.Advance() }
func (s *Selection) Output() *tuple.Tuple   { return s.base.Output() }

func (s *Selection) Close() error {
	err := s.unary.CloseChild()
	s.base.MarkClosed()
	return err
}

func (s *Selection) Schema() operator.Schema { return s.unary.Schema() }
