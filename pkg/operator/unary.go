package operator

import (
	"fmt"

	"voltano/pkg/tuple"
)

// Unary provides the common child-management boilerplate for operators with
// exactly one input: Projection, Selection, Sort, Limit, HashAggregation.
// Concrete operators hold a *Unary, supply their own readNext closure to
// Base, and delegate Open/Close/Schema to it.
type Unary struct {
	Child Operator
}

// NewUnary validates and wraps a single child operator.
func NewUnary(child Operator) (*Unary, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	return &Unary{Child: child}, nil
}

// FetchChild advances the child and returns its current output, or nil
// once the child is exhausted.
func (u *Unary) FetchChild() (*tuple.Tuple, error) {
	ok, err := u.Child.Advance()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return u.Child.Output(), nil
}

// OpenChild opens the child operator. Concrete operators call this first in
// their own Open, before materializing state or marking Base opened.
func (u *Unary) OpenChild() error { return u.Child.Open() }

// CloseChild closes the child operator.
func (u *Unary) CloseChild() error { return u.Child.Close() }

// Schema returns the child's schema, the default for operators that don't
// change column variants (Selection, Sort, Limit). Projection and
// HashAggregation override this with their own Schema method.
func (u *Unary) Schema() Schema { return u.Child.Schema() }
