package operator

import (
	"errors"
	"fmt"

	"voltano/pkg/tuple"
)

// Binary provides the common child-management boilerplate for operators
// with two inputs: HashJoin and the set-operation family.
type Binary struct {
	Left  Operator
	Right Operator
}

// NewBinary validates and wraps a pair of child operators.
func NewBinary(left, right Operator) (*Binary, error) {
	if left == nil {
		return nil, fmt.Errorf("left child operator cannot be nil")
	}
	if right == nil {
		return nil, fmt.Errorf("right child operator cannot be nil")
	}
	return &Binary{Left: left, Right: right}, nil
}

// FetchLeft advances the left child and returns its output, or nil once
// exhausted.
func (b *Binary) FetchLeft() (*tuple.Tuple, error) { return fetch(b.Left) }

// FetchRight advances the right child and returns its output, or nil once
// exhausted.
func (b *Binary) FetchRight() (*tuple.Tuple, error) { return fetch(b.Right) }

func fetch(op Operator) (*tuple.Tuple, error) {
	ok, err := op.Advance()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return op.Output(), nil
}

// OpenChildren opens both children.
func (b *Binary) OpenChildren() error {
	if err := b.Left.Open(); err != nil {
		return fmt.Errorf("failed to open left child: %w", err)
	}
	if err := b.Right.Open(); err != nil {
		return fmt.Errorf("failed to open right child: %w", err)
	}
	return nil
}

// CloseChildren closes both children, joining any errors from both.
func (b *Binary) CloseChildren() error {
	var errs []error
	if err := b.Left.Close(); err != nil {
		errs = append(errs, fmt.Errorf("left child close: %w", err))
	}
	if err := b.Right.Close(); err != nil {
		errs = append(errs, fmt.Errorf("right child close: %w", err))
	}
	return errors.Join(errs...)
}
