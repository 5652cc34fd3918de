package operator

import "voltano/pkg/tuple"

// iterate drains op from its current position, calling visit with each
// output tuple (cloned, so callers may retain it past the next Advance).
// visit returns false to stop early.
func iterate(op Operator, visit func(*tuple.Tuple) (bool, error)) error {
	for {
		ok, err := op.Advance()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cont, err := visit(op.Output().Clone())
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// ForEach applies process to every remaining tuple from op, stopping early
// if process returns an error.
func ForEach(op Operator, process func(*tuple.Tuple) error) error {
	return iterate(op, func(t *tuple.Tuple) (bool, error) {
		return true, process(t)
	})
}

// Filter collects every remaining tuple from op for which predicate
// returns true.
func Filter(op Operator, predicate func(*tuple.Tuple) (bool, error)) ([]*tuple.Tuple, error) {
	var out []*tuple.Tuple
	err := iterate(op, func(t *tuple.Tuple) (bool, error) {
		ok, err := predicate(t)
		if err != nil {
			return false, err
		}
		if ok {
			out = append(out, t)
		}
		return true, nil
	})
	return out, err
}

// Map transforms every remaining tuple from op using transform, excluding
// any nil result.
func Map(op Operator, transform func(*tuple.Tuple) (*tuple.Tuple, error)) ([]*tuple.Tuple, error) {
	var out []*tuple.Tuple
	err := iterate(op, func(t *tuple.Tuple) (bool, error) {
		mapped, err := transform(t)
		if err != nil {
			return false, err
		}
		if mapped != nil {
			out = append(out, mapped)
		}
		return true, nil
	})
	return out, err
}

// Take collects up to n remaining tuples from op.
func Take(op Operator, n int) ([]*tuple.Tuple, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]*tuple.Tuple, 0, n)
	err := iterate(op, func(t *tuple.Tuple) (bool, error) {
		out = append(out, t)
		return len(out) < n, nil
	})
	return out, err
}

// Reduce folds every remaining tuple from op into an accumulated value.
func Reduce[T any](op Operator, initial T, accumulate func(T, *tuple.Tuple) (T, error)) (T, error) {
	result := initial
	err := iterate(op, func(t *tuple.Tuple) (bool, error) {
		var err error
		result, err = accumulate(result, t)
		return true, err
	})
	return result, err
}
