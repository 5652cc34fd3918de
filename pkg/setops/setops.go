// Package setops implements the six multiset operations over two
// operators with matching schemas: Union[All], Intersect[All], and
// Except[All]. All are blocking and emit in ascending tuple-lexicographic
// order.
package setops

import (
	"fmt"
	"sort"

	"voltano/pkg/logging"
	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/tuple"
)

// Kind selects which of the six set operations to perform.
type Kind int

const (
	Union Kind = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

// entry pairs a distinct tuple with its multiplicity on one side.
type entry struct {
	t     *tuple.Tuple
	count int
}

// SetOp materializes both children into multiplicity maps keyed by tuple
// hash (collisions broken by Equals), combines them per Kind, and emits
// the result sorted ascending by tuple-lexicographic order.
type SetOp struct {
	binary *operator.Binary
	base   *operator.Base

	kind Kind

	result       []*tuple.Tuple
	pos          int
	materialized bool

	schema operator.Schema
}

// New builds a SetOp of the given kind over left and right. Both must
// share the same column count and per-column variants.
func New(left, right operator.Operator, kind Kind) (*SetOp, error) {
	b, err := operator.NewBinary(left, right)
	if err != nil {
		return nil, err
	}

	ls, rs := left.Schema(), right.Schema()
	if len(ls) != len(rs) {
		return nil, opererr.New(opererr.KindSchemaMismatch, "SetOp.New", "setops",
			fmt.Sprintf("column count mismatch (%d vs %d)", len(ls), len(rs)))
	}
	for i := range ls {
		if ls[i] != rs[i] {
			return nil, opererr.New(opererr.KindTypeMismatch, "SetOp.New", "setops",
				fmt.Sprintf("column %d kind mismatch (%v vs %v)", i, ls[i], rs[i]))
		}
	}

	s := &SetOp{binary: b, kind: kind, schema: ls}
	s.base = operator.NewBase("SetOp", s.readNext)
	return s, nil
}

func buildMultiset(op operator.Operator) (map[uint64][]*entry, error) {
	m := make(map[uint64][]*entry)
	for {
		ok, err := op.Advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			return m, nil
		}
		t := op.Output().Clone()
		h := t.Hash()
		bucket := m[h]
		found := false
		for _, e := range bucket {
			if e.t.Equals(t) {
				e.count++
				found = true
				break
			}
		}
		if !found {
			m[h] = append(bucket, &entry{t: t, count: 1})
		}
	}
}

func (s *SetOp) materialize() error {
	left, err := buildMultiset(s.binary.Left)
	if err != nil {
		return err
	}
	right, err := buildMultiset(s.binary.Right)
	if err != nil {
		return err
	}

	var out []*tuple.Tuple
	switch s.kind {
	case Union:
		out = combine(left, right, func(l, r int) int {
			if l == 0 && r == 0 {
				return 0
			}
			return 1
		})
	case UnionAll:
		out = combine(left, right, func(l, r int) int { return l + r })
	case Intersect:
		out = combine(left, right, func(l, r int) int {
			if l > 0 && r > 0 {
				return 1
			}
			return 0
		})
	case IntersectAll:
		out = combine(left, right, func(l, r int) int { return min(l, r) })
	case Except:
		out = combine(left, right, func(l, r int) int {
			if l > 0 && r == 0 {
				return 1
			}
			return 0
		})
	case ExceptAll:
		out = combine(left, right, func(l, r int) int { return max(l-r, 0) })
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	logging.WithPhase("SetOp", "materialize").Debug("combined multisets", "kind", s.kind, "rows", len(out))
	s.result = out
	s.materialized = true
	return nil
}

// combine walks the union of left and right's keys, calling mult(leftCount,
// rightCount) per distinct tuple, and emits that tuple mult times.
func combine(left, right map[uint64][]*entry, mult func(l, r int) int) []*tuple.Tuple {
	var out []*tuple.Tuple

	emit := func(t *tuple.Tuple, l, r int) {
		n := mult(l, r)
		for i := 0; i < n; i++ {
			out = append(out, t)
		}
	}

	for h, bucket := range left {
		for _, le := range bucket {
			rCount := 0
			if rbucket, ok := right[h]; ok {
				for _, re := range rbucket {
					if re.t.Equals(le.t) {
						rCount = re.count
						break
					}
				}
			}
			emit(le.t, le.count, rCount)
		}
	}

	for h, bucket := range right {
		for _, re := range bucket {
			lCount := 0
			if lbucket, ok := left[h]; ok {
				for _, le := range lbucket {
					if le.t.Equals(re.t) {
						lCount = le.count
						break
					}
				}
			}
			if lCount > 0 {
				continue // already handled in the left-side pass above
			}
			emit(re.t, 0, re.count)
		}
	}

	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (s *SetOp) readNext() (*tuple.Tuple, error) {
	if !s.materialized {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}
	if s.pos >= len(s.result) {
		return nil, nil
	}
	t := s.result[s.pos]
	s.pos++
	return t, nil
}

func (s *SetOp) Open() error {
	if err := s.binary.OpenChildren(); err != nil {
		return err
	}
	s.result = nil
	s.pos = 0
	s.materialized = false
	s.base.MarkOpened()
	return nil
}

func (s *SetOp) Advance() (bool, error) { return s.base.Advance() }
func (s *SetOp) Output() *tuple.Tuple   { return s.base.Output() }

func (s *SetOp) Close() error {
	err := s.binary.CloseChildren()
	s.result = nil
	s.base.MarkClosed()
	return err
}

func (s *SetOp) Schema() operator.Schema { return s.schema }
