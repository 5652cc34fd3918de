// Package sortop implements a blocking, multi-key sort over a child
// operator's output.
package sortop

import (
	"fmt"
	"sort"

	"voltano/pkg/logging"
	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/tuple"
)

// Key names one sort column and its direction.
type Key struct {
	Col        int
	Descending bool
}

// Sort materializes its child's entire output, orders it by Keys applied
// left to right (first key is the primary sort, subsequent keys break
// ties), then streams the result. Blocking: the first Advance reads the
// whole child.
//
// Unlike a single-field sort, each key here carries its own direction
// independently — a descending primary key and an ascending tiebreaker
// compose correctly.
type Sort struct {
	unary        *operator.Unary
	base         *operator.Base
	keys         []Key
	rows         []*tuple.Tuple
	pos          int
	materialized bool
}

// New builds a Sort over child, ordered by keys. At least one key is
// required; each key's column must be within the child's schema.
func New(child operator.Operator, keys []Key) (*Sort, error) {
	if len(keys) == 0 {
		return nil, opererr.New(opererr.KindSchemaMismatch, "Sort.New", "sortop",
			"at least one sort key is required")
	}

	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}

	schema := child.Schema()
	for _, k := range keys {
		if k.Col < 0 || k.Col >= len(schema) {
			return nil, opererr.New(opererr.KindIndexOutOfRange, "Sort.New", "sortop",
				fmt.Sprintf("key column %d out of range (child has %d columns)", k.Col, len(schema)))
		}
	}

	s := &Sort{unary: u, keys: keys}
	s.base = operator.NewBase("Sort", s.readNext)
	return s, nil
}

func (s *Sort) less(a, b *tuple.Tuple) bool {
	for _, k := range s.keys {
		cmp := a.Field(k.Col).Compare(b.Field(k.Col))
		if cmp == 0 {
			continue
		}
		if k.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func (s *Sort) materialize() error {
	for {
		t, err := s.unary.FetchChild()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		s.rows = append(s.rows, t.Clone())
	}

	sort.SliceStable(s.rows, func(i, j int) bool {
		return s.less(s.rows[i], s.rows[j])
	})
	logging.WithPhase("Sort", "materialize").Debug("materialized and sorted", "rows", len(s.rows), "keys", len(s.keys))
	s.materialized = true
	return nil
}

func (s *Sort) readNext() (*tuple.Tuple, error) {
	if !s.materialized {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}
	if s.pos >= len(s.rows) {
		return nil, nil
	}
	t := s.rows[s.pos]
	s.pos++
	return t, nil
}

func (s *Sort) Open() error {
	if err := s.unary.OpenChild(); err != nil {
		return err
	}
	s.rows = nil
	s.pos = 0
	s.materialized = false
	s.base.MarkOpened()
	return nil
}

func (s *Sort) Advance() (bool, error) { return s.base.Advance() }
func (s *Sort) Output() *tuple.Tuple   { return s.base.Output() }

func (s *Sort) Close() error {
	err := s.unary.CloseChild()
	s.rows = nil
	s.base.MarkClosed()
	return err
}

func (s *Sort) Schema() operator.Schema { return s.unary.Schema() }
